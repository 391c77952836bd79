package main

import (
	"embed"
	"log"

	"github.com/duxiu-index/duxiu-tui/advisor"
	c "github.com/duxiu-index/duxiu-tui/constants"
	m "github.com/duxiu-index/duxiu-tui/models"
	"github.com/duxiu-index/duxiu-tui/store"
	"github.com/duxiu-index/duxiu-tui/themes"
	"github.com/duxiu-index/duxiu-tui/translations"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/rivo/tview"
)

//go:embed translations/*.yml
var AllTranslations embed.FS

//go:embed themes/*.yml
var AllThemes embed.FS

const (
	// PageCalculator is not shown to the user ever, and is only used in the
	// code. Its primary purpose is for use in switch/case statements to
	// determine the current page.
	PageCalculator = "Calculator"
	// PageTrends is not shown to the user ever, and is only used in the code.
	// Its primary purpose is for use in switch/case statements to determine
	// the current page.
	PageTrends = "Trends"
	// PageAdvisor is not shown to the user ever, and is only used in the code.
	// Its primary purpose is for use in switch/case statements to determine
	// the current page.
	PageAdvisor = "Advisor"
	// PageSettings is not shown to the user ever, and is only used in the
	// code. Its primary purpose is for use in switch/case statements to
	// determine the current page.
	PageSettings = "Settings"
	// PageHelp is not shown to the user ever, and is only used in the code.
	// Its primary purpose is for use in switch/case statements to determine
	// the current page.
	PageHelp = "Help"
	// PagePrompt is not shown to the user ever, and is only used in the code.
	// Its primary purpose is for use in switch/case statements to determine
	// the current page.
	PagePrompt = "Prompt"
)

type DuxiuIndex struct {
	// The tview/tcell terminal application.
	App *tview.Application

	// The currently loaded user preferences. The contents of this will be
	// saved to disk after every change.
	Settings m.AppSettings

	// On-disk locations for history, settings, and backups.
	Files *store.FileStore

	// All monthly records, the current draft, and the month navigation state.
	Store *store.Store

	// The advisory-generation API client.
	Advisor *advisor.Client

	// The primary primitive that the app uses as its root in the terminal.
	Layout *tview.Flex

	// Translations that are loaded at runtime.
	T map[string]string

	// All default & custom colors are stored in here at runtime, keyed by
	// purpose, with tview color tag values.
	Colors map[string]string

	// The previously shown page (via the primary pages primitive).
	PrevPage string

	// The primary page-switching primitive.
	Pages *tview.Pages

	// The calculator page's input form. Rebuilt whenever the draft is
	// replaced wholesale (month navigation, reset, undo).
	CalculatorForm *tview.Form

	// The live result panel on the calculator page. Updated on every
	// keystroke in the form.
	ResultView *tview.TextView

	// This is the text that is shown at the bottom of the calculator page,
	// and contains status and error messages.
	StatusText *tview.TextView

	// The bar chart on the trends page.
	TrendsChart *tview.TextView

	// The saved-months list on the trends page, newest first.
	HistoryList *tview.List

	// The fuzzy month filter above the history list.
	TrendsSearchField *tview.InputField

	// The current trends filter query.
	TrendsQuery string

	// The advice report panel.
	AdvisorView *tview.TextView

	// AdvisorRequestID identifies the most recent generation request. Each
	// new request gets a fresh ID, and a response is dropped unless its ID
	// still matches, so a stale response can never clobber a newer one.
	AdvisorRequestID string

	// The settings page's form.
	SettingsForm *tview.Form

	// Shows the help text on the help page.
	HelpTextView *tview.TextView

	// Always shown on every page - renders the page names and their
	// keyboard shortcuts.
	BottomPageNavText *tview.TextView

	// There is a hidden page that only shows a modal, used for exit and
	// destructive-action confirmations.
	PromptBox *tview.Modal

	// The undo buffer contains serialized draft snapshots. Each member of the
	// slice is the entire serialized draft state at a specific point in time.
	// Moving back and forth throughout the undo buffer works as you'd expect,
	// see the undoDraft(), redoDraft(), and modifiedDraft() functions.
	UndoBuffer [][]byte

	// The undo buffer's position is tracked globally via this variable.
	UndoBufferPos int
}

// DX contains all shared data in a global. Avoid using globals where possible,
// but in the context of an application like this, things will get extremely
// messy without a global unless I spend a ton of time cleaning up and
// refactoring.
//
//nolint:gochecknoglobals
var DX DuxiuIndex

// For an input keybinding (straight from event.Name()), an output action
// will be returned, for example - "Ctrl+Z" will return "undo".
func getDefaultKeybind(name string) string {
	a, ok := c.DefaultMappings[name]
	if !ok {
		return ""
	}

	return a
}

// capture is the primary input capture handler for the app, and should be used
// like: app.SetInputCapture(capture)
func capture(e *tcell.EventKey) *tcell.EventKey {
	return action(getDefaultKeybind(e.Name()), e)
}

// bootstrap is the initialization function for the app, including initializing
// globals. This function should only ever be run once.
func bootstrap() {
	initializeUndo()

	DX.App = tview.NewApplication()

	DX.Pages = tview.NewPages()

	getHelpPage()

	DX.PromptBox = tview.NewModal()

	DX.Pages.AddPage(PageCalculator, getCalculatorPage(), true, true).
		AddPage(PageTrends, getTrendsPage(), true, true).
		AddPage(PageAdvisor, getAdvisorPage(), true, true).
		AddPage(PageSettings, getSettingsPage(), true, true).
		AddPage(PageHelp, DX.HelpTextView, true, true).
		AddPage(PagePrompt, DX.PromptBox, true, true)

	DX.Pages.SwitchToPage(PageCalculator)

	DX.BottomPageNavText = tview.NewTextView()

	DX.BottomPageNavText.SetDynamicColors(true)
	setBottomPageNavText()

	DX.Layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(DX.Pages, 0, 1, true).AddItem(DX.BottomPageNavText, 1, 0, false)

	DX.App.SetFocus(DX.CalculatorForm)

	DX.App.SetInputCapture(capture)
}

func main() {
	// optional .env file for GEMINI_API_KEY during development
	_ = godotenv.Load()

	var err error

	DX.Files, err = store.NewFileStore()
	if err != nil {
		log.Fatalf("failed to initialize data directories: %v", err.Error())
	}

	DX.Settings = DX.Files.LoadSettings()

	DX.T, err = translations.Load(AllTranslations, string(DX.Settings.Language))
	if err != nil {
		log.Fatalf("failed to load translations: %v", err.Error())
	}

	DX.Colors, err = themes.Load(AllThemes, string(DX.Settings.Theme))
	if err != nil {
		log.Fatalf("%v: %v", DX.T["ErrorFailedToLoadThemes"], err.Error())
	}

	DX.Store = store.New(DX.Files, nil)

	DX.Advisor = advisor.NewClient(nil)

	bootstrap()

	if err := DX.App.SetRoot(DX.Layout, true).EnableMouse(true).Run(); err != nil {
		panic(err)
	}
}
