package main

import (
	c "github.com/duxiu-index/duxiu-tui/constants"

	"github.com/gdamore/tcell/v2"
)

func actionQuit() *tcell.EventKey {
	promptExit()
	return nil
}

func actionSave(e *tcell.EventKey) *tcell.EventKey {
	pageName, _ := DX.Pages.GetFrontPage()
	switch pageName {
	case PageCalculator:
		saveDraft()
		return nil
	default:
		return e
	}
}

func actionUndo(e *tcell.EventKey) *tcell.EventKey {
	pageName, _ := DX.Pages.GetFrontPage()
	switch pageName {
	case PageCalculator:
		undoDraft()
		return nil
	default:
		return e
	}
}

func actionRedo(e *tcell.EventKey) *tcell.EventKey {
	pageName, _ := DX.Pages.GetFrontPage()
	switch pageName {
	case PageCalculator:
		redoDraft()
		return nil
	default:
		return e
	}
}

func actionNew(e *tcell.EventKey) *tcell.EventKey {
	pageName, _ := DX.Pages.GetFrontPage()
	switch pageName {
	case PageCalculator:
		promptResetDraft()
		return nil
	case PageTrends:
		DX.Store.CreateNew()
		updateCalculatorForm()
		modifiedDraft()
		switchToPage(PageCalculator)
		DX.App.SetFocus(DX.CalculatorForm)

		return nil
	default:
		return e
	}
}

func actionDelete(e *tcell.EventKey) *tcell.EventKey {
	pageName, _ := DX.Pages.GetFrontPage()
	switch pageName {
	case PageTrends:
		promptDeleteSelectedRecord()
		return nil
	default:
		return e
	}
}

func actionSearch(e *tcell.EventKey) *tcell.EventKey {
	pageName, _ := DX.Pages.GetFrontPage()
	switch pageName {
	case PageTrends:
		DX.App.SetFocus(DX.TrendsSearchField)
		return nil
	default:
		return e
	}
}

// actionEsc walks backwards: form fields lose focus first, secondary pages
// return to the calculator, and the calculator itself prompts to exit.
func actionEsc(e *tcell.EventKey) *tcell.EventKey {
	pageName, _ := DX.Pages.GetFrontPage()
	switch pageName {
	case PagePrompt:
		// the modal handles its own escape
		return e
	case PageTrends:
		if DX.App.GetFocus() == DX.TrendsSearchField {
			// the field's done func clears the filter
			return e
		}

		switchToPage(PageCalculator)
		DX.App.SetFocus(DX.CalculatorForm)

		return nil
	case PageCalculator:
		promptExit()
		return nil
	default:
		switchToPage(PageCalculator)
		DX.App.SetFocus(DX.CalculatorForm)

		return nil
	}
}

func switchToPage(name string) {
	DX.Pages.SwitchToPage(name)
	setBottomPageNavText()
}

func actionCalculator() *tcell.EventKey {
	switchToPage(PageCalculator)
	DX.App.SetFocus(DX.CalculatorForm)

	return nil
}

func actionTrends() *tcell.EventKey {
	updateTrendsPage()
	switchToPage(PageTrends)
	DX.App.SetFocus(DX.HistoryList)

	return nil
}

func actionAdvisor() *tcell.EventKey {
	updateAdvisorView()
	switchToPage(PageAdvisor)
	DX.App.SetFocus(DX.AdvisorView)

	return nil
}

func actionSettings() *tcell.EventKey {
	switchToPage(PageSettings)
	DX.App.SetFocus(DX.SettingsForm)

	return nil
}

func actionGlobalHelp() *tcell.EventKey {
	switchToPage(PageHelp)
	DX.App.SetFocus(DX.HelpTextView)

	return nil
}

// action is the primary decision tree that is triggered when a key event
// is triggered. Please ensure that every case statement has a return or
// fallthrough.
func action(action string, e *tcell.EventKey) *tcell.EventKey {
	switch action {
	case c.ActionQuit:
		return actionQuit()
	case c.ActionSave:
		return actionSave(e)
	case c.ActionUndo:
		return actionUndo(e)
	case c.ActionRedo:
		return actionRedo(e)
	case c.ActionEsc:
		return actionEsc(e)
	case c.ActionCalculator:
		return actionCalculator()
	case c.ActionTrends:
		return actionTrends()
	case c.ActionAdvisor:
		return actionAdvisor()
	case c.ActionSettings:
		return actionSettings()
	case c.ActionGlobalHelp:
		return actionGlobalHelp()
	case c.ActionNew:
		return actionNew(e)
	case c.ActionDelete:
		return actionDelete(e)
	case c.ActionSearch:
		return actionSearch(e)
	default:
		return e
	}
}
