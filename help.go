package main

import (
	"bytes"
	"fmt"
	"log"
	"text/template"

	c "github.com/duxiu-index/duxiu-tui/constants"

	"github.com/rivo/tview"
)

const HelpTextTemplate = `[lightgreen::b]{{ .AppTitle }}[-:-:-:-]

[gold]
             ____              _
            |  _ \ _   ___  __(_)_   _
            | | | | | | \ \/ /| | | | |
            | |_| | |_| |>  < | | |_| |[lightgreen]
            |____/ \__,_/_/\_\|_|\__,_|
[-:-:-:-]


[lightgreen::b]General information[-:-:-:-]

[white]This application tracks one record per calendar month: your net income
and your spending, entered either as a six-category breakdown or as a
single total. From those it derives a single score - income divided by
expenses - plus a three-tier health status, and charts the score over
time on the [blue]Trends[white] page.

- A score of [green]2 or higher[white] means income is at least double expenses.
- A score of [teal]1 or higher[white] means income covers expenses.
- Below 1, expenses exceed income.
- A month with income but zero expenses scores 100.

Saving a month replaces any previous record for that same month. Entering
a month that already has a record loads it for editing, replacing any
unsaved edits.

The [blue]Advisor[white] page sends the current month's numbers to a language
model and renders its advice. This requires an API key, set on the
[blue]Settings[white] page or via the GEMINI_API_KEY environment variable.

The [blue]Settings[white] page also exports and imports full backups (history
plus settings) as JSON files.

[lightgreen::b]Keyboard shortcuts:[-:-:-:-]
{{ range .Actions }}
- {{ .Key }}: {{ .Action }}
{{- end }}
`

// getHelpText renders the help template, including the live keybinding table.
func getHelpText() string {
	type actionRow struct {
		Key    string
		Action string
	}

	type tmplDataShape struct {
		AppTitle string
		Actions  []actionRow
	}

	// invert the key->action map into spec order
	rows := []actionRow{}

	for _, a := range c.AllActions {
		for key, mapped := range c.DefaultMappings {
			if mapped == a {
				rows = append(rows, actionRow{Key: key, Action: a})
			}
		}
	}

	tmplData := tmplDataShape{
		AppTitle: DX.T["AppTitle"],
		Actions:  rows,
	}

	tmpl, err := template.New("help").Parse(HelpTextTemplate)
	if err != nil {
		log.Fatalf("failed to parse help text template: %v", err.Error())
	}

	var b bytes.Buffer

	err = tmpl.Execute(&b, tmplData)
	if err != nil {
		log.Fatalf("failed to render help text: %v", err.Error())
	}

	return b.String()
}

func getHelpPage() {
	DX.HelpTextView = tview.NewTextView().SetDynamicColors(true)
	DX.HelpTextView.SetBorder(true)
	DX.HelpTextView.SetTitle(fmt.Sprintf(" %v ", DX.T["HelpTitle"]))
	DX.HelpTextView.SetText(getHelpText())
}

// setBottomPageNavText renders the always-visible one-line navigation bar,
// highlighting the current page.
func setBottomPageNavText() {
	current, _ := DX.Pages.GetFrontPage()

	pages := []struct {
		key   string
		name  string
		label string
	}{
		{"F1", PageHelp, DX.T["TabHelp"]},
		{"F2", PageCalculator, DX.T["TabCalculator"]},
		{"F3", PageTrends, DX.T["TabTrends"]},
		{"F4", PageAdvisor, DX.T["TabAdvisor"]},
		{"F5", PageSettings, DX.T["TabSettings"]},
	}

	text := ""

	for _, p := range pages {
		color := DX.Colors["BottomHelpText"]
		if p.name == current {
			color = DX.Colors["HelpAccent"]
		}

		text += fmt.Sprintf("%v %v %v %v", color, p.key, p.label, c.ResetStyle)
	}

	DX.BottomPageNavText.SetText(text)
}
