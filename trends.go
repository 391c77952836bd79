package main

import (
	"fmt"
	"strings"

	c "github.com/duxiu-index/duxiu-tui/constants"
	"github.com/duxiu-index/duxiu-tui/lib"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// chartBarWidth scales an index score into a bar width. The scale is capped
// at ChartIndexCap so a single zero-expense month (index 100) does not
// flatten every other bar; the label next to the bar still shows the real
// score.
func chartBarWidth(index float64) int {
	capped := index
	if capped > c.ChartIndexCap {
		capped = c.ChartIndexCap
	}

	if capped < 0 {
		capped = 0
	}

	w := int(capped / c.ChartIndexCap * c.ChartBarMaxWidth)
	if w == 0 && index > 0 {
		w = 1
	}

	return w
}

// renderTrendsChart builds the month-by-month bar chart. The month axis is
// expanded to the full span between the first and last saved month, so gaps
// where nothing was saved still show up as empty rows.
func renderTrendsChart() string {
	recs := DX.Store.Records()
	if len(recs) == 0 {
		return fmt.Sprintf("%v%v\n\n%v%v",
			DX.Colors["StatusNoData"],
			DX.T["TrendsEmptyTitle"],
			DX.T["TrendsEmptyDesc"],
			c.ResetStyle,
		)
	}

	months, err := lib.MonthRange(recs[0].Month, recs[len(recs)-1].Month)
	if err != nil {
		// saved months are always valid, but render something visible
		// rather than nothing if one ever is not
		months = []string{}
		for i := range recs {
			months = append(months, recs[i].Month)
		}
	}

	var sb strings.Builder

	for _, month := range months {
		r, ok := DX.Store.Record(month)
		if !ok {
			sb.WriteString(fmt.Sprintf("%v%v %v·%v\n",
				DX.Colors["ChartMonth"],
				month,
				DX.Colors["ChartAxis"],
				c.ResetStyle,
			))

			continue
		}

		sb.WriteString(fmt.Sprintf("%v%v %v%v %v%v%v\n",
			DX.Colors["ChartMonth"],
			month,
			DX.Colors[r.Result.Status.ColorKey()],
			strings.Repeat("█", chartBarWidth(r.Result.Index)),
			lib.FormatIndex(r.Result.Index),
			DX.Colors["ChartAxis"],
			c.ResetStyle,
		))
	}

	return sb.String()
}

// historyListLine renders one saved record for the history list. The
// secondary line carries income/expense amounts in the display currency.
func historyListLine(r lib.HistoryRecord) (string, string) {
	symbol := DX.Settings.Currency.Symbol()

	main := fmt.Sprintf("%v  %v %v%v%v",
		r.Month,
		lib.FormatIndex(r.Result.Index),
		DX.Colors[r.Result.Status.ColorKey()],
		DX.T["StatusLabel"+string(r.Result.Status)],
		c.ResetStyle,
	)

	secondary := fmt.Sprintf("%v %v  %v %v",
		DX.T["TrendsIncomeShort"],
		lib.FormatAsCurrency(symbol, r.Data.Salary),
		DX.T["TrendsExpenseShort"],
		lib.FormatAsCurrency(symbol, r.Result.TotalExpenses),
	)

	return main, secondary
}

// updateTrendsPage re-renders the chart and the history list from the store.
// Safe to run repeatedly; a no-op before the page has been constructed.
func updateTrendsPage() {
	if DX.TrendsChart == nil || DX.HistoryList == nil {
		return
	}

	DX.TrendsChart.SetText(renderTrendsChart())

	DX.HistoryList.Clear()

	recs := DX.Store.Search(DX.TrendsQuery)

	// newest first for the list, independent of the chart's ascending axis
	for i := len(recs) - 1; i >= 0; i-- {
		r := recs[i]
		main, secondary := historyListLine(r)

		DX.HistoryList.AddItem(main, secondary, 0, func() {
			DX.Store.LoadForEdit(r)
			updateCalculatorForm()
			modifiedDraft()
			DX.Pages.SwitchToPage(PageCalculator)
			setBottomPageNavText()
			DX.App.SetFocus(DX.CalculatorForm)
		})
	}
}

// trendsSearchChanged applies the fuzzy month filter as the user types.
func trendsSearchChanged(text string) {
	DX.TrendsQuery = strings.TrimSpace(text)
	updateTrendsPage()
}

// selectedHistoryRecord returns the record currently highlighted in the
// history list, if any.
func selectedHistoryRecord() (lib.HistoryRecord, bool) {
	recs := DX.Store.Search(DX.TrendsQuery)
	i := DX.HistoryList.GetCurrentItem()

	// the list renders newest first, so reverse the index
	j := len(recs) - 1 - i
	if j < 0 || j >= len(recs) {
		return lib.HistoryRecord{}, false
	}

	return recs[j], true
}

// promptDeleteSelectedRecord confirms and deletes the highlighted record.
func promptDeleteSelectedRecord() {
	r, ok := selectedHistoryRecord()
	if !ok {
		return
	}

	promptConfirm(fmt.Sprintf("%v (%v)", DX.T["TrendsDeleteConfirm"], r.Month), func() {
		DX.Store.Delete(r.Month)
		updateTrendsPage()
		updateCalculatorForm()
		modifiedDraft()
		DX.App.SetFocus(DX.HistoryList)
	})
}

func getTrendsPage() *tview.Flex {
	DX.TrendsChart = tview.NewTextView().SetDynamicColors(true)
	DX.TrendsChart.SetBorder(true)
	DX.TrendsChart.SetTitle(fmt.Sprintf(" %v ", DX.T["TrendsTitle"]))

	DX.TrendsSearchField = tview.NewInputField().
		SetLabel(fmt.Sprintf("%v: ", DX.T["TrendsSearchLabel"])).
		SetChangedFunc(trendsSearchChanged)

	DX.TrendsSearchField.SetDoneFunc(func(key tcell.Key) {
		switch key {
		case tcell.KeyEscape:
			DX.TrendsSearchField.SetText("")
			trendsSearchChanged("")
			DX.App.SetFocus(DX.HistoryList)
		default:
			DX.App.SetFocus(DX.HistoryList)
		}
	})

	DX.HistoryList = tview.NewList()
	DX.HistoryList.SetBorder(true)
	DX.HistoryList.SetTitle(fmt.Sprintf(" %v ", DX.T["TrendsHistoryTitle"]))

	updateTrendsPage()

	rightSide := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(DX.TrendsSearchField, 1, 0, false).
		AddItem(DX.HistoryList, 0, 1, true)

	return tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(DX.TrendsChart, 0, 2, false).
		AddItem(rightSide, 0, 1, true)
}
