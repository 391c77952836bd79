package main

import (
	"fmt"
	"strconv"
	"strings"

	c "github.com/duxiu-index/duxiu-tui/constants"
	"github.com/duxiu-index/duxiu-tui/lib"

	"github.com/rivo/tview"
)

// parseAmount converts a form field's text to a non-negative amount. Empty,
// partial ("1."), and junk input all resolve to 0 so that live recomputation
// never has to surface a parse error mid-keystroke.
func parseAmount(text string) float64 {
	text = strings.TrimSpace(strings.ReplaceAll(text, ",", ""))
	if text == "" {
		return 0
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil || v < 0 {
		return 0
	}

	return v
}

// amountString renders a stored amount back into a form field. Zero renders
// as an empty field rather than a literal "0" so new drafts start blank.
func amountString(v float64) string {
	if v == 0 {
		return ""
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

// When changing an amount field in the calculator form, this function is
// executed and will reject changes that do not properly parse into a number.
func calculatorFormAmountValidator(textToCheck string, _ rune) bool {
	cleaned := strings.TrimSpace(strings.ReplaceAll(textToCheck, ",", ""))
	if cleaned == "" {
		return true
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v < 0 {
		return false
	}

	return true
}

func getCalculatorFormLabel(s string) string {
	return fmt.Sprintf("%v:", s)
}

// setDraftAmount funnels a single numeric field change into the draft, then
// refreshes the live result and the undo buffer.
func setDraftAmount(set func(*lib.FinancialInput, float64)) func(string) {
	return func(text string) {
		DX.Store.UpdateDraft(func(d *lib.FinancialInput) {
			set(d, parseAmount(text))
		})
		updateResultView()
		modifiedDraft()
	}
}

// modeIndex maps the draft's expense mode to its dropdown option index.
func modeIndex(mode lib.ExpenseMode) int {
	if mode == lib.ModeTotal {
		return 1
	}

	return 0
}

// Completely rebuilds the calculator form from the current draft, safe to run
// repeatedly. Must be run after any operation that replaces the draft
// wholesale (month navigation, load-for-edit, reset, undo/redo), since tview
// form fields hold their own copies of the text.
func updateCalculatorForm() {
	draft := DX.Store.Draft()

	DX.CalculatorForm.Clear(true)
	DX.CalculatorForm.SetTitle(fmt.Sprintf(" %v ", DX.T["TabCalculator"]))

	DX.CalculatorForm.
		AddInputField(getCalculatorFormLabel(DX.T["CalcMonthLabel"]),
			DX.Store.SelectedMonth(), 0, nil, calculatorFormMonthChanged).
		AddInputField(getCalculatorFormLabel(DX.T["CalcSalaryLabel"]),
			amountString(draft.Salary),
			0, calculatorFormAmountValidator,
			setDraftAmount(func(d *lib.FinancialInput, v float64) { d.Salary = v })).
		AddDropDown(getCalculatorFormLabel(DX.T["CalcModeLabel"]),
			[]string{DX.T["CalcModeDetailed"], DX.T["CalcModeTotal"]},
			modeIndex(draft.ExpenseMode),
			calculatorFormModeChanged)

	// both payloads are retained in the draft; only the fields for the active
	// mode are shown
	if draft.ExpenseMode == lib.ModeTotal {
		DX.CalculatorForm.AddInputField(getCalculatorFormLabel(DX.T["CalcTotalExpenseLabel"]),
			amountString(draft.TotalExpenseInput),
			0, calculatorFormAmountValidator,
			setDraftAmount(func(d *lib.FinancialInput, v float64) { d.TotalExpenseInput = v }))
	} else {
		DX.CalculatorForm.
			AddInputField(getCalculatorFormLabel(DX.T["CalcCategoryHousing"]),
				amountString(draft.Expenses.Housing),
				0, calculatorFormAmountValidator,
				setDraftAmount(func(d *lib.FinancialInput, v float64) { d.Expenses.Housing = v })).
			AddInputField(getCalculatorFormLabel(DX.T["CalcCategoryFood"]),
				amountString(draft.Expenses.Food),
				0, calculatorFormAmountValidator,
				setDraftAmount(func(d *lib.FinancialInput, v float64) { d.Expenses.Food = v })).
			AddInputField(getCalculatorFormLabel(DX.T["CalcCategoryTransport"]),
				amountString(draft.Expenses.Transport),
				0, calculatorFormAmountValidator,
				setDraftAmount(func(d *lib.FinancialInput, v float64) { d.Expenses.Transport = v })).
			AddInputField(getCalculatorFormLabel(DX.T["CalcCategoryUtilities"]),
				amountString(draft.Expenses.Utilities),
				0, calculatorFormAmountValidator,
				setDraftAmount(func(d *lib.FinancialInput, v float64) { d.Expenses.Utilities = v })).
			AddInputField(getCalculatorFormLabel(DX.T["CalcCategoryEntertainment"]),
				amountString(draft.Expenses.Entertainment),
				0, calculatorFormAmountValidator,
				setDraftAmount(func(d *lib.FinancialInput, v float64) { d.Expenses.Entertainment = v })).
			AddInputField(getCalculatorFormLabel(DX.T["CalcCategoryOthers"]),
				amountString(draft.Expenses.Others),
				0, calculatorFormAmountValidator,
				setDraftAmount(func(d *lib.FinancialInput, v float64) { d.Expenses.Others = v }))
	}

	DX.CalculatorForm.
		AddButton(DX.T["CalcSaveButton"], saveDraft).
		AddButton(DX.T["CalcResetButton"], promptResetDraft)

	DX.CalculatorForm.SetBorder(true)

	updateResultView()
}

// calculatorFormMonthChanged navigates the store whenever the month field
// holds a complete, valid YYYY-MM value. If the target month already has a
// record, its data is auto-loaded into the draft, silently replacing any
// unsaved edits.
func calculatorFormMonthChanged(text string) {
	text = strings.TrimSpace(text)
	if !lib.ValidMonth(text) {
		DX.StatusText.SetText(fmt.Sprintf("%v%v%v",
			DX.Colors["StatusTextPassive"],
			DX.T["CalcInvalidMonth"],
			c.ResetStyle,
		))

		return
	}

	if text == DX.Store.SelectedMonth() {
		return
	}

	wasEditing := DX.Store.Editing()
	DX.Store.SelectMonth(text)

	// the form only needs rebuilding when the draft was replaced by an
	// auto-load, or when the editing badge flipped
	if DX.Store.Editing() || wasEditing {
		updateCalculatorForm()
		DX.App.SetFocus(DX.CalculatorForm)
	}

	updateResultView()
	modifiedDraft()
}

func calculatorFormModeChanged(_ string, optionIndex int) {
	mode := lib.ModeDetailed
	if optionIndex == 1 {
		mode = lib.ModeTotal
	}

	if mode == DX.Store.Draft().ExpenseMode {
		return
	}

	// switching modes keeps both payloads so no entered data is lost
	DX.Store.UpdateDraft(func(d *lib.FinancialInput) {
		d.ExpenseMode = mode
	})

	updateCalculatorForm()
	DX.App.SetFocus(DX.CalculatorForm)
	modifiedDraft()
}

// saveDraft commits the draft as this month's record, replacing any previous
// record for the same month.
func saveDraft() {
	_, err := DX.Store.Save()
	if err != nil {
		DX.StatusText.SetText(fmt.Sprintf("%v%v%v",
			DX.Colors["StatusTextError"],
			DX.T["CalcEnterDataAlert"],
			c.ResetStyle,
		))

		return
	}

	DX.StatusText.SetText(fmt.Sprintf("%v%v %v%v",
		DX.Colors["StatusTextPassive"],
		lib.GetNowStr(),
		DX.T["CalcSaveSuccess"],
		c.ResetStyle,
	))

	updateResultView()
	updateTrendsPage()
}

func promptResetDraft() {
	promptConfirm(DX.T["CalcResetConfirm"], func() {
		DX.Store.ResetDraft()
		updateCalculatorForm()
		modifiedDraft()
		DX.App.SetFocus(DX.CalculatorForm)
	})
}

// updateResultView re-renders the live result panel from the current draft.
// The result is recomputed from scratch on every call, so it can never drift
// from the form.
func updateResultView() {
	draft := DX.Store.Draft()

	badge := DX.T["CalcNewBadge"]
	badgeColor := DX.Colors["CalcBadgeNew"]

	if DX.Store.Editing() {
		badge = DX.T["CalcEditingBadge"]
		badgeColor = DX.Colors["CalcBadgeEditing"]
	}

	header := fmt.Sprintf("%v%v [%v%v%v]%v\n\n",
		DX.Colors["ChartMonth"],
		DX.Store.SelectedMonth(),
		badgeColor,
		badge,
		DX.Colors["ChartMonth"],
		c.ResetStyle,
	)

	if !lib.HasData(draft) {
		DX.ResultView.SetText(fmt.Sprintf("%v%v%v%v",
			header,
			DX.Colors["StatusNoData"],
			DX.T["CalcWaitingData"],
			c.ResetStyle,
		))

		return
	}

	result := DX.Store.LiveResult()
	symbol := DX.Settings.Currency.Symbol()
	balance := draft.Salary - result.TotalExpenses

	DX.ResultView.SetText(fmt.Sprintf(
		"%v%v%v\n%v%v%v\n\n%v%v\n%v%v: %v\n%v: %v%v",
		header,
		DX.Colors["ResultLabel"],
		DX.T["ResultScoreTitle"],
		DX.Colors["ResultIndex"],
		lib.FormatIndex(result.Index),
		c.ResetStyle,
		DX.Colors[result.Status.ColorKey()],
		DX.T["Status"+string(result.Status)],
		DX.Colors["ResultValue"],
		DX.T["ResultTotalExpenses"],
		lib.FormatAsCurrency(symbol, result.TotalExpenses),
		DX.T["ResultBalance"],
		lib.FormatAsCurrency(symbol, balance),
		c.ResetStyle,
	))
}

func getCalculatorPage() *tview.Flex {
	DX.CalculatorForm = tview.NewForm()

	DX.ResultView = tview.NewTextView().SetDynamicColors(true)
	DX.ResultView.SetBorder(true)
	DX.ResultView.SetTitle(fmt.Sprintf(" %v ", DX.T["ResultScoreTitle"]))

	DX.StatusText = tview.NewTextView().SetDynamicColors(true)

	updateCalculatorForm()

	rightSide := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(DX.ResultView, 0, 1, false).
		AddItem(DX.StatusText, 1, 0, false)

	return tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(DX.CalculatorForm, 0, 1, true).
		AddItem(rightSide, 0, 1, false)
}
