package lib

import (
	"fmt"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MonthLayout is the standard representation of a month in this application:
// zero-padded "YYYY-MM". Lexicographic ordering of these strings matches
// chronological ordering.
const MonthLayout = "2006-01"

// ExpenseMode selects which expense entry style is authoritative for a month:
// a per-category breakdown, or a single total.
type ExpenseMode string

const (
	ModeDetailed ExpenseMode = "detailed"
	ModeTotal    ExpenseMode = "total"
)

// ExpenseBreakdown holds the six spending categories. All values are
// non-negative amounts in the user's display currency.
type ExpenseBreakdown struct {
	Housing       float64 `json:"housing" yaml:"housing"`
	Food          float64 `json:"food" yaml:"food"`
	Transport     float64 `json:"transport" yaml:"transport"`
	Utilities     float64 `json:"utilities" yaml:"utilities"`
	Entertainment float64 `json:"entertainment" yaml:"entertainment"`
	Others        float64 `json:"others" yaml:"others"`
}

// Sum returns the total of all six categories.
func (e ExpenseBreakdown) Sum() float64 {
	return e.Housing + e.Food + e.Transport + e.Utilities + e.Entertainment + e.Others
}

// FinancialInput is one month's draft: net salary plus expenses entered in
// one of two modes. Both expense payloads are always retained - switching
// modes back and forth must not lose previously entered data - but only the
// payload matching ExpenseMode is read by Compute.
type FinancialInput struct {
	Salary            float64          `json:"salary" yaml:"salary"`
	ExpenseMode       ExpenseMode      `json:"expenseMode" yaml:"expenseMode"`
	TotalExpenseInput float64          `json:"totalExpenseInput" yaml:"totalExpenseInput"`
	Expenses          ExpenseBreakdown `json:"expenses" yaml:"expenses"`
}

// Status is the three-tier health classification derived from the index.
type Status string

const (
	StatusExcellent Status = "Excellent"
	StatusGood      Status = "Good"
	StatusPoor      Status = "Poor"
)

// ColorKey returns the theme table key used to colorize this status.
func (s Status) ColorKey() string {
	switch s {
	case StatusExcellent:
		return "StatusExcellent"
	case StatusGood:
		return "StatusGood"
	default:
		return "StatusPoor"
	}
}

// DerivedResult is the output of the metric engine for one FinancialInput.
type DerivedResult struct {
	Index         float64 `json:"index" yaml:"index"`
	TotalExpenses float64 `json:"totalExpenses" yaml:"totalExpenses"`
	Status        Status  `json:"status" yaml:"status"`
}

// HistoryRecord is a saved snapshot of one month's input and its computed
// result. The result is denormalized on purpose: it is not recomputed on
// load, so history stays stable even if engine rules change later. ID is
// identical to Month, which enforces at most one record per calendar month.
type HistoryRecord struct {
	ID        string         `json:"id" yaml:"id"`
	Month     string         `json:"month" yaml:"month"`
	Data      FinancialInput `json:"data" yaml:"data"`
	Result    DerivedResult  `json:"result" yaml:"result"`
	Timestamp int64          `json:"timestamp" yaml:"timestamp"` // ms since epoch
}

// ZeroExpenseIndex is the index assigned when there are no expenses but a
// positive salary. It stands in for the otherwise-undefined division and is
// the only way the index can exceed the salary/expense ratio's natural range.
const ZeroExpenseIndex = 100

// Compute maps one month's financial input to its derived result. It is
// deterministic and total: every numeric edge case resolves to a value, never
// an error.
func Compute(input FinancialInput) DerivedResult {
	total := input.TotalExpenseInput
	if input.ExpenseMode != ModeTotal {
		total = input.Expenses.Sum()
	}

	var index float64

	switch {
	case total == 0 && input.Salary > 0:
		index = ZeroExpenseIndex
	case total == 0:
		index = 0
	default:
		index = input.Salary / total
	}

	status := StatusPoor
	if index >= 2 {
		status = StatusExcellent
	} else if index >= 1 {
		status = StatusGood
	}

	return DerivedResult{
		Index:         index,
		TotalExpenses: total,
		Status:        status,
	}
}

// HasData reports whether the input carries any signal at all. Callers use
// this - not Status - to distinguish "no data yet" from a genuinely poor
// month, since a fully zeroed input also classifies as Poor.
func HasData(input FinancialInput) bool {
	return input.Salary > 0 || Compute(input).TotalExpenses > 0
}

// CurrentMonth formats the given time as a YYYY-MM month string.
func CurrentMonth(now time.Time) string {
	return now.Format(MonthLayout)
}

// ValidMonth reports whether s parses as a zero-padded YYYY-MM string.
func ValidMonth(s string) bool {
	_, err := time.Parse(MonthLayout, s)
	return err == nil
}

// MonthRange expands the inclusive span between two YYYY-MM months into the
// full list of months it contains, so that chart axes have no gaps even when
// some months were never saved.
func MonthRange(first, last string) ([]string, error) {
	start, err := time.Parse(MonthLayout, first)
	if err != nil {
		return nil, fmt.Errorf("invalid first month %v: %w", first, err)
	}

	end, err := time.Parse(MonthLayout, last)
	if err != nil {
		return nil, fmt.Errorf("invalid last month %v: %w", last, err)
	}

	if end.Before(start) {
		return nil, fmt.Errorf("last month %v is before first month %v", last, first)
	}

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.MONTHLY,
		Dtstart: start,
		Until:   end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to construct month recurrence: %w", err)
	}

	months := []string{}
	for _, dt := range r.All() {
		months = append(months, dt.Format(MonthLayout))
	}

	return months, nil
}

// FormatAsCurrency renders an amount with the user's currency symbol and
// digit grouping, e.g. "¥12,000".
func FormatAsCurrency(symbol string, amount float64) string {
	p := message.NewPrinter(language.English)

	return p.Sprintf("%v%.0f", symbol, amount)
}

// FormatIndex renders the index score with two decimals, except for the
// zero-expense sentinel which reads better without them.
func FormatIndex(index float64) string {
	if index >= ZeroExpenseIndex {
		return fmt.Sprintf("%.0f", index)
	}

	return fmt.Sprintf("%.2f", index)
}

// GetNowStr is a simple function that returns the current time in
// HH:MM:SS (24 hr) format.
func GetNowStr() string {
	return time.Now().Format("15:04:05")
}

// TruncateText shortens s to at most n runes for narrow status lines.
func TruncateText(s string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= n {
		return string(runes)
	}

	return string(runes[:n])
}
