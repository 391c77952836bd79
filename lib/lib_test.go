package lib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDetailedModeSumsBreakdown(t *testing.T) {
	input := FinancialInput{
		Salary:      12000,
		ExpenseMode: ModeDetailed,
		// a stale total from a previous mode switch must be ignored
		TotalExpenseInput: 99999,
		Expenses: ExpenseBreakdown{
			Housing:       4000,
			Food:          2000,
			Transport:     500,
			Utilities:     300,
			Entertainment: 1000,
			Others:        200,
		},
	}

	res := Compute(input)

	assert.Equal(t, 8000.0, res.TotalExpenses)
	assert.Equal(t, 1.5, res.Index)
	assert.Equal(t, StatusGood, res.Status)
}

func TestComputeTotalModeIgnoresBreakdown(t *testing.T) {
	input := FinancialInput{
		Salary:            10000,
		ExpenseMode:       ModeTotal,
		TotalExpenseInput: 5000,
		// a stale breakdown from a previous mode switch must be ignored
		Expenses: ExpenseBreakdown{Housing: 123456},
	}

	res := Compute(input)

	assert.Equal(t, 5000.0, res.TotalExpenses)
	assert.Equal(t, 2.0, res.Index)
	assert.Equal(t, StatusExcellent, res.Status)
}

func TestComputeZeroCases(t *testing.T) {
	empty := Compute(FinancialInput{ExpenseMode: ModeDetailed})
	assert.Equal(t, 0.0, empty.Index)
	assert.Equal(t, 0.0, empty.TotalExpenses)
	assert.Equal(t, StatusPoor, empty.Status)
	assert.False(t, HasData(FinancialInput{ExpenseMode: ModeDetailed}))

	zeroSpend := Compute(FinancialInput{Salary: 1, ExpenseMode: ModeTotal})
	assert.Equal(t, float64(ZeroExpenseIndex), zeroSpend.Index)
	assert.Equal(t, StatusExcellent, zeroSpend.Status)

	zeroSpendBig := Compute(FinancialInput{Salary: 500000, ExpenseMode: ModeDetailed})
	assert.Equal(t, float64(ZeroExpenseIndex), zeroSpendBig.Index)
}

func TestComputeThresholdBoundaries(t *testing.T) {
	at := func(salary, total float64) Status {
		return Compute(FinancialInput{
			Salary:            salary,
			ExpenseMode:       ModeTotal,
			TotalExpenseInput: total,
		}).Status
	}

	assert.Equal(t, StatusPoor, at(999, 1000))
	assert.Equal(t, StatusGood, at(1000, 1000))      // exactly 1.0
	assert.Equal(t, StatusGood, at(1999, 1000))      // just under 2.0
	assert.Equal(t, StatusExcellent, at(2000, 1000)) // exactly 2.0
}

func TestComputeNoUpperClamp(t *testing.T) {
	// the index is only clamped in the zero-expense branch; tiny expenses
	// produce arbitrarily large ratios
	res := Compute(FinancialInput{
		Salary:            1000000,
		ExpenseMode:       ModeTotal,
		TotalExpenseInput: 1,
	})

	assert.Equal(t, 1000000.0, res.Index)
	assert.Equal(t, StatusExcellent, res.Status)
}

func TestComputeScenarioHigherSalary(t *testing.T) {
	res := Compute(FinancialInput{
		Salary:      13000,
		ExpenseMode: ModeDetailed,
		Expenses: ExpenseBreakdown{
			Housing:       4000,
			Food:          1800,
			Transport:     500,
			Utilities:     300,
			Entertainment: 800,
			Others:        200,
		},
	})

	assert.Equal(t, 7600.0, res.TotalExpenses)
	assert.InDelta(t, 1.71, res.Index, 0.005)
	assert.Equal(t, StatusGood, res.Status)
}

func TestHasData(t *testing.T) {
	assert.True(t, HasData(FinancialInput{Salary: 1}))
	assert.True(t, HasData(FinancialInput{
		ExpenseMode: ModeDetailed,
		Expenses:    ExpenseBreakdown{Food: 1},
	}))
	assert.True(t, HasData(FinancialInput{
		ExpenseMode:       ModeTotal,
		TotalExpenseInput: 1,
	}))
	// total entered but mode is detailed: no live signal
	assert.False(t, HasData(FinancialInput{
		ExpenseMode:       ModeDetailed,
		TotalExpenseInput: 500,
	}))
}

func TestMonthHelpers(t *testing.T) {
	assert.Equal(t, "2023-08", CurrentMonth(time.Date(2023, 8, 15, 12, 0, 0, 0, time.UTC)))
	assert.True(t, ValidMonth("2023-08"))
	assert.False(t, ValidMonth("2023-8"))
	assert.False(t, ValidMonth("2023-13"))
	assert.False(t, ValidMonth("not-a-month"))
}

func TestMonthRange(t *testing.T) {
	months, err := MonthRange("2023-08", "2024-01")
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-08", "2023-09", "2023-10", "2023-11", "2023-12", "2024-01"}, months)

	single, err := MonthRange("2023-08", "2023-08")
	require.NoError(t, err)
	assert.Equal(t, []string{"2023-08"}, single)

	_, err = MonthRange("2024-01", "2023-08")
	require.Error(t, err)

	_, err = MonthRange("junk", "2023-08")
	require.Error(t, err)
}

func TestFormatAsCurrency(t *testing.T) {
	assert.Equal(t, "¥12,000", FormatAsCurrency("¥", 12000))
	assert.Equal(t, "$0", FormatAsCurrency("$", 0))
}

func TestFormatIndex(t *testing.T) {
	assert.Equal(t, "1.50", FormatIndex(1.5))
	assert.Equal(t, "0.00", FormatIndex(0))
	assert.Equal(t, "100", FormatIndex(100))
}
