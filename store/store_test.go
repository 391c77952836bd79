package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duxiu-index/duxiu-tui/lib"
)

// memPersister records writes so tests can assert persistence behavior
// without touching disk.
type memPersister struct {
	history   []lib.HistoryRecord
	loadErr   error
	saveErr   error
	saveCalls int
}

func (m *memPersister) LoadHistory() ([]lib.HistoryRecord, error) {
	return m.history, m.loadErr
}

func (m *memPersister) SaveHistory(recs []lib.HistoryRecord) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}

	m.history = recs

	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var testNow = time.Date(2023, 10, 15, 12, 0, 0, 0, time.UTC)

func sampleDraft() lib.FinancialInput {
	return lib.FinancialInput{
		Salary:      12000,
		ExpenseMode: lib.ModeDetailed,
		Expenses: lib.ExpenseBreakdown{
			Housing: 4000, Food: 2000, Transport: 500, Utilities: 300, Entertainment: 1000, Others: 200,
		},
	}
}

func TestNewStartsAtCurrentMonthInNewMode(t *testing.T) {
	s := New(&memPersister{}, fixedClock(testNow))

	assert.Equal(t, "2023-10", s.SelectedMonth())
	assert.False(t, s.Editing())
	assert.False(t, lib.HasData(s.Draft()))
	assert.Equal(t, lib.ModeDetailed, s.Draft().ExpenseMode)
}

func TestSaveCommitsSnapshot(t *testing.T) {
	p := &memPersister{}
	s := New(p, fixedClock(testNow))

	s.UpdateDraft(func(d *lib.FinancialInput) { *d = sampleDraft() })

	rec, err := s.Save()
	require.NoError(t, err)

	assert.Equal(t, "2023-10", rec.Month)
	assert.Equal(t, rec.Month, rec.ID)
	assert.Equal(t, testNow.UnixMilli(), rec.Timestamp)
	assert.Equal(t, 8000.0, rec.Result.TotalExpenses)
	assert.Equal(t, 1.5, rec.Result.Index)
	assert.Equal(t, lib.StatusGood, rec.Result.Status)
	assert.True(t, s.Editing())
	assert.Equal(t, 1, p.saveCalls)
	require.Len(t, p.history, 1)
}

func TestSaveRefusesEmptyDraft(t *testing.T) {
	p := &memPersister{}
	s := New(p, fixedClock(testNow))

	_, err := s.Save()
	require.ErrorIs(t, err, ErrEmptyDraft)
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Editing())
	assert.Equal(t, 0, p.saveCalls)
}

func TestSaveUpsertsByMonth(t *testing.T) {
	later := testNow.Add(time.Hour)
	s := New(&memPersister{}, fixedClock(testNow))

	s.UpdateDraft(func(d *lib.FinancialInput) { *d = sampleDraft() })
	first, err := s.Save()
	require.NoError(t, err)

	s.Now = fixedClock(later)
	s.UpdateDraft(func(d *lib.FinancialInput) { d.Salary = 13000 })
	second, err := s.Save()
	require.NoError(t, err)

	assert.Equal(t, 1, s.Len())

	rec, ok := s.Record("2023-10")
	require.True(t, ok)
	assert.Equal(t, 13000.0, rec.Data.Salary)
	assert.Equal(t, later.UnixMilli(), rec.Timestamp)
	assert.NotEqual(t, first.Timestamp, second.Timestamp)
}

func TestSelectMonthAutoloadsExistingRecord(t *testing.T) {
	s := New(&memPersister{}, fixedClock(testNow))

	s.UpdateDraft(func(d *lib.FinancialInput) { *d = sampleDraft() })
	_, err := s.Save()
	require.NoError(t, err)

	// unsaved edits on another month...
	s.SelectMonth("2023-11")
	s.UpdateDraft(func(d *lib.FinancialInput) { d.Salary = 99999 })
	assert.False(t, s.Editing())

	// ...are silently discarded when switching back to a saved month
	s.SelectMonth("2023-10")
	assert.True(t, s.Editing())
	assert.Equal(t, 12000.0, s.Draft().Salary)
}

func TestSelectMonthWithoutRecordKeepsDraftAsTemplate(t *testing.T) {
	s := New(&memPersister{}, fixedClock(testNow))

	s.UpdateDraft(func(d *lib.FinancialInput) { *d = sampleDraft() })
	s.SelectMonth("2024-01")

	assert.False(t, s.Editing())
	assert.Equal(t, 12000.0, s.Draft().Salary)
}

func TestDeleteCurrentMonthResetsDraft(t *testing.T) {
	s := New(&memPersister{}, fixedClock(testNow))

	s.UpdateDraft(func(d *lib.FinancialInput) { *d = sampleDraft() })
	_, err := s.Save()
	require.NoError(t, err)

	assert.True(t, s.Delete("2023-10"))
	assert.False(t, s.Editing())
	assert.False(t, lib.HasData(s.Draft()))
	assert.Equal(t, 0, s.Len())
}

func TestDeleteOtherMonthLeavesDraftAlone(t *testing.T) {
	s := New(&memPersister{}, fixedClock(testNow))

	s.UpdateDraft(func(d *lib.FinancialInput) { *d = sampleDraft() })
	_, err := s.Save()
	require.NoError(t, err)

	s.SelectMonth("2023-11")
	s.UpdateDraft(func(d *lib.FinancialInput) { d.Salary = 5000 })

	assert.True(t, s.Delete("2023-10"))
	assert.Equal(t, 5000.0, s.Draft().Salary)
	assert.False(t, s.Editing())

	assert.False(t, s.Delete("2023-10"), "double delete reports nothing removed")
}

func TestLoadForEdit(t *testing.T) {
	s := New(&memPersister{}, fixedClock(testNow))

	s.UpdateDraft(func(d *lib.FinancialInput) { *d = sampleDraft() })
	rec, err := s.Save()
	require.NoError(t, err)

	s.CreateNew()
	assert.False(t, s.Editing())

	s.LoadForEdit(rec)
	assert.True(t, s.Editing())
	assert.Equal(t, "2023-10", s.SelectedMonth())
	assert.Equal(t, 12000.0, s.Draft().Salary)
}

func TestCreateNewAndResetDraftAreAliases(t *testing.T) {
	s := New(&memPersister{}, fixedClock(testNow))

	s.SelectMonth("2022-01")
	s.UpdateDraft(func(d *lib.FinancialInput) { *d = sampleDraft() })
	s.ResetDraft()

	assert.Equal(t, "2023-10", s.SelectedMonth())
	assert.False(t, s.Editing())
	assert.False(t, lib.HasData(s.Draft()))

	s.SelectMonth("2022-01")
	s.UpdateDraft(func(d *lib.FinancialInput) { *d = sampleDraft() })
	s.CreateNew()

	assert.Equal(t, "2023-10", s.SelectedMonth())
	assert.False(t, s.Editing())
	assert.False(t, lib.HasData(s.Draft()))
}

func TestClearAll(t *testing.T) {
	p := &memPersister{}
	s := New(p, fixedClock(testNow))

	s.UpdateDraft(func(d *lib.FinancialInput) { *d = sampleDraft() })
	_, err := s.Save()
	require.NoError(t, err)

	s.ClearAll()

	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Editing())
	assert.False(t, lib.HasData(s.Draft()))
	assert.Empty(t, p.history)
}

func TestRecordsSortedAscending(t *testing.T) {
	s := New(&memPersister{}, fixedClock(testNow))

	for _, month := range []string{"2023-11", "2023-09", "2024-01", "2023-10"} {
		s.SelectMonth(month)
		s.UpdateDraft(func(d *lib.FinancialInput) { *d = sampleDraft() })
		_, err := s.Save()
		require.NoError(t, err)
	}

	months := []string{}
	for _, r := range s.Records() {
		months = append(months, r.Month)
	}

	assert.Equal(t, []string{"2023-09", "2023-10", "2023-11", "2024-01"}, months)

	newest := s.RecordsNewestFirst()
	assert.Equal(t, "2024-01", newest[0].Month)
	assert.Equal(t, "2023-09", newest[len(newest)-1].Month)
}

func TestSearch(t *testing.T) {
	s := New(&memPersister{}, fixedClock(testNow))

	for _, month := range []string{"2023-09", "2023-10", "2024-01"} {
		s.SelectMonth(month)
		s.UpdateDraft(func(d *lib.FinancialInput) { *d = sampleDraft() })
		_, err := s.Save()
		require.NoError(t, err)
	}

	assert.Len(t, s.Search(""), 3)
	assert.Len(t, s.Search("2024"), 1)
	assert.Len(t, s.Search("2023"), 2)
	assert.Empty(t, s.Search("1999"))
}

func TestPersistFailureIsSwallowed(t *testing.T) {
	p := &memPersister{saveErr: assert.AnError}
	s := New(p, fixedClock(testNow))

	s.UpdateDraft(func(d *lib.FinancialInput) { *d = sampleDraft() })

	// the save itself must still succeed; only the write is best-effort
	_, err := s.Save()
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestNewSurvivesLoadFailure(t *testing.T) {
	p := &memPersister{loadErr: assert.AnError}
	s := New(p, fixedClock(testNow))

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, "2023-10", s.SelectedMonth())
}

func TestSnapshotRestore(t *testing.T) {
	s := New(&memPersister{}, fixedClock(testNow))

	s.UpdateDraft(func(d *lib.FinancialInput) { *d = sampleDraft() })
	s.SelectMonth("2023-09")

	snap := s.Snapshot()
	assert.Equal(t, "2023-09", snap.Month)

	// mutate everything the snapshot covers
	s.UpdateDraft(func(d *lib.FinancialInput) { d.Salary = 99999 })
	s.SelectMonth("2024-01")

	s.Restore(snap)

	assert.Equal(t, "2023-09", s.SelectedMonth())
	assert.Equal(t, snap.Draft, s.Draft())
	assert.Equal(t, snap.Editing, s.Editing())
}
