// Package store owns the in-memory list of monthly history records, the
// currently edited draft, and the navigation state between months. It is the
// only writer of the persisted history blob; every mutation is followed by a
// best-effort write through the Persister.
package store

import (
	"log"
	"sort"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pkg/errors"

	"github.com/duxiu-index/duxiu-tui/lib"
)

// ErrEmptyDraft is returned by Save when the draft carries no signal at all
// (zero salary and zero resolved expenses). Such a record is refused rather
// than persisted.
var ErrEmptyDraft = errors.New("draft has no data to save")

// Persister is the durable blob store behind the Store. Loads happen once at
// startup; writes happen after every mutation. Write failures are swallowed
// and logged by the Store - the in-memory state stays authoritative for the
// session.
type Persister interface {
	LoadHistory() ([]lib.HistoryRecord, error)
	SaveHistory([]lib.HistoryRecord) error
}

// Store mediates all record and draft mutations. It is not safe for
// concurrent use and does not need to be: all mutations happen synchronously
// on the UI event loop, which is the single writer.
type Store struct {
	records       map[string]lib.HistoryRecord
	draft         lib.FinancialInput
	selectedMonth string
	editing       bool

	persist Persister

	// Now is the clock used for save timestamps and "current month"
	// defaults. Overridable for tests.
	Now func() time.Time
}

// New loads history through p and returns a store positioned at the current
// calendar month with an empty draft in "new" mode. A load failure is not
// fatal: the persister is expected to fall back to seed data itself, but if
// it errors anyway the store starts empty.
func New(p Persister, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}

	s := &Store{
		records: make(map[string]lib.HistoryRecord),
		draft:   emptyDraft(),
		persist: p,
		Now:     now,
	}

	s.selectedMonth = lib.CurrentMonth(now())

	if p != nil {
		recs, err := p.LoadHistory()
		if err != nil {
			log.Printf("failed to load history, starting empty: %v", err)
		}

		for _, r := range recs {
			s.records[r.Month] = r
		}
	}

	return s
}

func emptyDraft() lib.FinancialInput {
	return lib.FinancialInput{ExpenseMode: lib.ModeDetailed}
}

// Draft returns a copy of the current draft.
func (s *Store) Draft() lib.FinancialInput {
	return s.draft
}

// UpdateDraft applies fn to the draft. All draft edits funnel through here so
// the view can recompute the live result from exactly the state it changed.
func (s *Store) UpdateDraft(fn func(*lib.FinancialInput)) {
	fn(&s.draft)
}

// LiveResult computes the derived result for the current draft. It is a pure
// function call, never cached, so it cannot drift from the draft it
// describes.
func (s *Store) LiveResult() lib.DerivedResult {
	return lib.Compute(s.draft)
}

// SelectedMonth returns the month the draft is addressed to.
func (s *Store) SelectedMonth() string {
	return s.selectedMonth
}

// Editing reports whether the selected month corresponds to a persisted
// record being revised.
func (s *Store) Editing() bool {
	return s.editing
}

// Record returns the saved record for month, if any.
func (s *Store) Record(month string) (lib.HistoryRecord, bool) {
	r, ok := s.records[month]
	return r, ok
}

// Len returns the number of saved records.
func (s *Store) Len() int {
	return len(s.records)
}

// SelectMonth switches the draft to month. If a record exists for it, the
// record's data overwrites the draft - silently discarding any unsaved
// edits, which is the intended auto-load policy - and the store enters
// editing mode. If no record exists, the current draft is kept as a template
// for a new entry.
func (s *Store) SelectMonth(month string) {
	s.selectedMonth = month

	if r, ok := s.records[month]; ok {
		s.draft = r.Data
		s.editing = true

		return
	}

	s.editing = false
}

// Save computes the draft's result and commits it as the record for the
// selected month, replacing any prior record for that month. An entirely
// empty draft is refused with ErrEmptyDraft and nothing is mutated.
func (s *Store) Save() (lib.HistoryRecord, error) {
	result := lib.Compute(s.draft)

	if s.draft.Salary == 0 && result.TotalExpenses == 0 {
		return lib.HistoryRecord{}, ErrEmptyDraft
	}

	record := lib.HistoryRecord{
		ID:        s.selectedMonth,
		Month:     s.selectedMonth,
		Data:      s.draft,
		Result:    result,
		Timestamp: s.Now().UnixMilli(),
	}

	s.records[record.Month] = record
	s.editing = true

	s.persistHistory()

	return record, nil
}

// Delete removes the record for month, reporting whether one existed.
// Deleting the currently selected month resets the draft to the empty
// template and leaves editing mode, so the view can never show a deleted
// record as still being edited. Deleting any other month leaves the draft
// untouched. Confirmation is the caller's concern.
func (s *Store) Delete(month string) bool {
	if _, ok := s.records[month]; !ok {
		return false
	}

	delete(s.records, month)

	if month == s.selectedMonth {
		s.draft = emptyDraft()
		s.editing = false
	}

	s.persistHistory()

	return true
}

// LoadForEdit copies a record's data into the draft and navigates to its
// month in editing mode. This is the explicit "edit" affordance from the
// history list, as opposed to the implicit load of SelectMonth.
func (s *Store) LoadForEdit(r lib.HistoryRecord) {
	s.draft = r.Data
	s.selectedMonth = r.Month
	s.editing = true
}

// CreateNew resets the draft to the empty template and navigates to the
// current calendar month in "new" mode.
func (s *Store) CreateNew() {
	s.draft = emptyDraft()
	s.selectedMonth = lib.CurrentMonth(s.Now())
	s.editing = false
}

// ResetDraft is the explicit "reset" affordance. It behaves identically to
// CreateNew; both names are kept for interface parity with the actions the
// UI exposes. Confirmation is the caller's concern.
func (s *Store) ResetDraft() {
	s.CreateNew()
}

// ClearAll empties the history entirely and resets the draft as CreateNew
// does. Irreversible; confirmation is the caller's concern.
func (s *Store) ClearAll() {
	s.records = make(map[string]lib.HistoryRecord)
	s.CreateNew()
	s.persistHistory()
}

// ReplaceHistory swaps the full record list wholesale, as the backup import
// path does after user confirmation. Navigation state is re-derived for the
// selected month so editing mode and the draft stay consistent with the new
// history.
func (s *Store) ReplaceHistory(recs []lib.HistoryRecord) {
	s.records = make(map[string]lib.HistoryRecord, len(recs))
	for _, r := range recs {
		s.records[r.Month] = r
	}

	s.SelectMonth(s.selectedMonth)
	s.persistHistory()
}

// Snapshot is the serializable draft-plus-navigation state used by the undo
// buffer. History records are deliberately not part of it: undo applies to
// the draft being typed, not to saved months.
type Snapshot struct {
	Month   string             `yaml:"month"`
	Editing bool               `yaml:"editing"`
	Draft   lib.FinancialInput `yaml:"draft"`
}

// Snapshot captures the current draft state.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		Month:   s.selectedMonth,
		Editing: s.editing,
		Draft:   s.draft,
	}
}

// Restore replaces the draft state with a previously captured snapshot.
// Saved records are untouched.
func (s *Store) Restore(snap Snapshot) {
	s.selectedMonth = snap.Month
	s.editing = snap.Editing
	s.draft = snap.Draft
}

// Records returns all saved records sorted ascending by month - the store's
// canonical order, correct lexicographically for zero-padded YYYY-MM.
func (s *Store) Records() []lib.HistoryRecord {
	recs := make([]lib.HistoryRecord, 0, len(s.records))
	for _, r := range s.records {
		recs = append(recs, r)
	}

	sort.Slice(recs, func(i, j int) bool {
		return recs[i].Month < recs[j].Month
	})

	return recs
}

// RecordsNewestFirst returns the records in reverse month order. This is a
// presentation transform for list views, not a store invariant.
func (s *Store) RecordsNewestFirst() []lib.HistoryRecord {
	recs := s.Records()
	for i, j := 0, len(recs)-1; i < j; i, j = i+1, j-1 {
		recs[i], recs[j] = recs[j], recs[i]
	}

	return recs
}

// Search fuzzy-matches query against record months and returns the matches
// in ascending month order. An empty query returns everything.
func (s *Store) Search(query string) []lib.HistoryRecord {
	recs := s.Records()
	if query == "" {
		return recs
	}

	matched := []lib.HistoryRecord{}

	for _, r := range recs {
		if fuzzy.MatchFold(query, r.Month) {
			matched = append(matched, r)
		}
	}

	return matched
}

// persistHistory writes the current record list through the persister.
// Best-effort: a failed write is logged and swallowed, never surfaced as a
// fatal error, because the in-memory state remains authoritative for the
// session.
func (s *Store) persistHistory() {
	if s.persist == nil {
		return
	}

	if err := s.persist.SaveHistory(s.Records()); err != nil {
		log.Printf("failed to persist history: %v", err)
	}
}
