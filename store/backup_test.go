package store

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duxiu-index/duxiu-tui/lib"
	"github.com/duxiu-index/duxiu-tui/models"
)

func seededStore(t *testing.T) *Store {
	t.Helper()

	s := New(&memPersister{}, fixedClock(testNow))

	for _, month := range []string{"2023-09", "2023-10"} {
		s.SelectMonth(month)
		s.UpdateDraft(func(d *lib.FinancialInput) { *d = sampleDraft() })
		_, err := s.Save()
		require.NoError(t, err)
	}

	return s
}

func TestBackupRoundTrip(t *testing.T) {
	s := seededStore(t)
	settings := models.AppSettings{
		APIKey: "k", Language: models.LanguageEN, Theme: models.ThemeDark, Currency: models.CurrencyUSD,
	}

	b, err := ExportBackup(s, settings, testNow)
	require.NoError(t, err)

	var payload Backup
	require.NoError(t, json.Unmarshal(b, &payload))
	assert.Equal(t, BackupVersion, payload.Version)
	assert.Equal(t, testNow.UnixMilli(), payload.Timestamp)

	recs, merged, err := ParseBackup(b, models.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, s.Records(), recs)
	assert.Equal(t, settings, merged)

	// importing into a fresh store reproduces the identical collection
	fresh := New(&memPersister{}, fixedClock(testNow))
	fresh.ReplaceHistory(recs)
	assert.Equal(t, s.Records(), fresh.Records())
}

func TestParseBackupRejectsBadShapes(t *testing.T) {
	current := models.DefaultSettings()

	for name, payload := range map[string]string{
		"not json":         "}{",
		"no history":       `{"version":1}`,
		"history not list": `{"history":{"a":1}}`,
		"history null":     `{"history":null}`,
		"history scalar":   `{"history":42}`,
		"top-level array":  `[1,2,3]`,
	} {
		_, merged, err := ParseBackup([]byte(payload), current)
		assert.ErrorIs(t, err, ErrInvalidBackup, name)
		assert.Equal(t, current, merged, name)
	}
}

func TestParseBackupWithoutSettingsKeepsCurrent(t *testing.T) {
	current := models.AppSettings{Language: models.LanguageJA, Theme: models.ThemeDark, Currency: models.CurrencyGBP}

	recs, merged, err := ParseBackup([]byte(`{"history":[]}`), current)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Equal(t, current, merged)
}

func TestParseBackupMergesPartialSettings(t *testing.T) {
	current := models.DefaultSettings()

	recs, merged, err := ParseBackup([]byte(`{"history":[],"settings":{"language":"ja"}}`), current)
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.Equal(t, models.LanguageJA, merged.Language)
	assert.Equal(t, current.Theme, merged.Theme)
	assert.Equal(t, current.Currency, merged.Currency)
}

func TestReplaceHistoryResyncsNavigation(t *testing.T) {
	s := New(&memPersister{}, fixedClock(testNow))
	assert.False(t, s.Editing())

	other := seededStore(t)
	s.ReplaceHistory(other.Records())

	// the imported history contains the selected month, so the store
	// re-enters editing mode with the imported data loaded
	assert.True(t, s.Editing())
	assert.Equal(t, "2023-10", s.SelectedMonth())
	assert.Equal(t, 12000.0, s.Draft().Salary)
}

func TestWriteBackupFile(t *testing.T) {
	f := tempFileStore(t)
	s := seededStore(t)

	target, err := f.WriteBackupFile(s, models.DefaultSettings(), time.Date(2023, 10, 15, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Contains(t, target, "duxiu-backup-2023-10-15")

	b, err := os.ReadFile(target)
	require.NoError(t, err)

	recs, _, err := ParseBackup(b, models.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, s.Records(), recs)
}
