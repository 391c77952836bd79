package store

import (
	"os"
	"path"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duxiu-index/duxiu-tui/lib"
	"github.com/duxiu-index/duxiu-tui/models"
)

func tempFileStore(t *testing.T) *FileStore {
	t.Helper()

	dir := t.TempDir()

	return &FileStore{
		HistoryPath:  path.Join(dir, "history.json"),
		SettingsPath: path.Join(dir, "settings.yml"),
		DataDir:      dir,
	}
}

func TestLoadHistorySeedsOnFirstRun(t *testing.T) {
	f := tempFileStore(t)

	recs, err := f.LoadHistory()
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "2023-08", recs[0].Month)
	assert.Equal(t, "2023-10", recs[2].Month)
	assert.Equal(t, 1.5, recs[0].Result.Index)
	assert.InDelta(t, 1.71, recs[2].Result.Index, 0.005)
	assert.Equal(t, lib.StatusGood, recs[1].Result.Status)
}

func TestLoadHistorySeedsOnMalformedFile(t *testing.T) {
	f := tempFileStore(t)
	require.NoError(t, os.WriteFile(f.HistoryPath, []byte("{not json"), 0o644))

	recs, err := f.LoadHistory()
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestHistoryRoundTrip(t *testing.T) {
	f := tempFileStore(t)
	seed := SeedHistory(time.Date(2023, 10, 15, 0, 0, 0, 0, time.UTC))

	require.NoError(t, f.SaveHistory(seed))

	recs, err := f.LoadHistory()
	require.NoError(t, err)
	assert.Equal(t, seed, recs)
}

func TestLoadSettingsDefaultsWhenMissing(t *testing.T) {
	f := tempFileStore(t)

	assert.Equal(t, models.DefaultSettings(), f.LoadSettings())
}

func TestLoadSettingsMergesPartialFileOverDefaults(t *testing.T) {
	f := tempFileStore(t)

	// an older save knowing only some fields must not drop the rest
	require.NoError(t, os.WriteFile(f.SettingsPath, []byte("language: en\n"), 0o644))

	settings := f.LoadSettings()
	assert.Equal(t, models.LanguageEN, settings.Language)
	assert.Equal(t, models.ThemeLight, settings.Theme)
	assert.Equal(t, models.CurrencyCNY, settings.Currency)
}

func TestLoadSettingsDefaultsOnMalformedFile(t *testing.T) {
	f := tempFileStore(t)
	require.NoError(t, os.WriteFile(f.SettingsPath, []byte(":\t:::"), 0o644))

	assert.Equal(t, models.DefaultSettings(), f.LoadSettings())
}

func TestSettingsRoundTrip(t *testing.T) {
	f := tempFileStore(t)

	want := models.AppSettings{
		APIKey:   "test-key",
		Language: models.LanguageJA,
		Theme:    models.ThemeDark,
		Currency: models.CurrencyEUR,
	}

	require.NoError(t, f.SaveSettings(want))
	assert.Equal(t, want, f.LoadSettings())
}
