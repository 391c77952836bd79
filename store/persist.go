package store

import (
	"encoding/json"
	"log"
	"os"
	"path"
	"time"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	c "github.com/duxiu-index/duxiu-tui/constants"
	"github.com/duxiu-index/duxiu-tui/lib"
	"github.com/duxiu-index/duxiu-tui/models"
)

// FileStore is the durable key-value blob collaborator: one JSON blob for
// the history list, one YAML blob for settings, both under this
// application's XDG directories.
type FileStore struct {
	HistoryPath  string
	SettingsPath string

	// DataDir is where backup exports are written.
	DataDir string
}

// NewFileStore creates the XDG config and data directories for this
// application and returns a store pointed at the standard file locations.
func NewFileStore() (*FileStore, error) {
	configDir := path.Join(xdg.ConfigHome, c.AppDirName)
	dataDir := path.Join(xdg.DataHome, c.AppDirName)

	for _, dir := range []string{configDir, dataDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.Wrapf(err, "failed to make all directories %v", dir)
		}
	}

	return &FileStore{
		HistoryPath:  path.Join(dataDir, c.HistoryFile),
		SettingsPath: path.Join(configDir, c.SettingsFile),
		DataDir:      dataDir,
	}, nil
}

// SeedHistory returns the three illustrative records shown on first launch,
// so the trend view is non-empty before the user has saved anything.
func SeedHistory(now time.Time) []lib.HistoryRecord {
	build := func(month string, salary float64, e lib.ExpenseBreakdown, savedAt time.Time) lib.HistoryRecord {
		data := lib.FinancialInput{
			Salary:            salary,
			ExpenseMode:       lib.ModeDetailed,
			TotalExpenseInput: e.Sum(),
			Expenses:          e,
		}

		return lib.HistoryRecord{
			ID:        month,
			Month:     month,
			Data:      data,
			Result:    lib.Compute(data),
			Timestamp: savedAt.UnixMilli(),
		}
	}

	return []lib.HistoryRecord{
		build("2023-08", 12000, lib.ExpenseBreakdown{
			Housing: 4000, Food: 2000, Transport: 500, Utilities: 300, Entertainment: 1000, Others: 200,
		}, now.AddDate(0, -2, 0)),
		build("2023-09", 12000, lib.ExpenseBreakdown{
			Housing: 4000, Food: 2200, Transport: 500, Utilities: 400, Entertainment: 1200, Others: 500,
		}, now.AddDate(0, -1, 0)),
		build("2023-10", 13000, lib.ExpenseBreakdown{
			Housing: 4000, Food: 1800, Transport: 500, Utilities: 300, Entertainment: 800, Others: 200,
		}, now),
	}
}

// LoadHistory reads the history blob. A missing file is first-run: the seed
// records are returned instead of an empty list. A malformed file is logged
// and likewise falls back to the seed - a read failure is never fatal.
func (f *FileStore) LoadHistory() ([]lib.HistoryRecord, error) {
	b, err := os.ReadFile(f.HistoryPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("failed to read history %v, seeding defaults: %v", f.HistoryPath, err)
		}

		return SeedHistory(time.Now()), nil
	}

	recs := []lib.HistoryRecord{}
	if err := json.Unmarshal(b, &recs); err != nil {
		log.Printf("failed to parse history %v, seeding defaults: %v", f.HistoryPath, err)

		return SeedHistory(time.Now()), nil
	}

	return recs, nil
}

// SaveHistory writes the full record list as JSON, replacing the prior blob.
func (f *FileStore) SaveHistory(recs []lib.HistoryRecord) error {
	b, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal history")
	}

	//nolint:gosec
	if err := os.WriteFile(f.HistoryPath, b, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write history %v", f.HistoryPath)
	}

	return nil
}

// LoadSettings reads the settings blob, shallow-merged over defaults so that
// older or partial files keep working and later-added fields pick up their
// default values. Missing or malformed files fall back to defaults; this
// never fails.
func (f *FileStore) LoadSettings() models.AppSettings {
	settings := models.DefaultSettings()

	b, err := os.ReadFile(f.SettingsPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("failed to read settings %v, using defaults: %v", f.SettingsPath, err)
		}

		return settings
	}

	// unmarshalling over the populated struct is the merge: absent keys
	// leave defaults in place
	if err := yaml.Unmarshal(b, &settings); err != nil {
		log.Printf("failed to parse settings %v, using defaults: %v", f.SettingsPath, err)

		return models.DefaultSettings()
	}

	return settings
}

// SaveSettings writes the settings blob as YAML.
func (f *FileStore) SaveSettings(settings models.AppSettings) error {
	b, err := yaml.Marshal(settings)
	if err != nil {
		return errors.Wrap(err, "failed to marshal settings")
	}

	//nolint:gosec
	if err := os.WriteFile(f.SettingsPath, b, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write settings %v", f.SettingsPath)
	}

	return nil
}
