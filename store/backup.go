package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/pkg/errors"

	c "github.com/duxiu-index/duxiu-tui/constants"
	"github.com/duxiu-index/duxiu-tui/lib"
	"github.com/duxiu-index/duxiu-tui/models"
)

// BackupVersion identifies the export payload shape.
const BackupVersion = 1

// ErrInvalidBackup is returned when an imported payload is not a backup:
// anything without a `history` array is rejected wholesale, with no state
// mutated. There is no record-level validation - the array is treated as
// opaque.
var ErrInvalidBackup = errors.New("invalid backup payload")

// Backup is the export payload: the full history plus settings, stamped with
// a version and export time.
type Backup struct {
	Version   int                 `json:"version"`
	Timestamp int64               `json:"timestamp"`
	History   []lib.HistoryRecord `json:"history"`
	Settings  models.AppSettings  `json:"settings"`
}

// ExportBackup serializes the full history and current settings as a
// formatted backup payload.
func ExportBackup(s *Store, settings models.AppSettings, now time.Time) ([]byte, error) {
	payload := Backup{
		Version:   BackupVersion,
		Timestamp: now.UnixMilli(),
		History:   s.Records(),
		Settings:  settings,
	}

	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal backup")
	}

	return b, nil
}

// WriteBackupFile exports a backup to a timestamped file in the data dir and
// returns its path.
func (f *FileStore) WriteBackupFile(s *Store, settings models.AppSettings, now time.Time) (string, error) {
	b, err := ExportBackup(s, settings, now)
	if err != nil {
		return "", err
	}

	target := path.Join(f.DataDir, fmt.Sprintf("%v%v.json", c.BackupFilePrefix, now.Format("2006-01-02-150405")))

	//nolint:gosec
	if err := os.WriteFile(target, b, 0o644); err != nil {
		return "", errors.Wrapf(err, "failed to write backup %v", target)
	}

	return target, nil
}

// ParseBackup validates an import payload. The history field must be present
// and must be an array; any other shape yields ErrInvalidBackup. If a
// settings object is present it is shallow-merged over current, the same way
// the load path merges over defaults.
func ParseBackup(b []byte, current models.AppSettings) ([]lib.HistoryRecord, models.AppSettings, error) {
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, current, ErrInvalidBackup
	}

	histRaw, ok := raw["history"]
	if !ok {
		return nil, current, ErrInvalidBackup
	}

	// `null` and scalars unmarshal into a slice too leniently; require an
	// actual array
	trimmed := bytes.TrimSpace(histRaw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, current, ErrInvalidBackup
	}

	recs := []lib.HistoryRecord{}
	if err := json.Unmarshal(histRaw, &recs); err != nil {
		return nil, current, ErrInvalidBackup
	}

	merged := current

	if settingsRaw, ok := raw["settings"]; ok {
		if err := json.Unmarshal(settingsRaw, &merged); err != nil {
			// a malformed settings object does not invalidate the history
			merged = current
		}
	}

	return recs, merged, nil
}
