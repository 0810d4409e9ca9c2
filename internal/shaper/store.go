package shaper

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"fredscope/internal/models"
)

// Format names a file format the store can write.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

var ErrUnknownFormat = errors.New("shaper: unknown format")

const dateLayout = "2006-01-02"

// Store writes series to the raw-data or clean-data directory.
// Destination files are truncated, never appended: saving the same
// series twice leaves the same bytes as saving it once.
type Store struct {
	rawDir   string
	cleanDir string
}

func NewStore(rawDir, cleanDir string) *Store {
	return &Store{rawDir: rawDir, cleanDir: cleanDir}
}

// Save writes a series keyed by series id and raw/clean status,
// creating the destination directory if absent. It returns the path
// written.
func (st *Store) Save(s models.Series, seriesID string, raw bool, format Format) (string, error) {
	dir, suffix := st.cleanDir, "cleaned"
	if raw {
		dir, suffix = st.rawDir, "raw"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", seriesID, suffix, format))
	var err error
	switch format {
	case FormatCSV:
		err = writeCSV(path, s)
	case FormatJSON:
		err = writeJSON(path, s)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}

func writeCSV(path string, s models.Series) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"date", "value"}); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, obs := range s {
		value := ""
		if obs.Value != nil {
			value = strconv.FormatFloat(*obs.Value, 'f', -1, 64)
		}
		if err := w.Write([]string{obs.Date.Format(dateLayout), value}); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return f.Close()
}

func writeJSON(path string, s models.Series) error {
	type row struct {
		Date  string   `json:"date"`
		Value *float64 `json:"value"`
	}
	rows := make([]row, len(s))
	for i, obs := range s {
		rows[i] = row{Date: obs.Date.Format(dateLayout), Value: obs.Value}
	}

	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
