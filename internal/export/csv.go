package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/carworth/carworth/internal/models"
)

// csvHeader is the Monarch Money balance-history header.
var csvHeader = []string{"Date", "Balance", "Account"}

// CSV writes output rows to files under Dir, creating it on first use.
type CSV struct {
	Dir string
}

// NewCSV returns a CSV sink rooted at dir.
func NewCSV(dir string) *CSV {
	return &CSV{Dir: dir}
}

// Write renders rows as a CSV file named name under the sink directory and
// returns the path written. The file appears atomically: rows go to a
// temporary file first, so a failed run never leaves a half-written CSV for
// an importer to pick up.
func (c *CSV) Write(name string, rows []models.OutputRow) (string, error) {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	path := filepath.Join(c.Dir, name)
	temp := path + ".tmp"
	if err := c.writeFile(temp, rows); err != nil {
		os.Remove(temp)
		return "", err
	}
	if err := os.Rename(temp, path); err != nil {
		os.Remove(temp)
		return "", fmt.Errorf("renaming temp file: %w", err)
	}
	return path, nil
}

func (c *CSV) writeFile(path string, rows []models.OutputRow) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, closeErr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range rows {
		record := []string{row.Date.String(), row.Balance, row.Account}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing row for %s: %w", row.Date, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}
