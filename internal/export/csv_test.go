package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carworth/carworth/internal/dates"
	"github.com/carworth/carworth/internal/models"
)

func TestCSV_Write(t *testing.T) {
	t.Run("writes header and rows", func(t *testing.T) {
		dir := t.TempDir()
		sink := NewCSV(dir)

		rows := []models.OutputRow{
			{Date: dates.MustParse("2024-01-01"), Balance: "25000.00", Account: "2022 Honda Civic"},
			{Date: dates.MustParse("2024-01-02"), Balance: "24800.50", Account: "2022 Honda Civic"},
		}

		path, err := sink.Write("civic_2024-01-01_2024-01-02.csv", rows)

		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "civic_2024-01-01_2024-01-02.csv"), path)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t,
			"Date,Balance,Account\n"+
				"2024-01-01,25000.00,2022 Honda Civic\n"+
				"2024-01-02,24800.50,2022 Honda Civic\n",
			string(content))
	})

	t.Run("quotes fields containing commas", func(t *testing.T) {
		sink := NewCSV(t.TempDir())

		rows := []models.OutputRow{
			{Date: dates.MustParse("2024-01-01"), Balance: "9.99", Account: "Civic, the old one"},
		}

		path, err := sink.Write("out.csv", rows)

		require.NoError(t, err)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `9.99,"Civic, the old one"`)
	})

	t.Run("creates the output directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "output")
		sink := NewCSV(dir)

		_, err := sink.Write("out.csv", nil)

		require.NoError(t, err)
		assert.DirExists(t, dir)
	})

	t.Run("leaves no temp file behind", func(t *testing.T) {
		dir := t.TempDir()
		sink := NewCSV(dir)

		_, err := sink.Write("out.csv", []models.OutputRow{
			{Date: dates.MustParse("2024-01-01"), Balance: "1.00", Account: "a"},
		})
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "out.csv", entries[0].Name())
	})

	t.Run("overwrites an existing file", func(t *testing.T) {
		dir := t.TempDir()
		sink := NewCSV(dir)

		_, err := sink.Write("out.csv", []models.OutputRow{
			{Date: dates.MustParse("2024-01-01"), Balance: "1.00", Account: "a"},
		})
		require.NoError(t, err)

		path, err := sink.Write("out.csv", []models.OutputRow{
			{Date: dates.MustParse("2024-02-02"), Balance: "2.00", Account: "b"},
		})
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "Date,Balance,Account\n2024-02-02,2.00,b\n", string(content))
	})
}
