package recorder

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carworth/carworth/internal/dates"
)

func testRun(id string, startedAt time.Time) *Run {
	return &Run{
		ID:         id,
		StartedAt:  startedAt,
		Account:    "2022 Honda Civic",
		EntityID:   "d2206",
		ModelPath:  "honda-civic",
		RangeStart: dates.MustParse("2024-01-01"),
		RangeEnd:   dates.MustParse("2024-06-30"),
		Windows:    6,
		Points:     42,
		Rows:       182,
		OutputPath: "output/2022_Honda_Civic_2024-01-01_2024-06-30.csv",
		Status:     StatusOK,
		Duration:   7 * time.Second,
	}
}

func openTestRecorder(t *testing.T, path string) *SQLite {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	rec, err := NewSQLite(path, logger)
	require.NoError(t, err)
	t.Cleanup(func() { rec.Close() })
	return rec
}

func TestSQLite_RecordAndList(t *testing.T) {
	rec := openTestRecorder(t, filepath.Join(t.TempDir(), "history.db"))

	base := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, rec.RecordRun(testRun("run-1", base)))
	require.NoError(t, rec.RecordRun(testRun("run-2", base.Add(time.Hour))))
	require.NoError(t, rec.RecordRun(testRun("run-3", base.Add(2*time.Hour))))

	runs, err := rec.RecentRuns(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-3", runs[0].ID)
	assert.Equal(t, "run-2", runs[1].ID)
}

func TestSQLite_RoundTripsAllFields(t *testing.T) {
	rec := openTestRecorder(t, filepath.Join(t.TempDir(), "history.db"))

	want := testRun("run-1", time.Date(2024, 7, 1, 10, 30, 0, 0, time.UTC))
	want.Status = StatusFailed
	want.Error = "fetching window 2024-03-01 to 2024-03-31: auth: session cookie rejected (status 401)"
	require.NoError(t, rec.RecordRun(want))

	runs, err := rec.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, *want, runs[0])
}

func TestSQLite_ReopenKeepsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	rec := openTestRecorder(t, path)
	require.NoError(t, rec.RecordRun(testRun("run-1", time.Now())))
	require.NoError(t, rec.Close())

	reopened := openTestRecorder(t, path)
	runs, err := reopened.RecentRuns(10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestSQLite_EmptyHistory(t *testing.T) {
	rec := openTestRecorder(t, filepath.Join(t.TempDir(), "history.db"))

	runs, err := rec.RecentRuns(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestNoop(t *testing.T) {
	var rec Recorder = NewNoop()

	assert.NoError(t, rec.RecordRun(testRun("run-1", time.Now())))
	runs, err := rec.RecentRuns(10)
	assert.NoError(t, err)
	assert.Empty(t, runs)
	assert.NoError(t, rec.Close())
}
