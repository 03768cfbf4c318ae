// Package recorder persists a history of fetch runs so past exports stay
// auditable: which vehicle, which range, how many points the provider
// actually had, and where the CSV went.
package recorder

import (
	"time"

	"github.com/carworth/carworth/internal/dates"
)

// Run statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Run is one recorded pipeline execution.
type Run struct {
	ID         string
	StartedAt  time.Time
	Account    string
	EntityID   string
	ModelPath  string
	RangeStart dates.Date
	RangeEnd   dates.Date
	Windows    int
	Points     int
	Rows       int
	OutputPath string
	Status     string
	Error      string
	Duration   time.Duration
}

// Recorder stores run history. Implementations must be safe for
// concurrent use.
type Recorder interface {
	RecordRun(run *Run) error
	RecentRuns(limit int) ([]Run, error)
	Close() error
}
