// Package collector orchestrates the fetch pipeline: validate the requested
// date range, plan monthly windows, fetch each window sequentially from the
// price-trends source, merge and forward-fill the points, and hand the
// finished rows to the sink. Any window failure aborts the whole run; the
// sink is never invoked with partial data.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/carworth/carworth/internal/dates"
	"github.com/carworth/carworth/internal/export"
	"github.com/carworth/carworth/internal/gaps"
	"github.com/carworth/carworth/internal/models"
	"github.com/carworth/carworth/internal/recorder"
	"github.com/carworth/carworth/internal/trends"
	"github.com/carworth/carworth/internal/ui"
	"github.com/carworth/carworth/internal/validator"
	"github.com/carworth/carworth/internal/windows"
)

// Sink receives the finished rows. Implementations write them somewhere
// durable and return the destination path.
type Sink interface {
	Write(name string, rows []models.OutputRow) (string, error)
}

// Config wires the collector's collaborators. Source and Sink are
// required; everything else has a working default.
type Config struct {
	Source   trends.Source
	Sink     Sink
	Recorder recorder.Recorder // nil disables run history
	Logger   *slog.Logger      // nil uses slog.Default
	Console  *ui.Console       // nil silences progress output
	Now      func() time.Time  // nil uses time.Now
	// FillPolicy decides days before the first observation. Empty means
	// gaps.LeadingOmit.
	FillPolicy gaps.LeadingPolicy
}

// Request identifies one vehicle and date range to export.
type Request struct {
	EntityID      string
	ModelPath     string
	Account       string
	SessionCookie string
	// StartDate and EndDate are YYYY-MM-DD. Empty values default to one
	// year back and yesterday respectively.
	StartDate string
	EndDate   string
}

// Summary reports what a completed run produced.
type Summary struct {
	RunID          string
	Range          dates.Range
	Windows        int
	Points         int
	Rows           int
	Filled         int
	EffectiveStart dates.Date
	LastObserved   dates.Date
	OutputPath     string
	Duration       time.Duration
}

// Collector runs the fetch pipeline.
type Collector struct {
	source     trends.Source
	sink       Sink
	recorder   recorder.Recorder
	logger     *slog.Logger
	console    *ui.Console
	now        func() time.Time
	fillPolicy gaps.LeadingPolicy
}

// New creates a collector from cfg.
func New(cfg Config) (*Collector, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("collector requires a source")
	}
	if cfg.Sink == nil {
		return nil, fmt.Errorf("collector requires a sink")
	}
	if cfg.Recorder == nil {
		cfg.Recorder = recorder.NewNoop()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.FillPolicy == "" {
		cfg.FillPolicy = gaps.LeadingOmit
	}

	return &Collector{
		source:     cfg.Source,
		sink:       cfg.Sink,
		recorder:   cfg.Recorder,
		logger:     cfg.Logger.With("component", "collector"),
		console:    cfg.Console,
		now:        cfg.Now,
		fillPolicy: cfg.FillPolicy,
	}, nil
}

// Run executes the pipeline for req. Date validation failures return before
// any fetch; fetch failures abort the remaining windows and nothing is
// written. Completed and failed runs both land in the run history.
func (c *Collector) Run(ctx context.Context, req Request) (*Summary, error) {
	started := c.now()

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	today := dates.FromTime(started.UTC())
	r, err := validator.Validate(req.StartDate, req.EndDate, today)
	if err != nil {
		return nil, err
	}
	if req.StartDate == "" {
		c.console.Info("no start date given, using %s (one year back)", r.Start)
	}
	if req.EndDate == "" {
		c.console.Info("no end date given, using %s (yesterday)", r.End)
	}

	plan := windows.Plan(r)
	run := &recorder.Run{
		ID:         uuid.NewString(),
		StartedAt:  started,
		Account:    req.Account,
		EntityID:   req.EntityID,
		ModelPath:  req.ModelPath,
		RangeStart: r.Start,
		RangeEnd:   r.End,
		Windows:    len(plan),
	}

	c.logger.Info("starting run",
		"run_id", run.ID,
		"entity_id", req.EntityID,
		"model_path", req.ModelPath,
		"range", r.String(),
		"windows", len(plan),
	)
	c.console.Info("date range: %s (%d days, %d windows)", r, r.Days(), len(plan))

	batches, err := c.fetchAll(ctx, req, plan)
	if err != nil {
		return nil, c.fail(run, started, err)
	}

	series := mergePoints(batches)
	run.Points = series.Len()
	c.logger.Debug("merged price points", "run_id", run.ID, "points", series.Len())

	filled, stats, err := gaps.Fill(series, r, c.fillPolicy)
	if err != nil {
		return nil, c.fail(run, started, err)
	}

	rows := export.Rows(filled, req.Account)
	name := export.Filename(req.Account, r)
	path, err := c.sink.Write(name, rows)
	if err != nil {
		return nil, c.fail(run, started, fmt.Errorf("writing output: %w", err))
	}

	run.Rows = len(rows)
	run.OutputPath = path
	run.Status = recorder.StatusOK
	run.Duration = c.now().Sub(started)
	c.recordRun(run)

	c.console.Success("wrote %d rows to %s", len(rows), path)
	if stats.Leading > 0 {
		if c.fillPolicy == gaps.LeadingBackfill {
			c.console.Info("backfilled %d days before the first observation on %s", stats.Leading, stats.FirstObserved)
		} else {
			c.console.Info("no data before %s; output starts there", stats.FirstObserved)
		}
	}
	if stats.LastObserved.Before(r.End) {
		c.console.Info("forward-filled from %s to %s (no recent data)", stats.LastObserved, r.End)
	}

	c.logger.Info("run completed",
		"run_id", run.ID,
		"points", run.Points,
		"rows", run.Rows,
		"filled", stats.Filled,
		"output", path,
		"duration", run.Duration,
	)

	return &Summary{
		RunID:          run.ID,
		Range:          r,
		Windows:        len(plan),
		Points:         run.Points,
		Rows:           run.Rows,
		Filled:         stats.Filled,
		EffectiveStart: stats.FirstDate,
		LastObserved:   stats.LastObserved,
		OutputPath:     path,
		Duration:       run.Duration,
	}, nil
}

// fetchAll fetches every planned window in order. Pacing between requests
// belongs to the source; this loop only sequences them and stops early on
// failure or cancellation.
func (c *Collector) fetchAll(ctx context.Context, req Request, plan []models.Window) ([][]trends.Point, error) {
	batches := make([][]trends.Point, 0, len(plan))

	for i, window := range plan {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		c.console.Step(i+1, len(plan), "fetching %s", window)
		points, err := c.source.Fetch(ctx, trends.FetchRequest{
			Window:        window,
			EntityID:      req.EntityID,
			ModelPath:     req.ModelPath,
			SessionCookie: req.SessionCookie,
		})
		if err != nil {
			return nil, fmt.Errorf("window %d/%d: %w", i+1, len(plan), err)
		}

		if len(points) == 0 {
			c.console.Warning("window %s had no data (will forward-fill)", window)
			c.logger.Debug("window returned no points", "window", window.String())
		}
		batches = append(batches, points)
	}

	return batches, nil
}

// fail records the run as failed and reports err. Recorder problems never
// mask the original failure.
func (c *Collector) fail(run *recorder.Run, started time.Time, err error) error {
	run.Status = recorder.StatusFailed
	run.Error = err.Error()
	run.Duration = c.now().Sub(started)
	c.recordRun(run)

	c.logger.Error("run failed", "run_id", run.ID, "error", err)
	return err
}

func (c *Collector) recordRun(run *recorder.Run) {
	if err := c.recorder.RecordRun(run); err != nil {
		c.logger.Warn("failed to record run history", "run_id", run.ID, "error", err)
	}
}

func validateRequest(req Request) error {
	if req.EntityID == "" {
		return fmt.Errorf("entity id is required")
	}
	if req.ModelPath == "" {
		return fmt.Errorf("model path is required")
	}
	if req.Account == "" {
		return fmt.Errorf("account name is required")
	}
	if req.SessionCookie == "" {
		return fmt.Errorf("session cookie is required")
	}
	return nil
}
