package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/google/subcommands"

	"github.com/carworth/carworth/internal/config"
	"github.com/carworth/carworth/internal/logger"
	"github.com/carworth/carworth/internal/recorder"
)

type runsCmd struct {
	configPath string
	limit      int
}

func (*runsCmd) Name() string     { return "runs" }
func (*runsCmd) Synopsis() string { return "list recent runs from the history database" }
func (*runsCmd) Usage() string {
	return `runs [-limit N]

List recent fetch runs recorded in the history database, newest first.
Requires history.sqlite_path to be set in the config.
`
}

func (c *runsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "", "config file path (default: "+config.DefaultPath()+")")
	f.IntVar(&c.limit, "limit", 20, "maximum number of runs to show")
}

func (c *runsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *runsCmd) run() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.History.SQLitePath == "" {
		return fmt.Errorf("run history is not configured, set history.sqlite_path (see 'carworth topic config')")
	}

	log, closeLog, err := logger.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog.Close()

	rec, err := recorder.NewSQLite(cfg.History.SQLitePath, log)
	if err != nil {
		return err
	}
	defer rec.Close()

	runs, err := rec.RecentRuns(c.limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tSTATUS\tACCOUNT\tRANGE\tROWS\tOUTPUT")
	for _, run := range runs {
		detail := run.OutputPath
		if run.Status != recorder.StatusOK {
			detail = run.Error
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s to %s\t%d\t%s\n",
			humanize.Time(run.StartedAt), run.Status, run.Account,
			run.RangeStart, run.RangeEnd, run.Rows, detail)
	}
	return w.Flush()
}
