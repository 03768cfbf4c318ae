package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/carworth/carworth/internal/collector"
	"github.com/carworth/carworth/internal/config"
	apperrors "github.com/carworth/carworth/internal/errors"
	"github.com/carworth/carworth/internal/export"
	"github.com/carworth/carworth/internal/gaps"
	"github.com/carworth/carworth/internal/logger"
	"github.com/carworth/carworth/internal/recorder"
	"github.com/carworth/carworth/internal/trends"
	"github.com/carworth/carworth/internal/ui"
)

type fetchCmd struct {
	url        string
	entityID   string
	modelPath  string
	account    string
	cookie     string
	start      string
	end        string
	configPath string
	outputDir  string
	logLevel   string
	quiet      bool
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "fetch price history and write the balance CSV" }
func (*fetchCmd) Usage() string {
	return `fetch -account <name> [-url <price-trends url> | -entity <id> -model <slug>] [flags]

Fetch the CarGurus price trend for one vehicle, fill the gaps into a daily
series and write it as a Date,Balance,Account CSV under the output directory.

The date range defaults to the last year, ending yesterday. A -url copied
from the browser supplies the entity id, model slug and, when present, the
date range. -url and -entity/-model are mutually exclusive; -start/-end
override dates embedded in the URL.

Examples:
  carworth fetch -account "2022 Honda Civic" \
    -url 'https://www.cargurus.com/research/price-trends/Honda-Civic-d2206?entityIds=d2206'
  carworth fetch -account "2022 Honda Civic" -entity d2206 -model Honda-Civic-d2206 \
    -start 2024-01-01 -end 2024-06-30
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.url, "url", "", "price-trends URL copied from the browser")
	f.StringVar(&c.entityID, "entity", "", "entity id of the vehicle (instead of -url)")
	f.StringVar(&c.modelPath, "model", "", "make/model slug of the vehicle (instead of -url)")
	f.StringVar(&c.account, "account", "", "account name used in the CSV and the output filename")
	f.StringVar(&c.cookie, "cookie", "", "JSESSIONID session cookie (overrides config and environment)")
	f.StringVar(&c.start, "start", "", "start date, YYYY-MM-DD (default: one year ago)")
	f.StringVar(&c.end, "end", "", "end date, YYYY-MM-DD (default: yesterday)")
	f.StringVar(&c.configPath, "config", "", "config file path (default: "+config.DefaultPath()+")")
	f.StringVar(&c.outputDir, "output-dir", "", "directory for the CSV (overrides config)")
	f.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	f.BoolVar(&c.quiet, "quiet", false, "suppress progress output")
}

func (c *fetchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	console := ui.NewConsole(nil)
	if c.quiet {
		console = nil
	}

	status, err := c.run(ctx, console)
	if err != nil {
		if c.quiet {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		} else {
			console.Error("%v", err)
		}
	}
	return status
}

func (c *fetchCmd) run(ctx context.Context, console *ui.Console) (subcommands.ExitStatus, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return subcommands.ExitFailure, err
	}
	if c.cookie != "" {
		cfg.SessionCookie = c.cookie
	}
	if c.outputDir != "" {
		cfg.Output.Dir = c.outputDir
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return subcommands.ExitFailure, err
	}

	req, err := c.request(cfg)
	if err != nil {
		return subcommands.ExitUsageError, err
	}

	log, closeLog, err := logger.New(cfg.Logging)
	if err != nil {
		return subcommands.ExitFailure, err
	}
	defer closeLog.Close()

	var transport http.RoundTripper
	if cfg.Provider.CacheDir != "" {
		transport = trends.NewDiskCache(cfg.Provider.CacheDir, nil)
	}

	source := trends.NewCarGurus(trends.CarGurusConfig{
		BaseURL:         cfg.Provider.BaseURL,
		RequestInterval: cfg.Provider.Interval(),
		RequestTimeout:  cfg.Provider.Timeout(),
		Transport:       transport,
		Logger:          log,
	})

	rec, err := openRecorder(cfg, log)
	if err != nil {
		return subcommands.ExitFailure, err
	}
	defer rec.Close()

	col, err := collector.New(collector.Config{
		Source:     source,
		Sink:       export.NewCSV(cfg.Output.Dir),
		Recorder:   rec,
		Logger:     log,
		Console:    console,
		FillPolicy: gaps.LeadingPolicy(cfg.Fill.Leading),
	})
	if err != nil {
		return subcommands.ExitFailure, err
	}

	console.Header("carworth")
	if _, err := col.Run(ctx, req); err != nil {
		if apperrors.AsValidation(err) != nil {
			return subcommands.ExitUsageError, err
		}
		return subcommands.ExitFailure, err
	}
	return subcommands.ExitSuccess, nil
}

// openRecorder returns the sqlite run history when one is configured and a
// noop recorder otherwise.
func openRecorder(cfg *config.Config, log *slog.Logger) (recorder.Recorder, error) {
	if cfg.History.SQLitePath == "" {
		return recorder.NewNoop(), nil
	}
	return recorder.NewSQLite(cfg.History.SQLitePath, log)
}

// request merges -url with the explicit flags into a collector request.
// The vehicle comes from exactly one place; -start/-end win over dates
// embedded in the URL.
func (c *fetchCmd) request(cfg *config.Config) (collector.Request, error) {
	req := collector.Request{
		EntityID:      c.entityID,
		ModelPath:     c.modelPath,
		Account:       c.account,
		SessionCookie: cfg.SessionCookie,
		StartDate:     c.start,
		EndDate:       c.end,
	}

	if c.url != "" {
		if c.entityID != "" || c.modelPath != "" {
			return collector.Request{}, fmt.Errorf("-url and -entity/-model are mutually exclusive, pass one or the other")
		}
		parsed, err := trends.ParseTrendsURL(c.url)
		if err != nil {
			return collector.Request{}, err
		}
		req.EntityID = parsed.EntityID
		req.ModelPath = parsed.ModelPath
		if req.StartDate == "" {
			req.StartDate = parsed.StartDate
		}
		if req.EndDate == "" {
			req.EndDate = parsed.EndDate
		}
	}

	if strings.TrimSpace(req.Account) == "" {
		return collector.Request{}, fmt.Errorf("-account is required, it names the CSV account column and the output file")
	}
	if req.EntityID == "" {
		return collector.Request{}, fmt.Errorf("an entity id is required, pass -entity or a -url containing entityIds")
	}
	if req.ModelPath == "" {
		return collector.Request{}, fmt.Errorf("a model slug is required, pass -model or a price-trends -url")
	}
	if req.SessionCookie == "" {
		return collector.Request{}, fmt.Errorf("a session cookie is required, pass -cookie or set CARWORTH_SESSION_COOKIE (see 'carworth topic cookie')")
	}

	return req, nil
}
