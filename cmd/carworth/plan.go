package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/subcommands"

	"github.com/carworth/carworth/internal/dates"
	"github.com/carworth/carworth/internal/validator"
	"github.com/carworth/carworth/internal/windows"
)

type planCmd struct {
	start string
	end   string
}

func (*planCmd) Name() string     { return "plan" }
func (*planCmd) Synopsis() string { return "show the monthly fetch windows for a date range" }
func (*planCmd) Usage() string {
	return `plan [-start YYYY-MM-DD] [-end YYYY-MM-DD]

Validate the date range and print the monthly windows a fetch would request,
without touching the network. Useful to preview how far back a run reaches
and how many requests it makes.
`
}

func (c *planCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "start", "", "start date, YYYY-MM-DD (default: one year ago)")
	f.StringVar(&c.end, "end", "", "end date, YYYY-MM-DD (default: yesterday)")
}

func (c *planCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	today := dates.FromTime(time.Now().UTC())
	r, err := validator.Validate(c.start, c.end, today)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	plan := windows.Plan(r)
	fmt.Printf("range %s: %d days, %d windows\n\n", r, r.Days(), len(plan))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tFROM\tTO\tDAYS\tSTART MS\tEND MS")
	for i, win := range plan {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\n",
			i+1, win.Start, win.End, win.Days(), win.StartMs, win.EndMs)
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
