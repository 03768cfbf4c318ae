// Carworth turns the sparse CarGurus price-trends feed for one vehicle into
// a gapless daily balance CSV that personal finance tools such as Monarch
// Money import as an account history.
//
// Usage:
//
//	carworth fetch -account "2022 Honda Civic" -url '<price-trends url>'
//	carworth plan -start 2024-01-01 -end 2024-06-30
//	carworth runs -limit 10
//	carworth topic cookie
//
// For detailed help on any command, use: carworth help <command>
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/carworth/carworth/docs"
)

func main() {
	registerCompletion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	commander.Register(&topicCmd{}, "help")
	commander.Register(&versionCmd{}, "help")

	commander.Register(&fetchCmd{}, "collection")
	commander.Register(&planCmd{}, "collection")

	commander.Register(&runsCmd{}, "history")

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(int(commander.Execute(ctx)))
}

// registerCompletion answers shell completion requests (COMP_LINE set) and
// exits; on a normal invocation it returns immediately.
func registerCompletion() {
	topicNames := predict.Set{"readme", "*"}
	if names, err := docs.List(); err == nil {
		topicNames = append(topicNames, names...)
	}

	configFiles := predict.Files("*.yaml")
	dateArg := predict.Nothing

	cmd := &complete.Command{
		Sub: map[string]*complete.Command{
			"fetch": {Flags: map[string]complete.Predictor{
				"url":        predict.Nothing,
				"entity":     predict.Nothing,
				"model":      predict.Nothing,
				"account":    predict.Nothing,
				"cookie":     predict.Nothing,
				"start":      dateArg,
				"end":        dateArg,
				"config":     configFiles,
				"output-dir": predict.Dirs("*"),
				"log-level":  predict.Set{"debug", "info", "warn", "error"},
				"quiet":      predict.Nothing,
			}},
			"plan": {Flags: map[string]complete.Predictor{
				"start": dateArg,
				"end":   dateArg,
			}},
			"runs": {Flags: map[string]complete.Predictor{
				"config": configFiles,
				"limit":  predict.Nothing,
			}},
			"topic":   {Args: topicNames},
			"version": {},
		},
	}
	cmd.Complete("carworth")
}
