package main

import (
	"context"
	"flag"
	"fmt"
	"runtime"

	"github.com/google/subcommands"
)

// Overridden by the release build via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

type versionCmd struct{}

func (*versionCmd) Name() string     { return "version" }
func (*versionCmd) Synopsis() string { return "print version information" }
func (*versionCmd) Usage() string {
	return `version

Print the carworth version.
`
}

func (*versionCmd) SetFlags(*flag.FlagSet) {}

func (*versionCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	fmt.Printf("carworth %s (commit %s, built %s, %s)\n", version, commit, date, runtime.Version())
	return subcommands.ExitSuccess
}
