package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/carworth/carworth/docs"
)

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "show documentation" }
func (*topicCmd) Usage() string {
	return `topic [<topic> ...]

Show documentation for the given topics. Without arguments it prints the
topic index; 'topic *' prints everything.
`
}

func (*topicCmd) SetFlags(*flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	doc, err := gatherTopics(f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(os.Stdout, doc)
	return subcommands.ExitSuccess
}

func gatherTopics(topics []string) (string, error) {
	if len(topics) == 0 {
		return docs.Index(), nil
	}

	var doc strings.Builder
	for _, name := range topics {
		if name == "*" {
			return docs.All()
		}
		body, err := docs.Topic(name)
		if err != nil {
			return "", err
		}
		doc.WriteString(body)
		doc.WriteString("\n")
	}
	return doc.String(), nil
}
