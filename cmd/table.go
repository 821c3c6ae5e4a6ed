package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	tracker "github.com/shazib/mftracker"
	"github.com/shazib/mftracker/renderer"
)

type tableCmd struct{}

func (*tableCmd) Name() string     { return "table" }
func (*tableCmd) Synopsis() string { return "display the portfolio summary table" }
func (*tableCmd) Usage() string {
	return `mft table

  Displays the per-fund summary with day change, returns and totals,
  from the last saved update.
`
}
func (*tableCmd) SetFlags(f *flag.FlagSet) {}

func (c *tableCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, closeLog := initApp()
	defer closeLog()

	t, err := openTracker(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	s, err := t.Summary()
	if err != nil {
		if errors.Is(err, tracker.ErrNoFunds) || errors.Is(err, tracker.ErrIncompleteData) {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SummaryMarkdown(s))
	return subcommands.ExitSuccess
}
