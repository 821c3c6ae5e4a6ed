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

type dayChangeCmd struct{}

func (*dayChangeCmd) Name() string     { return "daychange" }
func (*dayChangeCmd) Synopsis() string { return "display the day-by-day change table per fund" }
func (*dayChangeCmd) Usage() string {
	return `mft daychange

  Replays each fund's NAV history against its current units and displays
  the day-by-day value changes, with the portfolio total per day.
`
}
func (*dayChangeCmd) SetFlags(f *flag.FlagSet) {}

func (c *dayChangeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, closeLog := initApp()
	defer closeLog()

	t, err := openTracker(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	report, err := t.DayChangeReport()
	if err != nil {
		if errors.Is(err, tracker.ErrNoFunds) || errors.Is(err, tracker.ErrIncompleteData) {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.DayChangeMarkdown(report))
	return subcommands.ExitSuccess
}
