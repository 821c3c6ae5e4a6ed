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

type graphCmd struct {
	total bool
}

func (*graphCmd) Name() string     { return "graph" }
func (*graphCmd) Synopsis() string { return "plot NAV histories or the total day change as terminal graphs" }
func (*graphCmd) Usage() string {
	return `mft graph [-t]

  Plots each fund's NAV history as an ascii chart. With -t, plots the
  portfolio-wide day change total instead.
`
}

func (c *graphCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.total, "t", false, "Plot the total day change instead of per-fund NAVs")
}

func (c *graphCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, closeLog := initApp()
	defer closeLog()

	t, err := openTracker(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var out string
	if c.total {
		report, rerr := t.DayChangeReport()
		err = rerr
		if err == nil {
			out = renderer.TotalGraph(report)
		}
	} else {
		series, rerr := t.NavSeries()
		err = rerr
		if err == nil {
			out = renderer.NavGraphs(series)
		}
	}
	if err != nil {
		if errors.Is(err, tracker.ErrNoFunds) || errors.Is(err, tracker.ErrIncompleteData) {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(out)
	return subcommands.ExitSuccess
}
