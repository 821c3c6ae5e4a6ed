package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	tracker "github.com/shazib/mftracker"
	"github.com/shazib/mftracker/date"
)

type addCmd struct {
	units  float64
	amount float64
	date   string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a mutual fund purchase order" }
func (*addCmd) Usage() string {
	return `mft add -u <units> -a <amount> [-d <date>] <scheme-code>

  Records a purchase order for the AMFI scheme code. The order stays
  pending until the next update settles it into held units.

Usage Examples:
# 100 units of scheme 120754 bought today for 4500
$ mft add -u 100 -a 4500 120754

`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.units, "u", 0, "Number of units bought")
	f.Float64Var(&c.amount, "a", 0, "Amount invested")
	f.StringVar(&c.date, "d", "", "Purchase date (02-Jan-2006, defaults to today)")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "expected exactly one scheme code argument")
		return subcommands.ExitUsageError
	}
	if c.units <= 0 || c.amount <= 0 {
		fmt.Fprintln(os.Stderr, "both -u and -a must be positive")
		return subcommands.ExitUsageError
	}
	on := date.Today()
	if c.date != "" {
		var err error
		if on, err = date.Parse(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	cfg, closeLog := initApp()
	defer closeLog()

	t, err := openTracker(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	id := f.Arg(0)
	if err := t.AddOrder(id, tracker.Q(c.units), tracker.M(c.amount), on); err != nil {
		fmt.Fprintf(os.Stderr, "Error recording order: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded order: %v units of %s for %s on %s\n", c.units, id, tracker.M(c.amount), on)
	return subcommands.ExitSuccess
}
