package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/shazib/mftracker/logger"
)

type logsCmd struct {
	clear bool
}

func (*logsCmd) Name() string     { return "logs" }
func (*logsCmd) Synopsis() string { return "show or clear the tracker log file" }
func (*logsCmd) Usage() string {
	return `mft logs [-c]

  Prints the log file. With -c, truncates it instead.
`
}

func (c *logsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.clear, "c", false, "Clear the log file")
}

func (c *logsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg := appConfig()
	if c.clear {
		if err := logger.Clear(cfg.LogFile); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println("Log file cleared.")
		return subcommands.ExitSuccess
	}
	if err := logger.Show(os.Stdout, cfg.LogFile); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No logs yet.")
			return subcommands.ExitSuccess
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
