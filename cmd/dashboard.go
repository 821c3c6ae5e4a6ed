package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/shazib/mftracker/dashboard"
)

type dashboardCmd struct {
	addr string
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "serve the web dashboard" }
func (*dashboardCmd) Usage() string {
	return `mft dashboard [-addr host:port]

  Serves a read-only web view of the portfolio: an HTML summary page
  and a JSON API. Blocks until interrupted.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", "", "Listen address (defaults to $MFT_DASHBOARD_ADDR or 127.0.0.1:8050)")
}

func (c *dashboardCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, closeLog := initApp()
	defer closeLog()

	addr := cfg.DashboardAddr
	if c.addr != "" {
		addr = c.addr
	}
	fmt.Printf("Serving dashboard on http://%s\n", addr)
	if err := dashboard.New(cfg.DataDir).ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
