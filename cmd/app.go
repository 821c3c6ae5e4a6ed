// Package cmd implements the CLI application to track mutual fund NAVs.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	tracker "github.com/shazib/mftracker"
	"github.com/shazib/mftracker/config"
	"github.com/shazib/mftracker/logger"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "ledger")
	c.Register(&updateCmd{}, "tracking")

	c.Register(&tableCmd{}, "reports")
	c.Register(&dayChangeCmd{}, "reports")
	c.Register(&graphCmd{}, "reports")
	c.Register(&dashboardCmd{}, "reports")

	c.Register(&syncCmd{}, "backup")
	c.Register(&logsCmd{}, "maintenance")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data-dir", "", "Path to the data directory (defaults to $MFT_DATA_DIR or ~/.mftracker)")

// appConfig loads the environment configuration, letting the -data-dir
// flag override the directory.
func appConfig() *config.Config {
	cfg := config.Load()
	if *dataDir != "" {
		cfg.DataDir = *dataDir
		if os.Getenv("MFT_LOG_FILE") == "" {
			cfg.LogFile = filepath.Join(cfg.DataDir, "tracker.log")
		}
	}
	return cfg
}

// initApp is the central function commands call first: it resolves the
// configuration and routes structured logs to the log file.
func initApp() (*config.Config, func()) {
	cfg := appConfig()
	closeLog, err := logger.Init(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, logging to stderr instead\n", err)
		closeLog = func() {}
	}
	return cfg, closeLog
}

// openTracker opens a session over the data directory.
func openTracker(cfg *config.Config) (*tracker.Tracker, error) {
	return tracker.Open(cfg.DataDir)
}

// printMarkdown renders markdown for the terminal, falling back to the
// raw text when the renderer fails.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
