package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	tracker "github.com/shazib/mftracker"
	"github.com/shazib/mftracker/amfi"
	"github.com/shazib/mftracker/config"
	"github.com/shazib/mftracker/gdrive"
	"github.com/shazib/mftracker/lockfile"
	"github.com/shazib/mftracker/mail"
)

type updateCmd struct {
	recompute bool
	nosync    bool
}

func (*updateCmd) Name() string { return "update" }
func (*updateCmd) Synopsis() string {
	return "download the AMFI NAV feed and reconcile the portfolio"
}
func (*updateCmd) Usage() string {
	return `mft update [-r] [-nosync]

  Downloads the daily NAV feed, settles pending orders, computes day
  changes and totals, and saves the result. With -r the feed download is
  skipped and the figures are recomputed from the stored state.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.recompute, "r", false, "Recompute from stored data, do not download the feed")
	f.BoolVar(&c.nosync, "nosync", false, "Skip the Google Drive backup after a successful update")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "no arguments expected")
		return subcommands.ExitUsageError
	}

	cfg, closeLog := initApp()
	defer closeLog()

	t, err := openTracker(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	// One updating process at a time. A stale lock left by a dead process
	// is reclaimed inside Acquire.
	lock := lockfile.New(filepath.Join(cfg.DataDir, "tracker.lock"))
	if err := lock.Acquire(); err != nil {
		if errors.Is(err, lockfile.ErrHeld) {
			fmt.Fprintln(os.Stderr, "another update is already running, try again later")
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return subcommands.ExitFailure
	}
	defer lock.Release()

	if c.recompute {
		if err := t.Recompute(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := t.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println("Recomputed figures from stored data.")
		return subcommands.ExitSuccess
	}

	var opts []amfi.Option
	if cfg.FeedURL != "" {
		opts = append(opts, amfi.WithURL(cfg.FeedURL))
	}
	opts = append(opts, amfi.WithRetries(cfg.FetchRetries), amfi.WithTimeout(cfg.FetchTimeout))
	feed, err := amfi.NewClient(opts...).Fetch(ctx)
	if err != nil {
		// A transient feed outage is not a failure: keep serving the last
		// saved figures and let the next run catch up.
		slog.Warn("update skipped, feed unavailable", "err", err)
		fmt.Fprintf(os.Stderr, "Feed unavailable (%v), keeping the last saved figures.\n", err)
		return subcommands.ExitSuccess
	}

	changed, err := t.Update(feed)
	if err != nil {
		if errors.Is(err, tracker.ErrNoFunds) {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		fmt.Fprintf(os.Stderr, "Error reconciling the feed: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := t.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving: %v\n", err)
		return subcommands.ExitFailure
	}

	if changed {
		fmt.Println("Portfolio updated.")
	} else {
		fmt.Println("Feed unchanged since the last update, nothing to do.")
	}

	if !c.nosync {
		syncBackup(ctx, cfg, t.InvestmentPath())
	}
	return subcommands.ExitSuccess
}

// syncBackup pushes the investment document to the Drive folder. The
// backup is best effort: a failure is logged and raises an alert mail,
// never a non-zero exit.
func syncBackup(ctx context.Context, cfg *config.Config, path string) {
	store, err := gdrive.New(ctx, cfg)
	if err != nil {
		if !errors.Is(err, gdrive.ErrNotConfigured) {
			slog.Error("backup: drive unavailable", "err", err)
		}
		return
	}
	f, err := os.Open(path)
	if err != nil {
		// first ever run, nothing to back up yet
		return
	}
	defer f.Close()
	if err := store.Put(ctx, filepath.Base(path), f); err != nil {
		slog.Error("backup: push failed", "err", err)
		alert := mail.New(cfg)
		if merr := alert.Send("mftracker: backup failed", err.Error()); merr != nil && !errors.Is(merr, mail.ErrNotConfigured) {
			slog.Error("backup: alert mail failed", "err", merr)
		}
	}
}
