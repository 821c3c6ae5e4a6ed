package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/shazib/mftracker/gdrive"
)

type syncCmd struct {
	pull bool
}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "push or pull the investment document to Google Drive" }
func (*syncCmd) Usage() string {
	return `mft sync [-pull]

  Pushes the investment document to the configured Drive folder. With
  -pull, downloads the remote copy over the local one instead, keeping
  the previous local content as the backup copy.
`
}

func (c *syncCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.pull, "pull", false, "Download the remote copy instead of uploading")
}

func (c *syncCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, closeLog := initApp()
	defer closeLog()

	t, err := openTracker(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	store, err := gdrive.New(ctx, cfg)
	if err != nil {
		if errors.Is(err, gdrive.ErrNotConfigured) {
			fmt.Fprintln(os.Stderr, "Google Drive is not configured, set the MFT_DRIVE_* variables first")
			return subcommands.ExitUsageError
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	path := t.InvestmentPath()
	name := filepath.Base(path)
	if c.pull {
		return c.execPull(ctx, store, name, path)
	}

	local, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: nothing to push: %v\n", err)
		return subcommands.ExitFailure
	}
	defer local.Close()
	if err := store.Put(ctx, name, local); err != nil {
		fmt.Fprintf(os.Stderr, "Error pushing %s: %v\n", name, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Pushed %s to Drive folder %q\n", name, cfg.DriveFolder)
	return subcommands.ExitSuccess
}

func (c *syncCmd) execPull(ctx context.Context, store *gdrive.Store, name, path string) subcommands.ExitStatus {
	remote, err := store.Get(ctx, name)
	if err != nil {
		if errors.Is(err, gdrive.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "no remote copy of %s exists yet\n", name)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Error pulling %s: %v\n", name, err)
		return subcommands.ExitFailure
	}
	defer remote.Close()

	// keep the previous local content recoverable
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, path+".bak"); err != nil {
			fmt.Fprintf(os.Stderr, "Error backing up %s: %v\n", path, err)
			return subcommands.ExitFailure
		}
	}
	local, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer local.Close()
	if _, err := io.Copy(local, remote); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Pulled %s from Drive\n", name)
	return subcommands.ExitSuccess
}
