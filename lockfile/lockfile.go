// Package lockfile implements a PID-stamped advisory file lock so that two
// tracker processes never mutate the same on-disk store concurrently.
// A lock whose owning process is gone is considered stale and reclaimed.
package lockfile

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// ErrHeld is returned when another live process owns the lock.
var ErrHeld = errors.New("another tracker instance is already running")

// Lock is an advisory file lock. The zero value is not usable; use New.
type Lock struct {
	path string
}

// New returns a lock backed by the given file path.
func New(path string) *Lock { return &Lock{path: path} }

// Acquire takes the lock for the current process. A lock file stamped with
// the current PID counts as already acquired; one stamped with a dead PID
// is stale and gets reclaimed.
func (l *Lock) Acquire() error {
	for {
		content, err := os.ReadFile(l.path)
		if errors.Is(err, os.ErrNotExist) {
			break
		}
		if err != nil {
			return fmt.Errorf("cannot read lock file %q: %w", l.path, err)
		}
		pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
		if err != nil {
			// unreadable stamp, treat as stale
			log.Printf("lockfile: unreadable PID in %q, reclaiming", l.path)
		} else if pid == os.Getpid() {
			return nil
		} else if pidAlive(pid) {
			return fmt.Errorf("%w (pid %d)", ErrHeld, pid)
		} else {
			log.Printf("lockfile: removing stale lock of pid %d", pid)
		}
		if err := os.Remove(l.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("cannot remove stale lock %q: %w", l.path, err)
		}
	}
	return os.WriteFile(l.path, []byte(strconv.Itoa(os.Getpid())), 0644)
}

// Release removes the lock file. Releasing a lock that does not exist is
// an error: it means someone else removed it underneath us.
func (l *Lock) Release() error {
	err := os.Remove(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("lock %q does not exist", l.path)
	}
	return err
}

// pidAlive reports whether a process with the given PID exists. Signal 0
// performs the permission and existence checks without delivering anything.
func pidAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	if err == nil {
		return true
	}
	// EPERM means the process exists but belongs to someone else.
	return errors.Is(err, syscall.EPERM)
}
