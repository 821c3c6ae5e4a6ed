// Package tracker reconciles a daily mutual fund NAV feed against held
// positions: it settles pending purchase orders into units, computes
// day-over-day and cumulative profit, and persists the result in a
// JSON-backed store with hash-based change detection.
package tracker

import (
	"errors"
	"strings"

	"github.com/shazib/mftracker/amfi"
	"github.com/shazib/mftracker/date"
)

// ErrNoFunds is returned when no fund is configured for tracking. This is
// a configuration problem the user must fix, not something to retry.
var ErrNoFunds = errors.New("no mutual fund tracked: add an order or a units entry first")

// ErrIncompleteData is returned when reports are requested before any
// successful feed update populated the store.
var ErrIncompleteData = errors.New("incomplete investment data: run an update first")

// Tracker is a single-run session over the on-disk store: open, operate,
// flush, close. It exclusively owns the investment aggregate for the
// duration of the run; the advisory process lock keeps other instances out.
type Tracker struct {
	*Ledger
	Inv   *InvestmentData
	store *Store
}

// Open loads the three persisted documents (units, orders, investment data)
// from dir and returns a session over them. Each document independently
// falls back to its backup copy, then to an empty default, so Open never
// fails on a corrupt store.
func Open(dir string) (*Tracker, error) {
	store, err := NewStore(dir)
	if err != nil {
		return nil, err
	}
	ledger, inv := store.Load()
	return &Tracker{Ledger: ledger, Inv: inv, store: store}, nil
}

// AddOrder records a purchase and persists the ledger immediately. An order
// must survive a crash happening before the next reconciliation.
func (t *Tracker) AddOrder(id string, units Quantity, amount Money, on date.Date) error {
	t.Ledger.AddOrder(id, units, amount, on)
	return t.flushLedger()
}

// Update runs the full reconciliation pipeline over a downloaded feed.
// It reports whether anything changed; when the feed (or the tracked
// subset of it) hashes identically to the previous run, all downstream
// work is skipped.
func (t *Tracker) Update(feed string) (changed bool, err error) {
	digest := amfi.Digest(feed)
	if digest == t.Inv.Hash {
		return false, nil
	}

	// Funds bought for the first time get their units entry before the
	// feed is filtered, so their scheme code counts as tracked below.
	t.SettleNewFunds()
	if len(t.Holdings) == 0 {
		return false, ErrNoFunds
	}

	lines := amfi.Filter(feed, t.Holdings.IDs())
	digest2 := amfi.Digest(strings.Join(lines, "\n"))
	if digest2 == t.Inv.Hash2 {
		t.Inv.Hash = digest
		return false, nil
	}

	quotes, err := amfi.Parse(lines)
	if err != nil {
		return false, err
	}
	for _, q := range quotes {
		change := t.ApplyQuote(q)
		fund := t.Inv.Funds[q.SchemeCode]
		holding := t.Holdings[q.SchemeCode]
		fund.Name = q.Name
		fund.LatestNavDate = q.Date
		fund.Current = M(q.NAV).Mul(holding.Units).Round3()
		fund.Invested = holding.Invested
		fund.DayChange = change
	}

	if err := t.RecomputeTotals(); err != nil {
		return false, err
	}
	t.CleanUp()
	t.Inv.Hash, t.Inv.Hash2 = digest, digest2
	t.Inv.LastUpdated = date.Now()
	return true, nil
}

// Recompute re-derives per-fund figures and portfolio totals from the
// persisted state without touching the feed.
func (t *Tracker) Recompute() error {
	if len(t.Holdings) == 0 {
		return ErrNoFunds
	}
	return t.RecomputeTotals()
}

// Flush writes all three documents back to disk, mirroring the previous
// content to backup copies first.
func (t *Tracker) Flush() error {
	if err := t.flushLedger(); err != nil {
		return err
	}
	return t.store.SaveInvestmentData(t.Inv)
}

func (t *Tracker) flushLedger() error {
	if err := t.store.SaveHoldings(t.Holdings); err != nil {
		return err
	}
	return t.store.SaveOrders(t.Orders)
}

// Dir returns the data directory backing this session.
func (t *Tracker) Dir() string { return t.store.Dir() }

// InvestmentPath returns the path of the investment document, the one
// mirrored to the remote backup.
func (t *Tracker) InvestmentPath() string { return t.store.path(investmentFile) }
