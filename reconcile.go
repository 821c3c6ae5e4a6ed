package tracker

import (
	"github.com/shazib/mftracker/amfi"
)

// ApplyQuote reconciles one day's published NAV for one fund: it resolves
// the previous trading day to diff against, settles pending orders up to
// that day, computes the day change with the post-settlement unit count,
// and records today's NAV in the fund's history.
//
// It returns NoDayChange when there is no valid previous NAV: first sight
// of the fund, an empty history, or a re-run on a single-day history.
func (t *Tracker) ApplyQuote(q amfi.Quote) DayChange {
	fund := t.Inv.Funds[q.SchemeCode]
	if fund == nil {
		// Cold start: record today's NAV, nothing to diff against.
		fund = &FundData{Name: q.Name, LatestNavDate: q.Date, DayChange: NoDayChange}
		fund.History.Append(q.Date, q.NAV)
		t.Inv.Funds[q.SchemeCode] = fund
		return NoDayChange
	}

	hist := &fund.History
	prev := q.Date.Add(-1)
	if _, ok := hist.On(prev); !ok {
		// The feed skips weekends and holidays, so the previous calendar
		// day is often absent. Fall back on the recorded history.
		last, _ := hist.Latest()
		switch {
		case hist.Len() == 0:
			hist.Append(q.Date, q.NAV)
			fund.DayChange = NoDayChange
			return NoDayChange
		case hist.Len() == 1 && last.Equal(q.Date):
			// Re-processing the only recorded day: no new data.
			return NoDayChange
		case last.Equal(q.Date):
			// Today was already provisionally recorded; step back one more.
			prev, _, _ = hist.Penultimate()
		default:
			// Most recent trading day on record.
			prev = last
		}
	}

	// Pending orders become units at the same trading day boundary used
	// for the diff, so newly settled units participate in today's change.
	t.Settle(q.SchemeCode, prev)
	units := t.Holdings[q.SchemeCode].Units

	prevNav, _ := hist.On(prev)
	change := M(q.NAV).Mul(units).Sub(M(prevNav).Mul(units)).Round3()
	hist.Append(q.Date, q.NAV)
	fund.DayChange = DayChangeOf(change)
	return fund.DayChange
}
