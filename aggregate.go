package tracker

import (
	"errors"
	"strings"
)

// ErrNothingInvested is returned when portfolio totals are requested while
// the total invested amount is zero: the profit percentage would divide by
// zero. Earlier revisions silently produced Inf here.
var ErrNothingInvested = errors.New("total invested is zero: cannot compute profit percentage")

// RecomputeTotals sums per-fund current value, invested amount, and day
// change into the portfolio totals. Funds whose day change is the "no
// data" sentinel contribute nothing to the day change total.
func (t *Tracker) RecomputeTotals() error {
	var sumTotal, totalInvested, totalDayChange Money
	for _, id := range t.Holdings.IDs() {
		fund := t.Inv.Funds[id]
		if fund == nil {
			continue // not yet seen in any feed
		}
		holding := t.Holdings[id]
		_, latestNav := fund.History.Latest()
		fund.Current = M(latestNav).Mul(holding.Units).Round3()
		fund.Invested = holding.Invested

		sumTotal = sumTotal.Add(fund.Current).Round3()
		totalInvested = totalInvested.Add(fund.Invested).Round3()
		if fund.DayChange.Valid() {
			totalDayChange = totalDayChange.Add(fund.DayChange.Value()).Round3()
		}
	}
	if totalInvested.IsZero() {
		return ErrNothingInvested
	}
	t.Inv.SumTotal = sumTotal
	t.Inv.TotalInvested = totalInvested
	t.Inv.TotalDayChange = totalDayChange
	t.Inv.TotalProfit = sumTotal.Sub(totalInvested).Round3()
	t.Inv.TotalProfitPercentage = t.Inv.TotalProfit.PercentOf(totalInvested)
	return nil
}

// CleanUp prunes funds that are no longer tracked from the investment
// store. Only purely numeric keys are considered: those are scheme codes,
// anything else would be a foreign key from another revision.
func (t *Tracker) CleanUp() {
	for id := range t.Inv.Funds {
		if isNumeric(id) && !t.Holdings.Tracks(id) {
			delete(t.Inv.Funds, id)
		}
	}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) < 0
}
