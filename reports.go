package tracker

import (
	"sort"

	"github.com/shazib/mftracker/date"
	"github.com/shopspring/decimal"
)

// This file builds the report structs the renderer consumes. Reports are
// read-only views over the session state; building one never mutates the
// store.

// SummaryRow is one fund's line in the portfolio summary.
type SummaryRow struct {
	ID               string
	Name             string
	DayChange        DayChange
	DayChangePercent Percent // zero when DayChange is the sentinel
	Returns          Money
	ReturnsPercent   Percent
	Current          Money
	Invested         Money
	LatestNavDate    date.Date
	LatestNav        decimal.Decimal
}

// Summary is the portfolio-wide report: totals plus one row per fund.
type Summary struct {
	LastUpdated    string
	Invested       Money
	Current        Money
	Profit         Money
	ProfitPercent  Percent
	TotalDayChange Money
	Rows           []SummaryRow
}

// Summary builds the portfolio summary from the persisted aggregate.
// It fails with ErrIncompleteData when a tracked fund has never been
// reconciled, and with ErrNoFunds when nothing is tracked at all.
func (t *Tracker) Summary() (*Summary, error) {
	if len(t.Holdings) == 0 {
		return nil, ErrNoFunds
	}
	if t.Inv.LastUpdated == "" {
		return nil, ErrIncompleteData
	}
	s := &Summary{
		LastUpdated:    t.Inv.LastUpdated,
		Invested:       t.Inv.TotalInvested,
		Current:        t.Inv.SumTotal,
		Profit:         t.Inv.TotalProfit,
		ProfitPercent:  t.Inv.TotalProfitPercentage,
		TotalDayChange: t.Inv.TotalDayChange,
	}
	for _, id := range t.Holdings.IDs() {
		fund := t.Inv.Funds[id]
		if fund == nil {
			return nil, ErrIncompleteData
		}
		row := SummaryRow{
			ID:            id,
			Name:          fund.Name,
			DayChange:     fund.DayChange,
			Returns:       fund.Current.Sub(fund.Invested).Round3(),
			Current:       fund.Current,
			Invested:      fund.Invested,
			LatestNavDate: fund.LatestNavDate,
		}
		_, row.LatestNav = fund.History.Latest()
		if !fund.Invested.IsZero() {
			row.ReturnsPercent = row.Returns.PercentOf(fund.Invested)
			if fund.DayChange.Valid() {
				row.DayChangePercent = fund.DayChange.Value().PercentOf(fund.Invested)
			}
		}
		s.Rows = append(s.Rows, row)
	}
	return s, nil
}

// SeriesPoint is one day's value in a day change series.
type SeriesPoint struct {
	Date  date.Date
	Value Money
}

// FundSeries is the day-by-day change of one fund's holding value,
// derived from its NAV history and current unit count.
type FundSeries struct {
	ID     string
	Name   string
	Points []SeriesPoint
}

// DayChangeReport holds per-fund day change series plus the portfolio
// total per day.
type DayChangeReport struct {
	Funds []FundSeries
	Total []SeriesPoint
}

// DayChangeReport replays each tracked fund's NAV history against its
// current unit count to produce day-by-day changes. Using today's units
// for past days is an approximation the store has always made; the series
// is a trend view, not an accounting record.
func (t *Tracker) DayChangeReport() (*DayChangeReport, error) {
	if len(t.Holdings) == 0 {
		return nil, ErrNoFunds
	}
	report := &DayChangeReport{}
	totals := make(map[date.Date]Money)
	for _, id := range t.Holdings.IDs() {
		fund := t.Inv.Funds[id]
		if fund == nil {
			return nil, ErrIncompleteData
		}
		units := t.Holdings[id].Units
		series := FundSeries{ID: id, Name: fund.Name}
		var prev Money
		first := true
		for day, nav := range fund.History.Values() {
			value := M(nav).Mul(units)
			if first {
				prev, first = value, false
				continue
			}
			delta := value.Sub(prev).Round3()
			series.Points = append(series.Points, SeriesPoint{Date: day, Value: delta})
			totals[day] = totals[day].Add(delta).Round3()
			prev = value
		}
		report.Funds = append(report.Funds, series)
	}
	for day, value := range totals {
		report.Total = append(report.Total, SeriesPoint{Date: day, Value: value})
	}
	sort.Slice(report.Total, func(i, j int) bool {
		return report.Total[i].Date.Before(report.Total[j].Date)
	})
	return report, nil
}

// NavSeries returns each tracked fund's NAV history for charting.
func (t *Tracker) NavSeries() ([]FundSeries, error) {
	if len(t.Holdings) == 0 {
		return nil, ErrNoFunds
	}
	var out []FundSeries
	for _, id := range t.Holdings.IDs() {
		fund := t.Inv.Funds[id]
		if fund == nil {
			continue
		}
		series := FundSeries{ID: id, Name: fund.Name}
		for day, nav := range fund.History.Values() {
			series.Points = append(series.Points, SeriesPoint{Date: day, Value: M(nav)})
		}
		out = append(out, series)
	}
	return out, nil
}
