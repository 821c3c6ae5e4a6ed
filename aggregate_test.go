package tracker

import (
	"errors"
	"testing"

	"github.com/shazib/mftracker/date"
	"github.com/shopspring/decimal"
)

func TestRecomputeTotals(t *testing.T) {
	tr := newTestTracker()
	tr.Holdings["120754"] = Holding{Units: Q(100), Invested: M(4500)}
	tr.Holdings["118989"] = Holding{Units: Q(50), Invested: M(2000)}

	a := &FundData{Name: "A", DayChange: DayChangeOf(M(5))}
	a.History.Append(date.MustParse("13-May-2024"), decimal.RequireFromString("47.5"))
	tr.Inv.Funds["120754"] = a

	b := &FundData{Name: "B", DayChange: NoDayChange}
	b.History.Append(date.MustParse("13-May-2024"), decimal.RequireFromString("41"))
	tr.Inv.Funds["118989"] = b

	if err := tr.RecomputeTotals(); err != nil {
		t.Fatalf("RecomputeTotals: %v", err)
	}

	// current: 100*47.5 + 50*41 = 4750 + 2050 = 6800
	if !tr.Inv.SumTotal.Equal(M(6800)) {
		t.Errorf("sumTotal = %s, want 6800", tr.Inv.SumTotal.Decimal())
	}
	if !tr.Inv.TotalInvested.Equal(M(6500)) {
		t.Errorf("totalInvested = %s, want 6500", tr.Inv.TotalInvested.Decimal())
	}
	// P3: profit is exactly round(sumTotal - totalInvested, 3)
	if !tr.Inv.TotalProfit.Equal(M(300)) {
		t.Errorf("totalProfit = %s, want 300", tr.Inv.TotalProfit.Decimal())
	}
	// 300 / 6500 * 100 = 4.615 (3 decimals)
	if !tr.Inv.TotalProfitPercentage.Equal(P(decimal.RequireFromString("4.615"))) {
		t.Errorf("totalProfitPercentage = %s, want 4.615%%", tr.Inv.TotalProfitPercentage)
	}
	// P4: fund B's sentinel contributes nothing to the day change total.
	if !tr.Inv.TotalDayChange.Equal(M(5)) {
		t.Errorf("totalDaychange = %s, want 5", tr.Inv.TotalDayChange.Decimal())
	}
}

func TestRecomputeTotals_NothingInvested(t *testing.T) {
	tr := newTestTracker()
	tr.Holdings["120754"] = Holding{Units: Q(0), Invested: M(0)}
	fund := &FundData{Name: "A", DayChange: NoDayChange}
	fund.History.Append(date.MustParse("13-May-2024"), decimal.RequireFromString("47.5"))
	tr.Inv.Funds["120754"] = fund

	err := tr.RecomputeTotals()
	if !errors.Is(err, ErrNothingInvested) {
		t.Errorf("err = %v, want ErrNothingInvested", err)
	}
}

func TestCleanUp_PrunesStaleNumericFunds(t *testing.T) {
	tr := newTestTracker()
	tr.Holdings["120754"] = Holding{Units: Q(1), Invested: M(100)}
	tr.Inv.Funds["120754"] = &FundData{Name: "kept"}
	tr.Inv.Funds["999999"] = &FundData{Name: "stale scheme code"}
	tr.Inv.Funds["not-a-code"] = &FundData{Name: "foreign key, left alone"}

	tr.CleanUp()

	if tr.Inv.Fund("120754") == nil {
		t.Error("tracked fund was pruned")
	}
	if tr.Inv.Fund("999999") != nil {
		t.Error("stale numeric fund survived")
	}
	if tr.Inv.Fund("not-a-code") == nil {
		t.Error("non-numeric key must not be pruned")
	}
}

func TestSummary(t *testing.T) {
	tr := newTestTracker()
	tr.Holdings["120754"] = Holding{Units: Q(100), Invested: M(4500)}
	fund := &FundData{Name: "A", DayChange: DayChangeOf(M(45))}
	fund.History.Append(date.MustParse("13-May-2024"), decimal.RequireFromString("47.5"))
	fund.LatestNavDate = date.MustParse("13-May-2024")
	tr.Inv.Funds["120754"] = fund
	if err := tr.RecomputeTotals(); err != nil {
		t.Fatalf("RecomputeTotals: %v", err)
	}
	tr.Inv.LastUpdated = "13-May-2024 20:00:01"

	s, err := tr.Summary()
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if len(s.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(s.Rows))
	}
	row := s.Rows[0]
	if !row.Returns.Equal(M(250)) {
		t.Errorf("returns = %s, want 250", row.Returns.Decimal())
	}
	// 45 / 4500 * 100 = 1%
	if !row.DayChangePercent.Equal(P(1)) {
		t.Errorf("day change %% = %s, want 1%%", row.DayChangePercent)
	}
}

func TestSummary_IncompleteData(t *testing.T) {
	tr := newTestTracker()
	tr.Holdings["120754"] = Holding{Units: Q(1), Invested: M(100)}

	if _, err := tr.Summary(); !errors.Is(err, ErrIncompleteData) {
		t.Errorf("err = %v, want ErrIncompleteData", err)
	}
}

func TestDayChangeReport(t *testing.T) {
	tr := newTestTracker()
	tr.Holdings["120754"] = Holding{Units: Q(10), Invested: M(400)}
	fund := &FundData{Name: "A", DayChange: NoDayChange}
	fund.History.Append(date.MustParse("10-May-2024"), decimal.RequireFromString("45.0"))
	fund.History.Append(date.MustParse("13-May-2024"), decimal.RequireFromString("45.5"))
	fund.History.Append(date.MustParse("14-May-2024"), decimal.RequireFromString("45.3"))
	tr.Inv.Funds["120754"] = fund
	tr.Inv.LastUpdated = "14-May-2024 20:00:01"

	report, err := tr.DayChangeReport()
	if err != nil {
		t.Fatalf("DayChangeReport: %v", err)
	}
	if len(report.Funds) != 1 {
		t.Fatalf("funds = %d, want 1", len(report.Funds))
	}
	points := report.Funds[0].Points
	if len(points) != 2 {
		t.Fatalf("points = %d, want 2 (first day is the baseline)", len(points))
	}
	if !points[0].Value.Equal(M(5)) { // (45.5-45.0)*10
		t.Errorf("first delta = %s, want 5", points[0].Value.Decimal())
	}
	if !points[1].Value.Equal(M(-2)) { // (45.3-45.5)*10
		t.Errorf("second delta = %s, want -2", points[1].Value.Decimal())
	}
	if len(report.Total) != 2 || !report.Total[0].Value.Equal(M(5)) {
		t.Errorf("total series wrong: %+v", report.Total)
	}
}
