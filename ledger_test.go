package tracker

import (
	"testing"

	"github.com/shazib/mftracker/date"
)

func TestAddOrder_AccumulatesSameDate(t *testing.T) {
	l := NewLedger()
	on := date.MustParse("10-May-2024")
	l.AddOrder("120754", Q(10), M(450), on)
	l.AddOrder("120754", Q(5), M(225), on)

	order := l.Orders["120754"][on]
	if !order.Units.Equal(Q(15)) {
		t.Errorf("units = %s, want 15", order.Units)
	}
	if !order.Amount.Equal(M(675)) {
		t.Errorf("amount = %s, want 675", order.Amount.Decimal())
	}
}

func TestSettle_Conservation(t *testing.T) {
	// P2: settling with a cutoff covering all order dates moves every unit
	// into the holdings and leaves nothing pending.
	l := NewLedger()
	l.Holdings["120754"] = Holding{}
	l.AddOrder("120754", Q(10), M(450), date.MustParse("08-May-2024"))
	l.AddOrder("120754", Q(20), M(900), date.MustParse("09-May-2024"))
	l.AddOrder("120754", Q(30), M(1350), date.MustParse("10-May-2024"))

	l.Settle("120754", date.MustParse("10-May-2024"))

	holding := l.Holdings["120754"]
	if !holding.Units.Equal(Q(60)) {
		t.Errorf("units = %s, want 60", holding.Units)
	}
	if !holding.Invested.Equal(M(2700)) {
		t.Errorf("invested = %s, want 2700", holding.Invested.Decimal())
	}
	if l.PendingOrders("120754") != 0 {
		t.Errorf("%d orders still pending", l.PendingOrders("120754"))
	}
}

func TestSettle_CutoffIsInclusive(t *testing.T) {
	l := NewLedger()
	l.Holdings["120754"] = Holding{}
	l.AddOrder("120754", Q(10), M(450), date.MustParse("10-May-2024"))
	l.AddOrder("120754", Q(20), M(900), date.MustParse("11-May-2024"))

	l.Settle("120754", date.MustParse("10-May-2024"))

	if got := l.Holdings["120754"].Units; !got.Equal(Q(10)) {
		t.Errorf("units = %s, want 10 (only the on-cutoff order)", got)
	}
	if l.PendingOrders("120754") != 1 {
		t.Errorf("the later order must stay pending")
	}
}

func TestSettle_NothingPendingIsNoOp(t *testing.T) {
	l := NewLedger()
	l.Holdings["120754"] = Holding{Units: Q(10), Invested: M(450)}

	l.Settle("120754", date.MustParse("10-May-2024"))
	l.Settle("120754", date.MustParse("10-May-2024")) // idempotent re-run

	if got := l.Holdings["120754"].Units; !got.Equal(Q(10)) {
		t.Errorf("units = %s, want 10 unchanged", got)
	}
}

func TestSettleNewFunds_BypassesCutoff(t *testing.T) {
	l := NewLedger()
	l.AddOrder("120754", Q(10), M(450), date.MustParse("10-May-2024"))
	l.AddOrder("120754", Q(5), M(230), date.MustParse("13-May-2024"))
	l.AddOrder("118989", Q(7), M(700), date.MustParse("13-May-2024"))
	l.Holdings["118989"] = Holding{Units: Q(1), Invested: M(100)}

	l.SettleNewFunds()

	// 120754 had no units entry: everything folds in regardless of date.
	holding := l.Holdings["120754"]
	if !holding.Units.Equal(Q(15)) || !holding.Invested.Equal(M(680)) {
		t.Errorf("new fund holding = %s units %s, want 15 units 680", holding.Units, holding.Invested.Decimal())
	}
	if l.PendingOrders("120754") != 0 {
		t.Errorf("new fund orders must all be consumed")
	}
	// 118989 already had a baseline: its order stays pending.
	if got := l.Holdings["118989"].Units; !got.Equal(Q(1)) {
		t.Errorf("existing fund units = %s, want 1", got)
	}
	if l.PendingOrders("118989") != 1 {
		t.Errorf("existing fund order must wait for the cutoff rule")
	}
}
