package tracker

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/shazib/mftracker/date"
)

// Order records units purchased on a given day that have not yet been
// reflected in the units ledger. The date is strictly the purchase date,
// never a NAV publication date.
type Order struct {
	Units  Quantity
	Amount Money
}

// MarshalJSON writes the store format, a two element array [units, amount].
func (o Order) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]json.Marshaler{o.Units, o.Amount})
}

func (o *Order) UnmarshalJSON(data []byte) error {
	var pair [2]json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("order: want [units, amount]: %w", err)
	}
	if err := o.Units.UnmarshalJSON(pair[0]); err != nil {
		return fmt.Errorf("order units: %w", err)
	}
	if err := o.Amount.UnmarshalJSON(pair[1]); err != nil {
		return fmt.Errorf("order amount: %w", err)
	}
	return nil
}

// Orders is the pending order ledger, keyed by scheme code then purchase date.
type Orders map[string]map[date.Date]Order

// Ledger owns the units ledger and the pending orders together, since
// settlement is the only operation that moves value between the two.
type Ledger struct {
	Holdings Holdings
	Orders   Orders
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{Holdings: make(Holdings), Orders: make(Orders)}
}

// AddOrder appends a purchase to the pending orders. A second order on the
// same date for the same fund accumulates into the existing entry.
func (l *Ledger) AddOrder(id string, units Quantity, amount Money, on date.Date) {
	byDate, ok := l.Orders[id]
	if !ok {
		byDate = make(map[date.Date]Order)
		l.Orders[id] = byDate
	}
	order := byDate[on]
	order.Units = order.Units.Add(units)
	order.Amount = order.Amount.Add(amount)
	byDate[on] = order
}

// Settle folds every pending order for the fund dated on or before cutoff
// into the units ledger and removes it from the pending orders. An order
// placed on day D only becomes units once the fund's NAV processing has
// moved past D, so the caller passes the resolved previous trading day.
// Re-running settlement is a no-op: settled orders are already gone.
func (l *Ledger) Settle(id string, cutoff date.Date) {
	byDate := l.Orders[id]
	if len(byDate) == 0 {
		return
	}
	holding := l.Holdings[id]
	settled := 0
	for on, order := range byDate {
		if on.After(cutoff) {
			continue
		}
		holding.Units = holding.Units.Add(order.Units)
		holding.Invested = holding.Invested.Add(order.Amount)
		delete(byDate, on)
		settled++
		log.Printf("settled order %s %s: %s units for %s", id, on, order.Units, order.Amount)
	}
	if settled == 0 {
		return
	}
	l.Holdings[id] = holding
	if len(byDate) == 0 {
		delete(l.Orders, id)
	}
}

// SettleNewFunds onboards funds that have pending orders but no units
// entry yet. With no prior baseline the cutoff rule does not apply: a zero
// entry is created and every outstanding order is folded in regardless of
// date.
func (l *Ledger) SettleNewFunds() {
	for id, byDate := range l.Orders {
		if l.Holdings.Tracks(id) {
			continue
		}
		holding := Holding{}
		for on, order := range byDate {
			holding.Units = holding.Units.Add(order.Units)
			holding.Invested = holding.Invested.Add(order.Amount)
			delete(byDate, on)
		}
		l.Holdings[id] = holding
		delete(l.Orders, id)
		log.Printf("onboarded new fund %s with %s units for %s", id, holding.Units, holding.Invested)
	}
}

// PendingOrders returns the number of orders not yet settled for the fund.
func (l *Ledger) PendingOrders(id string) int {
	return len(l.Orders[id])
}
