package tracker

import (
	"maps"
	"slices"

	"github.com/shazib/mftracker/date"
)

// FundData is the per-fund slice of the investment store: the NAV history
// and the figures derived from it on the last reconciliation.
type FundData struct {
	Name          string       `json:"name"`
	History       date.History `json:"nav"`
	LatestNavDate date.Date    `json:"latestNavDate"`
	Current       Money        `json:"current"`
	Invested      Money        `json:"invested"`
	DayChange     DayChange    `json:"dayChange"`
}

// InvestmentData is the root aggregate persisted in daychange.json. It is
// loaded once per run, owned by the Tracker for the duration of the run,
// and written back as a whole document.
type InvestmentData struct {
	LastUpdated           string               `json:"lastUpdated"`
	SumTotal              Money                `json:"sumTotal"`
	TotalInvested         Money                `json:"totalInvested"`
	TotalProfit           Money                `json:"totalProfit"`
	TotalProfitPercentage Percent              `json:"totalProfitPercentage"`
	TotalDayChange        Money                `json:"totalDaychange"`
	Hash                  string               `json:"hash"`
	Hash2                 string               `json:"hash2"`
	Funds                 map[string]*FundData `json:"funds"`
}

// NewInvestmentData creates an empty aggregate.
func NewInvestmentData() *InvestmentData {
	return &InvestmentData{Funds: make(map[string]*FundData)}
}

// Fund returns the data for a scheme code, or nil if the fund has never
// been reconciled.
func (inv *InvestmentData) Fund(id string) *FundData {
	return inv.Funds[id]
}

// FundIDs returns the known scheme codes in stable order.
func (inv *InvestmentData) FundIDs() []string {
	return slices.Sorted(maps.Keys(inv.Funds))
}
