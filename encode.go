package tracker

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The three store documents are persisted as indented JSON, whole-document
// rewrites only. The formats are fixed by years of existing data files:
//
//	units.json:     { "<scheme code>": [units, invested], ... }
//	orders.json:    { "<scheme code>": { "<dd-Mon-yyyy>": [units, amount] }, ... }
//	daychange.json: the InvestmentData aggregate
const storeIndent = "    "

// DecodeHoldings reads the units ledger document.
func DecodeHoldings(r io.Reader) (Holdings, error) {
	h := make(Holdings)
	if err := json.NewDecoder(r).Decode(&h); err != nil {
		return nil, fmt.Errorf("units document: %w", err)
	}
	return h, nil
}

// EncodeHoldings writes the units ledger document.
func EncodeHoldings(w io.Writer, h Holdings) error {
	return encodeIndented(w, h)
}

// DecodeOrders reads the pending orders document.
func DecodeOrders(r io.Reader) (Orders, error) {
	o := make(Orders)
	if err := json.NewDecoder(r).Decode(&o); err != nil {
		return nil, fmt.Errorf("orders document: %w", err)
	}
	return o, nil
}

// EncodeOrders writes the pending orders document.
func EncodeOrders(w io.Writer, o Orders) error {
	return encodeIndented(w, o)
}

// DecodeInvestmentData reads the investment aggregate document.
func DecodeInvestmentData(r io.Reader) (*InvestmentData, error) {
	inv := NewInvestmentData()
	if err := json.NewDecoder(r).Decode(inv); err != nil {
		return nil, fmt.Errorf("investment document: %w", err)
	}
	if inv.Funds == nil {
		inv.Funds = make(map[string]*FundData)
	}
	return inv, nil
}

// EncodeInvestmentData writes the investment aggregate document.
func EncodeInvestmentData(w io.Writer, inv *InvestmentData) error {
	return encodeIndented(w, inv)
}

func encodeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", storeIndent)
	return enc.Encode(v)
}
