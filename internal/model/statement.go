package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statement is the result of parsing one bank export: header fields, records
// in input order, and the balances and date range derived from them.
type Statement struct {
	AccountID string `json:"account_id,omitempty"`
	Currency  string `json:"currency,omitempty"`
	BankID    string `json:"bank_id,omitempty"`

	Records []Record `json:"records"`

	StartBalance decimal.Decimal `json:"start_balance"`
	EndBalance   decimal.Decimal `json:"end_balance"`
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
}

// Total returns the sum of all record amounts.
func (s *Statement) Total() decimal.Decimal {
	total := decimal.Zero
	for _, r := range s.Records {
		total = total.Add(r.Amount)
	}
	return total
}
