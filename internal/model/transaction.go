package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxnType classifies a record by the sign of its amount.
type TxnType string

const (
	TxnDebit  TxnType = "DEBIT"
	TxnCredit TxnType = "CREDIT"
)

// TypeOf returns TxnDebit for negative amounts and TxnCredit otherwise.
func TypeOf(amount decimal.Decimal) TxnType {
	if amount.IsNegative() {
		return TxnDebit
	}
	return TxnCredit
}

// Record is one normalized transaction parsed from a bank export row.
type Record struct {
	Date    time.Time       `json:"date"`
	Amount  decimal.Decimal `json:"amount"` // negative = debit, positive = credit
	Memo    string          `json:"memo"`
	Payee   string          `json:"payee,omitempty"`
	CheckNo string          `json:"check_no,omitempty"`
	Type    TxnType         `json:"type"`
	ID      string          `json:"id"`
}
