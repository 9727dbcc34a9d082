package statement

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/bankcsv/bankcsv/internal/model"
)

// ErrEmptyStatement is returned when balances and dates are reconstructed for
// a statement without records.
var ErrEmptyStatement = errors.New("empty statement")

// Header carries the statement-level values a row or the caller may supply.
type Header struct {
	AccountID string
	Currency  string
	BankID    string
}

// Accumulator builds one Statement from mapped records. It is owned by a
// single parse and is not safe for concurrent use.
type Accumulator struct {
	stmt model.Statement
}

// NewAccumulator starts a statement whose header is pre-seeded with seed.
// Seeded values are never overwritten by row data.
func NewAccumulator(seed Header) *Accumulator {
	a := &Accumulator{}
	a.capture(seed)
	return a
}

// Add appends rec and captures header values carried by its row. Each header
// field keeps the first non-empty value it sees.
func (a *Accumulator) Add(rec model.Record, h Header) {
	a.stmt.Records = append(a.stmt.Records, rec)
	a.capture(h)
}

func (a *Accumulator) capture(h Header) {
	setOnce(&a.stmt.AccountID, h.AccountID)
	setOnce(&a.stmt.Currency, h.Currency)
	setOnce(&a.stmt.BankID, h.BankID)
}

func setOnce(dst *string, v string) {
	if *dst == "" && v != "" {
		*dst = v
	}
}

// Len returns the number of records accumulated so far.
func (a *Accumulator) Len() int {
	return len(a.stmt.Records)
}

// Statement returns the statement as accumulated, without balances or dates.
func (a *Accumulator) Statement() *model.Statement {
	s := a.stmt
	return &s
}

// Finalize returns the statement with balances and date range reconstructed.
// It fails with ErrEmptyStatement when no record was added.
func (a *Accumulator) Finalize() (*model.Statement, error) {
	s := a.Statement()
	if err := Recalculate(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Recalculate derives balances and the date range of s from its records.
// The opening balance is always zero; the closing balance is the sum of all
// amounts in record order. The date range spans the earliest and latest
// record date wherever they appear.
func Recalculate(s *model.Statement) error {
	if len(s.Records) == 0 {
		return ErrEmptyStatement
	}

	s.StartBalance = decimal.Zero
	s.EndBalance = s.StartBalance.Add(s.Total())

	s.StartDate = s.Records[0].Date
	s.EndDate = s.Records[0].Date
	for _, r := range s.Records[1:] {
		if r.Date.Before(s.StartDate) {
			s.StartDate = r.Date
		}
		if r.Date.After(s.EndDate) {
			s.EndDate = r.Date
		}
	}
	return nil
}
