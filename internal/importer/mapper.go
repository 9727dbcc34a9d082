package importer

import (
	"errors"
	"fmt"
	"time"

	"github.com/bankcsv/bankcsv/internal/id"
	"github.com/bankcsv/bankcsv/internal/model"
	"github.com/bankcsv/bankcsv/internal/normalize"
	"github.com/bankcsv/bankcsv/internal/profile"
	"github.com/bankcsv/bankcsv/internal/statement"
)

var (
	// ErrMalformedDate is returned when a date column does not match the
	// profile's date layout.
	ErrMalformedDate = errors.New("malformed date")
	// ErrMalformedAmount is returned when an amount column is not a decimal
	// after normalization.
	ErrMalformedAmount = errors.New("malformed amount")
)

// RowError describes a row that could not be mapped.
type RowError struct {
	Row   int // 1-based, header rows included
	Field profile.Field
	Value string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s %q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// Mapped is a record together with the header values its row carried.
type Mapped struct {
	Record model.Record
	Header statement.Header
}

// MapRow converts one raw row into a record. index is the 0-based position of
// the row in the export. ok is false for rows the profile declares
// ignorable: header rows and, when configured, zero-amount rows.
func MapRow(row []string, p *profile.Profile, index int) (m Mapped, ok bool, err error) {
	if index < p.HeaderRows {
		return Mapped{}, false, nil
	}

	f := p.Extract(row)

	amount, err := normalize.ParseAmount(f.Amount)
	if err != nil {
		return Mapped{}, false, &RowError{Row: index + 1, Field: profile.FieldAmount, Value: f.Amount, Err: fmt.Errorf("%w: %v", ErrMalformedAmount, err)}
	}
	if p.SkipZeroAmount && amount.IsZero() {
		return Mapped{}, false, nil
	}

	date, err := time.Parse(p.DateFormat, f.Date)
	if err != nil {
		return Mapped{}, false, &RowError{Row: index + 1, Field: profile.FieldDate, Value: f.Date, Err: fmt.Errorf("%w: %v", ErrMalformedDate, err)}
	}

	memo, payee := f.Memo, f.Payee
	if p.CollapseWhitespace {
		memo = normalize.Whitespace(memo)
		payee = normalize.Whitespace(payee)
	}

	rec := model.Record{
		Date:    date,
		Amount:  amount,
		Memo:    memo,
		Payee:   payee,
		CheckNo: f.CheckNo,
		Type:    model.TypeOf(amount),
		ID:      f.ID,
	}
	if p.SynthesizeID || rec.ID == "" {
		rec.ID = id.Generate(rec)
	}

	return Mapped{
		Record: rec,
		Header: statement.Header{AccountID: f.Account, Currency: f.Currency},
	}, true, nil
}
