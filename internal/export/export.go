// Package export writes parsed statements in the formats the CLI offers.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bankcsv/bankcsv/internal/model"
)

// Output formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ErrUnknownFormat is returned by Write for formats other than csv and json.
var ErrUnknownFormat = errors.New("unknown output format")

// Header is the CSV header written before the records.
const Header = "id,date,type,amount,payee,memo,check_no"

const (
	numFields  = 7
	dateFormat = "2006-01-02"
	colID      = 0
	colDate    = 1
	colType    = 2
	colAmount  = 3
	colPayee   = 4
	colMemo    = 5
	colCheckNo = 6
)

// CheckFormat returns ErrUnknownFormat unless format is csv, json or empty.
func CheckFormat(format string) error {
	switch strings.ToLower(format) {
	case "", FormatCSV, FormatJSON:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Write writes s to w in the named format. An empty format means csv.
func Write(w io.Writer, s *model.Statement, format string) error {
	if err := CheckFormat(format); err != nil {
		return err
	}
	if strings.ToLower(format) == FormatJSON {
		return WriteJSON(w, s)
	}
	return WriteCSV(w, s.Records)
}

// Extension returns the file extension for format, including the dot.
func Extension(format string) string {
	if strings.ToLower(format) == FormatJSON {
		return ".json"
	}
	return ".csv"
}

// MarshalRecord converts a Record to a CSV row.
func MarshalRecord(r model.Record) []string {
	row := make([]string, numFields)
	row[colID] = r.ID
	row[colDate] = r.Date.Format(dateFormat)
	row[colType] = string(r.Type)
	row[colAmount] = r.Amount.StringFixed(2)
	row[colPayee] = r.Payee
	row[colMemo] = r.Memo
	row[colCheckNo] = r.CheckNo
	return row
}

// WriteCSV writes records to w, header first.
func WriteCSV(w io.Writer, records []model.Record) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, r := range records {
		if err := cw.Write(MarshalRecord(r)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonStatement struct {
	AccountID    string         `json:"account_id,omitempty"`
	Currency     string         `json:"currency,omitempty"`
	BankID       string         `json:"bank_id,omitempty"`
	StartBalance string         `json:"start_balance,omitempty"`
	EndBalance   string         `json:"end_balance,omitempty"`
	StartDate    string         `json:"start_date,omitempty"`
	EndDate      string         `json:"end_date,omitempty"`
	Records      []model.Record `json:"records"`
}

// WriteJSON writes s as an indented JSON document. Balances and dates are
// omitted for statements that were never reconstructed.
func WriteJSON(w io.Writer, s *model.Statement) error {
	out := jsonStatement{
		AccountID: s.AccountID,
		Currency:  s.Currency,
		BankID:    s.BankID,
		Records:   s.Records,
	}
	if out.Records == nil {
		out.Records = []model.Record{}
	}
	if !s.StartDate.IsZero() {
		out.StartBalance = s.StartBalance.StringFixed(2)
		out.EndBalance = s.EndBalance.StringFixed(2)
		out.StartDate = s.StartDate.Format(dateFormat)
		out.EndDate = s.EndDate.Format(dateFormat)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding statement: %w", err)
	}
	return nil
}
