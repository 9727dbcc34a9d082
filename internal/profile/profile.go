// Package profile describes how the delimited export of one bank maps onto
// normalized records: delimiter, date layout, column mapping, row policies and
// the transform hooks that reshape a row before mapping.
//
// Profiles are configuration values. They are built once per bank and must not
// be modified afterwards, so a single Profile can be shared by any number of
// concurrent parses.
package profile

import "strings"

// Field names a semantic column of a bank export.
type Field string

const (
	FieldDate     Field = "date"
	FieldAmount   Field = "amount"
	FieldMemo     Field = "memo"
	FieldPayee    Field = "payee"
	FieldCheckNo  Field = "check_no"
	FieldID       Field = "id"
	FieldCredit   Field = "credit"   // credit column of exports with separate debit/credit columns
	FieldAccount  Field = "account"  // header value: account id
	FieldCurrency Field = "currency" // header value: currency
)

// Fields holds the raw text of every semantic column of one row. Transforms
// rewrite it before the values are parsed.
type Fields struct {
	Date     string
	Amount   string
	Memo     string
	Payee    string
	CheckNo  string
	ID       string
	Credit   string
	Account  string
	Currency string
}

// Transform reshapes the extracted fields of one row. row is the raw row the
// fields were extracted from and must not be modified.
type Transform func(row []string, f *Fields)

// Profile is the parsing configuration for one export format of one bank.
type Profile struct {
	Name       string
	Delimiter  rune
	DateFormat string // Go time layout
	Charset    string

	// Columns maps each field the export carries to its column index.
	Columns map[Field]int

	// HeaderRows is the number of leading rows that never produce a record.
	HeaderRows int
	// SkipZeroAmount drops informational rows whose amount is zero.
	SkipZeroAmount bool
	// SynthesizeID generates ids from record content instead of reading them
	// from FieldID.
	SynthesizeID bool
	// CollapseWhitespace cleans memo and payee after the transforms ran.
	CollapseWhitespace bool

	Transforms []Transform
}

// Column returns the value of field f in row. ok is false when the profile
// does not map f; a mapped column beyond the end of row yields "".
func (p *Profile) Column(row []string, f Field) (value string, ok bool) {
	idx, ok := p.Columns[f]
	if !ok {
		return "", false
	}
	if idx < 0 || idx >= len(row) {
		return "", true
	}
	return row[idx], true
}

// Extract reads every mapped column of row and applies the transforms.
func (p *Profile) Extract(row []string) Fields {
	col := func(f Field) string {
		v, _ := p.Column(row, f)
		return v
	}

	fields := Fields{
		Date:     strings.TrimSpace(col(FieldDate)),
		Amount:   strings.TrimSpace(col(FieldAmount)),
		Memo:     col(FieldMemo),
		Payee:    col(FieldPayee),
		CheckNo:  col(FieldCheckNo),
		ID:       strings.TrimSpace(col(FieldID)),
		Credit:   strings.TrimSpace(col(FieldCredit)),
		Account:  strings.TrimSpace(col(FieldAccount)),
		Currency: strings.TrimSpace(col(FieldCurrency)),
	}
	for _, t := range p.Transforms {
		t(row, &fields)
	}
	return fields
}
