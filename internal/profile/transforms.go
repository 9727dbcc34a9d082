package profile

import (
	"fmt"
	"strings"

	"github.com/bankcsv/bankcsv/internal/decompose"
	"github.com/bankcsv/bankcsv/internal/normalize"
)

// SplitCardDescription handles credit card descriptions of the form
// "text|foreign amount|id" or "text|id". The memo becomes "text (foreign
// amount)" or "text", and the last part becomes the id.
func SplitCardDescription(_ []string, f *Fields) {
	parts := strings.Split(f.Memo, "|")
	if len(parts) == 3 {
		f.Memo = fmt.Sprintf("%s (%s)", parts[0], parts[1])
	} else {
		f.Memo = parts[0]
	}
	f.ID = strings.TrimSpace(parts[len(parts)-1])
}

// DecomposeDescription splits the memo column into check number, memo and
// payee.
func DecomposeDescription(_ []string, f *Fields) {
	parts := decompose.Description(f.Memo)
	f.CheckNo = parts.CheckNo
	f.Memo = parts.Memo
	f.Payee = parts.Payee
}

// FoldDebitCredit merges separate debit and credit columns into the amount.
// The amount column holds the debit; when it is zero the credit is used,
// otherwise the debit is negated.
func FoldDebitCredit(_ []string, f *Fields) {
	debit := f.Amount
	if d, err := normalize.ParseAmount(debit); err == nil && d.IsZero() {
		f.Amount = f.Credit
		return
	}
	if !strings.HasPrefix(debit, "-") {
		f.Amount = "-" + debit
	}
}

// JoinPayeeFrom returns a transform that sets the payee to all columns from
// col to the end of the row, joined with ", ".
func JoinPayeeFrom(col int) Transform {
	return func(row []string, f *Fields) {
		if col >= len(row) {
			f.Payee = ""
			return
		}
		f.Payee = strings.Join(row[col:], ", ")
	}
}
