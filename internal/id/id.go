package id

import (
	"strings"

	"github.com/google/uuid"

	"github.com/bankcsv/bankcsv/internal/model"
)

// namespace is the fixed UUID namespace of generated ids.
var namespace = uuid.MustParse("6f1c3a52-5d8e-4c0b-9a57-2f3e8d41b7c9")

const dateFormat = "2006-01-02"

// Generate returns a deterministic id for r derived from its date, amount,
// memo and payee. The id is a 36-character name-based UUID.
//
// Two records with equal date, amount, memo and payee get the same id, even
// when they are genuinely distinct transactions.
func Generate(r model.Record) string {
	return uuid.NewSHA1(namespace, []byte(Key(r))).String()
}

// Key returns the canonical text Generate hashes.
func Key(r model.Record) string {
	return strings.Join([]string{
		r.Date.Format(dateFormat),
		r.Amount.String(),
		r.Memo,
		r.Payee,
	}, "\x1f")
}
