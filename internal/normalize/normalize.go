package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Amount rewrites a locale-formatted amount ("100.234,23") into a plain
// decimal string ("100234.23"). Thousands separators are dropped, then the
// decimal comma becomes a dot. Input must already be free of currency symbols.
//
// Amount is not idempotent on its own output when that output contains a dot.
func Amount(s string) string {
	s = strings.ReplaceAll(s, ".", "")
	return strings.ReplaceAll(s, ",", ".")
}

// ParseAmount normalizes s and parses it as an exact decimal.
func ParseAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(Amount(s)))
}

// Whitespace collapses every run of whitespace into a single space and trims
// both ends. All-whitespace input yields "".
func Whitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
