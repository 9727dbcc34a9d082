// Package decompose splits the free-text description of domestic transfer
// statements into check number, memo and payee.
//
// A description looks like
//
//	<memo> XX/123456789 <transaction details>
//
// where the two-letter/nine-digit token carries the check number and the
// details optionally hold routing information (BIC, IBAN or a legacy account
// number with bank code) next to the counterparty name.
package decompose

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/bankcsv/bankcsv/internal/normalize"
)

const (
	bicPattern  = `[A-Z]{6}[A-Z0-9]{2}(?:[A-Z0-9]{3})?`
	ibanPattern = `[A-Z]{2}[0-9]{2}[A-Z0-9]{10,34}`
)

var (
	checkToken = regexp.MustCompile(`\b[A-Z]{2}/([0-9]{9})\b`)

	// <name> <IBAN> [<BIC>]
	ibanTrailing = regexp.MustCompile(`^(.*?)\s*(` + ibanPattern + `)(?:\s+(` + bicPattern + `))?$`)

	// [<BIC>] <IBAN> <name>
	ibanLeading = regexp.MustCompile(`(` + bicPattern + `)?\s?(` + ibanPattern + `)\s(.*)`)

	bicOnly = regexp.MustCompile(`^` + bicPattern + `$`)

	// <text> <digits> <digits> <text>; group 1 ends in a non-digit so the
	// first number is never cut short.
	legacyAccount = regexp.MustCompile(`(^|.*\D)([0-9]{5,})\s([0-9]{5,})(\D.*|$)`)
)

// Parts is the result of decomposing a description.
type Parts struct {
	CheckNo string
	Memo    string
	Payee   string
}

// Description decomposes text into check number, memo and payee. It never
// fails: when nothing can be recognized the details are kept verbatim as
// payee, and without a check token memo and payee are the same text.
func Description(text string) Parts {
	text = normalize.Whitespace(text)

	parts := Parts{CheckNo: CheckNo(text)}
	segments := split(text)

	parts.Memo = normalize.Whitespace(segments[0])
	if len(segments) < 2 || segments[1] == "" {
		parts.Payee = parts.Memo
		return parts
	}

	parts.Payee = normalize.Whitespace(payee(segments[1]))
	return parts
}

// CheckNo returns the check number carried by the first check token in
// text, without leading zeros, or "" when there is none.
func CheckNo(text string) string {
	m := checkToken.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return ""
	}
	return strconv.Itoa(n)
}

// split cuts text at every check token and trims the segments. The result
// always has at least one element.
func split(text string) []string {
	raw := checkToken.Split(text, -1)
	out := make([]string, len(raw))
	for i, s := range raw {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

// payee renders the transaction details, trying IBAN/BIC first, then legacy
// account numbers, and falling back to the details as given.
func payee(details string) string {
	if m := ibanTrailing.FindStringSubmatch(details); m != nil {
		name := strings.TrimSpace(m[1])
		if name != "" && !bicOnly.MatchString(name) {
			return withRouting(name, m[2], m[3])
		}
	}
	if m := ibanLeading.FindStringSubmatch(details); m != nil {
		return withRouting(m[3], m[2], m[1])
	}
	if m := legacyAccount.FindStringSubmatch(details); m != nil {
		if p, ok := legacyPayee(m[1], m[2], m[3], m[4]); ok {
			return p
		}
	}
	return details
}

func withRouting(name, iban, bic string) string {
	name = strings.TrimSpace(name)
	if bic != "" {
		return fmt.Sprintf("%s (%s %s)", name, iban, bic)
	}
	return fmt.Sprintf("%s (%s)", name, iban)
}

// legacyPayee renders "<text> (<account> <bank code>)". The bank code is the
// shorter number; on a tie the first number is taken as the bank code. At
// least one number must have six or more digits.
func legacyPayee(before, first, second, after string) (string, bool) {
	if len(first) < 6 && len(second) < 6 {
		return "", false
	}

	text := strings.TrimSpace(before)
	if text == "" {
		text = strings.TrimSpace(after)
	}

	account, code := second, first
	if len(first) > len(second) {
		account, code = first, second
	}
	return fmt.Sprintf("%s (%s %s)", text, account, code), true
}
