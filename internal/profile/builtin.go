package profile

import "strings"

const (
	dayMonthYear = "2.1.2006"
	isoDate      = "2006-1-2"

	cp1252    = "cp1252"
	latin1    = "iso-8859-1"
	semicolon = ';'
)

// EasybankCreditCard parses Easybank credit card exports:
//
//	account;description|[foreign amount|]id;date;value date;amount;currency
func EasybankCreditCard() *Profile {
	return &Profile{
		Name:       "easybank-creditcard",
		Delimiter:  semicolon,
		DateFormat: dayMonthYear,
		Charset:    cp1252,
		Columns: map[Field]int{
			FieldAccount:  0,
			FieldMemo:     1,
			FieldDate:     2,
			FieldAmount:   4,
			FieldCurrency: 5,
		},
		CollapseWhitespace: true,
		Transforms:         []Transform{SplitCardDescription},
	}
}

// EasybankGiro parses Easybank giro account exports:
//
//	account;description;date;value date;amount;currency
func EasybankGiro() *Profile {
	return &Profile{
		Name:       "easybank-giro",
		Delimiter:  semicolon,
		DateFormat: dayMonthYear,
		Charset:    cp1252,
		Columns: map[Field]int{
			FieldAccount:  0,
			FieldMemo:     1,
			FieldDate:     2,
			FieldAmount:   4,
			FieldCurrency: 5,
		},
		SynthesizeID:       true,
		CollapseWhitespace: true,
		Transforms:         []Transform{DecomposeDescription},
	}
}

// SelectEasybank picks the credit card profile when the description column
// of the first line contains "|", and the giro profile otherwise.
func SelectEasybank(firstLine string) *Profile {
	fields := strings.Split(firstLine, string(semicolon))
	if len(fields) > 1 && strings.Contains(fields[1], "|") {
		return EasybankCreditCard()
	}
	return EasybankGiro()
}

// Easybank returns the Easybank bank with its giro and credit card formats.
func Easybank() *Bank {
	return &Bank{
		Name:     "easybank",
		BankID:   "Easybank",
		Profiles: []*Profile{EasybankGiro(), EasybankCreditCard()},
		Select:   SelectEasybank,
	}
}

// IngDiBa returns the ING-DiBa bank. Its exports carry separate debit and
// credit columns and a header line:
//
//	account;text;date;currency;debit;credit
func IngDiBa() *Bank {
	return &Bank{
		Name:   "ing-diba",
		BankID: "ING-DiBa",
		Profiles: []*Profile{{
			Name:       "ing-diba",
			Delimiter:  semicolon,
			DateFormat: dayMonthYear,
			Charset:    latin1,
			Columns: map[Field]int{
				FieldAccount:  0,
				FieldMemo:     1,
				FieldDate:     2,
				FieldCurrency: 3,
				FieldAmount:   4,
				FieldCredit:   5,
			},
			HeaderRows:   1,
			SynthesizeID: true,
			Transforms:   []Transform{FoldDebitCredit},
		}},
	}
}

// Livebank returns the Livebank bank. Everything from column 9 on belongs to
// the payee; rows with a zero amount are informational.
func Livebank() *Bank {
	const payeeCol = 9
	return &Bank{
		Name:   "livebank",
		BankID: "Livebank",
		Profiles: []*Profile{{
			Name:       "livebank",
			Delimiter:  semicolon,
			DateFormat: isoDate,
			Charset:    latin1,
			Columns: map[Field]int{
				FieldAccount:  0,
				FieldDate:     2,
				FieldCurrency: 6,
				FieldAmount:   7,
				FieldMemo:     8,
				FieldPayee:    payeeCol,
			},
			HeaderRows:         1,
			SkipZeroAmount:     true,
			SynthesizeID:       true,
			CollapseWhitespace: true,
			Transforms:         []Transform{JoinPayeeFrom(payeeCol)},
		}},
	}
}

// Oberbank returns the Oberbank bank. Its exports carry no account number,
// so the account defaults to "default".
func Oberbank() *Bank {
	return &Bank{
		Name:           "oberbank",
		BankID:         "Oberbank",
		DefaultAccount: "default",
		Profiles: []*Profile{{
			Name:       "oberbank",
			Delimiter:  semicolon,
			DateFormat: dayMonthYear,
			Charset:    cp1252,
			Columns: map[Field]int{
				FieldDate:     0,
				FieldAmount:   2,
				FieldCurrency: 3,
				FieldMemo:     10,
			},
			HeaderRows:         1,
			SynthesizeID:       true,
			CollapseWhitespace: true,
		}},
	}
}

// Raiffeisen returns the Raiffeisen bank. Its exports carry no account
// number and the caller must supply one.
func Raiffeisen() *Bank {
	return &Bank{
		Name:            "raiffeisen",
		BankID:          "Raiffeisen",
		AccountRequired: true,
		Profiles: []*Profile{{
			Name:       "raiffeisen",
			Delimiter:  semicolon,
			DateFormat: dayMonthYear,
			Charset:    cp1252,
			Columns: map[Field]int{
				FieldDate:     0,
				FieldMemo:     1,
				FieldAmount:   3,
				FieldCurrency: 4,
			},
			SynthesizeID:       true,
			CollapseWhitespace: true,
		}},
	}
}
