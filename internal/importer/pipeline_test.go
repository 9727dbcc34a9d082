package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankcsv/bankcsv/internal/config"
	"github.com/bankcsv/bankcsv/internal/model"
	"github.com/bankcsv/bankcsv/internal/profile"
	"github.com/bankcsv/bankcsv/internal/statement"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseTestdata(t *testing.T, name string, b *profile.Bank, s config.Settings) *Result {
	t.Helper()
	res, err := New(zerolog.Nop()).ParseFile("../../testdata/"+name, b, s)
	require.NoError(t, err)
	return res
}

func TestParseFile_EasybankCreditCard(t *testing.T) {
	res := parseTestdata(t, "easybank-creditcard.csv", profile.Easybank(), nil)
	stmt := res.Statement

	assert.Equal(t, "easybank-creditcard", res.Profile.Name)
	assert.Equal(t, "12345678901", stmt.AccountID)
	assert.Equal(t, "EUR", stmt.Currency)
	assert.Equal(t, "Easybank", stmt.BankID)
	require.Len(t, stmt.Records, 3)

	assert.Equal(t, "Some vendor/info", stmt.Records[0].Memo)
	assert.Equal(t, "12345678909876543212345", stmt.Records[0].ID)
	assert.Equal(t, "-5.99", stmt.Records[0].Amount.StringFixed(2))
	assert.Equal(t, date(2013, 7, 2), stmt.Records[0].Date)

	assert.Equal(t, "Another vendor", stmt.Records[1].Memo)
	assert.Equal(t, model.TxnCredit, stmt.Records[1].Type)

	assert.Equal(t, "Someone (GBP 22,89)", stmt.Records[2].Memo)

	assert.True(t, stmt.StartBalance.IsZero())
	assert.Equal(t, "2.31", stmt.EndBalance.StringFixed(2))
	assert.Equal(t, date(2013, 2, 19), stmt.StartDate)
	assert.Equal(t, date(2013, 7, 2), stmt.EndDate)
}

func TestParseFile_EasybankGiro(t *testing.T) {
	res := parseTestdata(t, "easybank-giro.csv", profile.Easybank(), nil)
	stmt := res.Statement

	assert.Equal(t, "easybank-giro", res.Profile.Name)
	assert.Equal(t, "AT123456789012345678", stmt.AccountID)
	require.Len(t, stmt.Records, 10)

	first := stmt.Records[0]
	assert.Equal(t, "1", first.CheckNo)
	assert.Equal(t, "Einbehaltene KESt", first.Memo)
	assert.Equal(t, "Einbehaltene KESt", first.Payee)

	receiver := stmt.Records[2]
	assert.Equal(t, "3", receiver.CheckNo)
	assert.Equal(t, "Usage, specific reason", receiver.Memo)
	assert.Equal(t, "Payment receiver (AT098765432109876543 ABCDEF1G235)", receiver.Payee)

	// Decoded from cp1252.
	assert.Equal(t, "Abbuchung Einzugsermächtigung", stmt.Records[3].Memo)
	assert.Equal(t, "Amazon *Mktplce EU-AT (01234567890 01234)", stmt.Records[3].Payee)

	assert.Equal(t, "-1001.00", stmt.Records[4].Amount.StringFixed(2))
	assert.Equal(t, "10", stmt.Records[9].CheckNo)

	ids := map[string]bool{}
	for _, r := range stmt.Records {
		assert.NotEmpty(t, r.ID)
		ids[r.ID] = true
	}
	assert.Len(t, ids, 10)

	assert.Equal(t, "-1562.86", stmt.EndBalance.StringFixed(2))
	assert.Equal(t, date(2014, 1, 1), stmt.StartDate)
	assert.Equal(t, date(2015, 10, 7), stmt.EndDate)
}

func TestParseFile_IngDiBa(t *testing.T) {
	stmt := parseTestdata(t, "ing-diba.csv", profile.IngDiBa(), nil).Statement

	assert.Equal(t, "12345678001", stmt.AccountID)
	assert.Equal(t, "ING-DiBa", stmt.BankID)
	require.Len(t, stmt.Records, 6)

	assert.Equal(t, "12.23", stmt.Records[0].Amount.StringFixed(2))
	assert.Equal(t, "-34.56", stmt.Records[1].Amount.StringFixed(2))
	assert.Equal(t, "-1500.00", stmt.Records[4].Amount.StringFixed(2))
	assert.Equal(t, "Prämie Foo", stmt.Records[5].Memo)

	assert.Equal(t, "-992.03", stmt.EndBalance.StringFixed(2))
	assert.Equal(t, date(2013, 8, 13), stmt.StartDate)
	assert.Equal(t, date(2013, 12, 31), stmt.EndDate)
}

func TestParseFile_Livebank(t *testing.T) {
	stmt := parseTestdata(t, "livebank.csv", profile.Livebank(), nil).Statement

	assert.Equal(t, "12345678", stmt.AccountID)
	require.Len(t, stmt.Records, 3, "zero amount row is skipped")

	assert.Equal(t, "Datenträger-Umsatz", stmt.Records[0].Memo)
	assert.Equal(t, "A name, A text, REF: XXXXXXXXXXXXXXXXXXXXXXXXXXXX", stmt.Records[0].Payee)
	assert.Equal(t, "A text, A reference, A text", stmt.Records[1].Payee)
	assert.Equal(t, "5000.00", stmt.Records[2].Amount.StringFixed(2))

	assert.Equal(t, "5050.00", stmt.EndBalance.StringFixed(2))
	assert.Equal(t, date(2013, 6, 5), stmt.StartDate)
	assert.Equal(t, date(2013, 7, 3), stmt.EndDate)
}

func TestParseFile_Oberbank(t *testing.T) {
	stmt := parseTestdata(t, "oberbank.csv", profile.Oberbank(), nil).Statement

	assert.Equal(t, "default", stmt.AccountID)
	assert.Equal(t, "EUR", stmt.Currency)
	require.Len(t, stmt.Records, 5)

	assert.Equal(t, "Zahlungsreferenz, Empfängername, Adresszeile1, Adresszeile2", stmt.Records[0].Memo)
	assert.Equal(t, "Empfängername, SCOR, Verwendungszweck", stmt.Records[3].Memo)
	assert.Equal(t, stmt.Records[3].Memo, stmt.Records[4].Memo)
	assert.NotEqual(t, stmt.Records[3].ID, stmt.Records[4].ID, "amounts differ")

	assert.Equal(t, "-9.00", stmt.EndBalance.StringFixed(2))
	assert.Equal(t, date(2017, 3, 15), stmt.StartDate)
	assert.Equal(t, date(2017, 3, 15), stmt.EndDate)
}

func TestParseFile_Raiffeisen(t *testing.T) {
	stmt := parseTestdata(t, "raiffeisen.csv", profile.Raiffeisen(), config.Settings{config.KeyAccount: "AT001"}).Statement

	assert.Equal(t, "AT001", stmt.AccountID)
	assert.Equal(t, "Raiffeisen", stmt.BankID)
	require.Len(t, stmt.Records, 7)

	assert.Equal(t, "0.58", stmt.Records[0].Amount.StringFixed(2))
	assert.Equal(t, "0,125 % p.a. Habenzinsen ab 01.04.13", stmt.Records[0].Memo)
	assert.Equal(t, "Entgelt Kontoführung", stmt.Records[3].Memo)
	assert.Equal(t, "ELBA-INTERNET VOM 29.06 UM 09:16 Empfänger: A person Verwendungszweck: Invoice number 10", stmt.Records[4].Memo)

	assert.Equal(t, "-157.89", stmt.EndBalance.StringFixed(2))
	assert.Equal(t, date(2013, 6, 28), stmt.StartDate)
	assert.Equal(t, date(2013, 7, 4), stmt.EndDate)
}

func TestParseFile_RaiffeisenWithoutAccount(t *testing.T) {
	_, err := New(zerolog.Nop()).ParseFile("../../testdata/raiffeisen.csv", profile.Raiffeisen(), nil)
	assert.ErrorIs(t, err, ErrAccountRequired)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := New(zerolog.Nop()).ParseFile("../../testdata/nope.csv", profile.Oberbank(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening export")
}

func TestParseFile_UnknownCharset(t *testing.T) {
	_, err := New(zerolog.Nop()).ParseFile("../../testdata/oberbank.csv", profile.Oberbank(), config.Settings{config.KeyCharset: "klingon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "klingon")
}

func TestParseFile_SettingsOverrideExport(t *testing.T) {
	s := config.Settings{config.KeyAccount: "mine", config.KeyBank: "EASYATW1"}
	stmt := parseTestdata(t, "easybank-creditcard.csv", profile.Easybank(), s).Statement
	assert.Equal(t, "mine", stmt.AccountID)
	assert.Equal(t, "EASYATW1", stmt.BankID)
	assert.Equal(t, "EUR", stmt.Currency)
}

func TestParseFile_Deterministic(t *testing.T) {
	a := parseTestdata(t, "oberbank.csv", profile.Oberbank(), nil).Statement
	b := parseTestdata(t, "oberbank.csv", profile.Oberbank(), nil).Statement
	for i := range a.Records {
		assert.Equal(t, a.Records[i].ID, b.Records[i].ID)
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	prof := profile.IngDiBa().Profiles[0]
	in := "Konto;Buchungstext;Buchungsdatum;Währung;Soll;Haben\n"

	_, err := New(zerolog.Nop()).Parse(strings.NewReader(in), prof, statement.Header{})
	assert.ErrorIs(t, err, statement.ErrEmptyStatement)

	p := New(zerolog.Nop())
	p.AllowEmpty = true
	stmt, err := p.Parse(strings.NewReader(in), prof, statement.Header{AccountID: "seeded"})
	require.NoError(t, err)
	assert.Empty(t, stmt.Records)
	assert.Equal(t, "seeded", stmt.AccountID)
	assert.True(t, stmt.StartDate.IsZero())
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := New(zerolog.Nop()).Parse(strings.NewReader(""), profile.EasybankGiro(), statement.Header{})
	assert.ErrorIs(t, err, statement.ErrEmptyStatement)
}

func TestParse_AbortsOnBadRow(t *testing.T) {
	in := "01.07.2013;ok;01.07.2013;-1,00;EUR\n" +
		"31.02.2013;bad;31.02.2013;-1,00;EUR\n"
	_, err := New(zerolog.Nop()).Parse(strings.NewReader(in), profile.Raiffeisen().Profiles[0], statement.Header{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedDate)
	assert.Contains(t, err.Error(), "row 2")
}

func TestParse_RowsInFileOrder(t *testing.T) {
	in := "03.07.2013;c;03.07.2013;3,00;EUR\n" +
		"01.07.2013;a;01.07.2013;1,00;EUR\n" +
		"02.07.2013;b;02.07.2013;2,00;EUR\n"
	stmt, err := New(zerolog.Nop()).Parse(strings.NewReader(in), profile.Raiffeisen().Profiles[0], statement.Header{})
	require.NoError(t, err)

	var memos []string
	for _, r := range stmt.Records {
		memos = append(memos, r.Memo)
	}
	assert.Equal(t, []string{"c", "a", "b"}, memos)
	assert.Equal(t, date(2013, 7, 1), stmt.StartDate)
	assert.Equal(t, date(2013, 7, 3), stmt.EndDate)
	assert.Equal(t, "6.00", stmt.EndBalance.StringFixed(2))
}

func TestParseBank_SelectsFromFirstLine(t *testing.T) {
	giro := "AT1;Zinsen HABEN AT/000000002;01.01.2014;01.01.2014;1,23;EUR\n"
	res, err := New(zerolog.Nop()).ParseBank(strings.NewReader(giro), profile.Easybank(), nil)
	require.NoError(t, err)
	assert.Equal(t, "easybank-giro", res.Profile.Name)
	require.Len(t, res.Statement.Records, 1, "first line is still parsed")
	assert.Equal(t, "2", res.Statement.Records[0].CheckNo)

	card := "1;Vendor|123;02.07.2013;03.07.2013;-5,99;EUR"
	res, err = New(zerolog.Nop()).ParseBank(strings.NewReader(card), profile.Easybank(), nil)
	require.NoError(t, err)
	assert.Equal(t, "easybank-creditcard", res.Profile.Name)
	assert.Equal(t, "123", res.Statement.Records[0].ID)
}

func TestSeed(t *testing.T) {
	h, err := Seed(profile.Oberbank(), nil)
	require.NoError(t, err)
	assert.Equal(t, statement.Header{AccountID: "default", BankID: "Oberbank"}, h)

	h, err = Seed(profile.Oberbank(), config.Settings{config.KeyAccount: "giro", config.KeyBank: "OBKLAT2L"})
	require.NoError(t, err)
	assert.Equal(t, statement.Header{AccountID: "giro", BankID: "OBKLAT2L"}, h)

	_, err = Seed(profile.Raiffeisen(), config.Settings{config.KeyAccount: "  "})
	assert.ErrorIs(t, err, ErrAccountRequired)
}
