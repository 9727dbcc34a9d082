package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankcsv/bankcsv/internal/model"
	"github.com/bankcsv/bankcsv/internal/statement"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func testStatement(t *testing.T) *model.Statement {
	t.Helper()
	s := &model.Statement{
		AccountID: "AT123456789012345678",
		Currency:  "EUR",
		BankID:    "Easybank",
		Records: []model.Record{
			{
				Date:    date(2014, 1, 4),
				Amount:  decimal.RequireFromString("-123.45"),
				Memo:    "Usage, specific reason",
				Payee:   "Payment receiver (AT098765432109876543 ABCDEF1G235)",
				CheckNo: "3",
				Type:    model.TxnDebit,
				ID:      "a",
			},
			{
				Date:   date(2014, 1, 1),
				Amount: decimal.RequireFromString("1.2"),
				Memo:   "Zinsen HABEN",
				Type:   model.TxnCredit,
				ID:     "b",
			},
		},
	}
	require.NoError(t, statement.Recalculate(s))
	return s
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testStatement(t), "CSV"))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, strings.Split(Header, ","), rows[0])
	assert.Equal(t, []string{"a", "2014-01-04", "DEBIT", "-123.45", "Payment receiver (AT098765432109876543 ABCDEF1G235)", "Usage, specific reason", "3"}, rows[1])
	assert.Equal(t, []string{"b", "2014-01-01", "CREDIT", "1.20", "", "Zinsen HABEN", ""}, rows[2])
}

func TestWriteCSV_NoRecords(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, Header+"\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testStatement(t), FormatJSON))

	var got struct {
		AccountID    string `json:"account_id"`
		BankID       string `json:"bank_id"`
		StartBalance string `json:"start_balance"`
		EndBalance   string `json:"end_balance"`
		StartDate    string `json:"start_date"`
		EndDate      string `json:"end_date"`
		Records      []struct {
			Amount  string `json:"amount"`
			CheckNo string `json:"check_no"`
			Type    string `json:"type"`
			ID      string `json:"id"`
		} `json:"records"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "AT123456789012345678", got.AccountID)
	assert.Equal(t, "Easybank", got.BankID)
	assert.Equal(t, "0.00", got.StartBalance)
	assert.Equal(t, "-122.25", got.EndBalance)
	assert.Equal(t, "2014-01-01", got.StartDate)
	assert.Equal(t, "2014-01-04", got.EndDate)
	require.Len(t, got.Records, 2)
	assert.Equal(t, "-123.45", got.Records[0].Amount)
	assert.Equal(t, "3", got.Records[0].CheckNo)
	assert.Equal(t, "DEBIT", got.Records[0].Type)
	assert.Equal(t, "b", got.Records[1].ID)
}

func TestWriteJSON_EmptyStatement(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, &model.Statement{AccountID: "x"}))

	out := buf.String()
	assert.Contains(t, out, `"records": []`)
	assert.NotContains(t, out, "end_balance")
	assert.NotContains(t, out, "start_date")
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, &model.Statement{}, "ofx")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, CheckFormat(""))
	assert.NoError(t, CheckFormat("Json"))
	assert.ErrorIs(t, CheckFormat("qif"), ErrUnknownFormat)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".csv", Extension("csv"))
	assert.Equal(t, ".csv", Extension(""))
	assert.Equal(t, ".json", Extension("JSON"))
}
