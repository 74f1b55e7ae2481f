package statementparser

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintools/bankfeed/internal/docextract"
	"fintools/bankfeed/internal/models"
	"fintools/bankfeed/internal/parsererror"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseResolvesSignsFromBalanceDeltas(t *testing.T) {
	p := NewStatementParser(nil)

	text := "Account Statement for John Smith\n" +
		"01.01.2024 Opening Balance 1,000.00\n" +
		"02.01.2024 Card payment coffee shop 50.00 950.00\n" +
		"03.01.2024 Salary received 250.00 1,200.00\n"

	result, err := p.Parse(Input{RawText: text, Account: "Checking"})
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Transactions, 2)

	first := result.Transactions[0]
	assert.Equal(t, "pdf-3", first.SourceID)
	assert.Equal(t, "2024-01-02", first.Date)
	assert.Equal(t, "Card payment coffee shop", first.Description)
	assert.True(t, amount("50.00").Equal(first.Amount))
	assert.Equal(t, models.TypeExpense, first.Type)
	assert.Equal(t, "Checking", first.Account)

	second := result.Transactions[1]
	assert.Equal(t, "2024-01-03", second.Date)
	assert.True(t, amount("250.00").Equal(second.Amount))
	assert.Equal(t, models.TypeIncome, second.Type)
}

func TestParseKeywordSignFallbackBeforeFirstBalance(t *testing.T) {
	p := NewStatementParser(nil)

	// No balance has been seen when the first entry resolves, so its sign
	// comes from the debit keyword; the second entry uses the delta.
	text := "02.01.2024 Card payment grocery 45.20 1,954.80\n" +
		"03.01.2024 Refund received 20.00 1,974.80\n"

	result, err := p.Parse(Input{RawText: text})
	require.NoError(t, err)
	require.Len(t, result.Transactions, 2)
	assert.Equal(t, models.TypeExpense, result.Transactions[0].Type)
	assert.True(t, amount("45.20").Equal(result.Transactions[0].Amount))
	assert.Equal(t, models.TypeIncome, result.Transactions[1].Type)
	assert.True(t, amount("20.00").Equal(result.Transactions[1].Amount))
}

func TestParseDeltaWinsOverExplicitAmountWithWarning(t *testing.T) {
	p := NewStatementParser(nil)

	text := "01.01.2024 Opening Balance 100.00\n" +
		"02.01.2024 Payment 60.00 50.00\n"

	result, err := p.Parse(Input{RawText: text})
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	require.Len(t, result.Errors, 1)

	tx := result.Transactions[0]
	assert.True(t, amount("50.00").Equal(tx.Amount), "delta takes precedence, got %s", tx.Amount)
	assert.Equal(t, models.TypeExpense, tx.Type)
	assert.Contains(t, result.Errors[0].Message, "disagrees")
	assert.Equal(t, 2, result.Errors[0].Line)
}

func TestParseAccumulatesContinuationLines(t *testing.T) {
	p := NewStatementParser(nil)

	text := "01.01.2024 Opening Balance 500.00\n" +
		"02.01.2024 POS purchase\n" +
		"REF 123456\n" +
		"25.00 475.00\n"

	result, err := p.Parse(Input{RawText: text})
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)

	tx := result.Transactions[0]
	assert.Equal(t, "POS purchase REF 123456", tx.Description)
	assert.True(t, amount("25.00").Equal(tx.Amount))
	assert.Equal(t, models.TypeExpense, tx.Type)
}

func TestParseTerminatorClosesEntry(t *testing.T) {
	p := NewStatementParser(nil)

	text := "01.01.2024 Opening Balance 500.00\n" +
		"02.01.2024 Card payment 25.00 475.00\n" +
		"Page 1 of 2\n" +
		"orphaned footer text\n"

	result, err := p.Parse(Input{RawText: text})
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	assert.NotContains(t, result.Transactions[0].Description, "orphaned")
	assert.NotContains(t, result.Transactions[0].Description, "Page")
}

func TestParseTrailingBalanceMarkerDoesNotSwallowEntry(t *testing.T) {
	p := NewStatementParser(nil)

	text := "01.01.2024 Opening Balance 1,000.00\n" +
		"02.01.2024 Card payment coffee 50.00 950.00\n" +
		"Closing Balance 950.00\n"

	result, err := p.Parse(Input{RawText: text})
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Transactions, 1)

	tx := result.Transactions[0]
	assert.Equal(t, "Card payment coffee", tx.Description)
	assert.True(t, amount("50.00").Equal(tx.Amount))
	assert.Equal(t, models.TypeExpense, tx.Type)
}

func TestParseDatelessMarkerSeedsBalance(t *testing.T) {
	p := NewStatementParser(nil)

	text := "Balance brought forward 1,000.00\n" +
		"02.01.2024 Card purchase 50.00 950.00\n"

	result, err := p.Parse(Input{RawText: text})
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Transactions, 1)
	assert.True(t, amount("50.00").Equal(result.Transactions[0].Amount))
	assert.Equal(t, models.TypeExpense, result.Transactions[0].Type)
}

func TestParseBalanceOnlyEntriesUseDeltas(t *testing.T) {
	p := NewStatementParser(nil)

	// Each entry carries a single trailing balance; the running balances
	// 1000 -> 950 -> 1200 yield a 50.00 expense and a 250.00 income.
	text := "Balance brought forward 1,000.00\n" +
		"02.01.2024 Coffee shop 950.00\n" +
		"03.01.2024 Payroll 1,200.00\n"

	result, err := p.Parse(Input{RawText: text})
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Transactions, 2)

	first := result.Transactions[0]
	assert.Equal(t, "Coffee shop", first.Description)
	assert.True(t, amount("50.00").Equal(first.Amount))
	assert.Equal(t, models.TypeExpense, first.Type)

	second := result.Transactions[1]
	assert.Equal(t, "Payroll", second.Description)
	assert.True(t, amount("250.00").Equal(second.Amount))
	assert.Equal(t, models.TypeIncome, second.Type)
}

func TestParseEntryWithoutNumbersIsLineError(t *testing.T) {
	p := NewStatementParser(nil)

	text := "01.01.2024 Opening Balance 500.00\n" +
		"02.01.2024 Mystery entry with no numbers\n"

	result, err := p.Parse(Input{RawText: text})
	require.NoError(t, err)
	assert.Empty(t, result.Transactions)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Line)
	assert.Contains(t, result.Errors[0].Message, "no amount")
}

func TestParseNoExtractableText(t *testing.T) {
	p := NewStatementParser(nil)

	_, err := p.Parse(Input{RawText: "   \n\n  "})
	require.Error(t, err)
	var extractErr *parsererror.ExtractionError
	assert.ErrorAs(t, err, &extractErr)
}

func TestParseIsIdempotent(t *testing.T) {
	p := NewStatementParser(nil)

	text := "01.01.2024 Opening Balance 1,000.00\n" +
		"02.01.2024 Card payment 50.00 950.00\n" +
		"03.01.2024 Deposit 300.00 1,250.00\n"

	first, err := p.Parse(Input{RawText: text})
	require.NoError(t, err)
	second, err := p.Parse(Input{RawText: text})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseTabularStatement(t *testing.T) {
	p := NewStatementParser(nil)

	text := "ACME BANK\n" +
		"Statement Period: 01/02/24 to 29/02/24\n" +
		"Date Description Withdrawals Deposits Balance\n" +
		"01/02/24 OPENING BALANCE 1,000.00\n" +
		"02/02/24 GROCERY STORE 45.20 954.80\n" +
		"| 03/02/24 PAYROLL DEPOSIT 500.00 1,454.80\n" +
		"CLOSING BALANCE 1,454.80\n"

	result, err := p.Parse(Input{RawText: text, Account: "Main"})
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Transactions, 2)

	first := result.Transactions[0]
	assert.Equal(t, "2024-02-02", first.Date)
	assert.Equal(t, "GROCERY STORE", first.Description)
	assert.True(t, amount("45.20").Equal(first.Amount))
	assert.Equal(t, models.TypeExpense, first.Type)

	second := result.Transactions[1]
	assert.Equal(t, "2024-02-03", second.Date)
	assert.True(t, amount("500.00").Equal(second.Amount))
	assert.Equal(t, models.TypeIncome, second.Type)
	assert.Equal(t, "Main", second.Account)
}

func TestParseFromPages(t *testing.T) {
	p := NewStatementParser(nil)

	pages := [][]docextract.Fragment{{
		{X: 10, Y: 10, Text: "01.01.2024"},
		{X: 80, Y: 10, Text: "Opening Balance"},
		{X: 200, Y: 10, Text: "100.00"},
		{X: 10, Y: 20, Text: "02.01.2024"},
		{X: 80, Y: 20, Text: "Card payment"},
		{X: 200, Y: 20, Text: "40.00"},
		{X: 260, Y: 20, Text: "60.00"},
	}}

	result, err := p.Parse(Input{Pages: pages})
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	assert.True(t, amount("40.00").Equal(result.Transactions[0].Amount))
	assert.Equal(t, models.TypeExpense, result.Transactions[0].Type)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		text     []string
		expected Format
	}{
		{
			"header and corroboration",
			[]string{"Statement Period: Jan", "Date Description Withdrawals Deposits Balance"},
			FormatTabular,
		},
		{
			"header alone is not enough",
			[]string{"Date Description Withdrawals Deposits Balance"},
			FormatGeneric,
		},
		{
			"corroboration alone is not enough",
			[]string{"Statement Period: Jan"},
			FormatGeneric,
		},
		{
			"debits and credits variant",
			[]string{"Interim Account Statement", "Date Transaction Description Debits Credits Balance"},
			FormatTabular,
		},
		{"plain text", []string{"hello", "world"}, FormatGeneric},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var lines []docextract.Line
			for i, text := range tc.text {
				lines = append(lines, docextract.Line{Number: i + 1, Text: text})
			}
			assert.Equal(t, tc.expected, DetectFormat(lines))
		})
	}
}
