package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintools/bankfeed/internal/csvmapper"
	"fintools/bankfeed/internal/models"
)

func TestGetParserUnknownType(t *testing.T) {
	_, err := GetParser("xml", Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown parser type")
}

func TestCSVAdapterParsesReader(t *testing.T) {
	p, err := GetParser(CSV, Options{
		Mapping: csvmapper.ColumnMapping{
			Date:        "Date",
			Description: "Description",
			Amount:      "Amount",
		},
		Delimiter: ',',
	})
	require.NoError(t, err)

	input := "Date,Description,Amount\n15.03.2024,Coffee,-4.50\n"
	result, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, models.TypeExpense, result.Transactions[0].Type)
}

func TestStatementAdapterParsesReader(t *testing.T) {
	p, err := GetParser(Statement, Options{Account: "Main"})
	require.NoError(t, err)

	input := "01.01.2024 Opening Balance 100.00\n" +
		"02.01.2024 Card payment 25.00 75.00\n"
	result, err := p.Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "Main", result.Transactions[0].Account)
}

func TestBaseParserSetLogger(t *testing.T) {
	base := NewBaseParser(nil)
	original := base.GetLogger()
	require.NotNil(t, original)

	base.SetLogger(nil)
	assert.Equal(t, original, base.GetLogger())
}
