package csvmapper

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintools/bankfeed/internal/models"
	"fintools/bankfeed/internal/parsererror"
)

var testMapping = ColumnMapping{
	Date:        "Date",
	Description: "Description",
	Amount:      "Amount",
	Category:    "Category",
	Account:     "Account",
	Status:      "Status",
	Type:        "Type",
	Notes:       "Notes",
}

func TestParseMapsRows(t *testing.T) {
	mapper := NewMapper(testMapping, ',', nil)

	text := "Date,Description,Amount,Category\n" +
		"15.03.2024,Grocery store,-45.20,Food\n" +
		"16.03.2024,Salary,\"2,500.00\",\n"

	result, err := mapper.Parse(text)
	require.NoError(t, err)
	require.Len(t, result.Transactions, 2)
	assert.Empty(t, result.Errors)

	first := result.Transactions[0]
	assert.Equal(t, "csv-2", first.SourceID)
	assert.Equal(t, 2, first.SourceLine)
	assert.Equal(t, "2024-03-15", first.Date)
	assert.Equal(t, "Grocery store", first.Description)
	assert.True(t, decimal.RequireFromString("45.20").Equal(first.Amount))
	assert.Equal(t, models.TypeExpense, first.Type)
	assert.Equal(t, "Food", first.CategoryName)

	second := result.Transactions[1]
	assert.Equal(t, "csv-3", second.SourceID)
	assert.True(t, decimal.RequireFromString("2500.00").Equal(second.Amount))
	assert.Equal(t, models.TypeIncome, second.Type)
}

func TestParseHeaderLookupIsCaseInsensitive(t *testing.T) {
	mapper := NewMapper(testMapping, ',', nil)

	result, err := mapper.Parse("DATE,description,AMOUNT\n15.03.2024,Coffee,-4.50\n")
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
}

func TestParseMissingMappedColumn(t *testing.T) {
	mapper := NewMapper(testMapping, ',', nil)

	_, err := mapper.Parse("Date,Description\n15.03.2024,Coffee\n")
	require.Error(t, err)
	var configErr *parsererror.ConfigError
	assert.ErrorAs(t, err, &configErr)
}

func TestParseEmptyInput(t *testing.T) {
	mapper := NewMapper(testMapping, ',', nil)

	_, err := mapper.Parse("")
	require.Error(t, err)
	var configErr *parsererror.ConfigError
	assert.ErrorAs(t, err, &configErr)
}

func TestParseRowErrorsDoNotAbortBatch(t *testing.T) {
	mapper := NewMapper(testMapping, ',', nil)

	text := "Date,Description,Amount\n" +
		"15.03.2024,Coffee,-4.50\n" +
		"16.03.2024,Broken,\n" +
		"not-a-date,Broken too,10.00\n" +
		"17.03.2024,Lunch,-12.00\n"

	result, err := mapper.Parse(text)
	require.NoError(t, err)
	assert.Len(t, result.Transactions, 2)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 3, result.Errors[0].Line)
	assert.Equal(t, 4, result.Errors[1].Line)
}

func TestParseRowErrorsNameFieldAndValue(t *testing.T) {
	mapper := NewMapper(testMapping, ',', nil)

	text := "Date,Description,Amount\n" +
		"not-a-date,Coffee,10.00\n" +
		"16.03.2024,Tea,abc\n"

	result, err := mapper.Parse(text)
	require.NoError(t, err)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0].Message, "date='not-a-date'")
	assert.Contains(t, result.Errors[1].Message, "amount='abc'")
}

func TestParseEnumHandling(t *testing.T) {
	mapper := NewMapper(testMapping, ',', nil)

	text := "Date,Description,Amount,Status,Type\n" +
		"15.03.2024,Refund,-20.00,Completed,income\n" +
		"16.03.2024,Shop,-20.00,bogus,bogus\n"

	result, err := mapper.Parse(text)
	require.NoError(t, err)
	require.Len(t, result.Transactions, 2)

	// A valid explicit type overrides the sign-derived one; status is
	// normalized to lower case.
	assert.Equal(t, models.TypeIncome, result.Transactions[0].Type)
	assert.Equal(t, models.StatusCompleted, result.Transactions[0].Status)

	// Out-of-enumeration values are dropped.
	assert.Equal(t, models.TypeExpense, result.Transactions[1].Type)
	assert.Empty(t, result.Transactions[1].Status)
}

func TestParseSemicolonDelimiter(t *testing.T) {
	mapper := NewMapper(testMapping, ';', nil)

	result, err := mapper.Parse("Date;Description;Amount\n15.03.2024;Coffee;-4.50\n")
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "Coffee", result.Transactions[0].Description)
}
