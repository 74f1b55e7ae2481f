// Package csvmapper maps delimited text to normalized transactions using a
// user-supplied column mapping.
package csvmapper

import (
	"fmt"
	"strings"

	"fintools/bankfeed/internal/dateutils"
	"fintools/bankfeed/internal/delimited"
	"fintools/bankfeed/internal/logging"
	"fintools/bankfeed/internal/models"
	"fintools/bankfeed/internal/moneyutils"
	"fintools/bankfeed/internal/parsererror"
)

// ColumnMapping names the header labels carrying each transaction field.
// Date, Description and Amount are required; the rest are optional.
type ColumnMapping struct {
	Date        string
	Description string
	Amount      string
	Category    string
	Account     string
	Status      string
	Type        string
	Notes       string
}

// Mapper converts mapped CSV text into a ParseResult.
type Mapper struct {
	mapping   ColumnMapping
	delimiter rune
	logger    logging.Logger
}

// NewMapper creates a Mapper for the given column mapping. A nil logger gets
// a default one, matching the other parsers.
func NewMapper(mapping ColumnMapping, delimiter rune, logger logging.Logger) *Mapper {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Mapper{mapping: mapping, delimiter: delimiter, logger: logger}
}

// Parse maps every data row of the delimited text to a ParsedTransaction.
//
// A required mapped column missing from the header row is a configuration
// error and fails the whole call before any rows are processed. After that,
// rows are independent: a blank required cell or an unparseable date/amount
// produces one LineError and the row is skipped; optional status/type values
// outside the known enumerations are dropped rather than propagated.
func (m *Mapper) Parse(text string) (models.ParseResult, error) {
	var result models.ParseResult

	rows, err := delimited.Parse(text, m.delimiter)
	if err != nil {
		return result, err
	}
	if len(rows) == 0 {
		return result, &parsererror.ConfigError{
			Field:  "input",
			Value:  "",
			Reason: "no header row found",
		}
	}

	columns, err := m.resolveColumns(rows[0].Fields)
	if err != nil {
		return result, err
	}

	for _, row := range rows[1:] {
		tx, rowErr := m.mapRow(row, columns)
		if rowErr != nil {
			result.Errors = append(result.Errors, models.LineError{
				Line:    row.Number,
				Message: rowErr.Error(),
			})
			continue
		}
		result.Transactions = append(result.Transactions, tx)
	}

	m.logger.Info("Mapped CSV rows to transactions",
		logging.Field{Key: logging.FieldParser, Value: "csv"},
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)},
		logging.Field{Key: logging.FieldErrorCount, Value: len(result.Errors)})

	return result, nil
}

// columnIndexes holds the resolved header positions; -1 means not mapped.
type columnIndexes struct {
	date, description, amount                int
	category, account, status, txType, notes int
}

func (m *Mapper) resolveColumns(header []string) (columnIndexes, error) {
	lookup := make(map[string]int, len(header))
	for i, label := range header {
		lookup[strings.ToLower(strings.TrimSpace(label))] = i
	}

	find := func(label string) int {
		if label == "" {
			return -1
		}
		if i, ok := lookup[strings.ToLower(strings.TrimSpace(label))]; ok {
			return i
		}
		return -1
	}

	cols := columnIndexes{
		date:        find(m.mapping.Date),
		description: find(m.mapping.Description),
		amount:      find(m.mapping.Amount),
		category:    find(m.mapping.Category),
		account:     find(m.mapping.Account),
		status:      find(m.mapping.Status),
		txType:      find(m.mapping.Type),
		notes:       find(m.mapping.Notes),
	}

	required := []struct {
		name, label string
		index       int
	}{
		{"date", m.mapping.Date, cols.date},
		{"description", m.mapping.Description, cols.description},
		{"amount", m.mapping.Amount, cols.amount},
	}
	for _, r := range required {
		if r.label == "" || r.index < 0 {
			return cols, &parsererror.ConfigError{
				Field:  r.name,
				Value:  r.label,
				Reason: "mapped column not found in header row",
			}
		}
	}
	return cols, nil
}

func (m *Mapper) mapRow(row delimited.Row, cols columnIndexes) (models.ParsedTransaction, error) {
	var tx models.ParsedTransaction

	cell := func(index int) string {
		if index < 0 || index >= len(row.Fields) {
			return ""
		}
		return strings.TrimSpace(row.Fields[index])
	}

	dateStr := cell(cols.date)
	description := cell(cols.description)
	amountStr := cell(cols.amount)
	if dateStr == "" || description == "" || amountStr == "" {
		return tx, fmt.Errorf("missing required cell (date='%s' description='%s' amount='%s')",
			dateStr, description, amountStr)
	}

	isoDate, err := dateutils.NormalizeDate(dateStr)
	if err != nil {
		return tx, &parsererror.ParseError{Parser: "csv", Field: "date", Value: dateStr, Err: err}
	}

	signed, err := moneyutils.SanitizeAmount(amountStr)
	if err != nil {
		return tx, &parsererror.ParseError{Parser: "csv", Field: "amount", Value: amountStr, Err: err}
	}

	tx = models.ParsedTransaction{
		SourceID:     fmt.Sprintf("csv-%d", row.Number),
		SourceLine:   row.Number,
		Date:         isoDate,
		Description:  description,
		Amount:       signed.Abs(),
		Type:         models.TypeFromSigned(signed),
		CategoryName: cell(cols.category),
		Account:      cell(cols.account),
		Notes:        cell(cols.notes),
	}

	// Out-of-enumeration values are dropped, not propagated as garbage.
	if status := strings.ToLower(cell(cols.status)); models.ValidStatus(status) {
		tx.Status = status
	}
	if txType := strings.ToLower(cell(cols.txType)); models.ValidType(txType) {
		tx.Type = txType
	}

	return tx, nil
}
