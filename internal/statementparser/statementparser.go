// Package statementparser extracts transactions from bank-statement text. It
// detects the statement layout, segments the lines into logical entries and
// resolves each entry's amount and sign, preferring running-balance deltas
// over keyword heuristics.
package statementparser

import (
	"strings"

	"fintools/bankfeed/internal/docextract"
	"fintools/bankfeed/internal/logging"
	"fintools/bankfeed/internal/models"
	"fintools/bankfeed/internal/parsererror"
)

const sourcePrefix = "pdf"

// Input carries one statement to parse. Pages holds positioned fragments from
// structured extraction; when empty, RawText is used as the flat-text
// fallback.
type Input struct {
	Pages   [][]docextract.Fragment
	RawText string
	Account string
}

// StatementParser turns extracted statement text into transactions.
type StatementParser struct {
	logger logging.Logger
}

// NewStatementParser creates a parser. A nil logger gets a default one.
func NewStatementParser(logger logging.Logger) *StatementParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &StatementParser{logger: logger}
}

// Parse runs the full extraction pipeline on one statement. Entries that
// cannot be resolved become line errors; the call only fails outright when
// the input contains no extractable text at all. Each invocation starts from
// a fresh running balance, so repeated calls on the same input are
// independent.
func (p *StatementParser) Parse(input Input) (models.ParseResult, error) {
	var result models.ParseResult

	var lines []docextract.Line
	if len(input.Pages) > 0 {
		lines = docextract.LinesFromPages(input.Pages)
	} else {
		lines = docextract.LinesFromText(input.RawText)
	}

	if !hasText(lines) {
		return result, &parsererror.ExtractionError{
			Source: "statement",
			Reason: "no extractable text in document",
		}
	}

	format := DetectFormat(lines)
	entries := segmenterFor(format).segment(lines)

	var bal runningBalance
	for _, entry := range entries {
		tx, errs := resolveEntry(entry, &bal, input.Account, sourcePrefix)
		result.Errors = append(result.Errors, errs...)
		if tx != nil {
			result.Transactions = append(result.Transactions, *tx)
		}
	}

	p.logger.Info("Parsed statement text",
		logging.Field{Key: logging.FieldParser, Value: "statement"},
		logging.Field{Key: logging.FieldFormat, Value: format.String()},
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)},
		logging.Field{Key: logging.FieldErrorCount, Value: len(result.Errors)})

	return result, nil
}

func hasText(lines []docextract.Line) bool {
	for _, line := range lines {
		if strings.TrimSpace(line.Text) != "" {
			return true
		}
	}
	return false
}
