package parser

import (
	"fmt"
	"io"

	"fintools/bankfeed/internal/csvmapper"
	"fintools/bankfeed/internal/logging"
	"fintools/bankfeed/internal/models"
	"fintools/bankfeed/internal/statementparser"
)

// Type names the kinds of input the factory knows how to parse.
type Type string

const (
	CSV       Type = "csv"
	Statement Type = "statement"
)

// Options carries the per-kind configuration a parser needs.
type Options struct {
	Logger logging.Logger

	// CSV parsing.
	Mapping   csvmapper.ColumnMapping
	Delimiter rune

	// Statement parsing.
	Account string
}

// GetParser returns a parser for the given input kind.
func GetParser(parserType Type, opts Options) (Parser, error) {
	switch parserType {
	case CSV:
		return newCSVAdapter(opts), nil
	case Statement:
		return newStatementAdapter(opts), nil
	default:
		return nil, fmt.Errorf("unknown parser type: %s", parserType)
	}
}

type csvAdapter struct {
	BaseParser
	mapping   csvmapper.ColumnMapping
	delimiter rune
}

func newCSVAdapter(opts Options) *csvAdapter {
	return &csvAdapter{
		BaseParser: NewBaseParser(opts.Logger),
		mapping:    opts.Mapping,
		delimiter:  opts.Delimiter,
	}
}

func (a *csvAdapter) Parse(r io.Reader) (models.ParseResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.ParseResult{}, fmt.Errorf("error reading input: %w", err)
	}
	mapper := csvmapper.NewMapper(a.mapping, a.delimiter, a.GetLogger())
	return mapper.Parse(string(data))
}

type statementAdapter struct {
	BaseParser
	account string
}

func newStatementAdapter(opts Options) *statementAdapter {
	return &statementAdapter{
		BaseParser: NewBaseParser(opts.Logger),
		account:    opts.Account,
	}
}

func (a *statementAdapter) Parse(r io.Reader) (models.ParseResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.ParseResult{}, fmt.Errorf("error reading input: %w", err)
	}
	sp := statementparser.NewStatementParser(a.GetLogger())
	return sp.Parse(statementparser.Input{
		RawText: string(data),
		Account: a.account,
	})
}
