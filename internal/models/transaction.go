// Package models provides the data structures shared by the ingestion pipeline.
package models

import (
	"github.com/shopspring/decimal"
)

// ParsedTransaction is the normalized output unit of ingestion. It is not yet
// persisted; de-duplication by SourceID and storage happen downstream.
type ParsedTransaction struct {
	SourceID     string          `csv:"SourceId"`     // e.g. "csv-12" or "pdf-34", stable per source position
	SourceLine   int             `csv:"SourceLine"`   // 1-based origin line, diagnostics only
	Date         string          `csv:"Date"`         // canonical YYYY-MM-DD
	Description  string          `csv:"Description"`  // never empty
	Amount       decimal.Decimal `csv:"Amount"`       // non-negative magnitude; sign lives in Type
	Type         string          `csv:"Type"`         // "income" or "expense"
	CategoryID   string          `csv:"CategoryId"`   // optional enrichment
	CategoryName string          `csv:"CategoryName"` // optional enrichment
	Account      string          `csv:"Account"`      // optional enrichment
	Status       string          `csv:"Status"`       // one of the Status* constants if set
	Notes        string          `csv:"Notes"`        // optional free text
}

// IsIncome reports whether the underlying signed amount was non-negative.
func (t *ParsedTransaction) IsIncome() bool {
	return t.Type == TypeIncome
}

// SignedAmount reconstructs the signed value from magnitude and type.
func (t *ParsedTransaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// LineError reports a problem with a single source row or statement entry.
// Parsers accumulate these and keep going; one bad record never aborts a batch.
type LineError struct {
	Line    int    `csv:"Line"`
	Message string `csv:"Message"`
}

// ParseResult is the sole contract between the ingestion pipeline and its
// callers: the normalized transactions plus the line-level errors collected
// along the way.
type ParseResult struct {
	Transactions []ParsedTransaction
	Errors       []LineError
}

// TypeFromSigned derives the transaction type from a signed amount.
// Zero counts as income, matching the "delta >= 0" convention.
func TypeFromSigned(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return TypeExpense
	}
	return TypeIncome
}
