// Package parser defines the common parser interface and a factory over the
// concrete input kinds, keeping the commands thin.
package parser

import (
	"io"

	"fintools/bankfeed/internal/logging"
	"fintools/bankfeed/internal/models"
)

// Parser reads one input document and returns the normalized parse result.
// Row-level problems land in the result's Errors; the returned error is
// reserved for failures that invalidate the whole document.
type Parser interface {
	Parse(r io.Reader) (models.ParseResult, error)
}

// LoggerConfigurable is implemented by parsers whose logger can be swapped
// after construction.
type LoggerConfigurable interface {
	SetLogger(logger logging.Logger)
}
