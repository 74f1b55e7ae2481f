// Package parsererror defines the error types shared by the ingestion parsers.
package parsererror

import "fmt"

// ConfigError represents a configuration problem that aborts an import before
// any rows are processed, such as a column mapping pointing at a header that
// does not exist.
type ConfigError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid import configuration: %s='%s': %s", e.Field, e.Value, e.Reason)
}

// ParseError represents a failure to parse a specific value during ingestion.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExtractionError represents a document whose text could not be turned into
// usable lines at all. Per-entry problems are reported as line errors instead.
type ExtractionError struct {
	Source string
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed for %s: %s", e.Source, e.Reason)
}
