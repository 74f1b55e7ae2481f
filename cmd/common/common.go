// Package common holds the processing helpers shared by the conversion
// commands.
package common

import (
	"fmt"
	"os"

	"fintools/bankfeed/internal/export"
	"fintools/bankfeed/internal/logging"
	"fintools/bankfeed/internal/models"
	"fintools/bankfeed/internal/parser"
)

// ProcessFile parses the input file with the given parser and writes the
// resulting transactions to the output CSV. Line errors are logged and do
// not fail the run; the run fails only when nothing parses at all.
func ProcessFile(p parser.Parser, inputFile, outputFile string, delimiter rune, logger logging.Logger) error {
	if inputFile == "" {
		return fmt.Errorf("input file is required")
	}
	if outputFile == "" {
		return fmt.Errorf("output file is required")
	}

	file, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("error opening input file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logger.WithError(closeErr).Warn("Failed to close file")
		}
	}()

	result, err := p.Parse(file)
	if err != nil {
		return fmt.Errorf("error parsing %s: %w", inputFile, err)
	}

	LogLineErrors(result.Errors, logger)

	writer := export.NewWriter(delimiter, logger)
	if err := writer.WriteTransactionsToCSV(result.Transactions, outputFile); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}

	logger.Info("Conversion completed",
		logging.Field{Key: logging.FieldInputFile, Value: inputFile},
		logging.Field{Key: logging.FieldOutputFile, Value: outputFile},
		logging.Field{Key: logging.FieldCount, Value: len(result.Transactions)},
		logging.Field{Key: logging.FieldErrorCount, Value: len(result.Errors)})
	return nil
}

// LogLineErrors reports per-line parse problems without failing the run.
func LogLineErrors(errs []models.LineError, logger logging.Logger) {
	for _, lineErr := range errs {
		logger.Warn(lineErr.Message,
			logging.Field{Key: logging.FieldLine, Value: lineErr.Line})
	}
}
