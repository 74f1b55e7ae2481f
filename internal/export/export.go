// Package export lands parsed transactions in CSV files, the handoff format
// for downstream bookkeeping tools.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"fintools/bankfeed/internal/logging"
	"fintools/bankfeed/internal/models"
)

// Writer serializes transactions with a configurable delimiter.
type Writer struct {
	delimiter rune
	logger    logging.Logger
}

// NewWriter creates a Writer. A zero delimiter falls back to comma; a nil
// logger gets a default one.
func NewWriter(delimiter rune, logger logging.Logger) *Writer {
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Writer{delimiter: delimiter, logger: logger}
}

// WriteTransactionsToCSV writes transactions to the given path, creating
// parent directories as needed. Amounts are rendered with two decimal
// places.
func (w *Writer) WriteTransactionsToCSV(transactions []models.ParsedTransaction, csvFile string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	w.logger.Info("Writing transactions to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})

	if dir := filepath.Dir(csvFile); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("error creating directory: %w", err)
		}
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			w.logger.WithError(closeErr).Warn("Failed to close file")
		}
	}()

	// Round so every amount serializes with a 2-digit fraction.
	rows := make([]models.ParsedTransaction, len(transactions))
	copy(rows, transactions)
	for i := range rows {
		rows[i].Amount = rows[i].Amount.Round(2)
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = w.delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	w.logger.Info("Successfully wrote transactions to CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(transactions)})
	return nil
}

// ReadTransactionsFromCSV reads back a CSV previously written by this
// package, as consumed by the categorize flow.
func (w *Writer) ReadTransactionsFromCSV(csvFile string) ([]models.ParsedTransaction, error) {
	file, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			w.logger.WithError(closeErr).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(file)
	reader.Comma = w.delimiter

	var rows []models.ParsedTransaction
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	w.logger.Info("Read transactions from CSV file",
		logging.Field{Key: logging.FieldFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return rows, nil
}
