// Package delimited tokenizes delimited text into rows of fields. It has no
// notion of column semantics; header interpretation belongs to the callers.
package delimited

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Row is one parsed record with its 1-based ordinal in the input.
type Row struct {
	Number int
	Fields []string
}

// Parse splits raw delimited text into rows, honoring RFC4180-style quoting:
// a doubled quote inside a quoted field is a literal quote, fields may embed
// the delimiter, and both \n and \r\n terminate rows. A trailing row without
// a final terminator is flushed, not discarded. A leading UTF-8 BOM is
// stripped. Rows may have varying field counts, and a stray bare quote is
// kept as a literal character rather than aborting the batch.
func Parse(text string, comma rune) ([]Row, error) {
	text = strings.TrimPrefix(text, "\ufeff")

	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows []Row
	number := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed delimited input: %w", err)
		}
		number++
		rows = append(rows, Row{Number: number, Fields: fields})
	}
	return rows, nil
}
