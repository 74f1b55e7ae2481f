// Package docextract converts positioned text fragments from a document
// extraction collaborator into ordered text lines. When structured extraction
// is unavailable, a flat-text fallback produces an interchangeable result.
package docextract

import (
	"math"
	"sort"
	"strings"
)

// Fragment is one positioned text item: x grows to the right, y grows down
// the page in reading order.
type Fragment struct {
	X    float64
	Y    float64
	Text string
}

// Line is one extracted text line with its 1-based number in the document.
type Line struct {
	Number int
	Text   string
}

const (
	// Fragments whose quantized vertical position falls in the same bucket
	// belong to the same row.
	rowQuantum = 2.0

	// Approximate glyph advance used to estimate where a fragment ends.
	charWidth = 5.0

	// Horizontal gaps wider than this become a multi-space column separator
	// instead of a single space.
	columnGap = 12.0

	columnSeparator = "   "
)

// LinesFromPages builds ordered lines from page-grouped fragments: fragments
// are bucketed by quantized vertical position, each bucket sorted by
// horizontal position, and joined left to right with gap-derived spacing.
// Pages are separated by one blank line.
func LinesFromPages(pages [][]Fragment) []Line {
	var texts []string
	for pageIndex, page := range pages {
		if pageIndex > 0 {
			texts = append(texts, "")
		}
		texts = append(texts, pageLines(page)...)
	}
	return numberLines(texts)
}

// LinesFromText is the pure fallback used when structured extraction fails:
// it splits a flat text blob on line terminators. Consumers cannot tell the
// two producers apart.
func LinesFromText(raw string) []Line {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	return numberLines(strings.Split(raw, "\n"))
}

func pageLines(page []Fragment) []string {
	if len(page) == 0 {
		return nil
	}

	buckets := make(map[int][]Fragment)
	for _, f := range page {
		key := int(math.Round(f.Y / rowQuantum))
		buckets[key] = append(buckets[key], f)
	}

	keys := make([]int, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Ints(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		row := buckets[key]
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].X < row[j].X
		})
		lines = append(lines, joinRow(row))
	}
	return lines
}

// joinRow concatenates a row's fragments, approximating tabular layout: a
// small horizontal gap becomes one space, a larger one becomes a column
// separator.
func joinRow(row []Fragment) string {
	var b strings.Builder
	for i, f := range row {
		if i > 0 {
			prev := row[i-1]
			gap := f.X - (prev.X + float64(len(prev.Text))*charWidth)
			if gap > columnGap {
				b.WriteString(columnSeparator)
			} else {
				b.WriteString(" ")
			}
		}
		b.WriteString(f.Text)
	}
	return b.String()
}

func numberLines(texts []string) []Line {
	lines := make([]Line, len(texts))
	for i, text := range texts {
		lines[i] = Line{Number: i + 1, Text: text}
	}
	return lines
}
