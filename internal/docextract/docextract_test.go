package docextract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesFromPagesBucketsByRow(t *testing.T) {
	pages := [][]Fragment{{
		{X: 10, Y: 10.0, Text: "15.03.2024"},
		{X: 80, Y: 10.9, Text: "Coffee"},
		{X: 10, Y: 20.0, Text: "16.03.2024"},
	}}

	lines := LinesFromPages(pages)
	require.Len(t, lines, 2)
	assert.Equal(t, 1, lines[0].Number)
	assert.Equal(t, "15.03.2024 Coffee", lines[0].Text)
	assert.Equal(t, "16.03.2024", lines[1].Text)
}

func TestLinesFromPagesOrdersFragmentsByX(t *testing.T) {
	pages := [][]Fragment{{
		{X: 80, Y: 10, Text: "second"},
		{X: 10, Y: 10, Text: "first"},
	}}

	lines := LinesFromPages(pages)
	require.Len(t, lines, 1)
	assert.Equal(t, "first second", lines[0].Text)
}

func TestLinesFromPagesWideGapBecomesColumnSeparator(t *testing.T) {
	// "Date" ends around x=30; the next fragment starts far beyond the
	// column-gap threshold.
	pages := [][]Fragment{{
		{X: 10, Y: 10, Text: "Date"},
		{X: 200, Y: 10, Text: "945.80"},
	}}

	lines := LinesFromPages(pages)
	require.Len(t, lines, 1)
	assert.Equal(t, "Date   945.80", lines[0].Text)
}

func TestLinesFromPagesBlankLineBetweenPages(t *testing.T) {
	pages := [][]Fragment{
		{{X: 10, Y: 10, Text: "page one"}},
		{{X: 10, Y: 10, Text: "page two"}},
	}

	lines := LinesFromPages(pages)
	require.Len(t, lines, 3)
	assert.Equal(t, "page one", lines[0].Text)
	assert.Equal(t, "", lines[1].Text)
	assert.Equal(t, "page two", lines[2].Text)
	assert.Equal(t, 3, lines[2].Number)
}

func TestLinesFromTextNormalizesLineEndings(t *testing.T) {
	lines := LinesFromText("one\r\ntwo\rthree")
	require.Len(t, lines, 3)
	assert.Equal(t, "one", lines[0].Text)
	assert.Equal(t, "two", lines[1].Text)
	assert.Equal(t, "three", lines[2].Text)
	assert.Equal(t, 2, lines[1].Number)
}

func TestProducersAreInterchangeable(t *testing.T) {
	pages := [][]Fragment{{
		{X: 10, Y: 10, Text: "15.03.2024 Coffee 4.50 995.50"},
	}}

	fromPages := LinesFromPages(pages)
	fromText := LinesFromText("15.03.2024 Coffee 4.50 995.50")
	assert.Equal(t, fromText, fromPages)
}
