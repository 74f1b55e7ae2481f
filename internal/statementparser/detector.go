package statementparser

import (
	"regexp"

	"fintools/bankfeed/internal/docextract"
)

// Format selects the entry-segmentation strategy for a statement.
type Format int

const (
	// FormatGeneric is the line-accumulation fallback that works on any
	// date-anchored statement layout.
	FormatGeneric Format = iota

	// FormatTabular is the fixed-column layout with an explicit
	// date/description/withdrawal/deposit/balance header.
	FormatTabular
)

func (f Format) String() string {
	if f == FormatTabular {
		return "tabular"
	}
	return "generic"
}

var (
	tabularHeaderRe = regexp.MustCompile(
		`(?i)^\s*date\s+(?:trans(?:action)?\s+)?description\s+(?:withdrawals?|debits?)\s+(?:deposits?|credits?)\s+balance\s*$`)

	corroboratingRe = regexp.MustCompile(
		`(?i)statement\s+period|interim\s+(?:account\s+)?statement|account\s+statement\s+for`)
)

// DetectFormat picks the tabular strategy only when both the column-header
// signature and a corroborating statement signature are present. A
// false-positive format match silently corrupts sign resolution, so either
// signal alone falls back to the generic parser.
func DetectFormat(lines []docextract.Line) Format {
	headerSeen := false
	corroborated := false
	for _, line := range lines {
		if !headerSeen && tabularHeaderRe.MatchString(line.Text) {
			headerSeen = true
		}
		if !corroborated && corroboratingRe.MatchString(line.Text) {
			corroborated = true
		}
		if headerSeen && corroborated {
			return FormatTabular
		}
	}
	return FormatGeneric
}
