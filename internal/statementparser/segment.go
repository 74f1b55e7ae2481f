package statementparser

import (
	"regexp"
	"strings"
	"unicode"

	"fintools/bankfeed/internal/docextract"
)

// pendingEntry accumulates one logical statement transaction, possibly
// spanning several source lines, before resolution. It lives only inside a
// single parse invocation.
type pendingEntry struct {
	dateToken string
	mainLine  string
	extra     []string
	line      int // 1-based line number of the anchoring line
}

var multiSpaceRe = regexp.MustCompile(`\s+`)

// merged flattens the entry into one normalized text line for resolution.
func (e *pendingEntry) merged() string {
	parts := make([]string, 0, 1+len(e.extra))
	parts = append(parts, e.mainLine)
	parts = append(parts, e.extra...)
	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(strings.Join(parts, " "), " "))
}

// segmenter turns extracted lines into pending entries. The two statement
// flavors differ only here; sign and balance resolution stay shared.
type segmenter interface {
	segment(lines []docextract.Line) []pendingEntry
}

func segmenterFor(format Format) segmenter {
	if format == FormatTabular {
		return tabularSegmenter{}
	}
	return genericSegmenter{}
}

// terminatorRe matches page footers, column labels and account-holder
// boilerplate that close the current entry without opening a new one.
var terminatorRe = regexp.MustCompile(`(?i)^\s*(?:` +
	`page\s+\d+(?:\s+of\s+\d+)?` +
	`|continued\s+on\s+next\s+page` +
	`|date\s+(?:trans(?:action)?\s+)?description` +
	`|transaction\s+details` +
	`|account\s+(?:holder|number|summary)` +
	`|end\s+of\s+statement` +
	`|total\s+(?:debits?|credits?|withdrawals?|deposits?)` +
	`)\b`)

// genericSegmenter implements the idle/accumulating state machine: a
// date-anchored line opens a new entry, terminators finalize, everything else
// continues the open entry.
type genericSegmenter struct{}

var genericDateAnchorRe = regexp.MustCompile(`^(\d{1,2}[./\-]\d{1,2}[./\-]\d{2,4})(.*)$`)

func (genericSegmenter) segment(lines []docextract.Line) []pendingEntry {
	var entries []pendingEntry
	var current *pendingEntry

	flush := func() {
		if current != nil {
			entries = append(entries, *current)
			current = nil
		}
	}

	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if text == "" {
			continue
		}

		if m := genericDateAnchorRe.FindStringSubmatch(text); m != nil {
			rest := m[2]
			// A remainder starting with something that is neither blank nor
			// a letter is a continued row of the current entry, not a new
			// record.
			if current != nil && !opensNewEntry(rest) {
				current.extra = append(current.extra, text)
				continue
			}
			flush()
			current = &pendingEntry{
				dateToken: m[1],
				mainLine:  strings.TrimSpace(rest),
				line:      line.Number,
			}
			continue
		}

		// Dateless balance-marker trailers finalize the open entry and stand
		// alone, so they can never swallow a preceding transaction.
		if balanceMarkerRe.MatchString(text) {
			flush()
			entries = append(entries, pendingEntry{mainLine: text, line: line.Number})
			continue
		}

		if terminatorRe.MatchString(text) {
			flush()
			continue
		}

		if current != nil {
			current.extra = append(current.extra, text)
		}
	}

	flush()
	return entries
}

func opensNewEntry(rest string) bool {
	if rest == "" {
		return true
	}
	r := []rune(rest)[0]
	return r == ' ' || r == '\t' || unicode.IsLetter(r)
}

// tabularSegmenter is tuned to the fixed-column layout: a two-digit-year
// short date at line start, optionally behind a leading report artifact
// (table borders, markers) that is stripped before the date token.
type tabularSegmenter struct{}

var (
	tabularArtifactRe   = regexp.MustCompile(`^[^0-9A-Za-z]+`)
	tabularDateAnchorRe = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2})\b\s*(.*)$`)
)

func (tabularSegmenter) segment(lines []docextract.Line) []pendingEntry {
	var entries []pendingEntry
	var current *pendingEntry

	flush := func() {
		if current != nil {
			entries = append(entries, *current)
			current = nil
		}
	}

	for _, line := range lines {
		text := strings.TrimSpace(line.Text)
		if text == "" {
			continue
		}
		text = strings.TrimSpace(tabularArtifactRe.ReplaceAllString(text, ""))
		if text == "" {
			continue
		}

		if m := tabularDateAnchorRe.FindStringSubmatch(text); m != nil {
			flush()
			current = &pendingEntry{
				dateToken: m[1],
				mainLine:  strings.TrimSpace(m[2]),
				line:      line.Number,
			}
			continue
		}

		if balanceMarkerRe.MatchString(text) {
			flush()
			entries = append(entries, pendingEntry{mainLine: text, line: line.Number})
			continue
		}

		if terminatorRe.MatchString(text) {
			flush()
			continue
		}

		if current != nil {
			current.extra = append(current.extra, text)
		}
	}

	flush()
	return entries
}
