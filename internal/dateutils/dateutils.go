// Package dateutils normalizes locale-ambiguous date tokens into canonical
// ISO dates.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// LayoutISO is the canonical output layout (YYYY-MM-DD).
const LayoutISO = "2006-01-02"

var (
	dotForm     = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{2}|\d{4})$`)
	genericForm = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{2}|\d{4})$`)
	multiSpace  = regexp.MustCompile(`\s+`)
)

// monthNameLayouts cover written-out month forms found in statement exports.
var monthNameLayouts = []string{
	"2 January 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"02 Jan 2006",
}

// fallbackLayouts are tried last, after the heuristic forms.
var fallbackLayouts = []string{
	LayoutISO,
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z",
}

// NormalizeDate converts a date token into canonical YYYY-MM-DD form.
//
// It tries, in order: the DD.MM.(YY|YYYY) dot form; written month-name forms;
// a generic slash/dash/dot 3-part form with 2-digit-year expansion and a
// day/month swap when the month slot is out of range; and finally a direct
// layout parse. Day-first order is assumed for ambiguous 3-part tokens.
// An error is returned only when none of these produce a valid calendar date;
// callers treat that as a line-level error, never a fatal one.
func NormalizeDate(token string) (string, error) {
	s := CleanDateString(token)
	if s == "" {
		return "", fmt.Errorf("empty date token")
	}

	if m := dotForm.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year := expandYear(m[3])
		if iso, ok := isoIfValid(year, month, day); ok {
			return iso, nil
		}
	}

	for _, layout := range monthNameLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(LayoutISO), nil
		}
	}

	if m := genericForm.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year := expandYear(m[3])
		// The out-of-range component always lands in the day slot.
		if month > 12 && day <= 12 {
			day, month = month, day
		}
		if iso, ok := isoIfValid(year, month, day); ok {
			return iso, nil
		}
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(LayoutISO), nil
		}
	}

	return "", fmt.Errorf("unable to parse date: %s", token)
}

// CleanDateString trims and collapses whitespace in a date token.
func CleanDateString(dateStr string) string {
	return multiSpace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD).
func ToISODate(date time.Time) string {
	return date.Format(LayoutISO)
}

// expandYear widens a 2-digit year: below 70 is 2000s, 70 and up is 1900s.
func expandYear(s string) int {
	n, _ := strconv.Atoi(s)
	if len(s) == 2 {
		if n < 70 {
			return 2000 + n
		}
		return 1900 + n
	}
	return n
}

// isoIfValid builds an ISO date string when year/month/day form a real
// calendar date. time.Date normalizes overflow (Feb 30 becomes Mar 2), so the
// round-trip check rejects anything that shifted.
func isoIfValid(year, month, day int) (string, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false
	}
	return t.Format(LayoutISO), true
}
