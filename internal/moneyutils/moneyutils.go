// Package moneyutils normalizes locale-ambiguous amount tokens into signed
// decimal values.
package moneyutils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// currencyNoise matches currency symbols, whitespace and the apostrophes some
// banks use as thousands separators.
var currencyNoise = regexp.MustCompile(`[€$£¥₣₤₧₹₺₽₩฿₫₲₴₸₼₪'\s]`)

var hasDigit = regexp.MustCompile(`\d`)

// currencyCodes are stripped wherever they appear in an amount token.
var currencyCodes = []string{"CHF", "EUR", "USD", "GBP"}

// SanitizeAmount converts an amount token into a signed decimal.
//
// A wrapping "(...)", a trailing "-", or a trailing "DR" (any case) makes the
// value negative; a trailing "CR" forces it non-negative. The decimal
// separator is whichever of "." or "," occurs last in the cleaned token; the
// other one is removed as a thousands separator. A token ending in its
// separator with no fractional digits is treated as an integer. An error is
// returned only when no digits remain.
func SanitizeAmount(token string) (decimal.Decimal, error) {
	s := strings.TrimSpace(token)
	if s == "" {
		return decimal.Zero, fmt.Errorf("no digits in amount '%s'", token)
	}

	negative := false
	forceNonNegative := false

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = currencyNoise.ReplaceAllString(s, "")
	for _, code := range currencyCodes {
		s = strings.ReplaceAll(s, code, "")
		s = strings.ReplaceAll(s, strings.ToLower(code), "")
	}

	switch upper := strings.ToUpper(s); {
	case strings.HasSuffix(upper, "DR"):
		negative = true
		s = s[:len(s)-2]
	case strings.HasSuffix(upper, "CR"):
		forceNonNegative = true
		s = s[:len(s)-2]
	}
	s = strings.TrimSpace(s)

	if strings.HasSuffix(s, "-") {
		negative = true
		s = s[:len(s)-1]
	}
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}
	s = strings.TrimPrefix(s, "+")

	if !hasDigit.MatchString(s) {
		return decimal.Zero, fmt.Errorf("no digits in amount '%s'", token)
	}

	s = normalizeSeparators(s)

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse amount '%s': %w", token, err)
	}

	if forceNonNegative {
		return value.Abs(), nil
	}
	if negative {
		return value.Neg(), nil
	}
	return value, nil
}

// normalizeSeparators resolves "." vs "," into a single canonical decimal
// point: the separator occurring last wins, every other occurrence is a
// grouping character.
func normalizeSeparators(s string) string {
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")

	var decSep, thouSep string
	switch {
	case lastDot > lastComma:
		decSep, thouSep = ".", ","
	case lastComma > lastDot:
		decSep, thouSep = ",", "."
	default:
		return s // no separators at all
	}

	s = strings.ReplaceAll(s, thouSep, "")
	idx := strings.LastIndex(s, decSep)
	intPart := strings.ReplaceAll(s[:idx], decSep, "")
	frac := s[idx+1:]
	if frac == "" {
		return intPart
	}
	return intPart + "." + frac
}
