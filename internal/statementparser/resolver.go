package statementparser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"fintools/bankfeed/internal/dateutils"
	"fintools/bankfeed/internal/models"
	"fintools/bankfeed/internal/moneyutils"
)

// runningBalance carries the previously observed balance across the entries
// of a single parse invocation. Once a balance has been seen, balance deltas
// take precedence over keyword heuristics for sign resolution.
type runningBalance struct {
	cents int64
	seen  bool
}

func (b *runningBalance) observe(v decimal.Decimal) {
	b.cents = toCents(v)
	b.seen = true
}

func toCents(v decimal.Decimal) int64 {
	return v.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func fromCents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}

var (
	// amountTokenRe matches amount-like tokens: optional parentheses,
	// separators, a mandatory 2-digit fraction and an optional CR/DR suffix.
	// The fraction requirement keeps 4-digit-year date tokens out.
	amountTokenRe = regexp.MustCompile(`(?i)\(?\d[\d,'.]*[.,]\d{2}\b\)?-?(?:\s*(?:cr|dr)\b)?`)

	// trailingPairRe anchors an (amount, balance) pair at end of line.
	trailingPairRe = regexp.MustCompile(
		`(?i)(\(?\d[\d,'.]*[.,]\d{2}\b\)?-?(?:\s*(?:cr|dr)\b)?)\s+` +
			`(\(?\d[\d,'.]*[.,]\d{2}\b\)?-?(?:\s*(?:cr|dr)\b)?)\s*$`)

	balanceMarkerRe = regexp.MustCompile(
		`(?i)\b(?:opening|closing|beginning|ending|previous)\s+balance\b` +
			`|\bbalance\s+(?:brought|carried)\s+forward\b`)

	explicitCreditRe = regexp.MustCompile(`(?i)cr\s*$`)
)

var creditKeywords = []string{
	"deposit", "credit", "refund", "interest", "salary", "received", "incoming",
}

var debitKeywords = []string{
	"payment", "purchase", "withdrawal", "fee", "charge", "debit", "transfer",
}

// resolveEntry finalizes one pending entry into zero or one transaction plus
// any line errors, updating the running balance as it goes.
//
// Sign resolution precedence: a non-zero balance delta wins; an explicit
// amount token falls back to credit/debit keyword scanning; a pure balance
// marker only seeds the running balance; anything without a usable number is
// a line error. A >1-cent disagreement between the explicit amount and the
// balance delta is reported as a warning-class line error while the
// transaction is still emitted.
func resolveEntry(entry pendingEntry, bal *runningBalance, account, sourcePrefix string) (*models.ParsedTransaction, []models.LineError) {
	merged := entry.merged()

	// Pure balance markers update state and produce no transaction. The
	// check is scoped to the anchoring line; continuation text can never
	// turn a real entry into a marker.
	if balanceMarkerRe.MatchString(entry.mainLine) {
		amountTok, balanceTok := extractTokens(merged)
		tok := balanceTok
		if tok == "" {
			tok = amountTok
		}
		if tok != "" {
			if v, err := moneyutils.SanitizeAmount(tok); err == nil {
				bal.observe(v)
			}
		}
		return nil, nil
	}

	amountTok, balanceTok := extractTokens(merged)
	if amountTok == "" && balanceTok == "" {
		return nil, []models.LineError{{
			Line:    entry.line,
			Message: fmt.Sprintf("no amount found in entry '%s'", truncate(merged, 60)),
		}}
	}

	isoDate, err := dateutils.NormalizeDate(entry.dateToken)
	if err != nil {
		return nil, []models.LineError{{
			Line:    entry.line,
			Message: fmt.Sprintf("invalid date '%s'", entry.dateToken),
		}}
	}

	var balance decimal.Decimal
	balanceKnown := false
	if balanceTok != "" {
		if v, sanitizeErr := moneyutils.SanitizeAmount(balanceTok); sanitizeErr == nil {
			balance = v
			balanceKnown = true
		}
	}

	var explicit decimal.Decimal
	explicitKnown := false
	if amountTok != "" {
		if v, sanitizeErr := moneyutils.SanitizeAmount(amountTok); sanitizeErr == nil {
			explicit = v
			explicitKnown = true
		}
	}

	var signedCents int64
	resolved := false
	deltaUsed := false

	if balanceKnown && bal.seen {
		delta := toCents(balance) - bal.cents
		if delta != 0 {
			signedCents = delta
			resolved = true
			deltaUsed = true
		}
	}
	if !resolved && explicitKnown {
		signedCents = toCents(keywordSigned(explicit, amountTok, merged))
		resolved = true
	}

	if balanceKnown {
		bal.observe(balance)
	}

	if !resolved {
		if balanceKnown {
			// First balance observation (or an unchanged balance) seeds the
			// state without producing a transaction.
			return nil, nil
		}
		return nil, []models.LineError{{
			Line:    entry.line,
			Message: fmt.Sprintf("no usable amount in entry '%s'", truncate(merged, 60)),
		}}
	}

	var errs []models.LineError
	if deltaUsed && explicitKnown {
		explicitCents := toCents(explicit.Abs())
		deltaCents := abs64(signedCents)
		if diff := explicitCents - deltaCents; diff > 1 || diff < -1 {
			errs = append(errs, models.LineError{
				Line: entry.line,
				Message: fmt.Sprintf("amount %s disagrees with balance delta %s",
					explicit.Abs().StringFixed(2), fromCents(deltaCents).StringFixed(2)),
			})
		}
	}

	signed := fromCents(signedCents)
	tx := &models.ParsedTransaction{
		SourceID:    fmt.Sprintf("%s-%d", sourcePrefix, entry.line),
		SourceLine:  entry.line,
		Date:        isoDate,
		Description: entryDescription(merged, amountTok, balanceTok),
		Amount:      signed.Abs(),
		Type:        models.TypeFromSigned(signed),
		Account:     account,
	}
	return tx, errs
}

// extractTokens finds the entry's amount and balance tokens: a trailing pair
// anchored at end of line, or else the last two amount-like tokens anywhere,
// or else a single token treated as balance-only.
func extractTokens(merged string) (amountTok, balanceTok string) {
	if m := trailingPairRe.FindStringSubmatch(merged); m != nil {
		return m[1], m[2]
	}
	all := amountTokenRe.FindAllString(merged, -1)
	switch {
	case len(all) >= 2:
		return all[len(all)-2], all[len(all)-1]
	case len(all) == 1:
		return "", all[0]
	}
	return "", ""
}

// keywordSigned applies the credit/debit keyword heuristic to an explicit
// amount. Tokens carrying their own sign markers keep them.
func keywordSigned(v decimal.Decimal, token, merged string) decimal.Decimal {
	if v.IsNegative() {
		return v
	}
	if explicitCreditRe.MatchString(strings.TrimSpace(token)) {
		return v
	}
	lower := strings.ToLower(merged)
	credit := containsAny(lower, creditKeywords)
	debit := containsAny(lower, debitKeywords)
	if credit && !debit {
		return v
	}
	return v.Neg()
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// entryDescription strips the numeric tokens back out of the merged text and
// falls back to a placeholder when nothing is left.
func entryDescription(merged, amountTok, balanceTok string) string {
	desc := merged
	for _, tok := range []string{balanceTok, amountTok} {
		if tok == "" {
			continue
		}
		if idx := strings.LastIndex(desc, tok); idx >= 0 {
			desc = desc[:idx] + desc[idx+len(tok):]
		}
	}
	desc = strings.TrimSpace(multiSpaceRe.ReplaceAllString(desc, " "))
	if desc == "" {
		return models.DescriptionFallback
	}
	return desc
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
