// Package rules implements the rule-based transaction matcher: an ordered
// list of automation rules evaluated first-match-wins against transaction
// descriptions.
package rules

import (
	"regexp"
	"sort"
	"strings"

	"fintools/bankfeed/internal/models"
)

// Match types understood by the matcher. Anything else never matches.
const (
	MatchContains   = "contains"
	MatchStartsWith = "starts_with"
	MatchEndsWith   = "ends_with"
	MatchExact      = "exact"
	MatchRegex      = "regex"
)

// AutomationRule assigns a category to transactions whose description
// satisfies the rule's pattern. Lower priority values are evaluated first.
type AutomationRule struct {
	Name         string `yaml:"name"`
	Type         string `yaml:"type"`
	Pattern      string `yaml:"pattern"`
	Priority     int    `yaml:"priority"`
	IsActive     bool   `yaml:"is_active"`
	CategoryID   string `yaml:"category_id"`
	CategoryName string `yaml:"category_name"`
}

// matchStrategy is the closed set of pattern evaluators. All comparisons are
// case-insensitive.
type matchStrategy func(description, pattern string) bool

var strategies = map[string]matchStrategy{
	MatchContains: func(description, pattern string) bool {
		return strings.Contains(description, pattern)
	},
	MatchStartsWith: func(description, pattern string) bool {
		return strings.HasPrefix(description, pattern)
	},
	MatchEndsWith: func(description, pattern string) bool {
		return strings.HasSuffix(description, pattern)
	},
	MatchExact: func(description, pattern string) bool {
		return description == pattern
	},
	MatchRegex: func(description, pattern string) bool {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			// Invalid user-authored patterns are inert, never an error.
			return false
		}
		return re.MatchString(description)
	},
}

// Matches reports whether the rule applies to the description. Inactive
// rules, unknown match types and invalid regex patterns all report false.
func (r *AutomationRule) Matches(description string) bool {
	if !r.IsActive {
		return false
	}
	strategy, ok := strategies[r.Type]
	if !ok {
		return false
	}
	if r.Type == MatchRegex {
		return strategy(description, r.Pattern)
	}
	return strategy(strings.ToLower(description), strings.ToLower(r.Pattern))
}

// SortRules orders rules for evaluation: priority ascending, ties broken by
// name ascending so evaluation order is deterministic.
func SortRules(rules []AutomationRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority < rules[j].Priority
		}
		return rules[i].Name < rules[j].Name
	})
}

// FirstMatch returns the first rule in evaluation order that matches the
// transaction's description, or nil when none does. Rules must already be
// sorted by SortRules.
func FirstMatch(sorted []AutomationRule, tx *models.ParsedTransaction) *AutomationRule {
	for i := range sorted {
		if sorted[i].Matches(tx.Description) {
			return &sorted[i]
		}
	}
	return nil
}
