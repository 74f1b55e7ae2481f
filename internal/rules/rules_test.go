package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintools/bankfeed/internal/models"
)

func rule(name, matchType, pattern string, priority int) AutomationRule {
	return AutomationRule{
		Name:         name,
		Type:         matchType,
		Pattern:      pattern,
		Priority:     priority,
		IsActive:     true,
		CategoryName: name,
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name        string
		rule        AutomationRule
		description string
		expected    bool
	}{
		{"contains case-insensitive", rule("r", MatchContains, "netflix", 1), "NETFLIX.COM Subscription", true},
		{"contains no match", rule("r", MatchContains, "netflix", 1), "Spotify AB", false},
		{"starts_with", rule("r", MatchStartsWith, "pos ", 1), "POS Purchase Migros", true},
		{"starts_with mid-string", rule("r", MatchStartsWith, "purchase", 1), "POS Purchase", false},
		{"ends_with", rule("r", MatchEndsWith, "gmbh", 1), "Muster GmbH", true},
		{"exact", rule("r", MatchExact, "salary", 1), "SALARY", true},
		{"exact partial", rule("r", MatchExact, "salary", 1), "Salary March", false},
		{"regex", rule("r", MatchRegex, `^uber\s+(eats|trip)`, 1), "Uber Eats Amsterdam", true},
		{"regex no match", rule("r", MatchRegex, `^uber\s+(eats|trip)`, 1), "Uber hello", false},
		{"invalid regex never matches", rule("r", MatchRegex, `([`, 1), "anything", false},
		{"unknown type never matches", rule("r", "fuzzy", "netflix", 1), "netflix", false},
		{"inactive rule never matches", AutomationRule{Name: "r", Type: MatchContains, Pattern: "netflix", IsActive: false}, "netflix", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.rule.Matches(tc.description))
		})
	}
}

func TestSortRules(t *testing.T) {
	list := []AutomationRule{
		rule("zeta", MatchContains, "z", 2),
		rule("beta", MatchContains, "b", 1),
		rule("alpha", MatchContains, "a", 2),
	}

	SortRules(list)

	assert.Equal(t, "beta", list[0].Name)
	assert.Equal(t, "alpha", list[1].Name)
	assert.Equal(t, "zeta", list[2].Name)
}

func TestFirstMatch(t *testing.T) {
	list := []AutomationRule{
		rule("streaming", MatchContains, "netflix", 2),
		rule("broad", MatchContains, "e", 1),
	}
	SortRules(list)

	tx := &models.ParsedTransaction{Description: "NETFLIX.COM"}
	matched := FirstMatch(list, tx)
	require.NotNil(t, matched)
	// Priority 1 wins even though the later rule is more specific.
	assert.Equal(t, "broad", matched.Name)

	none := FirstMatch(list, &models.ParsedTransaction{Description: "xyz"})
	assert.Nil(t, none)
}
