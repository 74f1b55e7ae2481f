// Package categorizer assigns categories to parsed transactions. Rule
// matching always runs first; an optional Gemini-backed strategy handles
// whatever the rules leave uncategorized.
package categorizer

import (
	"context"

	"fintools/bankfeed/internal/logging"
	"fintools/bankfeed/internal/models"
	"fintools/bankfeed/internal/rules"
)

// Assignment is one category decision.
type Assignment struct {
	CategoryID   string
	CategoryName string
}

// Strategy is one way of deciding a transaction's category. A strategy that
// has no opinion returns ok=false; errors are reported but never abort the
// batch.
type Strategy interface {
	Name() string
	Categorize(ctx context.Context, tx *models.ParsedTransaction) (Assignment, bool, error)
}

// Categorizer runs strategies in order until one decides.
type Categorizer struct {
	strategies []Strategy
	logger     logging.Logger
}

// New creates a categorizer over the given strategies. A nil logger gets a
// default one.
func New(logger logging.Logger, strategies ...Strategy) *Categorizer {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Categorizer{strategies: strategies, logger: logger}
}

// Categorize fills in category fields for every transaction that some
// strategy can decide. Transactions that already carry a category name are
// left alone. Strategy errors are logged and skipped; the batch always
// completes.
func (c *Categorizer) Categorize(ctx context.Context, txs []models.ParsedTransaction) {
	assigned := 0
	for i := range txs {
		if txs[i].CategoryName != "" {
			continue
		}
		if c.categorizeOne(ctx, &txs[i]) {
			assigned++
		}
	}
	c.logger.Info("Categorized transactions",
		logging.Field{Key: logging.FieldCount, Value: assigned})
}

func (c *Categorizer) categorizeOne(ctx context.Context, tx *models.ParsedTransaction) bool {
	for _, strategy := range c.strategies {
		assignment, ok, err := strategy.Categorize(ctx, tx)
		if err != nil {
			c.logger.WithError(err).Warn("Categorization strategy failed",
				logging.Field{Key: "strategy", Value: strategy.Name()})
			continue
		}
		if !ok {
			continue
		}
		tx.CategoryID = assignment.CategoryID
		tx.CategoryName = assignment.CategoryName
		c.logger.Debug("Assigned category",
			logging.Field{Key: "strategy", Value: strategy.Name()},
			logging.Field{Key: logging.FieldCategory, Value: assignment.CategoryName})
		return true
	}
	return false
}

// RuleStrategy decides via first-match-wins over a sorted rule list.
type RuleStrategy struct {
	sorted []rules.AutomationRule
}

// NewRuleStrategy sorts the rules once and reuses the order for every
// transaction.
func NewRuleStrategy(list []rules.AutomationRule) *RuleStrategy {
	sorted := make([]rules.AutomationRule, len(list))
	copy(sorted, list)
	rules.SortRules(sorted)
	return &RuleStrategy{sorted: sorted}
}

func (s *RuleStrategy) Name() string { return "rules" }

func (s *RuleStrategy) Categorize(_ context.Context, tx *models.ParsedTransaction) (Assignment, bool, error) {
	rule := rules.FirstMatch(s.sorted, tx)
	if rule == nil {
		return Assignment{}, false, nil
	}
	return Assignment{
		CategoryID:   rule.CategoryID,
		CategoryName: rule.CategoryName,
	}, true, nil
}
