// Package categorize handles transaction categorization commands.
package categorize

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"fintools/bankfeed/cmd/root"
	"fintools/bankfeed/internal/categorizer"
	"fintools/bankfeed/internal/export"
	"fintools/bankfeed/internal/rulestore"
)

var rulesFile string

// Cmd represents the categorize command.
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize a normalized transaction CSV using automation rules",
	Long: `Apply automation rules (and optionally the AI fallback) to a normalized
transaction CSV, writing the categorized result to the output file.`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVar(&rulesFile, "rules", "", "Path to the rules YAML file")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	logger := root.GetLogger()
	cfg := root.GetConfig()
	root.Log.Info("Categorize command called")

	if root.SharedFlags.Input == "" {
		return fmt.Errorf("input file is required")
	}
	if root.SharedFlags.Output == "" {
		return fmt.Errorf("output file is required")
	}

	path := rulesFile
	if path == "" {
		path = cfg.Rules.File
	}
	store := rulestore.NewStore(path, logger)
	ruleList, err := store.Load()
	if err != nil {
		return fmt.Errorf("error loading rules: %w", err)
	}

	strategies := []categorizer.Strategy{categorizer.NewRuleStrategy(ruleList)}
	if cfg.AI.Enabled {
		categories := make([]string, 0, len(ruleList))
		seen := make(map[string]bool)
		for _, rule := range ruleList {
			if rule.CategoryName != "" && !seen[rule.CategoryName] {
				seen[rule.CategoryName] = true
				categories = append(categories, rule.CategoryName)
			}
		}
		ai := categorizer.NewAIStrategy(cfg.AI.APIKey, cfg.AI.Model, categories)
		defer func() {
			if closeErr := ai.Close(); closeErr != nil {
				logger.WithError(closeErr).Warn("Failed to close AI client")
			}
		}()
		strategies = append(strategies, ai)
	}

	writer := export.NewWriter(cfg.Delimiter(), logger)
	txs, err := writer.ReadTransactionsFromCSV(root.SharedFlags.Input)
	if err != nil {
		return fmt.Errorf("error reading transactions: %w", err)
	}

	cat := categorizer.New(logger, strategies...)
	cat.Categorize(context.Background(), txs)

	if err := writer.WriteTransactionsToCSV(txs, root.SharedFlags.Output); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}
	return nil
}
