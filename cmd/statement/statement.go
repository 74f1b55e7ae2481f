// Package statement handles bank-statement text conversion commands.
package statement

import (
	"github.com/spf13/cobra"

	"fintools/bankfeed/cmd/common"
	"fintools/bankfeed/cmd/root"
	"fintools/bankfeed/internal/parser"
)

var account string

// Cmd represents the statement command.
var Cmd = &cobra.Command{
	Use:   "statement",
	Short: "Convert extracted statement text to normalized transactions",
	Long: `Convert text extracted from a bank statement into the normalized
transaction CSV, resolving amounts and signs from running balances.`,
	RunE: statementFunc,
}

func init() {
	Cmd.Flags().StringVar(&account, "account", "", "Account name to stamp on every transaction")
}

func statementFunc(cmd *cobra.Command, args []string) error {
	logger := root.GetLogger()
	cfg := root.GetConfig()
	root.Log.Info("Statement convert command called")

	acct := account
	if acct == "" {
		acct = cfg.Import.DefaultAccount
	}

	p, err := parser.GetParser(parser.Statement, parser.Options{
		Logger:  logger,
		Account: acct,
	})
	if err != nil {
		return err
	}

	return common.ProcessFile(p, root.SharedFlags.Input, root.SharedFlags.Output, cfg.Delimiter(), logger)
}
