// Package csvimport handles mapped CSV conversion commands.
package csvimport

import (
	"github.com/spf13/cobra"

	"fintools/bankfeed/cmd/common"
	"fintools/bankfeed/cmd/root"
	"fintools/bankfeed/internal/csvmapper"
	"fintools/bankfeed/internal/parser"
)

var (
	dateColumn        string
	descriptionColumn string
	amountColumn      string
	categoryColumn    string
	accountColumn     string
	statusColumn      string
	typeColumn        string
	notesColumn       string
)

// Cmd represents the csvimport command.
var Cmd = &cobra.Command{
	Use:   "csvimport",
	Short: "Convert a mapped CSV export to normalized transactions",
	Long: `Convert a bank's CSV export to the normalized transaction CSV using a
column mapping supplied via flags.`,
	RunE: csvImportFunc,
}

func init() {
	Cmd.Flags().StringVar(&dateColumn, "date-column", "Date", "Header label of the date column")
	Cmd.Flags().StringVar(&descriptionColumn, "description-column", "Description", "Header label of the description column")
	Cmd.Flags().StringVar(&amountColumn, "amount-column", "Amount", "Header label of the amount column")
	Cmd.Flags().StringVar(&categoryColumn, "category-column", "", "Header label of the category column")
	Cmd.Flags().StringVar(&accountColumn, "account-column", "", "Header label of the account column")
	Cmd.Flags().StringVar(&statusColumn, "status-column", "", "Header label of the status column")
	Cmd.Flags().StringVar(&typeColumn, "type-column", "", "Header label of the type column")
	Cmd.Flags().StringVar(&notesColumn, "notes-column", "", "Header label of the notes column")
}

func csvImportFunc(cmd *cobra.Command, args []string) error {
	logger := root.GetLogger()
	cfg := root.GetConfig()
	root.Log.Info("CSV import command called")

	p, err := parser.GetParser(parser.CSV, parser.Options{
		Logger: logger,
		Mapping: csvmapper.ColumnMapping{
			Date:        dateColumn,
			Description: descriptionColumn,
			Amount:      amountColumn,
			Category:    categoryColumn,
			Account:     accountColumn,
			Status:      statusColumn,
			Type:        typeColumn,
			Notes:       notesColumn,
		},
		Delimiter: cfg.Delimiter(),
	})
	if err != nil {
		return err
	}

	return common.ProcessFile(p, root.SharedFlags.Input, root.SharedFlags.Output, cfg.Delimiter(), logger)
}
