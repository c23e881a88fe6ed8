// Package export implements the CSV export command
package export

import (
	"whereismymoney/wimm/cmd/common"
	"whereismymoney/wimm/cmd/root"
	"whereismymoney/wimm/internal/export"

	"github.com/spf13/cobra"
)

var outputFile string

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored transactions to a CSV file",
	Run:   exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "transactions.csv", "Output CSV file path")
}

func exportFunc(cmd *cobra.Command, args []string) {
	st, err := common.OpenStore(root.Cfg)
	if err != nil {
		root.Log.Fatalf("Error opening store: %v", err)
	}
	defer st.Close()

	transactions, err := st.Transactions()
	if err != nil {
		root.Log.Fatalf("Error reading transactions: %v", err)
	}
	if len(transactions) == 0 {
		root.Log.Info("No transactions to export")
		return
	}

	if err := export.WriteTransactionsToCSV(transactions, outputFile); err != nil {
		root.Log.Fatalf("Error writing CSV: %v", err)
	}
	root.Log.WithFields(map[string]interface{}{
		"count": len(transactions),
		"file":  outputFile,
	}).Info("Transactions exported")
}
