// Package categorize implements the standalone category lookup command
package categorize

import (
	"context"
	"fmt"

	"whereismymoney/wimm/cmd/common"
	"whereismymoney/wimm/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize <merchant>",
	Short: "Recommend a category for a merchant name",
	Long: `Run the category recommendation chain (keyword rules, then the AI
strategy when enabled) for a merchant name and print the result.`,
	Args: cobra.ExactArgs(1),
	Run:  categorizeFunc,
}

func categorizeFunc(cmd *cobra.Command, args []string) {
	merchant := args[0]
	recommender := common.BuildRecommender(root.Cfg, root.Log)

	category, ok := recommender.Recommend(context.Background(), merchant)
	if !ok {
		root.Log.WithField("merchant", merchant).Info("No category recommendation")
		return
	}
	fmt.Println(category)
}
