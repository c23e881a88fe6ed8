// Package root contains the root command for the application
package root

import (
	"whereismymoney/wimm/internal/config"
	"whereismymoney/wimm/internal/export"
	"whereismymoney/wimm/internal/extractor"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the loaded application configuration
	Cfg *config.Config

	// Save controls whether commands persist assembled drafts to the store
	Save bool

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "wimm",
		Short: "Turn payment-app notification text into transaction drafts.",
		Long: `wimm ingests free-form text from payment apps (notifications, clipboard
snapshots, shared text and shortcut URLs) and extracts candidate
transactions (amount, merchant, income/expense) for a personal tracker.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to wimm!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Configuration error: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLogging(cfg)

			// Propagate the configured logger to library packages
			extractor.SetLogger(Log)
			export.SetLogger(Log)
		},
	}
)

// Init initializes the root command and all persistent flags
func Init() {
	Cmd.PersistentFlags().BoolVarP(&Save, "save", "s", false, "Persist assembled drafts to the transaction store")
}
