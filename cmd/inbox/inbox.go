// Package inbox implements the share inbox draining command
package inbox

import (
	"os"
	"os/signal"
	"syscall"

	"whereismymoney/wimm/cmd/common"
	"whereismymoney/wimm/cmd/root"
	"whereismymoney/wimm/internal/logging"
	"whereismymoney/wimm/internal/models"
	"whereismymoney/wimm/internal/shareinbox"

	"github.com/spf13/cobra"
)

var watchFlag bool

// Cmd represents the inbox command
var Cmd = &cobra.Command{
	Use:   "inbox",
	Short: "Drain pending share records into transaction drafts",
	Long: `Process the share inbox: every pending text record goes through the
extraction engine and yields a transaction draft. Image-only records are
skipped. The inbox is cleared after processing. With --watch the command
keeps running and drains again whenever the inbox file changes.`,
	Run: inboxFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Keep watching the inbox file and drain on every write")
}

func inboxFunc(cmd *cobra.Command, args []string) {
	st, err := common.OpenStore(root.Cfg)
	if err != nil {
		root.Log.Fatalf("Error opening store: %v", err)
	}
	defer st.Close()

	asm := common.BuildAssembler(root.Cfg, st, root.Log)
	logger := logging.NewLogrusAdapterFromLogger(root.Log)
	box := shareinbox.NewInbox(root.Cfg.Inbox.Path, logger)

	handle := func(info models.ParsedPaymentInfo) {
		common.HandleInfo(info, asm, st, root.Save, root.Log)
	}

	if !watchFlag {
		result := box.Drain(handle)
		root.Log.WithFields(map[string]interface{}{
			"total":     result.Total,
			"processed": result.Processed,
			"skipped":   result.Skipped,
		}).Info("Inbox drain complete")
		return
	}

	watcher := shareinbox.NewWatcher(box, logger)
	if !watcher.Start(handle) {
		root.Log.Fatal("Inbox watcher failed to start")
	}
	defer watcher.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	root.Log.Info("Shutting down inbox watcher")
}
