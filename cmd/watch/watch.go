// Package watch implements the clipboard monitoring command
package watch

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"whereismymoney/wimm/cmd/common"
	"whereismymoney/wimm/cmd/root"
	"whereismymoney/wimm/internal/clipboard"
	"whereismymoney/wimm/internal/logging"
	"whereismymoney/wimm/internal/models"

	"github.com/spf13/cobra"
)

// Cmd represents the watch command
var Cmd = &cobra.Command{
	Use:   "watch",
	Short: "Monitor the clipboard for payment text",
	Long: `Poll the system clipboard on the configured interval and assemble a
transaction draft for every newly copied payment text. Runs until
interrupted.`,
	Run: watchFunc,
}

func watchFunc(cmd *cobra.Command, args []string) {
	reader := clipboard.DetectReader()
	if reader == nil {
		root.Log.Fatal("No clipboard command found (pbpaste, wl-paste, xclip or xsel)")
	}

	st, err := common.OpenStore(root.Cfg)
	if err != nil {
		root.Log.Fatalf("Error opening store: %v", err)
	}
	defer st.Close()

	asm := common.BuildAssembler(root.Cfg, st, root.Log)

	monitor := clipboard.NewMonitor(
		reader,
		time.Duration(root.Cfg.Clipboard.IntervalMS)*time.Millisecond,
		logging.NewLogrusAdapterFromLogger(root.Log),
	)
	started := monitor.Start(func(info models.ParsedPaymentInfo) {
		common.HandleInfo(info, asm, st, root.Save, root.Log)
	})
	if !started {
		root.Log.Fatal("Clipboard monitor failed to start")
	}
	defer monitor.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	root.Log.Info("Shutting down clipboard monitor")
}
