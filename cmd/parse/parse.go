// Package parse implements the one-shot text parsing command
package parse

import (
	"errors"
	"io"
	"os"
	"strings"

	"whereismymoney/wimm/cmd/common"
	"whereismymoney/wimm/cmd/root"
	"whereismymoney/wimm/internal/clipboard"
	"whereismymoney/wimm/internal/extractor"
	"whereismymoney/wimm/internal/logging"
	"whereismymoney/wimm/internal/models"

	"github.com/spf13/cobra"
)

var fromClipboard bool

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse [text]",
	Short: "Extract a transaction draft from payment text",
	Long: `Parse payment text (argument, stdin, or --clipboard) through the
extraction engine and print the assembled transaction draft. Text with no
extractable amount is reported as unrecognized, not an error.`,
	Run: parseFunc,
}

func init() {
	Cmd.Flags().BoolVarP(&fromClipboard, "clipboard", "c", false, "Parse the current clipboard content")
}

func parseFunc(cmd *cobra.Command, args []string) {
	info, ok := resolveInput(args)
	if !ok {
		root.Log.Info("No payment info recognized in text")
		return
	}

	st, err := common.OpenStore(root.Cfg)
	if err != nil {
		root.Log.Fatalf("Error opening store: %v", err)
	}
	defer st.Close()

	asm := common.BuildAssembler(root.Cfg, st, root.Log)
	common.HandleInfo(info, asm, st, root.Save, root.Log)
}

func resolveInput(args []string) (models.ParsedPaymentInfo, bool) {
	if fromClipboard {
		reader := clipboard.DetectReader()
		if reader == nil {
			root.Log.Fatal("No clipboard command found (pbpaste, wl-paste, xclip or xsel)")
		}
		monitor := clipboard.NewMonitor(reader, 0, logging.NewLogrusAdapterFromLogger(root.Log))
		info, err := monitor.ParseOnce()
		if err != nil {
			if errors.Is(err, clipboard.ErrEmptyClipboard) || errors.Is(err, clipboard.ErrNoPaymentInfo) {
				return models.ParsedPaymentInfo{}, false
			}
			root.Log.Fatalf("Error reading clipboard: %v", err)
		}
		return info, true
	}

	text := strings.Join(args, " ")
	if text == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			root.Log.Fatalf("Error reading stdin: %v", err)
		}
		text = string(data)
	}
	return extractor.Extract(text)
}
