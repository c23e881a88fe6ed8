// Package shortcut implements the shortcut-URL decoding command
package shortcut

import (
	"whereismymoney/wimm/cmd/common"
	"whereismymoney/wimm/cmd/root"
	"whereismymoney/wimm/internal/shortcuturl"

	"github.com/spf13/cobra"
)

// Cmd represents the shortcut command
var Cmd = &cobra.Command{
	Use:   "shortcut <url>",
	Short: "Decode an app://add shortcut URL into a transaction draft",
	Args:  cobra.ExactArgs(1),
	Run:   shortcutFunc,
}

func shortcutFunc(cmd *cobra.Command, args []string) {
	info, ok := shortcuturl.Parse(args[0])
	if !ok {
		root.Log.Info("URL is not a valid add-transaction shortcut")
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
