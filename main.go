// wimm turns payment-app text into transaction drafts.
package main

import (
	"os"

	"whereismymoney/wimm/cmd/categorize"
	"whereismymoney/wimm/cmd/export"
	"whereismymoney/wimm/cmd/inbox"
	"whereismymoney/wimm/cmd/parse"
	"whereismymoney/wimm/cmd/root"
	"whereismymoney/wimm/cmd/shortcut"
	"whereismymoney/wimm/cmd/watch"
)

func main() {
	root.Init()

	root.Cmd.AddCommand(parse.Cmd)
	root.Cmd.AddCommand(watch.Cmd)
	root.Cmd.AddCommand(inbox.Cmd)
	root.Cmd.AddCommand(shortcut.Cmd)
	root.Cmd.AddCommand(export.Cmd)
	root.Cmd.AddCommand(categorize.Cmd)

	if err := root.Cmd.Execute(); err != nil {
		root.Log.Error(err)
		os.Exit(1)
	}
}
