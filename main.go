// Command csv-ofx converts CSV transaction exports to OFX 1.02 statements.
package main

import (
	"os"

	"fjacquet/csv-ofx/cmd/convert"
	"fjacquet/csv-ofx/cmd/presetcmd"
	"fjacquet/csv-ofx/cmd/preview"
	"fjacquet/csv-ofx/cmd/root"
)

func main() {
	root.Init()
	root.Cmd.AddCommand(convert.Cmd)
	root.Cmd.AddCommand(preview.Cmd)
	root.Cmd.AddCommand(presetcmd.Cmd)

	if err := root.Cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
