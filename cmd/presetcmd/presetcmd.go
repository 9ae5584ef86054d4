// Package presetcmd handles the mapping preset commands.
package presetcmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"fjacquet/csv-ofx/cmd/root"
	"fjacquet/csv-ofx/internal/presets"
)

// Cmd represents the presets command group.
var Cmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage saved column-mapping presets",
	Long: `Presets store a bank export's column mapping, delimiter and decimal
separator under a name, so the layout only has to be worked out once.`,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved presets",
	Run:   listFunc,
}

var saveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Save the current mapping flags under a name",
	Args:  cobra.ExactArgs(1),
	Run:   saveFunc,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(saveCmd)
}

func listFunc(cmd *cobra.Command, args []string) {
	log := root.Log

	store := presets.NewStore(root.PresetsPath())
	all, err := store.Load()
	if err != nil {
		log.Fatalf("Error loading presets: %v", err)
	}
	if len(all) == 0 {
		log.Info("No presets saved")
		return
	}

	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		p := all[name]
		fmt.Printf("%s\tdelimiter=%q decimal=%q date=%d amount=%d description=%v\n",
			p.Name, p.Delimiter, p.DecimalSeparator,
			p.Mapping.Date, p.Mapping.Amount, p.Mapping.Description)
	}
}

func saveFunc(cmd *cobra.Command, args []string) {
	log := root.Log
	name := args[0]

	opts, err := root.BuildOptions()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	preset := presets.Preset{
		Name:             name,
		Delimiter:        string(opts.Delimiter),
		DecimalSeparator: string(rune(opts.DecimalSeparator)),
		Mapping:          opts.Mapping,
	}

	store := presets.NewStore(root.PresetsPath())
	if err := store.Save(preset); err != nil {
		log.Fatalf("Error saving preset: %v", err)
	}

	log.Infof("Saved preset %q to %s", name, store.Path)
}
