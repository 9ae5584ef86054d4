// Package preview handles the record preview command.
package preview

import (
	"github.com/spf13/cobra"

	"fjacquet/csv-ofx/cmd/root"
	"fjacquet/csv-ofx/internal/common"
	"fjacquet/csv-ofx/internal/converter"
	"fjacquet/csv-ofx/internal/fileutils"
	"fjacquet/csv-ofx/internal/logging"
)

// Cmd represents the preview command.
var Cmd = &cobra.Command{
	Use:   "preview",
	Short: "Assemble statement records and export them as a review CSV",
	Long: `Preview runs the same decoding and assembly as convert but writes the
assembled records to a review CSV instead of rendering OFX, so mappings can
be checked before the final export.`,
	Run: previewFunc,
}

func previewFunc(cmd *cobra.Command, args []string) {
	log := root.Log
	log.Info("Preview command called")
	log.Infof("Input file: %s", root.SharedFlags.Input)
	log.Infof("Output file: %s", root.SharedFlags.Output)

	if root.SharedFlags.Input == "" || root.SharedFlags.Output == "" {
		log.Fatal("Both --input and --output are required")
	}

	opts, err := root.BuildOptions()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	data, err := fileutils.ReadFile(root.SharedFlags.Input)
	if err != nil {
		log.Fatalf("Error reading input file: %v", err)
	}

	conv, err := converter.New(opts, logging.NewLogrusAdapterFromLogger(log))
	if err != nil {
		log.Fatalf("Error creating converter: %v", err)
	}

	result, err := conv.Convert(data)
	if err != nil {
		log.Fatalf("Error converting CSV: %v", err)
	}
	for _, rowErr := range result.RowErrors {
		log.Warnf("Row skipped: %v", rowErr)
	}
	log.Info(result.Message)

	common.SetDelimiter(opts.Delimiter)
	if err := common.WriteRecordsToCSV(result.Records, root.SharedFlags.Output); err != nil {
		log.Fatalf("Error writing review CSV: %v", err)
	}

	log.Info("Preview export completed successfully!")
}
