// Package convert handles the CSV to OFX conversion command.
package convert

import (
	"github.com/spf13/cobra"

	"fjacquet/csv-ofx/cmd/root"
	"fjacquet/csv-ofx/internal/converter"
	"fjacquet/csv-ofx/internal/fileutils"
	"fjacquet/csv-ofx/internal/logging"
	"fjacquet/csv-ofx/internal/models"
)

// Cmd represents the convert command.
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a CSV transaction export to an OFX 1.02 statement",
	Long: `Convert reads a CSV transaction export, assembles statement records
using the configured column mapping and writes an OFX 1.02 SGML document.`,
	Run: convertFunc,
}

func convertFunc(cmd *cobra.Command, args []string) {
	log := root.Log
	log.Info("Convert command called")
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

	period := opts.Period
	if period == nil {
		derived, err := conv.DerivePeriod()
		if err != nil {
			log.Fatalf("No statement period available: %v", err)
		}
		period = &derived
		log.Infof("Derived statement period %s..%s from record dates",
			derived.Start.Format("2006-01-02"), derived.End.Format("2006-01-02"))
	}

	document, err := conv.Generate(period)
	if err != nil {
		log.Fatalf("Error generating OFX document: %v", err)
	}

	if err := fileutils.WriteFile(root.SharedFlags.Output, []byte(document)); err != nil {
		log.Fatalf("Error writing output file: %v", err)
	}

	summary := conv.Summary()
	logBalance(log.Infof, summary)
	log.Info("CSV to OFX conversion completed successfully!")
}

func logBalance(infof func(string, ...interface{}), summary models.BalanceSummary) {
	infof("Balance: initial %s, debits %s, credits %s, final %s over %d records",
		summary.Initial.StringFixed(2), summary.TotalDebits.StringFixed(2),
		summary.TotalCredits.StringFixed(2), summary.Final.StringFixed(2),
		summary.Count)
}
