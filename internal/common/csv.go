// Package common provides the shared review-CSV export used by the
// preview command.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"

	"fjacquet/csv-ofx/internal/dateutils"
	"fjacquet/csv-ofx/internal/models"
)

var log = logrus.New()

// Delimiter is the delimiter used for review-CSV output.
var Delimiter rune = ','

// SetDelimiter sets the delimiter for CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// SetLogger allows setting a configured logger.
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// PreviewRow is the flat, struct-tagged shape of a record in the review
// CSV.
type PreviewRow struct {
	Date        string `csv:"Date"`
	Type        string `csv:"Type"`
	Amount      string `csv:"Amount"`
	Description string `csv:"Description"`
	ID          string `csv:"FITID"`
	Deleted     bool   `csv:"Deleted"`
}

// WriteRecordsToCSV writes assembled records to a review CSV file so they
// can be inspected before the OFX render.
func WriteRecordsToCSV(records []models.TransactionRecord, csvFile string) error {
	if records == nil {
		return fmt.Errorf("cannot write nil records to CSV")
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(records),
	}).Info("Writing records to review CSV")

	rows := make([]PreviewRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, PreviewRow{
			Date:        dateutils.ToISODate(r.Date),
			Type:        string(r.Type),
			Amount:      r.Amount.StringFixed(2),
			Description: r.Description,
			ID:          r.ID,
			Deleted:     r.Deleted,
		})
	}

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.WithField("count", len(rows)).Info("Successfully wrote review CSV")
	return nil
}
