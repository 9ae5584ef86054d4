// Package dateutils provides the date parsing and formatting used by the
// conversion engine.
package dateutils

import (
	"strings"
	"time"

	"fjacquet/csv-ofx/internal/parsererror"
)

// Date format constants used throughout the application.
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutEuropean = "02/01/2006"
	DateLayoutUS       = "01/02/2006"
	DateLayoutOFX      = "20060102"
)

// StatementFormats lists the supported input layouts in the order they are
// tried. DD/MM/YYYY is tried before MM/DD/YYYY, so an ambiguous slash date
// resolves day-first.
var StatementFormats = []string{
	DateLayoutISO,      // YYYY-MM-DD
	DateLayoutEuropean, // DD/MM/YYYY
	DateLayoutUS,       // MM/DD/YYYY
	"2006/01/02",       // YYYY/MM/DD
	"02-01-2006",       // DD-MM-YYYY
	"02.01.2006",       // DD.MM.YYYY
	DateLayoutOFX,      // YYYYMMDD
}

// ParseDate parses a date string against the supported layouts and
// normalizes the result to midnight UTC. Calendar-impossible dates such as
// 31/02/2025 fail every layout and surface as DateFormatError.
func ParseDate(dateStr string) (time.Time, error) {
	cleaned := strings.TrimSpace(dateStr)
	if cleaned == "" {
		return time.Time{}, &parsererror.DateFormatError{Raw: dateStr}
	}

	for _, format := range StatementFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return Normalize(t), nil
		}
	}

	return time.Time{}, &parsererror.DateFormatError{Raw: dateStr}
}

// Normalize truncates a time to its calendar date at midnight UTC so that
// comparisons are calendar comparisons, not instant comparisons.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ToOFXDate formats a time as the YYYYMMDD form OFX 1.02 requires.
func ToOFXDate(t time.Time) string {
	return t.Format(DateLayoutOFX)
}

// ToISODate formats a time as YYYY-MM-DD.
func ToISODate(t time.Time) string {
	return t.Format(DateLayoutISO)
}

// Compare compares two dates at day precision and returns:
//
//	-1 if date1 is before date2
//	 0 if date1 is equal to date2
//	 1 if date1 is after date2
func Compare(date1, date2 time.Time) int {
	date1 = Normalize(date1)
	date2 = Normalize(date2)

	if date1.Before(date2) {
		return -1
	} else if date1.After(date2) {
		return 1
	}
	return 0
}
