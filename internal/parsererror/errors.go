// Package parsererror defines the structured error types used across the
// conversion pipeline. Every error carries enough context (field name, row
// index, raw value) for a caller to render a precise message.
package parsererror

import "fmt"

// FileAccessError represents a failure to read or write a file.
type FileAccessError struct {
	Path string
	Op   string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("file access failed (%s) for %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

// HeaderMissingError indicates that the CSV input is empty and has no
// header row to decode.
type HeaderMissingError struct{}

func (e *HeaderMissingError) Error() string {
	return "CSV input is empty: header row is missing"
}

// MalformedRowError indicates a row whose field count does not match the
// header count. Line is 1-based and counts the header as line 1.
type MalformedRowError struct {
	Line     int
	Expected int
	Actual   int
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed row at line %d: expected %d fields, got %d",
		e.Line, e.Expected, e.Actual)
}

// AmountFormatError indicates a value that is not a valid signed decimal
// after currency symbols and separators have been stripped.
type AmountFormatError struct {
	Raw string
}

func (e *AmountFormatError) Error() string {
	return fmt.Sprintf("invalid amount format: '%s'", e.Raw)
}

// DateFormatError indicates a date string not parseable by any supported
// layout, including calendar-impossible dates.
type DateFormatError struct {
	Raw string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("invalid date format: '%s'", e.Raw)
}

// InvalidPeriodError indicates an unusable statement period: an
// unparseable boundary or start after end.
type InvalidPeriodError struct {
	Start  string
	End    string
	Reason string
}

func (e *InvalidPeriodError) Error() string {
	return fmt.Sprintf("invalid statement period [%s, %s]: %s", e.Start, e.End, e.Reason)
}

// UnknownTypeValueError indicates a mapped type column holding something
// other than debit/credit.
type UnknownTypeValueError struct {
	Raw string
}

func (e *UnknownTypeValueError) Error() string {
	return fmt.Sprintf("unknown transaction type value: '%s' (expected 'debit' or 'credit')", e.Raw)
}

// MissingRequiredFieldError indicates a required configuration field that
// is absent or invalid at call time.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// RowError wraps a per-row failure with the offending row index so the
// caller can decide to skip or abort. Line is 1-based and counts the
// header as line 1.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
