// Package converter wires the decoder, assembler and serializer into the
// end-to-end CSV to OFX pipeline and exposes the collaborator contract an
// interactive front end consumes: conversion stats, the assembled records
// for preview and editing, and the final render call.
package converter

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fjacquet/csv-ofx/internal/assembler"
	"fjacquet/csv-ofx/internal/csvdecoder"
	"fjacquet/csv-ofx/internal/currencyutils"
	"fjacquet/csv-ofx/internal/logging"
	"fjacquet/csv-ofx/internal/models"
	"fjacquet/csv-ofx/internal/ofxwriter"
	"fjacquet/csv-ofx/internal/parsererror"
)

// OutOfRangePolicy decides what happens to a transaction dated outside the
// statement period.
type OutOfRangePolicy string

const (
	// PolicyKeep keeps the record with its original date.
	PolicyKeep OutOfRangePolicy = "keep"
	// PolicyAdjust clamps the record date to the nearest period boundary.
	PolicyAdjust OutOfRangePolicy = "adjust"
	// PolicyExclude drops the record from the statement.
	PolicyExclude OutOfRangePolicy = "exclude"
)

// Options carries the full input configuration supplied by the caller
// (CLI flags, a preset, or a front end).
type Options struct {
	Delimiter        rune
	DecimalSeparator currencyutils.DecimalSeparator
	Mapping          models.FieldMapping
	AccountID        string
	BankName         string
	Currency         string
	InitialBalance   decimal.Decimal
	InvertValues     bool
	Period           *models.StatementPeriod
	OutOfRange       OutOfRangePolicy
	// Strict aborts the conversion on the first per-row error instead of
	// skipping the row and reporting it.
	Strict bool
}

// Stats counts how the input rows were dispositioned.
type Stats struct {
	Total    int `json:"total"`
	Included int `json:"included"`
	Adjusted int `json:"adjusted"`
	Excluded int `json:"excluded"`
	Kept     int `json:"kept"`
}

// Result is the outcome of one Convert call. Records exposes the
// accumulated records so a reviewer can toggle Deleted before Generate.
type Result struct {
	Success   bool
	Message   string
	Stats     Stats
	Records   []models.TransactionRecord
	RowErrors []error
}

// Converter runs the pipeline. It owns a single Serializer accumulator and
// follows its single-writer discipline: all calls must come from one
// goroutine.
type Converter struct {
	opts       Options
	log        logging.Logger
	serializer *ofxwriter.Serializer
}

// New validates the static parts of the configuration and returns a
// ready converter. Header-dependent mapping validation happens inside
// Convert once the header is known.
func New(opts Options, log logging.Logger) (*Converter, error) {
	if log == nil {
		log = logging.NewLogrusAdapter("info", "text")
	}
	if !csvdecoder.IsSupportedDelimiter(opts.Delimiter) {
		return nil, &parsererror.MissingRequiredFieldError{Field: "delimiter"}
	}
	if !opts.DecimalSeparator.IsValid() {
		return nil, &parsererror.MissingRequiredFieldError{Field: "decimal_separator"}
	}
	if opts.AccountID == "" {
		return nil, &parsererror.MissingRequiredFieldError{Field: "account_id"}
	}
	if opts.Currency == "" {
		return nil, &parsererror.MissingRequiredFieldError{Field: "currency"}
	}
	if opts.Period != nil && opts.OutOfRange == "" {
		opts.OutOfRange = PolicyKeep
	}
	switch opts.OutOfRange {
	case "", PolicyKeep, PolicyAdjust, PolicyExclude:
	default:
		return nil, &parsererror.MissingRequiredFieldError{Field: "out_of_range_policy"}
	}

	return &Converter{
		opts:       opts,
		log:        log,
		serializer: ofxwriter.New(opts.InvertValues),
	}, nil
}

// Convert runs one sequential pass over the CSV bytes: decode, assemble,
// apply the period policy, accumulate. Header-level failures abort
// immediately; per-row failures are reported and, unless Strict is set,
// the row is skipped.
func (c *Converter) Convert(data []byte) (*Result, error) {
	c.log.Info("Converting CSV input",
		logging.F("bytes", len(data)),
		logging.F("delimiter", string(c.opts.Delimiter)))

	doc, err := csvdecoder.Decode(data, c.opts.Delimiter)
	if err != nil {
		return nil, err
	}

	if err := c.opts.Mapping.Validate(len(doc.Headers)); err != nil {
		return nil, err
	}

	result := &Result{}
	result.Stats.Total = len(doc.Rows)

	for i, row := range doc.Rows {
		record, err := assembler.AssembleRecord(row, c.opts.Mapping,
			c.opts.DecimalSeparator, c.opts.AccountID, i)
		if err != nil {
			if c.opts.Strict {
				return nil, err
			}
			c.log.WithError(err).Warn("Skipping row")
			result.RowErrors = append(result.RowErrors, err)
			continue
		}

		include, adjusted := c.applyPeriodPolicy(&record, result)
		if !include {
			continue
		}
		if adjusted {
			result.Stats.Adjusted++
		}

		c.serializer.Add(record)
		result.Stats.Included++
	}

	result.Records = c.serializer.Records()
	result.Success = len(result.RowErrors) == 0
	result.Message = fmt.Sprintf(
		"%d of %d rows converted (%d adjusted, %d excluded, %d kept out of range, %d failed)",
		result.Stats.Included, result.Stats.Total, result.Stats.Adjusted,
		result.Stats.Excluded, result.Stats.Kept, len(result.RowErrors))

	c.log.Info("Conversion finished",
		logging.F("total", result.Stats.Total),
		logging.F("included", result.Stats.Included),
		logging.F("failed", len(result.RowErrors)))

	return result, nil
}

// applyPeriodPolicy dispositions a record against the optional statement
// period. It reports whether the record should be included and whether its
// date was clamped.
func (c *Converter) applyPeriodPolicy(record *models.TransactionRecord, result *Result) (include, adjusted bool) {
	if c.opts.Period == nil {
		return true, false
	}

	status := c.opts.Period.Status(record.Date)
	if status == models.DateWithin {
		return true, false
	}

	switch c.opts.OutOfRange {
	case PolicyAdjust:
		record.Date = c.opts.Period.Clamp(record.Date)
		return true, true
	case PolicyExclude:
		result.Stats.Excluded++
		return false, false
	default: // PolicyKeep
		result.Stats.Kept++
		return true, false
	}
}

// Records exposes the accumulated records for preview and editing.
func (c *Converter) Records() []models.TransactionRecord {
	return c.serializer.Records()
}

// SetDeleted toggles the deleted flag on an accumulated record before
// rendering. Records are never resurrected automatically.
func (c *Converter) SetDeleted(index int, deleted bool) error {
	return c.serializer.SetDeleted(index, deleted)
}

// Summary recomputes the balance aggregate over the current records.
func (c *Converter) Summary() models.BalanceSummary {
	return assembler.CalculateBalanceSummary(c.serializer.Records(), c.opts.InitialBalance)
}

// DerivePeriod builds a statement period spanning the earliest and latest
// non-deleted record dates. It fails when no records are available.
func (c *Converter) DerivePeriod() (models.StatementPeriod, error) {
	var start, end *models.TransactionRecord
	records := c.serializer.Records()
	for i := range records {
		r := &records[i]
		if r.Deleted {
			continue
		}
		if start == nil || r.Date.Before(start.Date) {
			start = r
		}
		if end == nil || r.Date.After(end.Date) {
			end = r
		}
	}
	if start == nil {
		return models.StatementPeriod{}, &parsererror.MissingRequiredFieldError{Field: "period"}
	}
	return models.NewStatementPeriodFromTime(start.Date, end.Date)
}

// Generate renders the OFX document from the accumulated state. The
// period is required at render time: when none was configured it must be
// supplied here.
func (c *Converter) Generate(period *models.StatementPeriod) (string, error) {
	p := c.opts.Period
	if period != nil {
		p = period
	}
	if p == nil {
		return "", &parsererror.MissingRequiredFieldError{Field: "period"}
	}
	return c.serializer.Generate(c.opts.AccountID, c.opts.BankName,
		c.opts.Currency, *p, c.opts.InitialBalance)
}
