package models

import (
	"time"

	"fjacquet/csv-ofx/internal/dateutils"
	"fjacquet/csv-ofx/internal/parsererror"
)

// DateStatus classifies a date against a statement period.
type DateStatus int

const (
	DateBefore DateStatus = iota
	DateWithin
	DateAfter
)

// String returns the status name.
func (s DateStatus) String() string {
	switch s {
	case DateBefore:
		return "Before"
	case DateWithin:
		return "Within"
	case DateAfter:
		return "After"
	default:
		return "Unknown"
	}
}

// StatementPeriod is the inclusive date range [Start, End] a generated
// statement claims to cover. Start <= End holds for every constructed
// value.
type StatementPeriod struct {
	Start time.Time
	End   time.Time
}

// NewStatementPeriod parses the two boundary strings and validates the
// range. Either boundary failing to parse, or start after end, yields
// InvalidPeriodError.
func NewStatementPeriod(start, end string) (StatementPeriod, error) {
	startDate, err := dateutils.ParseDate(start)
	if err != nil {
		return StatementPeriod{}, &parsererror.InvalidPeriodError{
			Start:  start,
			End:    end,
			Reason: "start date is not parseable",
		}
	}

	endDate, err := dateutils.ParseDate(end)
	if err != nil {
		return StatementPeriod{}, &parsererror.InvalidPeriodError{
			Start:  start,
			End:    end,
			Reason: "end date is not parseable",
		}
	}

	return NewStatementPeriodFromTime(startDate, endDate)
}

// NewStatementPeriodFromTime builds a period from already parsed dates.
func NewStatementPeriodFromTime(start, end time.Time) (StatementPeriod, error) {
	start = dateutils.Normalize(start)
	end = dateutils.Normalize(end)

	if start.After(end) {
		return StatementPeriod{}, &parsererror.InvalidPeriodError{
			Start:  dateutils.ToISODate(start),
			End:    dateutils.ToISODate(end),
			Reason: "start date is after end date",
		}
	}

	return StatementPeriod{Start: start, End: end}, nil
}

// IsZero reports whether the period was never constructed.
func (p StatementPeriod) IsZero() bool {
	return p.Start.IsZero() && p.End.IsZero()
}

// Status classifies a date against the period, inclusive on both ends.
// The comparison is a calendar comparison at day precision.
func (p StatementPeriod) Status(d time.Time) DateStatus {
	switch {
	case dateutils.Compare(d, p.Start) < 0:
		return DateBefore
	case dateutils.Compare(d, p.End) > 0:
		return DateAfter
	default:
		return DateWithin
	}
}

// Clamp returns Start for dates before the period, End for dates after it,
// and the date itself otherwise.
func (p StatementPeriod) Clamp(d time.Time) time.Time {
	switch p.Status(d) {
	case DateBefore:
		return p.Start
	case DateAfter:
		return p.End
	default:
		return dateutils.Normalize(d)
	}
}

// Contains reports whether the date falls within the period.
func (p StatementPeriod) Contains(d time.Time) bool {
	return p.Status(d) == DateWithin
}
