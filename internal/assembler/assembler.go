// Package assembler builds canonical transaction records from decoded CSV
// rows plus a field mapping. Every function here is pure: same inputs,
// same record, which is what keeps generated FITIDs reproducible across
// independent runs.
package assembler

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"fjacquet/csv-ofx/internal/csvdecoder"
	"fjacquet/csv-ofx/internal/currencyutils"
	"fjacquet/csv-ofx/internal/dateutils"
	"fjacquet/csv-ofx/internal/models"
	"fjacquet/csv-ofx/internal/parsererror"
)

// idNamespace scopes generated identifiers to this application. Changing
// it would change every generated FITID, so it is fixed for the life of
// the project.
var idNamespace = uuid.MustParse("9f2c1a47-6b7e-5d38-8c21-4f05e9d6a1b3")

// idFieldSeparator joins the identifier input fields before hashing.
const idFieldSeparator = "|"

// BuildDescription concatenates the trimmed, non-empty values of the
// selected columns joined by separator, truncated to 255 characters. When
// every selected value is empty the placeholder is returned instead.
func BuildDescription(row csvdecoder.RawRow, columns []int, separator, placeholder string) string {
	parts := make([]string, 0, len(columns))
	for _, idx := range columns {
		value := strings.TrimSpace(row.Get(idx))
		if value != "" {
			parts = append(parts, value)
		}
	}
	if len(parts) == 0 {
		return placeholder
	}
	return models.TruncateDescription(strings.Join(parts, separator))
}

// DetermineType resolves the transaction direction. A mapped type column
// is parsed case-insensitively as debit/credit and anything else fails
// with UnknownTypeValueError. Without a type column the direction is
// inferred from the amount sign; a zero amount infers CREDIT.
func DetermineType(row csvdecoder.RawRow, typeColumn *int, amount decimal.Decimal) (models.TransactionType, error) {
	if typeColumn != nil {
		raw := strings.TrimSpace(row.Get(*typeColumn))
		switch strings.ToLower(raw) {
		case "debit":
			return models.TypeDebit, nil
		case "credit":
			return models.TypeCredit, nil
		default:
			return "", &parsererror.UnknownTypeValueError{Raw: raw}
		}
	}

	if amount.IsNegative() {
		return models.TypeDebit, nil
	}
	return models.TypeCredit, nil
}

// GenerateDeterministicID computes a version-5 UUID over the normalized
// record content under the application namespace. Identical inputs always
// produce the identical 36-character identifier, across processes and
// runs; changing any one input changes the identifier.
func GenerateDeterministicID(date time.Time, amount decimal.Decimal, description, accountID, disambiguator string) string {
	normalizedDescription := models.TruncateDescription(
		strings.ToLower(strings.TrimSpace(description)))

	name := strings.Join([]string{
		dateutils.ToOFXDate(date),
		amount.StringFixed(2),
		normalizedDescription,
		accountID,
		disambiguator,
	}, idFieldSeparator)

	return uuid.NewSHA1(idNamespace, []byte(name)).String()
}

// ExtractOrGenerateID returns the mapped ID column's raw value when it
// holds one, falling back to the deterministic identifier otherwise.
func ExtractOrGenerateID(row csvdecoder.RawRow, idColumn *int, date time.Time, amount decimal.Decimal, description, accountID, disambiguator string) string {
	if idColumn != nil {
		if raw := strings.TrimSpace(row.Get(*idColumn)); raw != "" {
			return raw
		}
	}
	return GenerateDeterministicID(date, amount, description, accountID, disambiguator)
}

// AssembleRecord builds a full TransactionRecord from one row. Failures
// are wrapped in RowError with the 1-based input line number (the header
// is line 1, so row index i maps to line i+2) and are recoverable at the
// caller's discretion; a failed row is reported, never silently dropped.
func AssembleRecord(row csvdecoder.RawRow, mapping models.FieldMapping, sep currencyutils.DecimalSeparator, accountID string, rowIndex int) (models.TransactionRecord, error) {
	line := rowIndex + 2

	date, err := dateutils.ParseDate(row.Get(mapping.Date))
	if err != nil {
		return models.TransactionRecord{}, &parsererror.RowError{Line: line, Err: err}
	}

	amount, err := currencyutils.NormalizeAmount(row.Get(mapping.Amount), sep)
	if err != nil {
		return models.TransactionRecord{}, &parsererror.RowError{Line: line, Err: err}
	}

	description := BuildDescription(row, mapping.Description,
		mapping.SeparatorOrDefault(), mapping.PlaceholderOrDefault())

	txType, err := DetermineType(row, mapping.Type, amount)
	if err != nil {
		return models.TransactionRecord{}, &parsererror.RowError{Line: line, Err: err}
	}

	id := ExtractOrGenerateID(row, mapping.ID, date, amount, description,
		accountID, strconv.Itoa(rowIndex))

	return models.TransactionRecord{
		ID:          id,
		Date:        date,
		Amount:      amount,
		Description: description,
		Type:        txType,
	}, nil
}

// CalculateBalanceSummary derives the aggregate balances for a record set.
// Deleted records are excluded entirely, not zeroed. Final is always
// initial + the signed sum of the contributing amounts.
func CalculateBalanceSummary(records []models.TransactionRecord, initial decimal.Decimal) models.BalanceSummary {
	summary := models.BalanceSummary{
		Initial:      initial,
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
		Final:        initial,
	}

	for _, r := range records {
		if r.Deleted {
			continue
		}
		if r.Amount.IsNegative() {
			summary.TotalDebits = summary.TotalDebits.Add(r.Amount.Abs())
		} else {
			summary.TotalCredits = summary.TotalCredits.Add(r.Amount)
		}
		summary.Final = summary.Final.Add(r.Amount)
		summary.Count++
	}

	return summary
}
