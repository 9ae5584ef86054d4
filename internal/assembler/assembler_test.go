package assembler

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/csv-ofx/internal/csvdecoder"
	"fjacquet/csv-ofx/internal/currencyutils"
	"fjacquet/csv-ofx/internal/models"
	"fjacquet/csv-ofx/internal/parsererror"
)

func intPtr(i int) *int { return &i }

func TestBuildDescription(t *testing.T) {
	tests := []struct {
		name        string
		row         csvdecoder.RawRow
		columns     []int
		separator   string
		placeholder string
		expected    string
	}{
		{"Single column", csvdecoder.RawRow{"Grocery"}, []int{0}, " ", "N/A", "Grocery"},
		{"Two columns joined", csvdecoder.RawRow{"Grocery", "Migros"}, []int{0, 1}, " - ", "N/A", "Grocery - Migros"},
		{"Empty part skipped", csvdecoder.RawRow{"Grocery", "", "Lausanne"}, []int{0, 1, 2}, " ", "N/A", "Grocery Lausanne"},
		{"Whitespace trimmed", csvdecoder.RawRow{"  Grocery  "}, []int{0}, " ", "N/A", "Grocery"},
		{"All empty uses placeholder", csvdecoder.RawRow{"", "  "}, []int{0, 1}, " ", "N/A", "N/A"},
		{"Out of range column treated as empty", csvdecoder.RawRow{"Grocery"}, []int{0, 5}, " ", "N/A", "Grocery"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := BuildDescription(tc.row, tc.columns, tc.separator, tc.placeholder)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestBuildDescriptionTruncates(t *testing.T) {
	row := csvdecoder.RawRow{strings.Repeat("x", 200), strings.Repeat("y", 200)}
	result := BuildDescription(row, []int{0, 1}, " ", "N/A")
	assert.Len(t, result, models.DescriptionMaxLen)
}

func TestDetermineType(t *testing.T) {
	tests := []struct {
		name       string
		row        csvdecoder.RawRow
		typeColumn *int
		amount     string
		expected   models.TransactionType
	}{
		{"Mapped lowercase debit", csvdecoder.RawRow{"debit"}, intPtr(0), "100.00", models.TypeDebit},
		{"Mapped uppercase credit", csvdecoder.RawRow{"CREDIT"}, intPtr(0), "-100.00", models.TypeCredit},
		{"Mapped mixed case", csvdecoder.RawRow{" Debit "}, intPtr(0), "100.00", models.TypeDebit},
		{"Inferred from negative amount", csvdecoder.RawRow{}, nil, "-50.00", models.TypeDebit},
		{"Inferred from positive amount", csvdecoder.RawRow{}, nil, "50.00", models.TypeCredit},
		{"Zero amount infers credit", csvdecoder.RawRow{}, nil, "0.00", models.TypeCredit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tc.amount)
			result, err := DetermineType(tc.row, tc.typeColumn, amount)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestDetermineTypeUnknownValue(t *testing.T) {
	row := csvdecoder.RawRow{"withdrawal"}
	_, err := DetermineType(row, intPtr(0), decimal.Zero)
	require.Error(t, err)
	var typeErr *parsererror.UnknownTypeValueError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, "withdrawal", typeErr.Raw)
}

func TestGenerateDeterministicID(t *testing.T) {
	date := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	amount := decimal.RequireFromString("-100.50")

	id1 := GenerateDeterministicID(date, amount, "Grocery", "ACC-1", "0")
	id2 := GenerateDeterministicID(date, amount, "Grocery", "ACC-1", "0")
	assert.Equal(t, id1, id2, "identical inputs must reproduce the identifier")
	assert.Len(t, id1, 36)

	// Normalization: case and surrounding whitespace do not matter.
	id3 := GenerateDeterministicID(date, amount, "  GROCERY  ", "ACC-1", "0")
	assert.Equal(t, id1, id3)
}

func TestGenerateDeterministicIDFieldSensitivity(t *testing.T) {
	date := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	amount := decimal.RequireFromString("-100.50")
	base := GenerateDeterministicID(date, amount, "Grocery", "ACC-1", "0")

	tests := []struct {
		name string
		id   string
	}{
		{"Different date", GenerateDeterministicID(date.AddDate(0, 0, 1), amount, "Grocery", "ACC-1", "0")},
		{"Different amount", GenerateDeterministicID(date, amount.Neg(), "Grocery", "ACC-1", "0")},
		{"Different description", GenerateDeterministicID(date, amount, "Pharmacy", "ACC-1", "0")},
		{"Different account", GenerateDeterministicID(date, amount, "Grocery", "ACC-2", "0")},
		{"Different disambiguator", GenerateDeterministicID(date, amount, "Grocery", "ACC-1", "1")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotEqual(t, base, tc.id)
		})
	}
}

func TestExtractOrGenerateID(t *testing.T) {
	date := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	amount := decimal.RequireFromString("10.00")

	row := csvdecoder.RawRow{"TXN-42"}
	id := ExtractOrGenerateID(row, intPtr(0), date, amount, "Grocery", "ACC-1", "0")
	assert.Equal(t, "TXN-42", id)

	// Empty mapped value falls back to generation.
	emptyRow := csvdecoder.RawRow{"  "}
	id = ExtractOrGenerateID(emptyRow, intPtr(0), date, amount, "Grocery", "ACC-1", "0")
	assert.Equal(t, GenerateDeterministicID(date, amount, "Grocery", "ACC-1", "0"), id)

	// No mapped column at all.
	id = ExtractOrGenerateID(nil, nil, date, amount, "Grocery", "ACC-1", "0")
	assert.Equal(t, GenerateDeterministicID(date, amount, "Grocery", "ACC-1", "0"), id)
}

func TestAssembleRecord(t *testing.T) {
	mapping := models.FieldMapping{
		Date:        0,
		Amount:      1,
		Description: []int{2},
	}
	row := csvdecoder.RawRow{"2025-10-01", "-100.50", "Grocery"}

	record, err := AssembleRecord(row, mapping, currencyutils.DecimalDot, "ACC-1", 0)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), record.Date)
	assert.Equal(t, "-100.50", record.Amount.StringFixed(2))
	assert.Equal(t, "Grocery", record.Description)
	assert.Equal(t, models.TypeDebit, record.Type)
	assert.Len(t, record.ID, 36)
	assert.False(t, record.Deleted)
}

func TestAssembleRecordErrors(t *testing.T) {
	mapping := models.FieldMapping{
		Date:        0,
		Amount:      1,
		Description: []int{2},
	}

	tests := []struct {
		name     string
		row      csvdecoder.RawRow
		rowIndex int
		wantLine int
	}{
		{"Bad date", csvdecoder.RawRow{"31/02/2025", "-100.50", "Grocery"}, 0, 2},
		{"Bad amount", csvdecoder.RawRow{"2025-10-01", "abc", "Grocery"}, 3, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := AssembleRecord(tc.row, mapping, currencyutils.DecimalDot, "ACC-1", tc.rowIndex)
			require.Error(t, err)
			var rowErr *parsererror.RowError
			require.ErrorAs(t, err, &rowErr)
			assert.Equal(t, tc.wantLine, rowErr.Line)
		})
	}
}

func TestAssembleRecordTypeColumnError(t *testing.T) {
	mapping := models.FieldMapping{
		Date:        0,
		Amount:      1,
		Description: []int{2},
		Type:        intPtr(3),
	}
	row := csvdecoder.RawRow{"2025-10-01", "-100.50", "Grocery", "transfer"}

	_, err := AssembleRecord(row, mapping, currencyutils.DecimalDot, "ACC-1", 0)
	require.Error(t, err)
	var typeErr *parsererror.UnknownTypeValueError
	assert.ErrorAs(t, err, &typeErr)
}

func TestAssembleRecordDuplicateRowsGetDistinctIDs(t *testing.T) {
	mapping := models.FieldMapping{Date: 0, Amount: 1, Description: []int{2}}
	row := csvdecoder.RawRow{"2025-10-01", "-10.00", "Coffee"}

	first, err := AssembleRecord(row, mapping, currencyutils.DecimalDot, "ACC-1", 0)
	require.NoError(t, err)
	second, err := AssembleRecord(row, mapping, currencyutils.DecimalDot, "ACC-1", 1)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestCalculateBalanceSummary(t *testing.T) {
	records := []models.TransactionRecord{
		{Amount: decimal.RequireFromString("-50.00"), Type: models.TypeDebit},
		{Amount: decimal.RequireFromString("30.00"), Type: models.TypeCredit},
	}
	initial := decimal.RequireFromString("100.00")

	summary := CalculateBalanceSummary(records, initial)
	assert.Equal(t, "50.00", summary.TotalDebits.StringFixed(2))
	assert.Equal(t, "30.00", summary.TotalCredits.StringFixed(2))
	assert.Equal(t, "80.00", summary.Final.StringFixed(2))
	assert.Equal(t, 2, summary.Count)
}

func TestCalculateBalanceSummarySkipsDeleted(t *testing.T) {
	records := []models.TransactionRecord{
		{Amount: decimal.RequireFromString("-50.00"), Type: models.TypeDebit},
		{Amount: decimal.RequireFromString("-25.00"), Type: models.TypeDebit, Deleted: true},
		{Amount: decimal.RequireFromString("30.00"), Type: models.TypeCredit},
	}

	summary := CalculateBalanceSummary(records, decimal.RequireFromString("100.00"))
	assert.Equal(t, "50.00", summary.TotalDebits.StringFixed(2))
	assert.Equal(t, "80.00", summary.Final.StringFixed(2))
	assert.Equal(t, 2, summary.Count)
}

func TestCalculateBalanceSummaryEmpty(t *testing.T) {
	summary := CalculateBalanceSummary(nil, decimal.RequireFromString("42.00"))
	assert.Equal(t, "42.00", summary.Final.StringFixed(2))
	assert.Equal(t, "0.00", summary.TotalDebits.StringFixed(2))
	assert.Equal(t, "0.00", summary.TotalCredits.StringFixed(2))
	assert.Zero(t, summary.Count)
}

func TestCalculateBalanceSummaryZeroAmount(t *testing.T) {
	records := []models.TransactionRecord{
		{Amount: decimal.Zero, Type: models.TypeCredit},
	}
	summary := CalculateBalanceSummary(records, decimal.Zero)
	assert.Equal(t, "0.00", summary.TotalCredits.StringFixed(2))
	assert.Equal(t, 1, summary.Count)
}
