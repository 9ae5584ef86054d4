package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/csv-ofx/internal/parsererror"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		sep      DecimalSeparator
		expected string
	}{
		{"Plain dot decimal", "100.50", DecimalDot, "100.50"},
		{"Plain comma decimal", "100,50", DecimalComma, "100.50"},
		{"Negative dot decimal", "-100.50", DecimalDot, "-100.50"},
		{"Negative comma decimal", "-100,50", DecimalComma, "-100.50"},
		{"Thousands separator dot convention", "1,234.56", DecimalDot, "1234.56"},
		{"Thousands separator comma convention", "1.234,56", DecimalComma, "1234.56"},
		{"Currency prefix", "R$ 100,00", DecimalComma, "100.00"},
		{"Sign before currency prefix", "-R$ 100,00", DecimalComma, "-100.00"},
		{"Sign after currency prefix", "R$ -100,00", DecimalComma, "-100.00"},
		{"Currency suffix", "100.50 USD", DecimalDot, "100.50"},
		{"Parentheses negation", "(100,50)", DecimalComma, "-100.50"},
		{"Parentheses with symbol", "($ 1,234.56)", DecimalDot, "-1234.56"},
		{"Apostrophe grouping", "CHF 1'234.56", DecimalDot, "1234.56"},
		{"Surrounding whitespace", "  42.00  ", DecimalDot, "42.00"},
		{"Integer value", "250", DecimalComma, "250.00"},
		{"Rounds half away from zero", "100.005", DecimalDot, "100.01"},
		{"Rounds half away from zero negative", "-100.005", DecimalDot, "-100.01"},
		{"Truncates to two decimals", "3.14159", DecimalDot, "3.14"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			amount, err := NormalizeAmount(tc.raw, tc.sep)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, amount.StringFixed(2))
		})
	}
}

func TestNormalizeAmountErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		sep  DecimalSeparator
	}{
		{"Empty string", "", DecimalDot},
		{"Only whitespace", "   ", DecimalDot},
		{"No digits", "abc", DecimalDot},
		{"Currency only", "R$", DecimalComma},
		{"Two decimal points", "12.34.56", DecimalDot},
		{"Unsupported separator", "100.50", DecimalSeparator(';')},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NormalizeAmount(tc.raw, tc.sep)
			require.Error(t, err)
			if tc.raw != "" {
				var formatErr *parsererror.AmountFormatError
				assert.ErrorAs(t, err, &formatErr)
			}
		})
	}
}

// Rendering an amount and normalizing it again must reproduce the amount
// exactly, across both decimal conventions.
func TestNormalizeAmountFormatStable(t *testing.T) {
	for i := 0; i < 1000; i++ {
		cents := int64(i*37 - 18500)
		want := decimal.New(cents, -2)

		rendered := FormatAmount(want)

		got, err := NormalizeAmount(rendered, DecimalDot)
		require.NoError(t, err)
		assert.True(t, want.Equal(got), "dot: %s != %s", want, got)

		// Swap to the comma convention for the second leg.
		commaRendered := swapDotComma(rendered)
		got, err = NormalizeAmount(commaRendered, DecimalComma)
		require.NoError(t, err)
		assert.True(t, want.Equal(got), "comma: %s != %s", want, got)
	}
}

func swapDotComma(s string) string {
	out := []rune(s)
	for i, r := range out {
		if r == '.' {
			out[i] = ','
		}
	}
	return string(out)
}

func TestDecimalSeparatorIsValid(t *testing.T) {
	assert.True(t, DecimalDot.IsValid())
	assert.True(t, DecimalComma.IsValid())
	assert.False(t, DecimalSeparator('x').IsValid())
}
