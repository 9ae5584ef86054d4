// Package currencyutils provides locale-aware normalization of monetary
// strings into exact decimal amounts.
package currencyutils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"fjacquet/csv-ofx/internal/parsererror"
)

// DecimalSeparator is one of the two supported decimal conventions.
type DecimalSeparator rune

const (
	DecimalDot   DecimalSeparator = '.'
	DecimalComma DecimalSeparator = ','
)

// IsValid reports whether the separator is a supported convention.
func (s DecimalSeparator) IsValid() bool {
	return s == DecimalDot || s == DecimalComma
}

// thousands returns the grouping separator implied by the decimal one.
func (s DecimalSeparator) thousands() string {
	if s == DecimalComma {
		return "."
	}
	return ","
}

var validDecimalPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// NormalizeAmount converts a locale-formatted monetary string into a
// decimal rounded to exactly 2 fractional places (half away from zero).
//
// Accepted inputs include currency affixes in any position ("-R$ 100,00",
// "R$ -100,00", "100.50 USD"), parentheses negation ("(100,50)"), and
// grouping separators ("1.234,56" / "1,234.56" per the configured
// convention). Anything that is not a signed decimal after stripping fails
// with AmountFormatError.
func NormalizeAmount(raw string, sep DecimalSeparator) (decimal.Decimal, error) {
	if !sep.IsValid() {
		return decimal.Zero, &parsererror.AmountFormatError{Raw: raw}
	}

	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, &parsererror.AmountFormatError{Raw: raw}
	}

	negative := false

	// Parenthesized values denote negation: "(100,50)" -> -100.50.
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	// An explicit minus sign may sit before or after the currency symbol.
	if strings.Contains(s, "-") {
		negative = true
	}
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "+", "")

	// Drop currency symbols, letters and inner whitespace; keep digits and
	// the two separator candidates.
	var core strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			core.WriteRune(r)
		}
	}
	s = core.String()
	if s == "" {
		return decimal.Zero, &parsererror.AmountFormatError{Raw: raw}
	}

	// Remove grouping separators, then canonicalize the decimal separator
	// to a dot.
	s = strings.ReplaceAll(s, sep.thousands(), "")
	if sep == DecimalComma {
		s = strings.ReplaceAll(s, ",", ".")
	}

	if !validDecimalPattern.MatchString(s) {
		return decimal.Zero, &parsererror.AmountFormatError{Raw: raw}
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &parsererror.AmountFormatError{Raw: raw}
	}

	if negative {
		amount = amount.Neg()
	}

	// decimal.Round rounds half away from zero.
	return amount.Round(2), nil
}

// FormatAmount renders an amount with exactly 2 fractional digits, the
// form OFX uses for TRNAMT and BALAMT.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
