package models

import (
	"fjacquet/csv-ofx/internal/parsererror"
)

// MaxDescriptionColumns caps how many source columns may be composed into
// one memo.
const MaxDescriptionColumns = 4

// DefaultPlaceholder is the memo used when every mapped description column
// is empty.
const DefaultPlaceholder = "N/A"

// FieldMapping binds statement fields to CSV column indices. Optional
// fields use a nil pointer rather than a sentinel value, so "not mapped"
// never needs a magic-string comparison.
type FieldMapping struct {
	Date        int    `yaml:"date"`
	Amount      int    `yaml:"amount"`
	Description []int  `yaml:"description"`
	Separator   string `yaml:"separator"`
	Type        *int   `yaml:"type,omitempty"`
	ID          *int   `yaml:"id,omitempty"`
	Placeholder string `yaml:"placeholder,omitempty"`
}

// descriptionSeparators are the accepted join separators.
var descriptionSeparators = map[string]bool{
	" ": true,
	"-": true,
	",": true,
	"|": true,
}

// Validate checks the mapping against the decoded header count. Date and
// amount are required; every mapped index must be in range; at most four
// description columns are allowed.
func (m FieldMapping) Validate(headerCount int) error {
	if m.Date < 0 || m.Date >= headerCount {
		return &parsererror.MissingRequiredFieldError{Field: "date column"}
	}
	if m.Amount < 0 || m.Amount >= headerCount {
		return &parsererror.MissingRequiredFieldError{Field: "amount column"}
	}
	if len(m.Description) == 0 {
		return &parsererror.MissingRequiredFieldError{Field: "description column"}
	}
	if len(m.Description) > MaxDescriptionColumns {
		return &parsererror.MissingRequiredFieldError{Field: "description columns (at most 4)"}
	}
	for _, idx := range m.Description {
		if idx < 0 || idx >= headerCount {
			return &parsererror.MissingRequiredFieldError{Field: "description column"}
		}
	}
	if m.Type != nil && (*m.Type < 0 || *m.Type >= headerCount) {
		return &parsererror.MissingRequiredFieldError{Field: "type column"}
	}
	if m.ID != nil && (*m.ID < 0 || *m.ID >= headerCount) {
		return &parsererror.MissingRequiredFieldError{Field: "id column"}
	}
	if m.Separator != "" && !descriptionSeparators[m.Separator] {
		return &parsererror.MissingRequiredFieldError{Field: "description separator"}
	}
	return nil
}

// SeparatorOrDefault returns the configured separator, defaulting to a
// single space.
func (m FieldMapping) SeparatorOrDefault() string {
	if m.Separator == "" {
		return " "
	}
	return m.Separator
}

// PlaceholderOrDefault returns the configured empty-description
// placeholder, defaulting to "N/A".
func (m FieldMapping) PlaceholderOrDefault() string {
	if m.Placeholder == "" {
		return DefaultPlaceholder
	}
	return m.Placeholder
}
