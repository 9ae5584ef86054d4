// Package models holds the canonical data types shared by the decoder,
// assembler and serializer.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DescriptionMaxLen is the OFX MEMO length cap.
const DescriptionMaxLen = 255

// TransactionType is the OFX transaction direction.
type TransactionType string

const (
	TypeDebit  TransactionType = "DEBIT"
	TypeCredit TransactionType = "CREDIT"
)

// Opposite returns the swapped direction.
func (t TransactionType) Opposite() TransactionType {
	if t == TypeDebit {
		return TypeCredit
	}
	return TypeDebit
}

// TransactionRecord is one assembled statement transaction.
//
// ID is either supplied by the source file (opaque) or a deterministic
// function of the record content; it is never random, so re-exporting the
// same file reproduces the same FITIDs. Deleted marks a record excluded by
// an external reviewer before rendering; it is never cleared automatically.
type TransactionRecord struct {
	ID          string          `json:"id" yaml:"id" csv:"id"`
	Date        time.Time       `json:"date" yaml:"date" csv:"-"`
	Amount      decimal.Decimal `json:"amount" yaml:"amount" csv:"amount"`
	Description string          `json:"description" yaml:"description" csv:"description"`
	Type        TransactionType `json:"type" yaml:"type" csv:"type"`
	Deleted     bool            `json:"deleted" yaml:"deleted" csv:"deleted"`
}

// IsDebit reports whether the record is a debit.
func (r TransactionRecord) IsDebit() bool {
	return r.Type == TypeDebit
}

// IsCredit reports whether the record is a credit.
func (r TransactionRecord) IsCredit() bool {
	return r.Type == TypeCredit
}

// Inverted returns a copy with the amount negated and the type swapped.
func (r TransactionRecord) Inverted() TransactionRecord {
	r.Amount = r.Amount.Neg()
	r.Type = r.Type.Opposite()
	return r
}

// TruncateDescription enforces the MEMO length cap. The cap counts
// characters, not bytes, so multi-byte runes are never split.
func TruncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) > DescriptionMaxLen {
		return string(runes[:DescriptionMaxLen])
	}
	return s
}
