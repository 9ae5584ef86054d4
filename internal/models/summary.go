package models

import (
	"github.com/shopspring/decimal"
)

// BalanceSummary aggregates a record set against an initial balance. It is
// always derived on demand from the records, never mutated in place.
type BalanceSummary struct {
	Initial      decimal.Decimal `json:"initial" yaml:"initial"`
	TotalDebits  decimal.Decimal `json:"total_debits" yaml:"total_debits"`
	TotalCredits decimal.Decimal `json:"total_credits" yaml:"total_credits"`
	Final        decimal.Decimal `json:"final" yaml:"final"`
	Count        int             `json:"count" yaml:"count"`
}
