package domain

import (
	"github.com/shopspring/decimal"
)

// GradeBand is one remuneration band: an amount a with lower <= a < upper
// maps to this band's rank and standard monthly remuneration.
type GradeBand struct {
	Rank     int             `yaml:"rank" json:"rank"`
	Lower    decimal.Decimal `yaml:"lower" json:"lower"`
	Upper    decimal.Decimal `yaml:"upper" json:"upper"`
	Standard decimal.Decimal `yaml:"standard" json:"standard"`
}

// Contains reports band membership: lower <= amount < upper.
func (b GradeBand) Contains(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(b.Lower) && amount.LessThan(b.Upper)
}

// GradeTable is the ordered, non-overlapping band list for one year.
type GradeTable struct {
	Year  int         `yaml:"year" json:"year"`
	Bands []GradeBand `yaml:"bands" json:"bands"`
}

// PremiumRatePair is the employee/employer split for one insurance.
type PremiumRatePair struct {
	Employee decimal.Decimal `yaml:"employee" json:"employee"`
	Employer decimal.Decimal `yaml:"employer" json:"employer"`
}

// PremiumRates carries the three insurance rate pairs.
type PremiumRates struct {
	Health  PremiumRatePair `yaml:"health" json:"health"`
	Care    PremiumRatePair `yaml:"care" json:"care"`
	Pension PremiumRatePair `yaml:"pension" json:"pension"`
}

// RateTable is the rate set for a year and prefecture. When a mid-year rate
// revision exists, Revised applies from RevisionMonth onward.
type RateTable struct {
	Year          int           `yaml:"year" json:"year"`
	Prefecture    string        `yaml:"prefecture" json:"prefecture"`
	Rates         PremiumRates  `yaml:"rates" json:"rates"`
	RevisionMonth int           `yaml:"revision_month,omitempty" json:"revision_month,omitempty"`
	Revised       *PremiumRates `yaml:"revised,omitempty" json:"revised,omitempty"`
}

// For returns the rates in force for the given month.
func (rt *RateTable) For(month int) PremiumRates {
	if rt == nil {
		return PremiumRates{}
	}
	if rt.Revised != nil && rt.RevisionMonth > 0 && month >= rt.RevisionMonth {
		return *rt.Revised
	}
	return rt.Rates
}
