package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryItemKind classifies an itemized salary entry.
type SalaryItemKind string

const (
	ItemFixed     SalaryItemKind = "fixed"
	ItemVariable  SalaryItemKind = "variable"
	ItemDeduction SalaryItemKind = "deduction"
)

// SalaryItem is one line of an itemized monthly salary, classified against
// the salary item master.
type SalaryItem struct {
	Name   string          `yaml:"name" json:"name"`
	Kind   SalaryItemKind  `yaml:"kind" json:"kind"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// SalaryMonth is one employee's remuneration for one month. Total is always
// Fixed+Variable; Normalize recomputes it on write.
type SalaryMonth struct {
	EmployeeID  string          `yaml:"employee_id" json:"employee_id"`
	Year        int             `yaml:"year" json:"year"`
	Month       int             `yaml:"month" json:"month"`
	Fixed       decimal.Decimal `yaml:"fixed" json:"fixed"`
	Variable    decimal.Decimal `yaml:"variable" json:"variable"`
	Total       decimal.Decimal `yaml:"total" json:"total"`
	Items       []SalaryItem    `yaml:"items,omitempty" json:"items,omitempty"`
	WorkingDays int             `yaml:"working_days,omitempty" json:"working_days,omitempty"`
}

// Normalize recomputes Fixed/Variable from the itemized entries when present
// (deductions do not feed the remuneration base) and always recomputes Total.
func (s *SalaryMonth) Normalize() {
	if len(s.Items) > 0 {
		fixed := decimal.Zero
		variable := decimal.Zero
		for _, it := range s.Items {
			switch it.Kind {
			case ItemFixed:
				fixed = fixed.Add(it.Amount)
			case ItemVariable:
				variable = variable.Add(it.Amount)
			}
		}
		s.Fixed = fixed
		s.Variable = variable
	}
	s.Total = s.Fixed.Add(s.Variable)
}

// Bonus is a single bonus payment with its derived premium bases.
type Bonus struct {
	EmployeeID string          `yaml:"employee_id" json:"employee_id"`
	Year       int             `yaml:"year" json:"year"`
	Month      int             `yaml:"month" json:"month"`
	PayDate    time.Time       `yaml:"pay_date" json:"pay_date"`
	Amount     decimal.Decimal `yaml:"amount" json:"amount"`

	// Derived premium bases, filled by the bonus aggregator.
	StandardBonusAmount decimal.Decimal `yaml:"standard_bonus_amount,omitempty" json:"standard_bonus_amount"`
	HealthCappedAmount  decimal.Decimal `yaml:"health_capped_amount,omitempty" json:"health_capped_amount"`
	PensionCappedAmount decimal.Decimal `yaml:"pension_capped_amount,omitempty" json:"pension_capped_amount"`
	Premiums            PremiumBundle   `yaml:"premiums,omitempty" json:"premiums"`

	IsExempted   bool    `yaml:"is_exempted,omitempty" json:"is_exempted,omitempty"`
	ExemptReason *Reason `yaml:"exempt_reason,omitempty" json:"exempt_reason,omitempty"`

	// Bonuses paid more than three times a year are treated as salary and
	// never enter the bonus aggregates.
	IsSalaryInsteadOfBonus bool `yaml:"is_salary_instead_of_bonus,omitempty" json:"is_salary_instead_of_bonus,omitempty"`
}

// CountsTowardAggregates reports whether this bonus contributes to any total.
func (b *Bonus) CountsTowardAggregates() bool {
	return !b.IsExempted && !b.IsSalaryInsteadOfBonus
}
