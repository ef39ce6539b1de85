package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shahocalc/premium-calculator/pkg/dateutil"
)

// WorkCategory classifies an employee for insurance coverage purposes.
type WorkCategory string

const (
	// WorkFullTime is an ordinarily insured full-time employee.
	WorkFullTime WorkCategory = "full_time"
	// WorkShortTimeQualifying is a short-time employee who still qualifies
	// for coverage (20+ contracted weekly hours and 88,000+ yen monthly wage).
	WorkShortTimeQualifying WorkCategory = "short_time_qualifying"
	// WorkNonInsured is an employee outside coverage entirely.
	WorkNonInsured WorkCategory = "non_insured"
)

// LeaveWindow is a maternity or childcare leave period. End is the confirmed
// end date; ExpectedEnd is the provisional one used until End is known.
type LeaveWindow struct {
	Start       *time.Time `yaml:"start,omitempty" json:"start,omitempty"`
	End         *time.Time `yaml:"end,omitempty" json:"end,omitempty"`
	ExpectedEnd *time.Time `yaml:"expected_end,omitempty" json:"expected_end,omitempty"`
}

// EffectiveEnd returns the confirmed end date when present, otherwise the
// expected end date. Nil when neither is set.
func (lw *LeaveWindow) EffectiveEnd() *time.Time {
	if lw == nil {
		return nil
	}
	if lw.End != nil {
		return lw.End
	}
	return lw.ExpectedEnd
}

// IsSet reports whether the window has at least a start and some end date.
func (lw *LeaveWindow) IsSet() bool {
	return lw != nil && lw.Start != nil && lw.EffectiveEnd() != nil
}

// AcquisitionInfo is the cached result of the acquisition-time determination.
// Once written it is never recomputed.
type AcquisitionInfo struct {
	Grade    int             `yaml:"grade" json:"grade"`
	Standard decimal.Decimal `yaml:"standard" json:"standard"`
	Year     int             `yaml:"year" json:"year"`
	Month    int             `yaml:"month" json:"month"`
}

// Employee holds everything the determiners and the premium calculator need
// to know about one insured person.
type Employee struct {
	ID             string     `yaml:"id" json:"id"`
	Name           string     `yaml:"name" json:"name"`
	BirthDate      time.Time  `yaml:"birth_date" json:"birth_date"`
	HireDate       time.Time  `yaml:"hire_date" json:"hire_date"`
	RetirementDate *time.Time `yaml:"retirement_date,omitempty" json:"retirement_date,omitempty"`

	Maternity *LeaveWindow `yaml:"maternity_leave,omitempty" json:"maternity_leave,omitempty"`
	Childcare *LeaveWindow `yaml:"childcare_leave,omitempty" json:"childcare_leave,omitempty"`

	LeaveOfAbsenceStart *time.Time `yaml:"leave_of_absence_start,omitempty" json:"leave_of_absence_start,omitempty"`
	ReturnFromLeave     *time.Time `yaml:"return_from_leave,omitempty" json:"return_from_leave,omitempty"`

	// Coverage classification inputs.
	WeeklyHours           decimal.Decimal `yaml:"weekly_hours" json:"weekly_hours"`
	ContractedMonthlyWage decimal.Decimal `yaml:"contracted_monthly_wage" json:"contracted_monthly_wage"`
	IsShortTime           bool            `yaml:"is_short_time,omitempty" json:"is_short_time,omitempty"`

	Prefecture string `yaml:"prefecture,omitempty" json:"prefecture,omitempty"`

	// Acquisition determination cache, set exactly once.
	Acquisition *AcquisitionInfo `yaml:"acquisition,omitempty" json:"acquisition,omitempty"`
}

// AgeAtMonth returns the employee's insurance age on the 1st of the month.
func (e *Employee) AgeAtMonth(year, month int) int {
	return dateutil.AgeAtMonth(e.BirthDate, year, month)
}

// IsRetiredAsOf reports whether the retirement date falls on or before the
// reference date. Employees without a retirement date are never retired.
func (e *Employee) IsRetiredAsOf(at time.Time) bool {
	return e.RetirementDate != nil && !e.RetirementDate.After(at)
}

// HiredByMonth reports whether the employee was already hired in or before
// the given month.
func (e *Employee) HiredByMonth(year, month int) bool {
	if e.HireDate.IsZero() {
		return false
	}
	return dateutil.MonthKey(e.HireDate.Year(), int(e.HireDate.Month())) <= dateutil.MonthKey(year, month)
}

// Validate checks the employee's date invariants.
func (e *Employee) Validate() error {
	if e.ID == "" {
		return errEmployee("id is required")
	}
	if e.BirthDate.IsZero() {
		return errEmployee("birth date is required")
	}
	if e.HireDate.IsZero() {
		return errEmployee("hire date is required")
	}
	if e.RetirementDate != nil && e.RetirementDate.Before(e.HireDate) {
		return errEmployee("retirement date cannot precede hire date")
	}
	for _, lw := range []*LeaveWindow{e.Maternity, e.Childcare} {
		if lw == nil || lw.Start == nil {
			continue
		}
		if end := lw.EffectiveEnd(); end != nil && end.Before(*lw.Start) {
			return errEmployee("leave end cannot precede leave start")
		}
	}
	return nil
}

type errEmployee string

func (e errEmployee) Error() string { return "employee: " + string(e) }
