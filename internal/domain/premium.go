package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReasonKind tags why a rule fired. Downstream exemption checks switch on
// the tag; the note is display text only.
type ReasonKind string

const (
	ReasonRetired         ReasonKind = "retired"
	ReasonMaternity       ReasonKind = "maternity"
	ReasonChildcare       ReasonKind = "childcare"
	ReasonPensionAgeStop  ReasonKind = "pension_age_stop"
	ReasonHealthAgeStop   ReasonKind = "health_age_stop"
	ReasonCareStart       ReasonKind = "care_start"
	ReasonCareType1       ReasonKind = "care_type1"
	ReasonAcquisitionWait ReasonKind = "acquisition_wait"
	ReasonMidMonthLeaving ReasonKind = "mid_month_leaving"
	ReasonZeroSalary      ReasonKind = "zero_salary"
	ReasonNoGrade         ReasonKind = "no_grade"
	ReasonNoGradeTable    ReasonKind = "no_grade_table"
	ReasonNoRateTable     ReasonKind = "no_rate_table"
	ReasonExempt          ReasonKind = "exempt"
	ReasonSalaryInstead   ReasonKind = "salary_instead"
	ReasonIndeterminate   ReasonKind = "indeterminate"
	ReasonNonInsured      ReasonKind = "non_insured"
)

// Reason is a tagged narration of one rule that fired during calculation.
type Reason struct {
	Kind ReasonKind `yaml:"kind" json:"kind"`
	Note string     `yaml:"note" json:"note"`
}

// NewReason builds a reason.
func NewReason(kind ReasonKind, note string) Reason {
	return Reason{Kind: kind, Note: note}
}

// HasReason reports whether any reason carries the given kind.
func HasReason(reasons []Reason, kind ReasonKind) bool {
	for _, r := range reasons {
		if r.Kind == kind {
			return true
		}
	}
	return false
}

// PremiumBundle is the six premium figures for one month or one bonus.
type PremiumBundle struct {
	HealthEmployee  decimal.Decimal `yaml:"health_employee" json:"health_employee"`
	HealthEmployer  decimal.Decimal `yaml:"health_employer" json:"health_employer"`
	CareEmployee    decimal.Decimal `yaml:"care_employee" json:"care_employee"`
	CareEmployer    decimal.Decimal `yaml:"care_employer" json:"care_employer"`
	PensionEmployee decimal.Decimal `yaml:"pension_employee" json:"pension_employee"`
	PensionEmployer decimal.Decimal `yaml:"pension_employer" json:"pension_employer"`
}

// Add returns the element-wise sum of two bundles.
func (p PremiumBundle) Add(other PremiumBundle) PremiumBundle {
	return PremiumBundle{
		HealthEmployee:  p.HealthEmployee.Add(other.HealthEmployee),
		HealthEmployer:  p.HealthEmployer.Add(other.HealthEmployer),
		CareEmployee:    p.CareEmployee.Add(other.CareEmployee),
		CareEmployer:    p.CareEmployer.Add(other.CareEmployer),
		PensionEmployee: p.PensionEmployee.Add(other.PensionEmployee),
		PensionEmployer: p.PensionEmployer.Add(other.PensionEmployer),
	}
}

// HealthTotal returns employee+employer health premium.
func (p PremiumBundle) HealthTotal() decimal.Decimal {
	return p.HealthEmployee.Add(p.HealthEmployer)
}

// CareTotal returns employee+employer long-term-care premium.
func (p PremiumBundle) CareTotal() decimal.Decimal {
	return p.CareEmployee.Add(p.CareEmployer)
}

// PensionTotal returns employee+employer pension premium.
func (p PremiumBundle) PensionTotal() decimal.Decimal {
	return p.PensionEmployee.Add(p.PensionEmployer)
}

// Total returns the sum of all six figures.
func (p PremiumBundle) Total() decimal.Decimal {
	return p.HealthTotal().Add(p.CareTotal()).Add(p.PensionTotal())
}

// IsZero reports whether all six figures are zero.
func (p PremiumBundle) IsZero() bool {
	return p.Total().IsZero()
}

// StoppingFlags records which stopping rules fired for a month or bonus.
type StoppingFlags struct {
	IsRetired        bool `yaml:"is_retired,omitempty" json:"is_retired,omitempty"`
	IsMaternityLeave bool `yaml:"is_maternity_leave,omitempty" json:"is_maternity_leave,omitempty"`
	IsChildcareLeave bool `yaml:"is_childcare_leave,omitempty" json:"is_childcare_leave,omitempty"`
	IsPensionStopped bool `yaml:"is_pension_stopped,omitempty" json:"is_pension_stopped,omitempty"`
	IsHealthStopped  bool `yaml:"is_health_stopped,omitempty" json:"is_health_stopped,omitempty"`
}

// MonthlyPremiumRow is one employee-month result.
type MonthlyPremiumRow struct {
	EmployeeID string        `yaml:"employee_id" json:"employee_id"`
	Year       int           `yaml:"year" json:"year"`
	Month      int           `yaml:"month" json:"month"`
	Premiums   PremiumBundle `yaml:"premiums" json:"premiums"`
	Exempt     bool          `yaml:"exempt,omitempty" json:"exempt,omitempty"`
	Reasons    []Reason      `yaml:"reasons,omitempty" json:"reasons,omitempty"`
	Flags      StoppingFlags `yaml:"flags,omitempty" json:"flags,omitempty"`

	Grade                int             `yaml:"grade,omitempty" json:"grade,omitempty"`
	StandardRemuneration decimal.Decimal `yaml:"standard_remuneration,omitempty" json:"standard_remuneration"`

	// Determination annotations for audit display.
	AcquisitionNote string `yaml:"acquisition_note,omitempty" json:"acquisition_note,omitempty"`
	TeijiNote       string `yaml:"teiji_note,omitempty" json:"teiji_note,omitempty"`
	SuijiNote       string `yaml:"suiji_note,omitempty" json:"suiji_note,omitempty"`
}

// DeterminationReason identifies which procedure set a standard remuneration.
type DeterminationReason string

const (
	DeterminationAcquisition DeterminationReason = "acquisition"
	DeterminationTeiji       DeterminationReason = "teiji"
	DeterminationSuiji       DeterminationReason = "suiji"
)

// StandardRemunerationHistory is one entry of the append-only determination
// log. At most one entry exists per (employee, applyStartYear,
// applyStartMonth, reason).
type StandardRemunerationHistory struct {
	EmployeeID                  string              `yaml:"employee_id" json:"employee_id"`
	ApplyStartYear              int                 `yaml:"apply_start_year" json:"apply_start_year"`
	ApplyStartMonth             int                 `yaml:"apply_start_month" json:"apply_start_month"`
	Grade                       int                 `yaml:"grade" json:"grade"`
	StandardMonthlyRemuneration decimal.Decimal     `yaml:"standard_monthly_remuneration" json:"standard_monthly_remuneration"`
	Reason                      DeterminationReason `yaml:"reason" json:"reason"`
}

// InsuranceStatus is a per-insurance enrollment state for one month.
type InsuranceStatus string

const (
	StatusJoined          InsuranceStatus = "joined"
	StatusLost            InsuranceStatus = "lost"
	StatusExemptMaternity InsuranceStatus = "exempt_maternity"
	StatusExemptChildcare InsuranceStatus = "exempt_childcare"
	StatusType1           InsuranceStatus = "type1" // care insurance only
)

// InsuranceStatusHistory records the per-insurance state for one
// employee-month, with the age milestone that caused a change when relevant.
type InsuranceStatusHistory struct {
	EmployeeID   string          `yaml:"employee_id" json:"employee_id"`
	Year         int             `yaml:"year" json:"year"`
	Month        int             `yaml:"month" json:"month"`
	Health       InsuranceStatus `yaml:"health" json:"health"`
	Care         InsuranceStatus `yaml:"care,omitempty" json:"care,omitempty"`
	Pension      InsuranceStatus `yaml:"pension" json:"pension"`
	AgeMilestone int             `yaml:"age_milestone,omitempty" json:"age_milestone,omitempty"` // 40, 65, 70 or 75
}

// CompanyMonthlyTotal is the company-wide employee+employer sum for a month.
type CompanyMonthlyTotal struct {
	Year    int             `yaml:"year" json:"year"`
	Month   int             `yaml:"month" json:"month"`
	Health  decimal.Decimal `yaml:"health" json:"health"`
	Care    decimal.Decimal `yaml:"care" json:"care"`
	Pension decimal.Decimal `yaml:"pension" json:"pension"`
	Total   decimal.Decimal `yaml:"total" json:"total"`
}

// BonusAnnualTotal accumulates bonus premiums over a year.
type BonusAnnualTotal struct {
	Health        decimal.Decimal `yaml:"health" json:"health"`
	Care          decimal.Decimal `yaml:"care" json:"care"`
	Pension       decimal.Decimal `yaml:"pension" json:"pension"`
	Total         decimal.Decimal `yaml:"total" json:"total"`
	ExemptReasons []Reason        `yaml:"exempt_reasons,omitempty" json:"exempt_reasons,omitempty"`
}

// AnnualTotals is the company-wide sum over twelve monthly totals.
type AnnualTotals struct {
	Health  decimal.Decimal `yaml:"health" json:"health"`
	Care    decimal.Decimal `yaml:"care" json:"care"`
	Pension decimal.Decimal `yaml:"pension" json:"pension"`
	Grand   decimal.Decimal `yaml:"grand" json:"grand"`
}

// NotificationType identifies which filing a decision refers to.
type NotificationType string

const (
	NotificationTeiji       NotificationType = "teiji"
	NotificationSuiji       NotificationType = "suiji"
	NotificationBonus       NotificationType = "bonus"
	NotificationAcquisition NotificationType = "acquisition"
)

// NotificationDecision is one filing-obligation decision.
type NotificationDecision struct {
	Type       NotificationType `yaml:"type" json:"type"`
	EmployeeID string           `yaml:"employee_id" json:"employee_id"`
	Required   bool             `yaml:"required" json:"required"`
	Deadline   *time.Time       `yaml:"deadline,omitempty" json:"deadline,omitempty"`
	Reasons    []Reason         `yaml:"reasons,omitempty" json:"reasons,omitempty"`
}
