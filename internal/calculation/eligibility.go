package calculation

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shahocalc/premium-calculator/internal/domain"
	"github.com/shahocalc/premium-calculator/pkg/dateutil"
)

// Statutory age milestones.
const (
	AgeCareStart   = 40
	AgeCareType1   = 65
	AgePensionStop = 70
	AgeHealthStop  = 75
)

// shortTimeMinWeeklyHours and shortTimeMinMonthlyWage are the coverage
// thresholds for short-time employees.
var (
	fullTimeWeeklyHours     = decimal.NewFromInt(30)
	shortTimeMinWeeklyHours = decimal.NewFromInt(20)
	shortTimeMinMonthlyWage = decimal.NewFromInt(88000)
)

// AgeCategory is a coarse classification of the employee's insurance age.
type AgeCategory string

const (
	CategoryUnder40        AgeCategory = "under_40"
	CategoryCare2          AgeCategory = "care2"           // 40-64, pays care premium
	CategoryCare1          AgeCategory = "care1"           // 65+, care type 1, no care deduction
	CategoryPensionStopped AgeCategory = "pension_stopped" // 70-74
	CategoryHealthStopped  AgeCategory = "health_stopped"  // 75+
)

// AgeFlags are the per-milestone stop/start flags at a reference month.
type AgeFlags struct {
	IsCare2     bool
	IsCare1     bool
	IsNoPension bool
	IsNoHealth  bool
}

// EligibilityResult is the outcome of a coverage check at a reference date.
type EligibilityResult struct {
	HealthEligible  bool
	CareEligible    bool
	PensionEligible bool
	Age             int
	AgeCategory     AgeCategory
	Flags           AgeFlags
	WorkCategory    domain.WorkCategory
	Reasons         []domain.Reason
}

// reachMonthKey returns the month key from which the Nth-birthday rule
// applies: the month containing the day before the Nth birthday. A birthday
// on the 1st therefore reaches in the preceding month.
func reachMonthKey(birthDate time.Time, n int) int {
	eve := birthDate.AddDate(n, 0, 0).AddDate(0, 0, -1)
	return dateutil.MonthKey(eve.Year(), int(eve.Month()))
}

// CareAppliesInMonth reports whether the care premium (type 2 insured,
// ages 40-64) applies in the month.
func CareAppliesInMonth(birthDate time.Time, year, month int) bool {
	if birthDate.IsZero() {
		return false
	}
	key := dateutil.MonthKey(year, month)
	return key >= reachMonthKey(birthDate, AgeCareStart) && key < reachMonthKey(birthDate, AgeCareType1)
}

// CareType1InMonth reports whether the employee is a care type 1 insured
// (65+) in the month, excluded from the payroll care premium.
func CareType1InMonth(birthDate time.Time, year, month int) bool {
	if birthDate.IsZero() {
		return false
	}
	return dateutil.MonthKey(year, month) >= reachMonthKey(birthDate, AgeCareType1)
}

// PensionStoppedInMonth reports whether welfare-pension liability has
// stopped (70+). The stop takes effect in the month containing the day
// before the 70th birthday, so a birthday on the 1st stops the prior month.
func PensionStoppedInMonth(birthDate time.Time, year, month int) bool {
	if birthDate.IsZero() {
		return false
	}
	return dateutil.MonthKey(year, month) >= reachMonthKey(birthDate, AgePensionStop)
}

// HealthStoppedInMonth reports whether health/care liability has stopped
// (75+, transfer to the late-stage elderly system). The 75th birth month
// counts as stopped regardless of the day of month.
func HealthStoppedInMonth(birthDate time.Time, year, month int) bool {
	if birthDate.IsZero() {
		return false
	}
	b75 := birthDate.AddDate(AgeHealthStop, 0, 0)
	return dateutil.MonthKey(year, month) >= dateutil.MonthKey(b75.Year(), int(b75.Month()))
}

// GetAgeFlags computes the milestone flags for a month.
func GetAgeFlags(birthDate time.Time, year, month int) AgeFlags {
	return AgeFlags{
		IsCare2:     CareAppliesInMonth(birthDate, year, month),
		IsCare1:     CareType1InMonth(birthDate, year, month),
		IsNoPension: PensionStoppedInMonth(birthDate, year, month),
		IsNoHealth:  HealthStoppedInMonth(birthDate, year, month),
	}
}

// ClassifyWorkCategory classifies an employee for coverage. Employees with
// unspecified weekly hours are treated as full-time so that partial input
// data still calculates.
func ClassifyWorkCategory(e *domain.Employee) domain.WorkCategory {
	if e.WeeklyHours.IsZero() {
		return domain.WorkFullTime
	}
	if !e.IsShortTime && e.WeeklyHours.GreaterThanOrEqual(fullTimeWeeklyHours) {
		return domain.WorkFullTime
	}
	if e.WeeklyHours.GreaterThanOrEqual(shortTimeMinWeeklyHours) &&
		e.ContractedMonthlyWage.GreaterThanOrEqual(shortTimeMinMonthlyWage) {
		return domain.WorkShortTimeQualifying
	}
	return domain.WorkNonInsured
}

// CheckEligibility derives the per-insurance eligibility of an employee at a
// reference date. Retirement dominates; age flags and work category follow.
func CheckEligibility(e *domain.Employee, refDate time.Time) EligibilityResult {
	res := EligibilityResult{WorkCategory: ClassifyWorkCategory(e)}

	if e.IsRetiredAsOf(refDate) {
		res.Age = dateutil.InsuranceAge(e.BirthDate, refDate)
		res.AgeCategory = categoryFor(res.Flags, res.Age)
		res.Reasons = append(res.Reasons, domain.NewReason(domain.ReasonRetired, "retired as of reference date"))
		return res
	}

	year, month := refDate.Year(), int(refDate.Month())
	res.Age = dateutil.InsuranceAge(e.BirthDate, refDate)
	res.Flags = GetAgeFlags(e.BirthDate, year, month)
	res.AgeCategory = categoryFor(res.Flags, res.Age)

	insured := res.WorkCategory != domain.WorkNonInsured
	if !insured {
		res.Reasons = append(res.Reasons, domain.NewReason(domain.ReasonNonInsured, "work category outside coverage"))
	}
	res.HealthEligible = insured && !res.Flags.IsNoHealth
	res.CareEligible = insured && res.Flags.IsCare2 && !res.Flags.IsNoHealth
	res.PensionEligible = insured && !res.Flags.IsNoPension

	if res.Flags.IsNoPension {
		res.Reasons = append(res.Reasons, domain.NewReason(domain.ReasonPensionAgeStop, "pension stopped at age 70"))
	}
	if res.Flags.IsNoHealth {
		res.Reasons = append(res.Reasons, domain.NewReason(domain.ReasonHealthAgeStop, "health/care stopped at age 75"))
	}
	if res.Flags.IsCare1 && !res.Flags.IsNoHealth {
		res.Reasons = append(res.Reasons, domain.NewReason(domain.ReasonCareType1, "care type 1 from age 65, no payroll care premium"))
	}
	return res
}

func categoryFor(flags AgeFlags, age int) AgeCategory {
	switch {
	case flags.IsNoHealth || age >= AgeHealthStop:
		return CategoryHealthStopped
	case flags.IsNoPension || age >= AgePensionStop:
		return CategoryPensionStopped
	case flags.IsCare1 || age >= AgeCareType1:
		return CategoryCare1
	case flags.IsCare2 || age >= AgeCareStart:
		return CategoryCare2
	default:
		return CategoryUnder40
	}
}
