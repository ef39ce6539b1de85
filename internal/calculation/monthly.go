package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shahocalc/premium-calculator/internal/domain"
	"github.com/shahocalc/premium-calculator/pkg/dateutil"
	"github.com/shahocalc/premium-calculator/pkg/yen"
)

// CalculateMonthlyPremiums computes the six premium figures for one
// employee-month from its fixed and variable salary. The function is total:
// every input yields a row, with zero figures and tagged reasons when no
// premium is owed or reference data is missing.
func CalculateMonthlyPremiums(e *domain.Employee, year, month int, fixed, variable decimal.Decimal, table *domain.GradeTable, rates *domain.RateTable) domain.MonthlyPremiumRow {
	row := domain.MonthlyPremiumRow{EmployeeID: e.ID, Year: year, Month: month}

	// Leave exemption ends the calculation outright for the month.
	if IsMaternityLeaveMonth(e, year, month) {
		row.Exempt = true
		row.Flags.IsMaternityLeave = true
		row.Reasons = append(row.Reasons, domain.NewReason(domain.ReasonMaternity, "maternity leave month, premiums exempt"))
		return row
	}
	if IsChildcareLeaveMonth(e, year, month) {
		row.Exempt = true
		row.Flags.IsChildcareLeave = true
		row.Reasons = append(row.Reasons, domain.NewReason(domain.ReasonChildcare, "childcare leave month, premiums exempt"))
		return row
	}

	if ClassifyWorkCategory(e) == domain.WorkNonInsured {
		row.Reasons = append(row.Reasons, domain.NewReason(domain.ReasonNonInsured, "work category outside coverage"))
		return row
	}

	total := yen.Sanitize(fixed).Add(yen.Sanitize(variable))
	if !total.IsPositive() {
		row.Reasons = append(row.Reasons, domain.NewReason(domain.ReasonZeroSalary, "no salary paid this month"))
		return row
	}

	g := FindGrade(table, total)
	if g == nil {
		row.Reasons = append(row.Reasons, domain.NewReason(domain.ReasonNoGrade,
			fmt.Sprintf("no grade band matches %s", total.StringFixed(0))))
		return row
	}
	row.Grade = g.Grade
	row.StandardRemuneration = g.Standard

	// Liability starts at acquisition: health/care in the hire month,
	// pension the month after.
	targetKey := dateutil.MonthKey(year, month)
	hireKey := dateutil.MonthKey(e.HireDate.Year(), int(e.HireDate.Month()))
	if !e.HireDate.IsZero() && targetKey < hireKey {
		row.Reasons = append(row.Reasons, domain.NewReason(domain.ReasonAcquisitionWait, "before enrollment"))
		return row
	}
	pensionWaits := !e.HireDate.IsZero() && targetKey == hireKey

	if rates == nil {
		row.Reasons = append(row.Reasons, domain.NewReason(domain.ReasonNoRateTable, "no rate table for this year"))
		return row
	}
	pr := rates.For(month)
	base := row.StandardRemuneration

	bundle := domain.PremiumBundle{
		HealthEmployee:  yen.Floor(base.Mul(pr.Health.Employee)),
		HealthEmployer:  yen.Floor(base.Mul(pr.Health.Employer)),
		CareEmployee:    yen.Floor(base.Mul(pr.Care.Employee)),
		CareEmployer:    yen.Floor(base.Mul(pr.Care.Employer)),
		PensionEmployee: yen.Floor(base.Mul(pr.Pension.Employee)),
		PensionEmployer: yen.Floor(base.Mul(pr.Pension.Employer)),
	}

	flags := GetAgeFlags(e.BirthDate, year, month)
	if !flags.IsCare2 {
		bundle.CareEmployee = decimal.Zero
		bundle.CareEmployer = decimal.Zero
		if flags.IsCare1 && !flags.IsNoHealth {
			row.Reasons = append(row.Reasons, domain.NewReason(domain.ReasonCareType1,
				"care type 1 from age 65, no payroll care premium"))
		}
	} else if targetKey == reachMonthKey(e.BirthDate, AgeCareStart) {
		row.Reasons = append(row.Reasons, domain.NewReason(domain.ReasonCareStart,
			"care premium starts this month at age 40"))
	}

	if pensionWaits {
		bundle.PensionEmployee = decimal.Zero
		bundle.PensionEmployer = decimal.Zero
		row.Reasons = append(row.Reasons, domain.NewReason(domain.ReasonAcquisitionWait,
			"pension liability starts the month after acquisition"))
	}

	stopped, stopFlags, stopReasons := ApplyStoppingRules(e, year, month, bundle)
	row.Premiums = stopped
	row.Flags = stopFlags
	row.Reasons = append(row.Reasons, stopReasons...)
	if stopFlags.IsRetired && !IsLastDayEligible(e, year, month) && IsRetiredInMonth(e, year, month) {
		row.Reasons = append(row.Reasons, domain.NewReason(domain.ReasonMidMonthLeaving,
			"mid-month separation, month not liable"))
	}
	return row
}
