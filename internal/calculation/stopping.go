package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/shahocalc/premium-calculator/internal/domain"
	"github.com/shahocalc/premium-calculator/pkg/dateutil"
	"github.com/shahocalc/premium-calculator/pkg/yen"
)

// ApplyStoppingRules is the single source of truth for zeroing a premium
// bundle. Rules apply in strict priority order:
//
//  1. retired: every figure zeroed, remaining rules skipped
//  2. maternity/childcare leave: employee-side figures zeroed only
//  3. pension stop (age 70): both pension figures zeroed
//  4. health stop (age 75): all four health and care figures zeroed
//
// Rules 2-4 compose by sequential zeroing. Inputs are sanitized before any
// rule is applied.
func ApplyStoppingRules(e *domain.Employee, year, month int, in domain.PremiumBundle) (domain.PremiumBundle, domain.StoppingFlags, []domain.Reason) {
	out := sanitizeBundle(in)
	var flags domain.StoppingFlags
	var reasons []domain.Reason

	if isRetiredForPremiums(e, year, month) {
		flags.IsRetired = true
		reasons = append(reasons, domain.NewReason(domain.ReasonRetired, "retired, no premiums owed"))
		return domain.PremiumBundle{}, flags, reasons
	}

	if IsMaternityLeaveMonth(e, year, month) {
		flags.IsMaternityLeave = true
		reasons = append(reasons, domain.NewReason(domain.ReasonMaternity, "maternity leave, employee share exempt"))
		out = zeroEmployeeShare(out)
	}
	if IsChildcareLeaveMonth(e, year, month) {
		flags.IsChildcareLeave = true
		reasons = append(reasons, domain.NewReason(domain.ReasonChildcare, "childcare leave, employee share exempt"))
		out = zeroEmployeeShare(out)
	}

	if PensionStoppedInMonth(e.BirthDate, year, month) {
		flags.IsPensionStopped = true
		reasons = append(reasons, domain.NewReason(domain.ReasonPensionAgeStop, "pension stopped at age 70"))
		out.PensionEmployee = decimal.Zero
		out.PensionEmployer = decimal.Zero
	}

	if HealthStoppedInMonth(e.BirthDate, year, month) {
		flags.IsHealthStopped = true
		reasons = append(reasons, domain.NewReason(domain.ReasonHealthAgeStop, "health and care stopped at age 75"))
		out.HealthEmployee = decimal.Zero
		out.HealthEmployer = decimal.Zero
		out.CareEmployee = decimal.Zero
		out.CareEmployer = decimal.Zero
	}

	return out, flags, reasons
}

// isRetiredForPremiums applies the month-key comparison: any month at or
// after the retirement month is retired, except that the retirement month
// itself still owes premiums when the last-day rule keeps it liable.
func isRetiredForPremiums(e *domain.Employee, year, month int) bool {
	if e.RetirementDate == nil {
		return false
	}
	retire := *e.RetirementDate
	targetKey := dateutil.MonthKey(year, month)
	retireKey := dateutil.MonthKey(retire.Year(), int(retire.Month()))
	if targetKey > retireKey {
		return true
	}
	if targetKey < retireKey {
		return false
	}
	return !IsLastDayEligible(e, year, month)
}

func zeroEmployeeShare(b domain.PremiumBundle) domain.PremiumBundle {
	b.HealthEmployee = decimal.Zero
	b.CareEmployee = decimal.Zero
	b.PensionEmployee = decimal.Zero
	return b
}

func sanitizeBundle(b domain.PremiumBundle) domain.PremiumBundle {
	return domain.PremiumBundle{
		HealthEmployee:  yen.Sanitize(b.HealthEmployee),
		HealthEmployer:  yen.Sanitize(b.HealthEmployer),
		CareEmployee:    yen.Sanitize(b.CareEmployee),
		CareEmployer:    yen.Sanitize(b.CareEmployer),
		PensionEmployee: yen.Sanitize(b.PensionEmployee),
		PensionEmployer: yen.Sanitize(b.PensionEmployer),
	}
}
