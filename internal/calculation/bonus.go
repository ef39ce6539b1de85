package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/shahocalc/premium-calculator/internal/domain"
	"github.com/shahocalc/premium-calculator/pkg/yen"
)

// Statutory bonus premium caps.
var (
	// healthAnnualBonusCap limits the cumulative standard bonus amount per
	// employee per year for health/care premiums.
	healthAnnualBonusCap = decimal.NewFromInt(5730000)
	// pensionBonusCapPerMonth limits the standard bonus amount per payment
	// month for the pension premium.
	pensionBonusCapPerMonth = decimal.NewFromInt(1500000)
)

// BonusCalculator computes bonus premiums, tracking each employee's
// cumulative standard bonus amount against the annual health cap. One
// instance covers one calculation year.
type BonusCalculator struct {
	healthUsed map[string]decimal.Decimal
}

// NewBonusCalculator returns a calculator with fresh cap accumulators.
func NewBonusCalculator() *BonusCalculator {
	return &BonusCalculator{healthUsed: map[string]decimal.Decimal{}}
}

// Process fills the bonus's derived fields: standard bonus amount, capped
// bases and the six premium figures after stopping rules. Exempted and
// salary-instead bonuses get zero premiums and consume no cap.
func (bc *BonusCalculator) Process(e *domain.Employee, b *domain.Bonus, rates *domain.RateTable) (domain.StoppingFlags, []domain.Reason) {
	var reasons []domain.Reason
	b.Premiums = domain.PremiumBundle{}

	amount := yen.Sanitize(b.Amount)
	if !amount.IsPositive() {
		reasons = append(reasons, domain.NewReason(domain.ReasonZeroSalary, "bonus amount not positive"))
		return domain.StoppingFlags{}, reasons
	}
	b.StandardBonusAmount = yen.FloorToThousand(amount)

	if b.IsSalaryInsteadOfBonus {
		reasons = append(reasons, domain.NewReason(domain.ReasonSalaryInstead,
			"paid more than three times a year, treated as salary"))
		return domain.StoppingFlags{}, reasons
	}
	if b.IsExempted {
		r := domain.NewReason(domain.ReasonExempt, "bonus exempted")
		if b.ExemptReason != nil {
			r = *b.ExemptReason
		}
		reasons = append(reasons, r)
		return domain.StoppingFlags{}, reasons
	}

	used := bc.healthUsed[e.ID]
	remaining := yen.Max(healthAnnualBonusCap.Sub(used), decimal.Zero)
	b.HealthCappedAmount = yen.Min(b.StandardBonusAmount, remaining)
	bc.healthUsed[e.ID] = used.Add(b.HealthCappedAmount)
	b.PensionCappedAmount = yen.Min(b.StandardBonusAmount, pensionBonusCapPerMonth)

	if rates == nil {
		reasons = append(reasons, domain.NewReason(domain.ReasonNoRateTable, "no rate table for this year"))
		return domain.StoppingFlags{}, reasons
	}

	payYear, payMonth := bonusPayMonth(b)
	pr := rates.For(payMonth)

	bundle := domain.PremiumBundle{
		HealthEmployee:  yen.Floor(b.HealthCappedAmount.Mul(pr.Health.Employee)),
		HealthEmployer:  yen.Floor(b.HealthCappedAmount.Mul(pr.Health.Employer)),
		PensionEmployee: yen.Floor(b.PensionCappedAmount.Mul(pr.Pension.Employee)),
		PensionEmployer: yen.Floor(b.PensionCappedAmount.Mul(pr.Pension.Employer)),
	}
	if CareAppliesInMonth(e.BirthDate, payYear, payMonth) {
		bundle.CareEmployee = yen.Floor(b.HealthCappedAmount.Mul(pr.Care.Employee))
		bundle.CareEmployer = yen.Floor(b.HealthCappedAmount.Mul(pr.Care.Employer))
	}

	stopped, flags, stopReasons := ApplyStoppingRules(e, payYear, payMonth, bundle)
	b.Premiums = stopped
	reasons = append(reasons, stopReasons...)
	return flags, reasons
}

// bonusPayMonth resolves the month a bonus is paid in: the pay date when
// set, otherwise the declared year and month. Stopping rules, rate lookup,
// filing deadlines and row folding all use this one resolution.
func bonusPayMonth(b *domain.Bonus) (int, int) {
	if !b.PayDate.IsZero() {
		return b.PayDate.Year(), int(b.PayDate.Month())
	}
	return b.Year, b.Month
}
