package calculation

import (
	"github.com/shahocalc/premium-calculator/internal/domain"
)

// FoldBonusIntoRow adds a processed bonus's premiums into the employee's
// monthly row for the payment month, resolved the same way the premium
// calculation resolves it (pay date first). Bonuses that do not count toward
// aggregates are skipped; an exempt reason is still surfaced on the annual
// total by AddBonusToAnnualTotal.
func FoldBonusIntoRow(b *domain.Bonus, rows []domain.MonthlyPremiumRow) {
	if !b.CountsTowardAggregates() {
		return
	}
	payYear, payMonth := bonusPayMonth(b)
	for i := range rows {
		if rows[i].Month == payMonth && rows[i].Year == payYear {
			rows[i].Premiums = rows[i].Premiums.Add(b.Premiums)
			return
		}
	}
}

// AddBonusToAnnualTotal folds one bonus into a running annual bonus total.
// Exempted and salary-instead bonuses contribute zero but their exempt
// reasons are preserved for display.
func AddBonusToAnnualTotal(t *domain.BonusAnnualTotal, b *domain.Bonus) {
	if !b.CountsTowardAggregates() {
		if b.IsExempted && b.ExemptReason != nil {
			t.ExemptReasons = append(t.ExemptReasons, *b.ExemptReason)
		}
		return
	}
	t.Health = t.Health.Add(b.Premiums.HealthTotal())
	t.Care = t.Care.Add(b.Premiums.CareTotal())
	t.Pension = t.Pension.Add(b.Premiums.PensionTotal())
	t.Total = t.Total.Add(b.Premiums.Total())
}

// AggregateMonthlyTotals rolls every employee's monthly rows into twelve
// company-wide totals, summing employee and employer shares.
func AggregateMonthlyTotals(year int, rowsByEmployee map[string][]domain.MonthlyPremiumRow) []domain.CompanyMonthlyTotal {
	totals := make([]domain.CompanyMonthlyTotal, 12)
	for m := 1; m <= 12; m++ {
		totals[m-1].Year = year
		totals[m-1].Month = m
	}
	for _, rows := range rowsByEmployee {
		for _, row := range rows {
			if row.Month < 1 || row.Month > 12 {
				continue
			}
			t := &totals[row.Month-1]
			t.Health = t.Health.Add(row.Premiums.HealthTotal())
			t.Care = t.Care.Add(row.Premiums.CareTotal())
			t.Pension = t.Pension.Add(row.Premiums.PensionTotal())
			t.Total = t.Total.Add(row.Premiums.Total())
		}
	}
	return totals
}

// SumAnnualTotals sums twelve company monthly totals into the annual view.
func SumAnnualTotals(monthly []domain.CompanyMonthlyTotal) domain.AnnualTotals {
	var annual domain.AnnualTotals
	for _, t := range monthly {
		annual.Health = annual.Health.Add(t.Health)
		annual.Care = annual.Care.Add(t.Care)
		annual.Pension = annual.Pension.Add(t.Pension)
		annual.Grand = annual.Grand.Add(t.Total)
	}
	return annual
}

// SumBonusAnnualTotals folds per-employee bonus totals into one company
// total.
func SumBonusAnnualTotals(byEmployee map[string]domain.BonusAnnualTotal) domain.BonusAnnualTotal {
	var total domain.BonusAnnualTotal
	for _, t := range byEmployee {
		total.Health = total.Health.Add(t.Health)
		total.Care = total.Care.Add(t.Care)
		total.Pension = total.Pension.Add(t.Pension)
		total.Total = total.Total.Add(t.Total)
		total.ExemptReasons = append(total.ExemptReasons, t.ExemptReasons...)
	}
	return total
}
