package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shahocalc/premium-calculator/internal/domain"
	"github.com/shahocalc/premium-calculator/pkg/yen"
)

// TeijiApplyMonth is the legally fixed effective month of the periodic
// determination, regardless of which input months were usable.
const TeijiApplyMonth = 9

// dropExclusionRate: a month is excluded from the April-June average when it
// fell to less than 80% of the raw prior month.
var dropExclusionRate = decimal.NewFromFloat(0.8)

// TeijiResult is the outcome of the periodic (annual) standard-remuneration
// determination from the April-June average.
type TeijiResult struct {
	EmployeeID string
	Year       int

	// Input totals per month, zero when no data exists.
	April decimal.Decimal
	May   decimal.Decimal
	June  decimal.Decimal

	UsedMonths     []int
	ExcludedMonths []int

	Average  decimal.Decimal
	Rounded  decimal.Decimal
	Grade    int
	Standard decimal.Decimal

	// Determined is false when no usable month existed or no band matched.
	Determined bool
	// KeptCurrent marks the indeterminate fallback onto the existing
	// standard remuneration.
	KeptCurrent bool

	ApplyStartYear  int
	ApplyStartMonth int

	Reasons []domain.Reason
}

// CalculateTeiji computes the periodic determination for one employee.
// salaries maps month number to that month's record; months without data may
// be absent. currentStandard/currentGrade are the employee's standing
// determination, used as the indeterminate fallback.
func CalculateTeiji(employeeID string, year int, salaries map[int]*domain.SalaryMonth, table *domain.GradeTable, currentGrade int, currentStandard decimal.Decimal) TeijiResult {
	res := TeijiResult{
		EmployeeID:      employeeID,
		Year:            year,
		ApplyStartYear:  year,
		ApplyStartMonth: TeijiApplyMonth,
	}

	totals := map[int]decimal.Decimal{}
	for m := 3; m <= 6; m++ {
		if s, ok := salaries[m]; ok && s != nil {
			totals[m] = yen.Sanitize(s.Total)
		} else {
			totals[m] = decimal.Zero
		}
	}
	res.April = totals[4]
	res.May = totals[5]
	res.June = totals[6]

	// Sequential 20%-drop exclusion, each month compared against the raw
	// prior month, never the adjusted one.
	excluded := map[int]bool{}
	for _, m := range []int{4, 5, 6} {
		prior := totals[m-1]
		if prior.IsPositive() && totals[m].LessThan(prior.Mul(dropExclusionRate)) {
			excluded[m] = true
			res.ExcludedMonths = append(res.ExcludedMonths, m)
		}
	}

	sum := decimal.Zero
	for _, m := range []int{4, 5, 6} {
		if excluded[m] || !totals[m].IsPositive() {
			continue
		}
		res.UsedMonths = append(res.UsedMonths, m)
		sum = sum.Add(totals[m])
	}

	switch len(res.UsedMonths) {
	case 0:
		res.Reasons = append(res.Reasons, domain.NewReason(domain.ReasonIndeterminate,
			"no usable month in April-June"))
		if currentStandard.IsPositive() {
			res.KeptCurrent = true
			res.Grade = currentGrade
			res.Standard = currentStandard
			res.Reasons = append(res.Reasons, domain.NewReason(domain.ReasonIndeterminate,
				"keeping current standard remuneration"))
		}
		return res
	case 1:
		// A single valid month is taken verbatim, no averaging.
		res.Average = sum
	default:
		res.Average = sum.Div(decimal.NewFromInt(int64(len(res.UsedMonths))))
	}

	res.Rounded = yen.RoundToThousand(res.Average)
	g := FindGrade(table, res.Rounded)
	if g == nil {
		res.Reasons = append(res.Reasons, domain.NewReason(domain.ReasonNoGrade,
			fmt.Sprintf("no grade band matches %s", res.Rounded.StringFixed(0))))
		return res
	}
	res.Grade = g.Grade
	res.Standard = g.Standard
	res.Determined = true
	return res
}
