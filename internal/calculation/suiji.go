package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shahocalc/premium-calculator/internal/domain"
	"github.com/shahocalc/premium-calculator/pkg/dateutil"
	"github.com/shahocalc/premium-calculator/pkg/yen"
)

// suijiGradeDiffThreshold: a revision requires a sustained change of at
// least two grades.
const suijiGradeDiffThreshold = 2

// suijiApplyOffset: the revised standard takes effect four months after the
// change month.
const suijiApplyOffset = 4

// SuijiResult is the outcome of an ad-hoc revision check anchored on a
// fixed-wage change month.
type SuijiResult struct {
	EmployeeID  string
	Year        int
	ChangeMonth int
	Months      []int // the three averaged months

	Average decimal.Decimal
	Rounded decimal.Decimal

	CurrentGrade int
	NewGrade     int
	GradeDiff    int
	Standard     decimal.Decimal

	IsEligible    bool
	Indeterminate bool

	ApplyStartYear  int
	ApplyStartMonth int

	Reasons []domain.Reason
}

// DetectFixedWageChanges scans months 2-12 and returns every month whose
// fixed wage differs from the previous month's. Both months must have data;
// January has no in-year predecessor and is never flagged here (the rehab
// entry point can still anchor on it).
func DetectFixedWageChanges(salaries map[int]*domain.SalaryMonth) []int {
	var changed []int
	for m := 2; m <= 12; m++ {
		cur, prev := salaries[m], salaries[m-1]
		if cur == nil || prev == nil {
			continue
		}
		if !cur.Fixed.Equal(prev.Fixed) {
			changed = append(changed, m)
		}
	}
	return changed
}

// CalculateSuiji evaluates the revision for a change detected at
// changeMonth. The three-month window uses total (fixed+variable) salary and
// cannot span into the next year.
func CalculateSuiji(e *domain.Employee, year, changeMonth int, salaries map[int]*domain.SalaryMonth, table *domain.GradeTable, currentGrade int) SuijiResult {
	res := SuijiResult{
		EmployeeID:   e.ID,
		Year:         year,
		ChangeMonth:  changeMonth,
		CurrentGrade: currentGrade,
	}

	if changeMonth+2 > 12 {
		res.Indeterminate = true
		res.Reasons = append(res.Reasons, domain.NewReason(domain.ReasonIndeterminate,
			"three-month window cannot span into the next year"))
		return res
	}

	sum := decimal.Zero
	for m := changeMonth; m <= changeMonth+2; m++ {
		res.Months = append(res.Months, m)
		s := salaries[m]
		if s == nil {
			res.Indeterminate = true
			res.Reasons = append(res.Reasons, domain.NewReason(domain.ReasonIndeterminate,
				fmt.Sprintf("no salary data for month %d", m)))
			return res
		}
		sum = sum.Add(yen.Sanitize(s.Total))
	}
	res.Average = sum.Div(decimal.NewFromInt(3))
	res.Rounded = yen.RoundToThousand(res.Average)

	g := FindGrade(table, res.Rounded)
	if g == nil {
		res.Reasons = append(res.Reasons, domain.NewReason(domain.ReasonNoGrade,
			fmt.Sprintf("no grade band matches %s", res.Rounded.StringFixed(0))))
		return res
	}
	res.NewGrade = g.Grade
	res.Standard = g.Standard
	res.GradeDiff = res.NewGrade - res.CurrentGrade
	if res.GradeDiff < 0 {
		res.GradeDiff = -res.GradeDiff
	}

	// Within the first months after hiring the acquisition-time
	// determination governs; no revision applies.
	if e.HireDate.Year() == year {
		sinceHire := changeMonth - int(e.HireDate.Month())
		if sinceHire >= 0 && sinceHire <= 3 {
			res.Reasons = append(res.Reasons, domain.NewReason(domain.ReasonAcquisitionWait,
				"within three months of hire, acquisition determination governs"))
			return res
		}
	}

	if res.GradeDiff < suijiGradeDiffThreshold {
		res.Reasons = append(res.Reasons, domain.NewReason(domain.ReasonIndeterminate,
			fmt.Sprintf("grade change %d below revision threshold", res.GradeDiff)))
		return res
	}

	res.IsEligible = true
	res.ApplyStartYear, res.ApplyStartMonth = dateutil.AddMonths(year, changeMonth, suijiApplyOffset)
	return res
}

// CheckRehabSuiji looks for a revision anchored on the return from
// maternity/childcare leave: the return month and the following two months
// are each checked for a fixed-wage change against the immediately
// preceding month, and the first hit is evaluated as a regular revision.
// Returns nil when the employee has no return month in the year or no
// change was found.
func CheckRehabSuiji(e *domain.Employee, year int, salaries map[int]*domain.SalaryMonth, table *domain.GradeTable, currentGrade int) *SuijiResult {
	returnMonth, ok := leaveReturnMonth(e, year)
	if !ok {
		return nil
	}
	for m := returnMonth; m <= returnMonth+2 && m <= 12; m++ {
		if m < 2 {
			continue
		}
		cur, prev := salaries[m], salaries[m-1]
		if cur == nil || prev == nil {
			continue
		}
		if !cur.Fixed.Equal(prev.Fixed) {
			res := CalculateSuiji(e, year, m, salaries, table, currentGrade)
			return &res
		}
	}
	return nil
}

// leaveReturnMonth resolves the month the employee came back from leave:
// the explicit return date when set, otherwise the month after the latest
// leave window ends.
func leaveReturnMonth(e *domain.Employee, year int) (int, bool) {
	if e.ReturnFromLeave != nil {
		if e.ReturnFromLeave.Year() == year {
			return int(e.ReturnFromLeave.Month()), true
		}
		return 0, false
	}
	var endKey int
	found := false
	for _, lw := range []*domain.LeaveWindow{e.Maternity, e.Childcare} {
		if !lw.IsSet() {
			continue
		}
		end := *lw.EffectiveEnd()
		k := dateutil.MonthKey(end.Year(), int(end.Month()))
		if !found || k > endKey {
			endKey = k
			found = true
		}
	}
	if !found {
		return 0, false
	}
	ry, rm := dateutil.YearMonthFromKey(endKey + 1)
	if ry != year {
		return 0, false
	}
	return rm, true
}
