package calculation

import (
	"fmt"
	"time"

	"github.com/shahocalc/premium-calculator/internal/domain"
)

// notificationDay: statutory filings are due on the 10th of the relevant
// month.
const notificationDay = 10

func deadline(year, month, day int) *time.Time {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &d
}

// DecideTeijiNotification decides whether the periodic determination must be
// filed. No filing without a determined grade or a baseline to compare
// against; a change of two grades or more triggers the filing, due July 10 of
// the determination year.
func DecideTeijiNotification(res TeijiResult, currentGrade int) domain.NotificationDecision {
	d := domain.NotificationDecision{
		Type:       domain.NotificationTeiji,
		EmployeeID: res.EmployeeID,
	}
	if !res.Determined {
		d.Reasons = append(d.Reasons, domain.NewReason(domain.ReasonIndeterminate, "grade not determined"))
		return d
	}
	if currentGrade <= 0 {
		d.Reasons = append(d.Reasons, domain.NewReason(domain.ReasonIndeterminate, "no baseline grade"))
		return d
	}
	diff := res.Grade - currentGrade
	if diff < 0 {
		diff = -diff
	}
	if diff < suijiGradeDiffThreshold {
		d.Reasons = append(d.Reasons, domain.NewReason(domain.ReasonIndeterminate,
			fmt.Sprintf("grade change %d, filing not required", diff)))
		return d
	}
	d.Required = true
	d.Deadline = deadline(res.Year, 7, notificationDay)
	return d
}

// DecideSuijiNotification requires a filing exactly when the revision is
// eligible, due the 10th of the month after the effective month.
func DecideSuijiNotification(res SuijiResult) domain.NotificationDecision {
	d := domain.NotificationDecision{
		Type:       domain.NotificationSuiji,
		EmployeeID: res.EmployeeID,
	}
	if !res.IsEligible {
		d.Reasons = append(d.Reasons, domain.NewReason(domain.ReasonIndeterminate, "revision not eligible"))
		return d
	}
	d.Required = true
	dy, dm := res.ApplyStartYear, res.ApplyStartMonth+1
	if dm > 12 {
		dy, dm = dy+1, 1
	}
	d.Deadline = deadline(dy, dm, notificationDay)
	return d
}

// DecideBonusNotification decides the bonus payment filing. Not required for
// zero amounts, bonuses paid after coverage ended, exempted or
// salary-instead bonuses, or employees past the health stop age; otherwise
// due the 10th of the month after the pay date.
func DecideBonusNotification(e *domain.Employee, b *domain.Bonus) domain.NotificationDecision {
	d := domain.NotificationDecision{
		Type:       domain.NotificationBonus,
		EmployeeID: e.ID,
	}
	payYear, payMonth := bonusPayMonth(b)
	switch {
	case !b.Amount.IsPositive():
		d.Reasons = append(d.Reasons, domain.NewReason(domain.ReasonZeroSalary, "bonus amount not positive"))
	case isRetiredForPremiums(e, payYear, payMonth):
		d.Reasons = append(d.Reasons, domain.NewReason(domain.ReasonRetired, "paid after coverage ended"))
	case b.IsExempted:
		d.Reasons = append(d.Reasons, domain.NewReason(domain.ReasonExempt, "bonus exempted"))
	case HealthStoppedInMonth(e.BirthDate, payYear, payMonth):
		d.Reasons = append(d.Reasons, domain.NewReason(domain.ReasonHealthAgeStop, "past health insurance stop age"))
	case b.IsSalaryInsteadOfBonus:
		d.Reasons = append(d.Reasons, domain.NewReason(domain.ReasonSalaryInstead, "treated as salary, not a bonus"))
	default:
		d.Required = true
		dy, dm := payYear, payMonth+1
		if dm > 12 {
			dy, dm = dy+1, 1
		}
		d.Deadline = deadline(dy, dm, notificationDay)
	}
	return d
}

// DecideAcquisitionNotification requires a filing whenever a valid
// acquisition determination exists, due five days after the day following
// the hire date.
func DecideAcquisitionNotification(e *domain.Employee, res AcquisitionResult) domain.NotificationDecision {
	d := domain.NotificationDecision{
		Type:       domain.NotificationAcquisition,
		EmployeeID: e.ID,
	}
	if !res.Determined {
		d.Reasons = append(d.Reasons, domain.NewReason(domain.ReasonIndeterminate, "no acquisition determination"))
		return d
	}
	d.Required = true
	due := e.HireDate.AddDate(0, 0, 1).AddDate(0, 0, 5)
	d.Deadline = &due
	return d
}
