package calculation

import (
	"github.com/shahocalc/premium-calculator/internal/domain"
	"github.com/shahocalc/premium-calculator/pkg/dateutil"
)

// minChildcareLeaveDays is the minimum leave span for the childcare premium
// exemption. Shorter spans never exempt.
const minChildcareLeaveDays = 14

// IsMaternityLeaveMonth reports whether the month is covered by the
// employee's maternity leave for exemption purposes.
func IsMaternityLeaveMonth(e *domain.Employee, year, month int) bool {
	return leaveCoversMonth(e.Maternity, year, month, 0)
}

// IsChildcareLeaveMonth reports whether the month is covered by the
// employee's childcare leave. The leave span must be at least 14 days.
func IsChildcareLeaveMonth(e *domain.Employee, year, month int) bool {
	return leaveCoversMonth(e.Childcare, year, month, minChildcareLeaveDays)
}

// leaveCoversMonth implements the statutory month-membership rule:
// the start month is always covered; months strictly inside the window are
// covered; the end month is covered only when the leave ends on the last
// calendar day of that month (a mid-month resumption owes the full month).
// The confirmed end date is preferred over the expected one.
func leaveCoversMonth(lw *domain.LeaveWindow, year, month, minDays int) bool {
	if !lw.IsSet() {
		return false
	}
	start := *lw.Start
	end := *lw.EffectiveEnd()
	if end.Before(start) {
		return false
	}
	if minDays > 0 && dateutil.SpanDays(start, end) < minDays {
		return false
	}

	key := dateutil.MonthKey(year, month)
	startKey := dateutil.MonthKey(start.Year(), int(start.Month()))
	endKey := dateutil.MonthKey(end.Year(), int(end.Month()))
	switch {
	case key < startKey || key > endKey:
		return false
	case key == startKey:
		return true
	case key == endKey:
		return dateutil.IsLastDayOf(end)
	default:
		return true
	}
}

// IsRetiredInMonth reports whether the retirement date falls in exactly this
// month. Later months are handled by the stopping rules via month-key
// comparison, not by this predicate.
func IsRetiredInMonth(e *domain.Employee, year, month int) bool {
	return e.RetirementDate != nil && dateutil.SameYearMonth(*e.RetirementDate, year, month)
}

// IsLastDayEligible reports whether the employee is liable for health/care
// premiums in the month. It is false only for a mid-month separation: the
// retirement month, a retirement day before month-end, and a hire that
// predates the retirement month. A same-month hire and separation still owes
// the month.
func IsLastDayEligible(e *domain.Employee, year, month int) bool {
	if e.RetirementDate == nil || !dateutil.SameYearMonth(*e.RetirementDate, year, month) {
		return true
	}
	retire := *e.RetirementDate
	if dateutil.IsLastDayOf(retire) {
		return true
	}
	if e.HireDate.IsZero() {
		return true
	}
	hireKey := dateutil.MonthKey(e.HireDate.Year(), int(e.HireDate.Month()))
	retireKey := dateutil.MonthKey(retire.Year(), int(retire.Month()))
	if hireKey == retireKey {
		return true
	}
	return hireKey > retireKey
}
