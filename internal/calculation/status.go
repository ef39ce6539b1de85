package calculation

import (
	"time"

	"github.com/shahocalc/premium-calculator/internal/domain"
	"github.com/shahocalc/premium-calculator/pkg/dateutil"
)

// BuildInsuranceStatusHistory derives the per-insurance enrollment state for
// each month of the year. The row also carries the age milestone (40, 65, 70
// or 75) in the month it first takes effect.
func BuildInsuranceStatusHistory(e *domain.Employee, year int) []domain.InsuranceStatusHistory {
	out := make([]domain.InsuranceStatusHistory, 0, 12)
	for m := 1; m <= 12; m++ {
		out = append(out, monthStatus(e, year, m))
	}
	return out
}

func monthStatus(e *domain.Employee, year, month int) domain.InsuranceStatusHistory {
	h := domain.InsuranceStatusHistory{
		EmployeeID:   e.ID,
		Year:         year,
		Month:        month,
		AgeMilestone: milestoneInMonth(e.BirthDate, year, month),
	}

	enrolled := e.HiredByMonth(year, month) &&
		!isRetiredForPremiums(e, year, month) &&
		ClassifyWorkCategory(e) != domain.WorkNonInsured
	if !enrolled {
		h.Health = domain.StatusLost
		h.Pension = domain.StatusLost
		if CareType1InMonth(e.BirthDate, year, month) || CareAppliesInMonth(e.BirthDate, year, month) {
			h.Care = domain.StatusLost
		}
		return h
	}

	maternity := IsMaternityLeaveMonth(e, year, month)
	childcare := IsChildcareLeaveMonth(e, year, month)
	exempt := domain.InsuranceStatus("")
	if maternity {
		exempt = domain.StatusExemptMaternity
	} else if childcare {
		exempt = domain.StatusExemptChildcare
	}

	h.Health = domain.StatusJoined
	if HealthStoppedInMonth(e.BirthDate, year, month) {
		h.Health = domain.StatusLost
	} else if exempt != "" {
		h.Health = exempt
	}

	switch {
	case HealthStoppedInMonth(e.BirthDate, year, month):
		if CareType1InMonth(e.BirthDate, year, month) {
			h.Care = domain.StatusLost
		}
	case CareType1InMonth(e.BirthDate, year, month):
		h.Care = domain.StatusType1
	case CareAppliesInMonth(e.BirthDate, year, month):
		h.Care = domain.StatusJoined
		if exempt != "" {
			h.Care = exempt
		}
	}

	h.Pension = domain.StatusJoined
	if PensionStoppedInMonth(e.BirthDate, year, month) {
		h.Pension = domain.StatusLost
	} else if exempt != "" {
		h.Pension = exempt
	}
	return h
}

// milestoneInMonth reports the statutory age milestone taking effect in the
// month, 0 when none does. The 75 milestone uses the birth month; the others
// use the canonical reach month.
func milestoneInMonth(birthDate time.Time, year, month int) int {
	if birthDate.IsZero() {
		return 0
	}
	key := dateutil.MonthKey(year, month)
	b75 := birthDate.AddDate(AgeHealthStop, 0, 0)
	if key == dateutil.MonthKey(b75.Year(), int(b75.Month())) {
		return AgeHealthStop
	}
	for _, n := range []int{AgePensionStop, AgeCareType1, AgeCareStart} {
		if key == reachMonthKey(birthDate, n) {
			return n
		}
	}
	return 0
}
