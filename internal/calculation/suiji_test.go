package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahocalc/premium-calculator/internal/domain"
)

func TestDetectFixedWageChanges(t *testing.T) {
	salaries := salaryMonths(map[int]int64{
		1: 300000, 2: 300000, 3: 360000, 4: 360000, 5: 360000, 6: 360000,
	})
	assert.Equal(t, []int{3}, DetectFixedWageChanges(salaries))
}

func TestDetectFixedWageChangesNeedsBothMonths(t *testing.T) {
	salaries := salaryMonths(map[int]int64{
		1: 300000, 3: 360000, // February missing
	})
	assert.Empty(t, DetectFixedWageChanges(salaries))
}

func TestSuijiEligibleTwoGradeRise(t *testing.T) {
	e := &domain.Employee{ID: "E1", BirthDate: date(1990, 1, 10), HireDate: date(2020, 4, 1)}
	salaries := salaryMonths(map[int]int64{
		2: 300000, 3: 360000, 4: 360000, 5: 360000,
	})
	// Current grade 22 (standard 300000); new average 360000 is grade 25.
	res := CalculateSuiji(e, 2025, 3, salaries, nil, 22)

	require.True(t, res.IsEligible)
	assert.Equal(t, 25, res.NewGrade)
	assert.Equal(t, 3, res.GradeDiff)
	assert.Equal(t, 2025, res.ApplyStartYear)
	assert.Equal(t, 7, res.ApplyStartMonth)
}

func TestSuijiBelowThreshold(t *testing.T) {
	e := &domain.Employee{ID: "E1", BirthDate: date(1990, 1, 10), HireDate: date(2020, 4, 1)}
	salaries := salaryMonths(map[int]int64{
		2: 300000, 3: 320000, 4: 320000, 5: 320000,
	})
	// 320000 is grade 23, one grade up from 22.
	res := CalculateSuiji(e, 2025, 3, salaries, nil, 22)
	assert.False(t, res.IsEligible)
	assert.Equal(t, 1, res.GradeDiff)
	assert.True(t, domain.HasReason(res.Reasons, domain.ReasonIndeterminate))
}

func TestSuijiWindowCannotSpanYearEnd(t *testing.T) {
	e := &domain.Employee{ID: "E1", BirthDate: date(1990, 1, 10), HireDate: date(2020, 4, 1)}
	salaries := salaryMonths(map[int]int64{
		10: 300000, 11: 400000, 12: 400000,
	})
	res := CalculateSuiji(e, 2025, 11, salaries, nil, 22)
	assert.True(t, res.Indeterminate)
	assert.False(t, res.IsEligible)
}

func TestSuijiWindowMissingMonthIndeterminate(t *testing.T) {
	e := &domain.Employee{ID: "E1", BirthDate: date(1990, 1, 10), HireDate: date(2020, 4, 1)}
	// Change at October, but November and December have no data yet; the
	// window must not average the absent months as zero.
	salaries := salaryMonths(map[int]int64{
		9: 300000, 10: 97000,
	})
	res := CalculateSuiji(e, 2025, 10, salaries, nil, 22)
	assert.True(t, res.Indeterminate)
	assert.False(t, res.IsEligible)
	assert.True(t, domain.HasReason(res.Reasons, domain.ReasonIndeterminate))
}

func TestSuijiApplyMonthWrapsIntoNextYear(t *testing.T) {
	e := &domain.Employee{ID: "E1", BirthDate: date(1990, 1, 10), HireDate: date(2020, 4, 1)}
	salaries := salaryMonths(map[int]int64{
		9: 300000, 10: 400000, 11: 400000, 12: 400000,
	})
	res := CalculateSuiji(e, 2025, 10, salaries, nil, 22)
	require.True(t, res.IsEligible)
	assert.Equal(t, 2026, res.ApplyStartYear)
	assert.Equal(t, 2, res.ApplyStartMonth)
}

func TestSuijiExcludedNearHire(t *testing.T) {
	e := &domain.Employee{ID: "E1", BirthDate: date(1990, 1, 10), HireDate: date(2025, 2, 1)}
	salaries := salaryMonths(map[int]int64{
		2: 300000, 3: 400000, 4: 400000, 5: 400000,
	})
	res := CalculateSuiji(e, 2025, 3, salaries, nil, 22)
	assert.False(t, res.IsEligible)
	assert.True(t, domain.HasReason(res.Reasons, domain.ReasonAcquisitionWait))
}

func TestCheckRehabSuiji(t *testing.T) {
	ret := date(2025, 4, 1)
	e := &domain.Employee{
		ID:              "E1",
		BirthDate:       date(1990, 1, 10),
		HireDate:        date(2020, 4, 1),
		ReturnFromLeave: &ret,
	}
	salaries := salaryMonths(map[int]int64{
		3: 360000, 4: 300000, 5: 300000, 6: 300000,
	})
	res := CheckRehabSuiji(e, 2025, salaries, nil, 25)
	require.NotNil(t, res)
	assert.Equal(t, 4, res.ChangeMonth)
	assert.True(t, res.IsEligible)
	assert.Equal(t, 22, res.NewGrade)
}

func TestCheckRehabSuijiNoReturn(t *testing.T) {
	e := &domain.Employee{ID: "E1", BirthDate: date(1990, 1, 10), HireDate: date(2020, 4, 1)}
	assert.Nil(t, CheckRehabSuiji(e, 2025, salaryMonths(map[int]int64{}), nil, 22))
}
