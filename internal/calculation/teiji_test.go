package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shahocalc/premium-calculator/internal/domain"
)

func salaryMonths(totals map[int]int64) map[int]*domain.SalaryMonth {
	out := map[int]*domain.SalaryMonth{}
	for m, v := range totals {
		out[m] = &domain.SalaryMonth{
			EmployeeID: "E1", Year: 2025, Month: m,
			Fixed: decimal.NewFromInt(v),
			Total: decimal.NewFromInt(v),
		}
	}
	return out
}

func TestTeijiThreeMonthAverage(t *testing.T) {
	salaries := salaryMonths(map[int]int64{
		3: 300000, 4: 300000, 5: 310000, 6: 320000,
	})
	res := CalculateTeiji("E1", 2025, salaries, nil, 0, decimal.Zero)

	assert.True(t, res.Determined)
	assert.ElementsMatch(t, []int{4, 5, 6}, res.UsedMonths)
	assert.Empty(t, res.ExcludedMonths)
	// (300000+310000+320000)/3 = 310000
	assert.True(t, res.Rounded.Equal(decimal.NewFromInt(310000)))
	assert.Equal(t, 23, res.Grade)
	assert.True(t, res.Standard.Equal(decimal.NewFromInt(320000)))
	assert.Equal(t, 2025, res.ApplyStartYear)
	assert.Equal(t, TeijiApplyMonth, res.ApplyStartMonth)
}

func TestTeijiDropExclusion(t *testing.T) {
	// May fell below 80% of raw April and is excluded; June is compared
	// against raw May, not the adjusted average.
	salaries := salaryMonths(map[int]int64{
		3: 300000, 4: 300000, 5: 200000, 6: 300000,
	})
	res := CalculateTeiji("E1", 2025, salaries, nil, 0, decimal.Zero)

	assert.True(t, res.Determined)
	assert.Equal(t, []int{5}, res.ExcludedMonths)
	assert.ElementsMatch(t, []int{4, 6}, res.UsedMonths)
	assert.True(t, res.Rounded.Equal(decimal.NewFromInt(300000)))
}

func TestTeijiSequentialExclusionUsesRawPriorMonth(t *testing.T) {
	// June is 300000 against raw May of 200000: a rise, not a drop, so June
	// stays in even though May itself was excluded.
	salaries := salaryMonths(map[int]int64{
		3: 300000, 4: 300000, 5: 200000, 6: 250000,
	})
	res := CalculateTeiji("E1", 2025, salaries, nil, 0, decimal.Zero)
	assert.Equal(t, []int{5}, res.ExcludedMonths)
	assert.Contains(t, res.UsedMonths, 6)
}

func TestTeijiSingleMonthVerbatim(t *testing.T) {
	salaries := salaryMonths(map[int]int64{4: 305000})
	res := CalculateTeiji("E1", 2025, salaries, nil, 0, decimal.Zero)

	assert.True(t, res.Determined)
	assert.Equal(t, []int{4}, res.UsedMonths)
	assert.True(t, res.Average.Equal(decimal.NewFromInt(305000)))
	assert.True(t, res.Rounded.Equal(decimal.NewFromInt(305000)))
}

func TestTeijiNoUsableMonthKeepsCurrent(t *testing.T) {
	res := CalculateTeiji("E1", 2025, map[int]*domain.SalaryMonth{}, nil, 22, decimal.NewFromInt(300000))

	assert.False(t, res.Determined)
	assert.True(t, res.KeptCurrent)
	assert.Equal(t, 22, res.Grade)
	assert.True(t, res.Standard.Equal(decimal.NewFromInt(300000)))
	assert.True(t, domain.HasReason(res.Reasons, domain.ReasonIndeterminate))
}

func TestTeijiNoUsableMonthNoBaseline(t *testing.T) {
	res := CalculateTeiji("E1", 2025, map[int]*domain.SalaryMonth{}, nil, 0, decimal.Zero)
	assert.False(t, res.Determined)
	assert.False(t, res.KeptCurrent)
	assert.Equal(t, 0, res.Grade)
}

func TestTeijiRoundsAverageToNearestThousand(t *testing.T) {
	salaries := salaryMonths(map[int]int64{
		3: 300000, 4: 301000, 5: 301000, 6: 300000,
	})
	// Average 300666.67 rounds to 301000.
	res := CalculateTeiji("E1", 2025, salaries, nil, 0, decimal.Zero)
	assert.True(t, res.Rounded.Equal(decimal.NewFromInt(301000)), "got %s", res.Rounded)
}
