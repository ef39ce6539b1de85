package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestSalaryMonthNormalize(t *testing.T) {
	s := SalaryMonth{
		Fixed:    decimal.NewFromInt(300000),
		Variable: decimal.NewFromInt(20000),
	}
	s.Normalize()
	assert.True(t, s.Total.Equal(decimal.NewFromInt(320000)))
}

func TestSalaryMonthNormalizeFromItems(t *testing.T) {
	s := SalaryMonth{
		// Stale figures are recomputed from the itemized entries.
		Fixed: decimal.NewFromInt(999999),
		Items: []SalaryItem{
			{Name: "base", Kind: ItemFixed, Amount: decimal.NewFromInt(280000)},
			{Name: "commute", Kind: ItemFixed, Amount: decimal.NewFromInt(20000)},
			{Name: "overtime", Kind: ItemVariable, Amount: decimal.NewFromInt(30000)},
			{Name: "absence", Kind: ItemDeduction, Amount: decimal.NewFromInt(10000)},
		},
	}
	s.Normalize()
	assert.True(t, s.Fixed.Equal(decimal.NewFromInt(300000)))
	assert.True(t, s.Variable.Equal(decimal.NewFromInt(30000)))
	// Deductions never feed the remuneration base.
	assert.True(t, s.Total.Equal(decimal.NewFromInt(330000)))
}

func TestBonusCountsTowardAggregates(t *testing.T) {
	assert.True(t, (&Bonus{}).CountsTowardAggregates())
	assert.False(t, (&Bonus{IsExempted: true}).CountsTowardAggregates())
	assert.False(t, (&Bonus{IsSalaryInsteadOfBonus: true}).CountsTowardAggregates())
}

func TestRateTableFor(t *testing.T) {
	revised := PremiumRates{
		Health: PremiumRatePair{Employee: decimal.NewFromFloat(0.06)},
	}
	rt := &RateTable{
		Year:          2025,
		Rates:         PremiumRates{Health: PremiumRatePair{Employee: decimal.NewFromFloat(0.05)}},
		RevisionMonth: 10,
		Revised:       &revised,
	}
	assert.True(t, rt.For(9).Health.Employee.Equal(decimal.NewFromFloat(0.05)))
	assert.True(t, rt.For(10).Health.Employee.Equal(decimal.NewFromFloat(0.06)))

	var nilTable *RateTable
	assert.True(t, nilTable.For(5).Health.Employee.IsZero())
}

func TestEmployeeValidate(t *testing.T) {
	valid := Employee{ID: "E1", BirthDate: date(1990, 1, 1), HireDate: date(2020, 4, 1)}
	assert.NoError(t, valid.Validate())

	missing := Employee{BirthDate: date(1990, 1, 1), HireDate: date(2020, 4, 1)}
	assert.Error(t, missing.Validate())

	retire := date(2019, 1, 1)
	backwards := valid
	backwards.RetirementDate = &retire
	assert.Error(t, backwards.Validate())

	start := date(2025, 5, 1)
	end := date(2025, 4, 1)
	badLeave := valid
	badLeave.Maternity = &LeaveWindow{Start: &start, End: &end}
	assert.Error(t, badLeave.Validate())
}

func TestLeaveWindowEffectiveEnd(t *testing.T) {
	start := date(2025, 3, 1)
	expected := date(2025, 8, 31)
	lw := &LeaveWindow{Start: &start, ExpectedEnd: &expected}
	assert.Equal(t, expected, *lw.EffectiveEnd())

	confirmed := date(2025, 6, 15)
	lw.End = &confirmed
	assert.Equal(t, confirmed, *lw.EffectiveEnd())

	var nilWindow *LeaveWindow
	assert.Nil(t, nilWindow.EffectiveEnd())
	assert.False(t, nilWindow.IsSet())
}

func TestPremiumBundleTotals(t *testing.T) {
	p := PremiumBundle{
		HealthEmployee:  decimal.NewFromInt(1),
		HealthEmployer:  decimal.NewFromInt(2),
		CareEmployee:    decimal.NewFromInt(3),
		CareEmployer:    decimal.NewFromInt(4),
		PensionEmployee: decimal.NewFromInt(5),
		PensionEmployer: decimal.NewFromInt(6),
	}
	assert.True(t, p.HealthTotal().Equal(decimal.NewFromInt(3)))
	assert.True(t, p.CareTotal().Equal(decimal.NewFromInt(7)))
	assert.True(t, p.PensionTotal().Equal(decimal.NewFromInt(11)))
	assert.True(t, p.Total().Equal(decimal.NewFromInt(21)))
	assert.False(t, p.IsZero())
	assert.True(t, PremiumBundle{}.IsZero())
}
