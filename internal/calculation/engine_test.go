package calculation

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahocalc/premium-calculator/internal/domain"
	"github.com/shahocalc/premium-calculator/internal/repository"
)

func engineFixture() *repository.Memory {
	repo := repository.NewMemory()

	// Long-tenured employee, under 40, flat salary all year.
	repo.PutEmployee(&domain.Employee{
		ID:        "E001",
		BirthDate: date(1990, 5, 10),
		HireDate:  date(2015, 4, 1),
	})
	for m := 1; m <= 12; m++ {
		s := &domain.SalaryMonth{
			EmployeeID: "E001", Year: 2025, Month: m,
			Fixed: decimal.NewFromInt(300000),
		}
		s.Normalize()
		repo.PutSalaryMonth(s)
	}

	// Hired during the year, turns 65 in March.
	repo.PutEmployee(&domain.Employee{
		ID:        "E002",
		BirthDate: date(1960, 3, 5),
		HireDate:  date(2025, 2, 1),
	})
	for m := 2; m <= 12; m++ {
		s := &domain.SalaryMonth{
			EmployeeID: "E002", Year: 2025, Month: m,
			Fixed: decimal.NewFromInt(420000),
		}
		s.Normalize()
		repo.PutSalaryMonth(s)
	}

	repo.PutBonus(&domain.Bonus{
		EmployeeID: "E001", Year: 2025, Month: 6,
		PayDate: date(2025, 6, 25), Amount: decimal.NewFromInt(600000),
	})

	repo.PutRateTable(&domain.RateTable{
		Year: 2025,
		Rates: domain.PremiumRates{
			Health:  domain.PremiumRatePair{Employee: decimal.NewFromFloat(0.05), Employer: decimal.NewFromFloat(0.05)},
			Care:    domain.PremiumRatePair{Employee: decimal.NewFromFloat(0.009), Employer: decimal.NewFromFloat(0.009)},
			Pension: domain.PremiumRatePair{Employee: decimal.NewFromFloat(0.0915), Employer: decimal.NewFromFloat(0.0915)},
		},
	})
	return repo
}

func TestEngineFullYear(t *testing.T) {
	ctx := context.Background()
	repo := engineFixture()
	engine := NewEngine(repo)

	report, err := engine.CalculateMonthlyTotals(ctx, "Example Works", 2025)
	require.NoError(t, err)
	require.Empty(t, report.ErrorMessages)
	require.Len(t, report.RowsByEmployee, 2)
	require.Len(t, report.MonthlyTotals, 12)

	e1 := report.RowsByEmployee["E001"]
	require.Len(t, e1, 12)
	e2 := report.RowsByEmployee["E002"]
	require.Len(t, e2, 12)

	// E001: flat grade 22 months; June carries the folded bonus.
	jan := e1[0]
	assert.Equal(t, 22, jan.Grade)
	assert.True(t, jan.Premiums.HealthEmployee.Equal(decimal.NewFromInt(15000)))
	assert.True(t, jan.Premiums.CareEmployee.IsZero())

	june := e1[5]
	assert.True(t, june.Premiums.HealthEmployee.Equal(decimal.NewFromInt(45000)),
		"bonus premiums folded into June, got %s", june.Premiums.HealthEmployee)

	// The periodic determination is annotated on the September row.
	assert.NotEmpty(t, e1[8].TeijiNote)

	// E002: January has no salary yet, pension waits in the hire month.
	assert.True(t, e2[0].Premiums.IsZero())
	assert.True(t, domain.HasReason(e2[0].Reasons, domain.ReasonZeroSalary))
	feb := e2[1]
	assert.False(t, feb.Premiums.HealthEmployee.IsZero())
	assert.True(t, feb.Premiums.PensionEmployee.IsZero())
	assert.False(t, feb.Premiums.CareEmployee.IsZero())
	// Care type 1 from the 65th birthday month: no payroll care premium.
	assert.True(t, e2[2].Premiums.CareEmployee.IsZero())
	assert.NotEmpty(t, feb.AcquisitionNote)

	// Monthly totals match the per-row sums.
	var juneTotal decimal.Decimal
	for _, rows := range report.RowsByEmployee {
		juneTotal = juneTotal.Add(rows[5].Premiums.Total())
	}
	assert.True(t, report.MonthlyTotals[5].Total.Equal(juneTotal))
	assert.True(t, report.Annual.Grand.IsPositive())

	// Bonus annual totals for E001.
	bonusAnnual := report.BonusAnnualByEmployee["E001"]
	assert.True(t, bonusAnnual.Health.Equal(decimal.NewFromInt(60000)))
	assert.True(t, bonusAnnual.Pension.Equal(decimal.NewFromInt(109800)))
	assert.True(t, report.BonusAnnual.Total.Equal(decimal.NewFromInt(169800)))

	// The in-year hire triggers an acquisition filing.
	var acqRequired bool
	for _, n := range report.Notifications {
		if n.Type == domain.NotificationAcquisition && n.EmployeeID == "E002" {
			acqRequired = n.Required
		}
	}
	assert.True(t, acqRequired)
	assert.Empty(t, report.Warnings)
}

func TestEngineRerunDoesNotDuplicateHistory(t *testing.T) {
	ctx := context.Background()
	repo := engineFixture()
	engine := NewEngine(repo)

	_, err := engine.CalculateMonthlyTotals(ctx, "Example Works", 2025)
	require.NoError(t, err)
	first, err := repo.ListStandardRemunerationHistory(ctx, "E002")
	require.NoError(t, err)
	require.NotEmpty(t, first)

	_, err = engine.CalculateMonthlyTotals(ctx, "Example Works", 2025)
	require.NoError(t, err)
	second, err := repo.ListStandardRemunerationHistory(ctx, "E002")
	require.NoError(t, err)
	assert.Equal(t, len(first), len(second))

	// The acquisition determination stays cached across runs.
	e, err := repo.GetEmployee(ctx, "E002")
	require.NoError(t, err)
	require.NotNil(t, e.Acquisition)
	assert.Equal(t, 2025, e.Acquisition.Year)
	assert.Equal(t, 2, e.Acquisition.Month)
}

func TestEngineCollectsEmployeeErrors(t *testing.T) {
	ctx := context.Background()
	repo := engineFixture()
	// An invalid employee is reported but does not abort the batch.
	repo.PutEmployee(&domain.Employee{ID: "BAD"})
	engine := NewEngine(repo)

	report, err := engine.CalculateMonthlyTotals(ctx, "Example Works", 2025)
	require.NoError(t, err)
	require.Len(t, report.ErrorMessages, 1)
	assert.Contains(t, report.ErrorMessages[0], "BAD")
	assert.Len(t, report.RowsByEmployee, 2)
}
