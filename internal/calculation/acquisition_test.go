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

func seedRepo(e *domain.Employee, salaries ...*domain.SalaryMonth) *repository.Memory {
	repo := repository.NewMemory()
	repo.PutEmployee(e)
	for _, s := range salaries {
		s.Normalize()
		repo.PutSalaryMonth(s)
	}
	return repo
}

func TestAcquisitionUsesHireMonth(t *testing.T) {
	e := &domain.Employee{ID: "E1", BirthDate: date(1990, 1, 10), HireDate: date(2025, 4, 1)}
	repo := seedRepo(e, &domain.SalaryMonth{
		EmployeeID: "E1", Year: 2025, Month: 4, Fixed: decimal.NewFromInt(304600),
	})

	res, err := CalculateAcquisition(context.Background(), repo, e, nil)
	require.NoError(t, err)
	assert.True(t, res.Determined)
	assert.False(t, res.FromCache)
	assert.True(t, res.Persisted)
	assert.Equal(t, 2025, res.UsedYear)
	assert.Equal(t, 4, res.UsedMonth)
	// 304600 rounds to 305000, grade 22 (290000-310000).
	assert.True(t, res.Rounded.Equal(decimal.NewFromInt(305000)))
	assert.Equal(t, 22, res.Grade)
	require.NotNil(t, e.Acquisition)
	assert.Equal(t, 22, e.Acquisition.Grade)
}

func TestAcquisitionFallsBackToSecondMonth(t *testing.T) {
	e := &domain.Employee{ID: "E1", BirthDate: date(1990, 1, 10), HireDate: date(2025, 4, 20)}
	repo := seedRepo(e, &domain.SalaryMonth{
		EmployeeID: "E1", Year: 2025, Month: 5, Fixed: decimal.NewFromInt(300000),
	})

	res, err := CalculateAcquisition(context.Background(), repo, e, nil)
	require.NoError(t, err)
	assert.True(t, res.Determined)
	assert.Equal(t, 5, res.UsedMonth)
	assert.Equal(t, 22, res.Grade)
}

func TestAcquisitionIndeterminateWithoutData(t *testing.T) {
	e := &domain.Employee{ID: "E1", BirthDate: date(1990, 1, 10), HireDate: date(2025, 4, 1)}
	repo := seedRepo(e)

	res, err := CalculateAcquisition(context.Background(), repo, e, nil)
	require.NoError(t, err)
	assert.False(t, res.Determined)
	assert.True(t, domain.HasReason(res.Reasons, domain.ReasonIndeterminate))
	assert.Nil(t, e.Acquisition)
}

func TestAcquisitionCacheIsWriteOnce(t *testing.T) {
	e := &domain.Employee{ID: "E1", BirthDate: date(1990, 1, 10), HireDate: date(2025, 4, 1)}
	repo := seedRepo(e, &domain.SalaryMonth{
		EmployeeID: "E1", Year: 2025, Month: 4, Fixed: decimal.NewFromInt(300000),
	})

	first, err := CalculateAcquisition(context.Background(), repo, e, nil)
	require.NoError(t, err)
	require.True(t, first.Determined)

	// A later salary correction must not change the cached determination.
	repo.PutSalaryMonth(&domain.SalaryMonth{
		EmployeeID: "E1", Year: 2025, Month: 4,
		Fixed: decimal.NewFromInt(500000), Total: decimal.NewFromInt(500000),
	})
	second, err := CalculateAcquisition(context.Background(), repo, e, nil)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Grade, second.Grade)
	assert.True(t, second.Standard.Equal(first.Standard))
}
