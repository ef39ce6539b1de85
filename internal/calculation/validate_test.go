package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shahocalc/premium-calculator/internal/domain"
)

func TestValidateEmployeeRowsClean(t *testing.T) {
	e := &domain.Employee{ID: "E1", BirthDate: date(1990, 1, 10), HireDate: date(2020, 4, 1)}
	rows := []domain.MonthlyPremiumRow{rowWith(6, 15000, 0, 27450)}
	assert.Empty(t, ValidateEmployeeRows(e, rows))
}

func TestValidateEmployeeRowsPensionPastStop(t *testing.T) {
	e := &domain.Employee{ID: "E1", BirthDate: date(1954, 1, 10), HireDate: date(2000, 4, 1)}
	rows := []domain.MonthlyPremiumRow{rowWith(6, 15000, 0, 27450)}
	warnings := ValidateEmployeeRows(e, rows)
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "age-70")
}

func TestValidateEmployeeRowsHealthPastStop(t *testing.T) {
	e := &domain.Employee{ID: "E1", BirthDate: date(1949, 1, 10), HireDate: date(2000, 4, 1)}
	rows := []domain.MonthlyPremiumRow{rowWith(6, 15000, 2700, 0)}
	warnings := ValidateEmployeeRows(e, rows)
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "age-75")
}

func TestValidateEmployeeRowsExemptWithEmployeeShare(t *testing.T) {
	e := &domain.Employee{ID: "E1", BirthDate: date(1990, 1, 10), HireDate: date(2020, 4, 1)}
	row := rowWith(6, 15000, 0, 27450)
	row.Exempt = true
	warnings := ValidateEmployeeRows(e, []domain.MonthlyPremiumRow{row})
	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "exempt")
}
