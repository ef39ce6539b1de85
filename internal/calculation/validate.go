package calculation

import (
	"fmt"

	"github.com/shahocalc/premium-calculator/internal/domain"
)

// ValidateEmployeeRows cross-checks finished monthly rows against the age
// and exemption rules and returns human-readable warnings for any
// contradiction. A clean result is an empty slice.
func ValidateEmployeeRows(e *domain.Employee, rows []domain.MonthlyPremiumRow) []string {
	var warnings []string
	for _, row := range rows {
		if PensionStoppedInMonth(e.BirthDate, row.Year, row.Month) && row.Premiums.PensionTotal().IsPositive() {
			warnings = append(warnings, fmt.Sprintf(
				"%s %d-%02d: pension premium charged past the age-70 stop", e.ID, row.Year, row.Month))
		}
		if HealthStoppedInMonth(e.BirthDate, row.Year, row.Month) {
			if row.Premiums.HealthTotal().IsPositive() || row.Premiums.CareTotal().IsPositive() {
				warnings = append(warnings, fmt.Sprintf(
					"%s %d-%02d: health/care premium charged past the age-75 stop", e.ID, row.Year, row.Month))
			}
		}
		if row.Exempt {
			employeeShare := row.Premiums.HealthEmployee.
				Add(row.Premiums.CareEmployee).
				Add(row.Premiums.PensionEmployee)
			if employeeShare.IsPositive() {
				warnings = append(warnings, fmt.Sprintf(
					"%s %d-%02d: employee share charged in an exempt month", e.ID, row.Year, row.Month))
			}
		}
	}
	return warnings
}
