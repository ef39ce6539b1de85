// Package repository defines the data-access contract the calculation
// engine depends on. The engine never assumes a storage shape; everything is
// keyed by employee, year and month.
package repository

import (
	"context"
	"errors"

	"github.com/shahocalc/premium-calculator/internal/domain"
)

// ErrNotFound is returned when a keyed entity does not exist.
var ErrNotFound = errors.New("repository: not found")

// Repository is the persistence boundary of the premium engine. Read
// methods return (nil, nil) for absent optional data (salary months, rate
// tables); GetEmployee returns ErrNotFound for an unknown id.
type Repository interface {
	GetEmployee(ctx context.Context, id string) (*domain.Employee, error)
	ListEmployees(ctx context.Context) ([]*domain.Employee, error)

	GetSalaryMonth(ctx context.Context, employeeID string, year, month int) (*domain.SalaryMonth, error)
	ListBonuses(ctx context.Context, employeeID string, year int) ([]*domain.Bonus, error)

	GetGradeTable(ctx context.Context, year int) (*domain.GradeTable, error)
	GetRates(ctx context.Context, year int, prefecture string) (*domain.RateTable, error)

	// SaveAcquisitionInfo persists the acquisition determination exactly
	// once. It reports whether the write happened; a second call for the
	// same employee is a no-op returning false.
	SaveAcquisitionInfo(ctx context.Context, employeeID string, info domain.AcquisitionInfo) (bool, error)

	// AppendStandardRemunerationHistory appends a determination entry,
	// deduplicated on (employee, applyStartYear, applyStartMonth, reason).
	// It reports whether a new entry was written.
	AppendStandardRemunerationHistory(ctx context.Context, h domain.StandardRemunerationHistory) (bool, error)
	ListStandardRemunerationHistory(ctx context.Context, employeeID string) ([]domain.StandardRemunerationHistory, error)
}
