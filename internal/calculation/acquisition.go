package calculation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shahocalc/premium-calculator/internal/domain"
	"github.com/shahocalc/premium-calculator/internal/repository"
	"github.com/shahocalc/premium-calculator/pkg/dateutil"
	"github.com/shahocalc/premium-calculator/pkg/yen"
)

// AcquisitionResult is the outcome of the acquisition-time determination at
// hiring.
type AcquisitionResult struct {
	EmployeeID string

	// The month whose salary fed the determination.
	UsedYear  int
	UsedMonth int

	BaseAmount decimal.Decimal
	Rounded    decimal.Decimal
	Grade      int
	Standard   decimal.Decimal

	Determined bool
	FromCache  bool
	Persisted  bool

	Reasons []domain.Reason
}

// CalculateAcquisition determines the standard remuneration at hire. The
// hire month's total salary is used when present and positive, otherwise the
// following month's. The result is persisted write-once; an employee whose
// acquisition grade is already cached is returned as-is without recomputing.
func CalculateAcquisition(ctx context.Context, repo repository.Repository, e *domain.Employee, table *domain.GradeTable) (AcquisitionResult, error) {
	res := AcquisitionResult{EmployeeID: e.ID}

	if e.Acquisition != nil {
		res.FromCache = true
		res.Determined = true
		res.Grade = e.Acquisition.Grade
		res.Standard = e.Acquisition.Standard
		res.UsedYear = e.Acquisition.Year
		res.UsedMonth = e.Acquisition.Month
		return res, nil
	}
	if e.HireDate.IsZero() {
		res.Reasons = append(res.Reasons, domain.NewReason(domain.ReasonIndeterminate, "no hire date"))
		return res, nil
	}

	hireYear, hireMonth := e.HireDate.Year(), int(e.HireDate.Month())
	base, usedYear, usedMonth, err := acquisitionBase(ctx, repo, e.ID, hireYear, hireMonth)
	if err != nil {
		return res, err
	}
	if base == nil {
		res.Reasons = append(res.Reasons, domain.NewReason(domain.ReasonIndeterminate,
			"no salary data in hire month or the following month"))
		return res, nil
	}
	res.UsedYear, res.UsedMonth = usedYear, usedMonth
	res.BaseAmount = *base
	res.Rounded = yen.RoundToThousand(res.BaseAmount)

	g := FindGrade(table, res.Rounded)
	if g == nil {
		res.Reasons = append(res.Reasons, domain.NewReason(domain.ReasonNoGrade,
			fmt.Sprintf("no grade band matches %s", res.Rounded.StringFixed(0))))
		return res, nil
	}
	res.Grade = g.Grade
	res.Standard = g.Standard
	res.Determined = true

	info := domain.AcquisitionInfo{
		Grade:    res.Grade,
		Standard: res.Standard,
		Year:     hireYear,
		Month:    hireMonth,
	}
	wrote, err := repo.SaveAcquisitionInfo(ctx, e.ID, info)
	if err != nil {
		return res, err
	}
	res.Persisted = wrote
	if e.Acquisition == nil {
		e.Acquisition = &info
	}
	return res, nil
}

// acquisitionBase reads the hire-month salary, falling back to the next
// month. Returns nil when neither month has a positive total.
func acquisitionBase(ctx context.Context, repo repository.Repository, employeeID string, hireYear, hireMonth int) (*decimal.Decimal, int, int, error) {
	s, err := repo.GetSalaryMonth(ctx, employeeID, hireYear, hireMonth)
	if err != nil {
		return nil, 0, 0, err
	}
	if s != nil && s.Total.IsPositive() {
		t := s.Total
		return &t, hireYear, hireMonth, nil
	}
	nextYear, nextMonth := dateutil.AddMonths(hireYear, hireMonth, 1)
	s, err = repo.GetSalaryMonth(ctx, employeeID, nextYear, nextMonth)
	if err != nil {
		return nil, 0, 0, err
	}
	if s != nil && s.Total.IsPositive() {
		t := s.Total
		return &t, nextYear, nextMonth, nil
	}
	return nil, 0, 0, nil
}
