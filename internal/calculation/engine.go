package calculation

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/shahocalc/premium-calculator/internal/domain"
	"github.com/shahocalc/premium-calculator/internal/repository"
	"github.com/shahocalc/premium-calculator/pkg/dateutil"
)

// Engine runs the full yearly calculation for a company: determinations,
// twelve monthly rows per employee, bonus folding, company aggregation,
// notification decisions and cross-checks. A repository failure for one
// employee is recorded and the batch continues.
type Engine struct {
	repo   repository.Repository
	logger Logger
}

// NewEngine creates an engine over the given repository.
func NewEngine(repo repository.Repository) *Engine {
	return &Engine{repo: repo, logger: NopLogger{}}
}

// SetLogger replaces the engine's logger.
func (en *Engine) SetLogger(l Logger) {
	if l != nil {
		en.logger = l
	}
}

// CalculateMonthlyTotals produces the complete company report for one year.
func (en *Engine) CalculateMonthlyTotals(ctx context.Context, companyName string, year int) (*domain.CompanyReport, error) {
	report := &domain.CompanyReport{
		CompanyName:           companyName,
		Year:                  year,
		RowsByEmployee:        map[string][]domain.MonthlyPremiumRow{},
		StatusByEmployee:      map[string][]domain.InsuranceStatusHistory{},
		BonusAnnualByEmployee: map[string]domain.BonusAnnualTotal{},
	}

	employees, err := en.repo.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	table, err := en.repo.GetGradeTable(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("loading grade table: %w", err)
	}
	en.logger.Infof("calculating %s year %d: %d employees", companyName, year, len(employees))

	bc := NewBonusCalculator()
	for _, e := range employees {
		if err := e.Validate(); err != nil {
			report.ErrorMessages = append(report.ErrorMessages,
				fmt.Sprintf("employee %s: %v", e.ID, err))
			continue
		}
		if err := en.calculateEmployeeYear(ctx, e, year, table, bc, report); err != nil {
			report.ErrorMessages = append(report.ErrorMessages,
				fmt.Sprintf("employee %s: %v", e.ID, err))
		}
	}

	report.MonthlyTotals = AggregateMonthlyTotals(year, report.RowsByEmployee)
	report.Annual = SumAnnualTotals(report.MonthlyTotals)
	report.BonusAnnual = SumBonusAnnualTotals(report.BonusAnnualByEmployee)
	return report, nil
}

func (en *Engine) calculateEmployeeYear(ctx context.Context, e *domain.Employee, year int, table *domain.GradeTable, bc *BonusCalculator, report *domain.CompanyReport) error {
	rates, err := en.repo.GetRates(ctx, year, e.Prefecture)
	if err != nil {
		return fmt.Errorf("loading rates: %w", err)
	}
	salaries, err := en.loadSalaries(ctx, e.ID, year)
	if err != nil {
		return err
	}

	// Acquisition-time determination, persisted write-once.
	acq, err := CalculateAcquisition(ctx, en.repo, e, table)
	if err != nil {
		return fmt.Errorf("acquisition determination: %w", err)
	}
	if acq.Determined && !acq.FromCache {
		if _, err := en.repo.AppendStandardRemunerationHistory(ctx, domain.StandardRemunerationHistory{
			EmployeeID:                  e.ID,
			ApplyStartYear:              e.Acquisition.Year,
			ApplyStartMonth:             e.Acquisition.Month,
			Grade:                       acq.Grade,
			StandardMonthlyRemuneration: acq.Standard,
			Reason:                      domain.DeterminationAcquisition,
		}); err != nil {
			return fmt.Errorf("recording acquisition: %w", err)
		}
	}
	if e.HireDate.Year() == year {
		report.Notifications = append(report.Notifications, DecideAcquisitionNotification(e, acq))
	}

	standings := newStandingTracker(e)

	// Periodic determination, effective September. The baseline for the
	// filing decision is the grade standing in August.
	baselineGrade, _ := standings.at(year, TeijiApplyMonth-1)
	teiji := CalculateTeiji(e.ID, year, salaries, table, baselineGrade, standings.standard(year, TeijiApplyMonth-1))
	if teiji.Determined {
		if _, err := en.repo.AppendStandardRemunerationHistory(ctx, domain.StandardRemunerationHistory{
			EmployeeID:                  e.ID,
			ApplyStartYear:              teiji.ApplyStartYear,
			ApplyStartMonth:             teiji.ApplyStartMonth,
			Grade:                       teiji.Grade,
			StandardMonthlyRemuneration: teiji.Standard,
			Reason:                      domain.DeterminationTeiji,
		}); err != nil {
			return fmt.Errorf("recording periodic determination: %w", err)
		}
		standings.addTeiji(teiji)
	}
	report.Notifications = append(report.Notifications, DecideTeijiNotification(teiji, baselineGrade))

	// Ad-hoc revisions, anchored on each fixed-wage change in the year.
	var suijis []SuijiResult
	for _, changeMonth := range DetectFixedWageChanges(salaries) {
		grade, _ := standings.at(year, changeMonth)
		res := CalculateSuiji(e, year, changeMonth, salaries, table, grade)
		report.Notifications = append(report.Notifications, DecideSuijiNotification(res))
		if res.IsEligible {
			if err := en.recordSuiji(ctx, e, res); err != nil {
				return err
			}
			standings.addSuiji(res)
			suijis = append(suijis, res)
		}
	}
	// Return-from-leave revision, unless the same change month was already
	// picked up by the regular scan.
	if rehab := en.rehabSuiji(e, year, salaries, table, standings, suijis); rehab != nil {
		report.Notifications = append(report.Notifications, DecideSuijiNotification(*rehab))
		if err := en.recordSuiji(ctx, e, *rehab); err != nil {
			return err
		}
		standings.addSuiji(*rehab)
		suijis = append(suijis, *rehab)
	}

	// Twelve monthly rows.
	rows := make([]domain.MonthlyPremiumRow, 0, 12)
	for m := 1; m <= 12; m++ {
		var fixed, variable decimal.Decimal
		if s := salaries[m]; s != nil {
			fixed, variable = s.Fixed, s.Variable
		}
		row := CalculateMonthlyPremiums(e, year, m, fixed, variable, table, rates)
		en.annotate(&row, e, year, m, acq, teiji, suijis)
		rows = append(rows, row)
	}

	// Bonuses paid during the year.
	bonuses, err := en.repo.ListBonuses(ctx, e.ID, year)
	if err != nil {
		return fmt.Errorf("listing bonuses: %w", err)
	}
	sort.SliceStable(bonuses, func(i, j int) bool {
		if bonuses[i].Month != bonuses[j].Month {
			return bonuses[i].Month < bonuses[j].Month
		}
		return bonuses[i].PayDate.Before(bonuses[j].PayDate)
	})
	annual := domain.BonusAnnualTotal{}
	for _, b := range bonuses {
		bc.Process(e, b, rates)
		FoldBonusIntoRow(b, rows)
		AddBonusToAnnualTotal(&annual, b)
		report.Notifications = append(report.Notifications, DecideBonusNotification(e, b))
	}

	report.RowsByEmployee[e.ID] = rows
	report.StatusByEmployee[e.ID] = BuildInsuranceStatusHistory(e, year)
	report.BonusAnnualByEmployee[e.ID] = annual
	report.Warnings = append(report.Warnings, ValidateEmployeeRows(e, rows)...)
	en.logger.Debugf("employee %s: %d rows, %d bonuses, %d revisions", e.ID, len(rows), len(bonuses), len(suijis))
	return nil
}

func (en *Engine) loadSalaries(ctx context.Context, employeeID string, year int) (map[int]*domain.SalaryMonth, error) {
	salaries := map[int]*domain.SalaryMonth{}
	for m := 1; m <= 12; m++ {
		s, err := en.repo.GetSalaryMonth(ctx, employeeID, year, m)
		if err != nil {
			return nil, fmt.Errorf("loading salary %d-%02d: %w", year, m, err)
		}
		if s != nil {
			salaries[m] = s
		}
	}
	return salaries, nil
}

func (en *Engine) recordSuiji(ctx context.Context, e *domain.Employee, res SuijiResult) error {
	_, err := en.repo.AppendStandardRemunerationHistory(ctx, domain.StandardRemunerationHistory{
		EmployeeID:                  e.ID,
		ApplyStartYear:              res.ApplyStartYear,
		ApplyStartMonth:             res.ApplyStartMonth,
		Grade:                       res.NewGrade,
		StandardMonthlyRemuneration: res.Standard,
		Reason:                      domain.DeterminationSuiji,
	})
	if err != nil {
		return fmt.Errorf("recording revision: %w", err)
	}
	return nil
}

func (en *Engine) rehabSuiji(e *domain.Employee, year int, salaries map[int]*domain.SalaryMonth, table *domain.GradeTable, standings *standingTracker, already []SuijiResult) *SuijiResult {
	returnMonth, ok := leaveReturnMonth(e, year)
	if !ok {
		return nil
	}
	grade, _ := standings.at(year, returnMonth)
	res := CheckRehabSuiji(e, year, salaries, table, grade)
	if res == nil || !res.IsEligible {
		return nil
	}
	for _, s := range already {
		if s.ChangeMonth == res.ChangeMonth {
			return nil
		}
	}
	return res
}

func (en *Engine) annotate(row *domain.MonthlyPremiumRow, e *domain.Employee, year, month int, acq AcquisitionResult, teiji TeijiResult, suijis []SuijiResult) {
	if acq.Determined && e.HireDate.Year() == year && int(e.HireDate.Month()) == month {
		row.AcquisitionNote = fmt.Sprintf("acquired: grade %d, standard %s",
			acq.Grade, acq.Standard.StringFixed(0))
	}
	if teiji.Determined && month == TeijiApplyMonth {
		row.TeijiNote = fmt.Sprintf("periodic determination: grade %d, standard %s",
			teiji.Grade, teiji.Standard.StringFixed(0))
	}
	for _, s := range suijis {
		if s.ApplyStartYear == year && s.ApplyStartMonth == month {
			row.SuijiNote = fmt.Sprintf("revision from month %d change: grade %d, standard %s",
				s.ChangeMonth, s.NewGrade, s.Standard.StringFixed(0))
		}
	}
}

// standingTracker resolves the grade and standard remuneration in force for
// a given month from the acquisition determination and any later
// determinations applied during the run.
type standingTracker struct {
	entries []standingEntry
}

type standingEntry struct {
	applyKey int
	grade    int
	standard decimal.Decimal
}

func newStandingTracker(e *domain.Employee) *standingTracker {
	t := &standingTracker{}
	if e.Acquisition != nil {
		t.entries = append(t.entries, standingEntry{
			applyKey: dateutil.MonthKey(e.Acquisition.Year, e.Acquisition.Month),
			grade:    e.Acquisition.Grade,
			standard: e.Acquisition.Standard,
		})
	}
	return t
}

func (t *standingTracker) addTeiji(res TeijiResult) {
	t.entries = append(t.entries, standingEntry{
		applyKey: dateutil.MonthKey(res.ApplyStartYear, res.ApplyStartMonth),
		grade:    res.Grade,
		standard: res.Standard,
	})
}

func (t *standingTracker) addSuiji(res SuijiResult) {
	t.entries = append(t.entries, standingEntry{
		applyKey: dateutil.MonthKey(res.ApplyStartYear, res.ApplyStartMonth),
		grade:    res.NewGrade,
		standard: res.Standard,
	})
}

// at returns the grade standing in the given month, 0 when none applies yet.
func (t *standingTracker) at(year, month int) (int, decimal.Decimal) {
	key := dateutil.MonthKey(year, month)
	best := -1
	for i, e := range t.entries {
		if e.applyKey <= key && (best < 0 || e.applyKey >= t.entries[best].applyKey) {
			best = i
		}
	}
	if best < 0 {
		return 0, decimal.Zero
	}
	return t.entries[best].grade, t.entries[best].standard
}

func (t *standingTracker) standard(year, month int) decimal.Decimal {
	_, s := t.at(year, month)
	return s
}
