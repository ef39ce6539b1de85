package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/shahocalc/premium-calculator/internal/domain"
)

// Memory is an in-memory Repository, seeded from a CompanyInput document.
// It backs the CLI and the tests; durable storage is outside the engine.
type Memory struct {
	mu sync.RWMutex

	employees map[string]*domain.Employee
	order     []string
	salaries  map[string]*domain.SalaryMonth // employeeID/year/month
	bonuses   map[string][]*domain.Bonus     // employeeID/year
	grades    map[int]*domain.GradeTable
	rates     map[string]*domain.RateTable // year/prefecture
	history   []domain.StandardRemunerationHistory
}

// NewMemory returns an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{
		employees: map[string]*domain.Employee{},
		salaries:  map[string]*domain.SalaryMonth{},
		bonuses:   map[string][]*domain.Bonus{},
		grades:    map[int]*domain.GradeTable{},
		rates:     map[string]*domain.RateTable{},
	}
}

// NewMemoryFromInput seeds a repository from a parsed company input file.
// Salary months are normalized on the way in so Total is always
// fixed+variable.
func NewMemoryFromInput(input *domain.CompanyInput) *Memory {
	m := NewMemory()
	for i := range input.Employees {
		e := input.Employees[i]
		m.PutEmployee(&e)
	}
	for i := range input.Salaries {
		s := input.Salaries[i]
		s.Normalize()
		m.PutSalaryMonth(&s)
	}
	for i := range input.Bonuses {
		b := input.Bonuses[i]
		m.PutBonus(&b)
	}
	if input.GradeTable != nil {
		m.PutGradeTable(input.GradeTable)
	}
	if input.RateTable != nil {
		m.PutRateTable(input.RateTable)
	}
	return m
}

func salaryKey(employeeID string, year, month int) string {
	return fmt.Sprintf("%s/%d/%d", employeeID, year, month)
}

func bonusKey(employeeID string, year int) string {
	return fmt.Sprintf("%s/%d", employeeID, year)
}

func rateKey(year int, prefecture string) string {
	return fmt.Sprintf("%d/%s", year, prefecture)
}

// PutEmployee inserts or replaces an employee.
func (m *Memory) PutEmployee(e *domain.Employee) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.employees[e.ID]; !exists {
		m.order = append(m.order, e.ID)
	}
	m.employees[e.ID] = e
}

// PutSalaryMonth inserts or replaces a salary month.
func (m *Memory) PutSalaryMonth(s *domain.SalaryMonth) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.salaries[salaryKey(s.EmployeeID, s.Year, s.Month)] = s
}

// PutBonus appends a bonus.
func (m *Memory) PutBonus(b *domain.Bonus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := bonusKey(b.EmployeeID, b.Year)
	m.bonuses[k] = append(m.bonuses[k], b)
}

// PutGradeTable inserts or replaces a year's grade table.
func (m *Memory) PutGradeTable(t *domain.GradeTable) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.grades[t.Year] = t
}

// PutRateTable inserts or replaces a rate table.
func (m *Memory) PutRateTable(t *domain.RateTable) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rates[rateKey(t.Year, t.Prefecture)] = t
}

func (m *Memory) GetEmployee(_ context.Context, id string) (*domain.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.employees[id]
	if !ok {
		return nil, fmt.Errorf("employee %s: %w", id, ErrNotFound)
	}
	return e, nil
}

func (m *Memory) ListEmployees(_ context.Context) ([]*domain.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Employee, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.employees[id])
	}
	return out, nil
}

func (m *Memory) GetSalaryMonth(_ context.Context, employeeID string, year, month int) (*domain.SalaryMonth, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.salaries[salaryKey(employeeID, year, month)], nil
}

func (m *Memory) ListBonuses(_ context.Context, employeeID string, year int) ([]*domain.Bonus, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bonuses[bonusKey(employeeID, year)], nil
}

func (m *Memory) GetGradeTable(_ context.Context, year int) (*domain.GradeTable, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.grades[year], nil
}

func (m *Memory) GetRates(_ context.Context, year int, prefecture string) (*domain.RateTable, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.rates[rateKey(year, prefecture)]; ok {
		return t, nil
	}
	// Fall back to a prefecture-less table for the year when one exists.
	return m.rates[rateKey(year, "")], nil
}

// SaveAcquisitionInfo is an idempotent write-once upsert: the first write
// for an employee sticks, later writes are ignored.
func (m *Memory) SaveAcquisitionInfo(_ context.Context, employeeID string, info domain.AcquisitionInfo) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.employees[employeeID]
	if !ok {
		return false, fmt.Errorf("employee %s: %w", employeeID, ErrNotFound)
	}
	if e.Acquisition != nil {
		return false, nil
	}
	e.Acquisition = &info
	return true, nil
}

func (m *Memory) AppendStandardRemunerationHistory(_ context.Context, h domain.StandardRemunerationHistory) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.history {
		if existing.EmployeeID == h.EmployeeID &&
			existing.ApplyStartYear == h.ApplyStartYear &&
			existing.ApplyStartMonth == h.ApplyStartMonth &&
			existing.Reason == h.Reason {
			return false, nil
		}
	}
	m.history = append(m.history, h)
	return true, nil
}

func (m *Memory) ListStandardRemunerationHistory(_ context.Context, employeeID string) ([]domain.StandardRemunerationHistory, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.StandardRemunerationHistory
	for _, h := range m.history {
		if h.EmployeeID == employeeID {
			out = append(out, h)
		}
	}
	return out, nil
}
