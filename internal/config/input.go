package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/shahocalc/premium-calculator/internal/domain"
)

// InputParser handles parsing of company input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a company input document from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.CompanyInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input domain.CompanyInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateInput(&input); err != nil {
		return nil, fmt.Errorf("input validation failed: %w", err)
	}

	for i := range input.Salaries {
		input.Salaries[i].Normalize()
	}
	return &input, nil
}

// ValidateInput validates the loaded company input
func (ip *InputParser) ValidateInput(input *domain.CompanyInput) error {
	if input.Year < 1900 || input.Year > 2200 {
		return fmt.Errorf("year %d is out of range", input.Year)
	}
	if len(input.Employees) == 0 {
		return fmt.Errorf("no employees provided")
	}

	seen := map[string]bool{}
	for i := range input.Employees {
		e := &input.Employees[i]
		if err := e.Validate(); err != nil {
			return fmt.Errorf("employee %d: %w", i, err)
		}
		if seen[e.ID] {
			return fmt.Errorf("duplicate employee id %s", e.ID)
		}
		seen[e.ID] = true
	}

	for i := range input.Salaries {
		if err := ip.validateSalaryMonth(&input.Salaries[i], seen); err != nil {
			return fmt.Errorf("salary %d: %w", i, err)
		}
	}
	for i := range input.Bonuses {
		if err := ip.validateBonus(&input.Bonuses[i], seen); err != nil {
			return fmt.Errorf("bonus %d: %w", i, err)
		}
	}
	if input.GradeTable != nil {
		if err := ip.validateGradeTable(input.GradeTable); err != nil {
			return fmt.Errorf("grade table: %w", err)
		}
	}
	return nil
}

func (ip *InputParser) validateSalaryMonth(s *domain.SalaryMonth, employees map[string]bool) error {
	if !employees[s.EmployeeID] {
		return fmt.Errorf("unknown employee id %s", s.EmployeeID)
	}
	if s.Month < 1 || s.Month > 12 {
		return fmt.Errorf("month %d is out of range", s.Month)
	}
	if s.Fixed.IsNegative() || s.Variable.IsNegative() {
		return fmt.Errorf("salary figures cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateBonus(b *domain.Bonus, employees map[string]bool) error {
	if !employees[b.EmployeeID] {
		return fmt.Errorf("unknown employee id %s", b.EmployeeID)
	}
	if b.Month < 1 || b.Month > 12 {
		return fmt.Errorf("month %d is out of range", b.Month)
	}
	if b.Amount.IsNegative() {
		return fmt.Errorf("bonus amount cannot be negative")
	}
	return nil
}

func (ip *InputParser) validateGradeTable(t *domain.GradeTable) error {
	if len(t.Bands) == 0 {
		return fmt.Errorf("no bands provided")
	}
	prevUpper := decimal.NewFromInt(-1)
	for i, b := range t.Bands {
		if b.Upper.LessThanOrEqual(b.Lower) {
			return fmt.Errorf("band %d: upper must exceed lower", i)
		}
		if i > 0 && b.Lower.LessThan(prevUpper) {
			return fmt.Errorf("band %d: overlaps the previous band", i)
		}
		prevUpper = b.Upper
	}
	return nil
}

// CreateExampleInput creates an example company input document
func (ip *InputParser) CreateExampleInput() *domain.CompanyInput {
	birthA, _ := time.Parse("2006-01-02", "1986-04-12")
	hireA, _ := time.Parse("2006-01-02", "2015-04-01")
	birthB, _ := time.Parse("2006-01-02", "1960-09-03")
	hireB, _ := time.Parse("2006-01-02", "2024-02-01")
	bonusPay, _ := time.Parse("2006-01-02", "2025-06-25")

	salaries := []domain.SalaryMonth{}
	for m := 1; m <= 12; m++ {
		salaries = append(salaries, domain.SalaryMonth{
			EmployeeID: "E001", Year: 2025, Month: m,
			Fixed:    decimal.NewFromInt(300000),
			Variable: decimal.NewFromInt(20000),
		})
		salaries = append(salaries, domain.SalaryMonth{
			EmployeeID: "E002", Year: 2025, Month: m,
			Fixed:    decimal.NewFromInt(420000),
			Variable: decimal.NewFromInt(15000),
		})
	}

	return &domain.CompanyInput{
		CompanyName: "Example Works K.K.",
		Year:        2025,
		Prefecture:  "tokyo",
		Employees: []domain.Employee{
			{
				ID:                    "E001",
				Name:                  "Sato Hanako",
				BirthDate:             birthA,
				HireDate:              hireA,
				WeeklyHours:           decimal.NewFromInt(40),
				ContractedMonthlyWage: decimal.NewFromInt(300000),
				Prefecture:            "tokyo",
			},
			{
				ID:                    "E002",
				Name:                  "Suzuki Taro",
				BirthDate:             birthB,
				HireDate:              hireB,
				WeeklyHours:           decimal.NewFromInt(40),
				ContractedMonthlyWage: decimal.NewFromInt(420000),
				Prefecture:            "tokyo",
			},
		},
		Salaries: salaries,
		Bonuses: []domain.Bonus{
			{
				EmployeeID: "E001", Year: 2025, Month: 6,
				PayDate: bonusPay,
				Amount:  decimal.NewFromInt(600000),
			},
		},
		RateTable: &domain.RateTable{
			Year:       2025,
			Prefecture: "tokyo",
			Rates: domain.PremiumRates{
				Health:  domain.PremiumRatePair{Employee: decimal.NewFromFloat(0.04955), Employer: decimal.NewFromFloat(0.04955)},
				Care:    domain.PremiumRatePair{Employee: decimal.NewFromFloat(0.00795), Employer: decimal.NewFromFloat(0.00795)},
				Pension: domain.PremiumRatePair{Employee: decimal.NewFromFloat(0.0915), Employer: decimal.NewFromFloat(0.0915)},
			},
		},
	}
}
