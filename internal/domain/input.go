package domain

// CompanyInput is the complete input document for one calculation run,
// parsed from a single YAML file.
type CompanyInput struct {
	CompanyName string `yaml:"company_name" json:"company_name"`
	Year        int    `yaml:"year" json:"year"`
	Prefecture  string `yaml:"prefecture" json:"prefecture"`

	Employees []Employee    `yaml:"employees" json:"employees"`
	Salaries  []SalaryMonth `yaml:"salaries" json:"salaries"`
	Bonuses   []Bonus       `yaml:"bonuses" json:"bonuses"`

	// Optional reference data; the engine falls back to the built-in grade
	// table and returns zero premiums with a reason when rates are absent.
	GradeTable *GradeTable `yaml:"grade_table,omitempty" json:"grade_table,omitempty"`
	RateTable  *RateTable  `yaml:"rate_table,omitempty" json:"rate_table,omitempty"`
}

// CompanyReport is the aggregate output of one calculation run.
type CompanyReport struct {
	CompanyName string `yaml:"company_name" json:"company_name"`
	Year        int    `yaml:"year" json:"year"`

	RowsByEmployee   map[string][]MonthlyPremiumRow      `yaml:"rows_by_employee" json:"rows_by_employee"`
	StatusByEmployee map[string][]InsuranceStatusHistory `yaml:"status_by_employee,omitempty" json:"status_by_employee,omitempty"`
	MonthlyTotals    []CompanyMonthlyTotal               `yaml:"monthly_totals" json:"monthly_totals"`
	Annual           AnnualTotals                        `yaml:"annual" json:"annual"`

	BonusAnnualByEmployee map[string]BonusAnnualTotal `yaml:"bonus_annual_by_employee" json:"bonus_annual_by_employee"`
	BonusAnnual           BonusAnnualTotal            `yaml:"bonus_annual" json:"bonus_annual"`

	Notifications []NotificationDecision `yaml:"notifications,omitempty" json:"notifications,omitempty"`
	Warnings      []string               `yaml:"warnings,omitempty" json:"warnings,omitempty"`
	ErrorMessages []string               `yaml:"error_messages,omitempty" json:"error_messages,omitempty"`
}
