package output

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"

	"github.com/shahocalc/premium-calculator/internal/domain"
)

// CSVExporter implements the per-employee-month CSV output (one row per
// employee per month, followed by the company monthly totals).
type CSVExporter struct{}

func (c CSVExporter) Name() string { return "csv" }

func (c CSVExporter) Format(report *domain.CompanyReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"EmployeeID", "Year", "Month", "Grade", "StandardRemuneration", "HealthEmployee", "HealthEmployer", "CareEmployee", "CareEmployer", "PensionEmployee", "PensionEmployer", "Exempt", "Reasons"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(report.RowsByEmployee))
	for id := range report.RowsByEmployee {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		for _, row := range report.RowsByEmployee[id] {
			record := []string{
				row.EmployeeID,
				strconv.Itoa(row.Year),
				strconv.Itoa(row.Month),
				strconv.Itoa(row.Grade),
				row.StandardRemuneration.StringFixed(0),
				row.Premiums.HealthEmployee.StringFixed(0),
				row.Premiums.HealthEmployer.StringFixed(0),
				row.Premiums.CareEmployee.StringFixed(0),
				row.Premiums.CareEmployer.StringFixed(0),
				row.Premiums.PensionEmployee.StringFixed(0),
				row.Premiums.PensionEmployer.StringFixed(0),
				strconv.FormatBool(row.Exempt),
				joinReasons(row.Reasons),
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}

	if err := w.Write([]string{}); err != nil {
		return nil, err
	}
	if err := w.Write([]string{"Month", "Health", "Care", "Pension", "Total"}); err != nil {
		return nil, err
	}
	for _, t := range report.MonthlyTotals {
		record := []string{
			strconv.Itoa(t.Month),
			t.Health.StringFixed(0),
			t.Care.StringFixed(0),
			t.Pension.StringFixed(0),
			t.Total.StringFixed(0),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func joinReasons(reasons []domain.Reason) string {
	out := ""
	for i, r := range reasons {
		if i > 0 {
			out += "; "
		}
		out += string(r.Kind)
	}
	return out
}
