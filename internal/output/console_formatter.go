package output

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/shahocalc/premium-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.CompanyReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "PREMIUM REPORT: %s (%d)\n", report.CompanyName, report.Year)
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "Company monthly totals:")
	for _, t := range report.MonthlyTotals {
		fmt.Fprintf(&buf, "  %d-%02d: health=%s care=%s pension=%s total=%s\n",
			t.Year, t.Month,
			FormatYen(t.Health), FormatYen(t.Care), FormatYen(t.Pension), FormatYen(t.Total))
	}
	fmt.Fprintf(&buf, "Annual: health=%s care=%s pension=%s grand=%s\n",
		FormatYen(report.Annual.Health), FormatYen(report.Annual.Care),
		FormatYen(report.Annual.Pension), FormatYen(report.Annual.Grand))
	fmt.Fprintf(&buf, "Bonus annual: health=%s care=%s pension=%s total=%s\n",
		FormatYen(report.BonusAnnual.Health), FormatYen(report.BonusAnnual.Care),
		FormatYen(report.BonusAnnual.Pension), FormatYen(report.BonusAnnual.Total))
	fmt.Fprintln(&buf)

	ids := make([]string, 0, len(report.RowsByEmployee))
	for id := range report.RowsByEmployee {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(&buf, "%s:\n", id)
		for _, row := range report.RowsByEmployee[id] {
			fmt.Fprintf(&buf, "  %d-%02d grade=%d standard=%s total=%s",
				row.Year, row.Month, row.Grade,
				FormatYen(row.StandardRemuneration), FormatYen(row.Premiums.Total()))
			if row.Exempt {
				fmt.Fprint(&buf, " [exempt]")
			}
			for _, note := range []string{row.AcquisitionNote, row.TeijiNote, row.SuijiNote} {
				if note != "" {
					fmt.Fprintf(&buf, " (%s)", note)
				}
			}
			fmt.Fprintln(&buf)
		}
	}

	required := 0
	for _, n := range report.Notifications {
		if n.Required {
			required++
		}
	}
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "Filings required: %d\n", required)
	for _, n := range report.Notifications {
		if !n.Required {
			continue
		}
		line := fmt.Sprintf("  %s %s", n.Type, n.EmployeeID)
		if n.Deadline != nil {
			line += " due " + n.Deadline.Format("2006-01-02")
		}
		fmt.Fprintln(&buf, line)
	}

	for _, w := range report.Warnings {
		fmt.Fprintf(&buf, "WARNING: %s\n", w)
	}
	for _, e := range report.ErrorMessages {
		fmt.Fprintf(&buf, "ERROR: %s\n", e)
	}
	return buf.Bytes(), nil
}
