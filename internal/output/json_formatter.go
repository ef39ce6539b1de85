package output

import (
	"encoding/json"

	"github.com/shahocalc/premium-calculator/internal/domain"
)

// JSONFormatter serializes the company report as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.CompanyReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
