package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/shahocalc/premium-calculator/internal/domain"
)

// GradeResult is a successful grade-table lookup.
type GradeResult struct {
	Grade    int
	Standard decimal.Decimal
}

// FindGrade maps a yen amount to its grade band. Bands must be pre-sorted
// ascending and non-overlapping; membership is lower <= amount < upper and
// the first match wins. Returns nil when the amount is below the lowest
// band or at/above the highest band's upper bound.
//
// A nil or empty table falls back to the built-in reference table. That is
// policy (calculate with the statutory defaults), not a data error.
func FindGrade(table *domain.GradeTable, amount decimal.Decimal) *GradeResult {
	bands := defaultBands
	if table != nil && len(table.Bands) > 0 {
		bands = table.Bands
	}
	for _, b := range bands {
		if b.Contains(amount) {
			return &GradeResult{Grade: b.Rank, Standard: b.Standard}
		}
	}
	return nil
}

// DefaultGradeTable returns the built-in health-insurance standard
// remuneration table (50 grades, 58,000 through 1,390,000 yen).
func DefaultGradeTable() *domain.GradeTable {
	bands := make([]domain.GradeBand, len(defaultBands))
	copy(bands, defaultBands)
	return &domain.GradeTable{Bands: bands}
}

func band(rank int, lower, upper, standard int64) domain.GradeBand {
	return domain.GradeBand{
		Rank:     rank,
		Lower:    decimal.NewFromInt(lower),
		Upper:    decimal.NewFromInt(upper),
		Standard: decimal.NewFromInt(standard),
	}
}

// defaultBands is the reference grade table used when no per-year table is
// supplied. The top band is open-ended.
var defaultBands = []domain.GradeBand{
	band(1, 0, 63000, 58000),
	band(2, 63000, 73000, 68000),
	band(3, 73000, 83000, 78000),
	band(4, 83000, 93000, 88000),
	band(5, 93000, 101000, 98000),
	band(6, 101000, 107000, 104000),
	band(7, 107000, 114000, 110000),
	band(8, 114000, 122000, 118000),
	band(9, 122000, 130000, 126000),
	band(10, 130000, 138000, 134000),
	band(11, 138000, 146000, 142000),
	band(12, 146000, 155000, 150000),
	band(13, 155000, 165000, 160000),
	band(14, 165000, 175000, 170000),
	band(15, 175000, 185000, 180000),
	band(16, 185000, 195000, 190000),
	band(17, 195000, 210000, 200000),
	band(18, 210000, 230000, 220000),
	band(19, 230000, 250000, 240000),
	band(20, 250000, 270000, 260000),
	band(21, 270000, 290000, 280000),
	band(22, 290000, 310000, 300000),
	band(23, 310000, 330000, 320000),
	band(24, 330000, 350000, 340000),
	band(25, 350000, 370000, 360000),
	band(26, 370000, 395000, 380000),
	band(27, 395000, 425000, 410000),
	band(28, 425000, 455000, 440000),
	band(29, 455000, 485000, 470000),
	band(30, 485000, 515000, 500000),
	band(31, 515000, 545000, 530000),
	band(32, 545000, 575000, 560000),
	band(33, 575000, 605000, 590000),
	band(34, 605000, 635000, 620000),
	band(35, 635000, 665000, 650000),
	band(36, 665000, 695000, 680000),
	band(37, 695000, 730000, 710000),
	band(38, 730000, 770000, 750000),
	band(39, 770000, 810000, 790000),
	band(40, 810000, 855000, 830000),
	band(41, 855000, 905000, 880000),
	band(42, 905000, 955000, 930000),
	band(43, 955000, 1005000, 980000),
	band(44, 1005000, 1055000, 1030000),
	band(45, 1055000, 1115000, 1090000),
	band(46, 1115000, 1175000, 1150000),
	band(47, 1175000, 1235000, 1210000),
	band(48, 1235000, 1295000, 1270000),
	band(49, 1295000, 1355000, 1330000),
	band(50, 1355000, 999999999, 1390000),
}
