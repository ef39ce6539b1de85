package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestMonthKeyRoundTrip(t *testing.T) {
	tests := []struct {
		year, month int
	}{
		{2025, 1},
		{2025, 12},
		{1999, 6},
		{2100, 2},
	}
	for _, tt := range tests {
		key := MonthKey(tt.year, tt.month)
		y, m := YearMonthFromKey(key)
		assert.Equal(t, tt.year, y)
		assert.Equal(t, tt.month, m)
	}
}

func TestMonthKeyOrdersAcrossYears(t *testing.T) {
	assert.Equal(t, MonthKey(2025, 12)+1, MonthKey(2026, 1))
	assert.Less(t, MonthKey(2024, 12), MonthKey(2025, 1))
}

func TestInsuranceAge(t *testing.T) {
	birth := date(1985, 6, 15)
	tests := []struct {
		name     string
		at       time.Time
		expected int
	}{
		{"two days before birthday", date(2025, 6, 13), 39},
		{"day before birthday attains the age", date(2025, 6, 14), 40},
		{"on the birthday", date(2025, 6, 15), 40},
		{"well after", date(2025, 12, 1), 40},
		{"before birth", date(1980, 1, 1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, InsuranceAge(birth, tt.at))
		})
	}
}

func TestInsuranceAgeBirthdayOnFirst(t *testing.T) {
	// A birthday on the 1st is attained on the last day of the prior month.
	birth := date(1985, 7, 1)
	assert.Equal(t, 40, InsuranceAge(birth, date(2025, 6, 30)))
	assert.Equal(t, 39, InsuranceAge(birth, date(2025, 6, 29)))
}

func TestAgeAtMonth(t *testing.T) {
	birth := date(1990, 3, 10)
	assert.Equal(t, 34, AgeAtMonth(birth, 2025, 3)) // birthday not yet reached on the 1st
	assert.Equal(t, 35, AgeAtMonth(birth, 2025, 4))
	assert.Equal(t, 0, AgeAtMonth(time.Time{}, 2025, 4))
	assert.Equal(t, 0, AgeAtMonth(birth, 2025, 13))
	assert.Equal(t, 0, AgeAtMonth(birth, 0, 1))
}

func TestLastDayOfMonth(t *testing.T) {
	assert.Equal(t, 31, LastDayOfMonth(2025, 1))
	assert.Equal(t, 28, LastDayOfMonth(2025, 2))
	assert.Equal(t, 29, LastDayOfMonth(2024, 2))
	assert.Equal(t, 30, LastDayOfMonth(2025, 4))
}

func TestIsLastDayOf(t *testing.T) {
	assert.True(t, IsLastDayOf(date(2025, 2, 28)))
	assert.False(t, IsLastDayOf(date(2024, 2, 28)))
	assert.True(t, IsLastDayOf(date(2024, 2, 29)))
	assert.False(t, IsLastDayOf(date(2025, 7, 30)))
}

func TestSpanDays(t *testing.T) {
	assert.Equal(t, 1, SpanDays(date(2025, 5, 1), date(2025, 5, 1)))
	assert.Equal(t, 14, SpanDays(date(2025, 5, 1), date(2025, 5, 14)))
	assert.Equal(t, 0, SpanDays(date(2025, 5, 2), date(2025, 5, 1)))
	assert.Equal(t, 32, SpanDays(date(2025, 1, 31), date(2025, 3, 3)))
}

func TestAddMonths(t *testing.T) {
	y, m := AddMonths(2025, 11, 4)
	assert.Equal(t, 2026, y)
	assert.Equal(t, 3, m)

	y, m = AddMonths(2025, 5, 0)
	assert.Equal(t, 2025, y)
	assert.Equal(t, 5, m)
}
