package dateutil

import (
	"time"
)

// MonthKey converts a year/month pair into a single comparable index.
// Consecutive calendar months map to consecutive keys across year boundaries.
func MonthKey(year, month int) int {
	return year*12 + month - 1
}

// YearMonthFromKey is the inverse of MonthKey.
func YearMonthFromKey(key int) (year, month int) {
	return key / 12, key%12 + 1
}

// SameYearMonth reports whether a date falls in the given year and month.
func SameYearMonth(t time.Time, year, month int) bool {
	return t.Year() == year && int(t.Month()) == month
}

// InsuranceAge calculates the age at a given date under the civil-code rule:
// a person attains the next age on the day before their birthday.
func InsuranceAge(birthDate, atDate time.Time) int {
	if birthDate.IsZero() || atDate.Before(birthDate) {
		return 0
	}
	// Shifting the reference date forward one day makes the ordinary
	// calendar-age comparison implement the day-before attainment rule.
	shifted := atDate.AddDate(0, 0, 1)
	age := shifted.Year() - birthDate.Year()
	if int(shifted.Month()) < int(birthDate.Month()) ||
		(shifted.Month() == birthDate.Month() && shifted.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// AgeAtMonth calculates the insurance age as of the 1st of the given month.
// Invalid inputs (zero birth date, out-of-range year/month, ages outside
// 0-150) yield 0 rather than an error so the pipeline stays total.
func AgeAtMonth(birthDate time.Time, year, month int) int {
	if birthDate.IsZero() || year < 1 || year > 9999 || month < 1 || month > 12 {
		return 0
	}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	age := InsuranceAge(birthDate, first)
	if age < 0 || age > 150 {
		return 0
	}
	return age
}

// LastDayOfMonth returns the number of the last day of the given month.
func LastDayOfMonth(year, month int) int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

// IsLastDayOf reports whether the date is the last calendar day of its month.
func IsLastDayOf(t time.Time) bool {
	return t.Day() == LastDayOfMonth(t.Year(), int(t.Month()))
}

// SpanDays returns the inclusive number of days between two dates.
// Returns 0 when end precedes start.
func SpanDays(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

// AddMonths adds a number of months to a year/month pair, wrapping years.
func AddMonths(year, month, add int) (int, int) {
	return YearMonthFromKey(MonthKey(year, month) + add)
}

// FirstOfMonth returns midnight UTC on the 1st of the given month.
func FirstOfMonth(year, month int) time.Time {
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
}
