package yen

import (
	"github.com/shopspring/decimal"
)

var thousand = decimal.NewFromInt(1000)

// RoundToThousand rounds an amount to the nearest 1,000 yen, half up.
// Standard monthly remuneration averages are rounded this way before
// grade lookup.
func RoundToThousand(amount decimal.Decimal) decimal.Decimal {
	return amount.Div(thousand).Round(0).Mul(thousand)
}

// FloorToThousand discards everything below the 1,000-yen unit.
// Standard bonus amounts are floored, never rounded.
func FloorToThousand(amount decimal.Decimal) decimal.Decimal {
	return amount.Div(thousand).Floor().Mul(thousand)
}

// Floor truncates an amount to the 1-yen unit. Every individual premium
// figure is floored after the rate is applied.
func Floor(amount decimal.Decimal) decimal.Decimal {
	return amount.Floor()
}

// Sanitize normalizes dirty input to a safe calculation value: negative
// amounts become zero. Decimals have no NaN, so negativity is the only
// hazard carried over from upstream data.
func Sanitize(amount decimal.Decimal) decimal.Decimal {
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

// Min returns the smaller of two amounts.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two amounts.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
