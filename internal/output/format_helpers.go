package output

import "github.com/shopspring/decimal"

// FormatYen formats a decimal as whole-yen currency.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatYen(amount decimal.Decimal) string { return "¥" + amount.StringFixed(0) }
