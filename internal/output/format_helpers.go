package output

import "github.com/shopspring/decimal"

// FormatCurrency formats a decimal as NZD currency with 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string { return "$" + amount.StringFixed(2) }
