package domain

import (
	"github.com/shopspring/decimal"
)

// Money is kept as integer cents everywhere; decimals only appear at the
// parse/format boundary so display rounding can never feed back into totals.

var centFactor = decimal.NewFromInt(100)

// ParsePrice converts a decimal price string ("24.99") to cents.
func ParsePrice(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return d.Mul(centFactor).Round(0).IntPart(), nil
}

// FormatAmount renders cents with two decimals and no currency symbol.
func FormatAmount(cents int64) string {
	return decimal.NewFromInt(cents).Div(centFactor).StringFixed(2)
}

// FormatPrice renders cents for display in the given currency. Formatting is
// cosmetic only; computation stays in the catalog's authoring currency.
func FormatPrice(cents int64, currency string) string {
	amount := FormatAmount(cents)
	switch currency {
	case "USD":
		return "$" + amount
	default: // EUR
		return amount + " €"
	}
}
