package utils

import "github.com/shopspring/decimal"

// MinorUnitExponent is the number of decimal places of the ledger currency.
// Fine amounts are stored and transported as integer minor units; only the
// presentation layer expands them to a decimal string.
const MinorUnitExponent = 2

// FormatMinorUnits renders an integer minor-unit amount as an exact decimal
// string, e.g. 6000 -> "60.00". Floating point is never involved.
func FormatMinorUnits(amount int64) string {
	return decimal.New(amount, -MinorUnitExponent).StringFixed(MinorUnitExponent)
}

// ParseMajorUnits converts a decimal string such as "12.50" into integer
// minor units, rejecting values with more precision than the currency has.
func ParseMajorUnits(value string) (int64, bool) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return 0, false
	}
	scaled := d.Shift(MinorUnitExponent)
	if !scaled.IsInteger() {
		return 0, false
	}
	return scaled.IntPart(), true
}
