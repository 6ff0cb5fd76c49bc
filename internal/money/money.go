// Package money converts between the engine's integer minor units and the
// decimal display representation used at the storage/sync boundary.
//
// The engine computes exclusively in int64 minor units (cents, paise).
// Decimals exist only here, at the edge, and a value that does not land on a
// whole number of minor units is rejected before it can reach the ledger.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Epsilon is the settlement tolerance in minor units. Balances and debt
// remainders within Epsilon of zero are treated as settled; it absorbs the
// remainder assignment from equal splits recorded by other writers.
const Epsilon int64 = 1

// Currency describes how minor units map to a display amount.
type Currency struct {
	// Code is the ISO 4217 code (e.g., "INR").
	Code string

	// Symbol prefixes formatted amounts (e.g., "₹").
	Symbol string

	// Exponent is the number of decimal places in the display form
	// (2 for rupees/paise, cents).
	Exponent int32
}

// INR is the default currency.
var INR = Currency{Code: "INR", Symbol: "₹", Exponent: 2}

// Parse converts a display decimal string ("123.45") into minor units.
// It rejects values that are not a whole number of minor units.
func Parse(s string, c Currency) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return FromDecimal(d, c)
}

// FromDecimal converts a decimal display amount into minor units.
func FromDecimal(d decimal.Decimal, c Currency) (int64, error) {
	shifted := d.Shift(c.Exponent)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("amount %s is not a whole number of minor units for %s", d.String(), c.Code)
	}
	if !shifted.BigInt().IsInt64() {
		return 0, fmt.Errorf("amount %s overflows minor units", d.String())
	}
	return shifted.IntPart(), nil
}

// ToDecimal converts minor units into the decimal display amount.
func ToDecimal(minor int64, c Currency) decimal.Decimal {
	return decimal.New(minor, -c.Exponent)
}

// Format renders minor units with the currency symbol, e.g. Format(12345)
// with INR yields "₹123.45".
func Format(minor int64, c Currency) string {
	return c.Symbol + ToDecimal(minor, c).StringFixed(c.Exponent)
}
