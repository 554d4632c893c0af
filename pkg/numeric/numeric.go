// Package numeric holds the two numeric primitives shared by every part of
// the bonus computation: half-away-from-zero rounding and tolerant parsing
// of locale-formatted currency strings coming out of the CRM sync.
package numeric

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RoundHalfUp rounds half away from zero at the given number of decimal
// places: 0.125 -> 0.13, -0.125 -> -0.13. Most language defaults round half
// to even, which silently diverges on exact .xx5 boundaries, so the shift
// and floor is spelled out here instead of delegated.
func RoundHalfUp(v decimal.Decimal, places int32) decimal.Decimal {
	half := decimal.New(5, -1)
	shifted := v.Shift(places)
	if shifted.IsNegative() {
		return shifted.Sub(half).Ceil().Shift(-places)
	}
	return shifted.Add(half).Floor().Shift(-places)
}

// ParseAmount parses a currency string as synced from the CRM. The data is
// inconsistently formatted: thousands separated by spaces or NBSP, decimal
// comma, sometimes a currency suffix. Everything except digits, separators
// and a minus sign is stripped, comma becomes the decimal point. Returns
// (0, false) when nothing parseable remains, so one bad record never aborts
// an aggregation.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			b.WriteRune(r)
		case r == ',':
			b.WriteByte('.')
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
