// Package calculator holds the pure split and recurrence arithmetic,
// kept free of storage and transport concerns so it can be tested in
// isolation.
package calculator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ShareSumTolerance is how far the sum of caller-supplied shares may
// drift from the declared total before the request is rejected.
var ShareSumTolerance = decimal.NewFromFloat(0.01)

// EqualShare computes one borrower's share of an equal split:
// total / count rounded half-up to 2 decimal places.
//
// Every borrower receives this identical share. No remainder
// distribution happens, so the sum of shares can drift from the total
// by up to count*0.005; that drift is accepted, not corrected.
func EqualShare(total decimal.Decimal, count int) (decimal.Decimal, error) {
	if count < 1 {
		return decimal.Zero, fmt.Errorf("must have at least one borrower")
	}
	return total.DivRound(decimal.NewFromInt(int64(count)), 2), nil
}

// ExactShare computes one borrower's share without 2-place rounding.
// Used by recurring generation, which divides at full precision.
func ExactShare(total decimal.Decimal, count int) (decimal.Decimal, error) {
	if count < 1 {
		return decimal.Zero, fmt.Errorf("must have at least one borrower")
	}
	return total.Div(decimal.NewFromInt(int64(count))), nil
}

// SharesMatchTotal reports whether the shares sum back to the declared
// total within ShareSumTolerance.
func SharesMatchTotal(shares []decimal.Decimal, total decimal.Decimal) bool {
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s)
	}
	return sum.Sub(total).Abs().Cmp(ShareSumTolerance) <= 0
}
