package saga

import (
	"github.com/shopspring/decimal"
)

var daysPerYear = decimal.NewFromInt(365)

// EstimateRewards is the published linear estimate principal * (rate/365) * days,
// rounded to the native asset's decimals. It is not a settlement calculation.
func EstimateRewards(principal decimal.Decimal, annualRate decimal.Decimal, days int64, decimals int32) decimal.Decimal {
	// Multiply before dividing so the single division is the only rounding step.
	return principal.
		Mul(annualRate).
		Mul(decimal.NewFromInt(days)).
		DivRound(daysPerYear, decimals)
}
