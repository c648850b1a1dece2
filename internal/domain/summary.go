package domain

import (
	"github.com/shopspring/decimal"
)

// Summary aggregates derived metrics across all of a user's assets.
// Percent fields are on percent scale and zero when the denominator
// would be zero. Computed on demand, never persisted.
type Summary struct {
	TotalValue       decimal.Decimal
	TotalCost        decimal.Decimal
	TotalGain        decimal.Decimal
	TotalGainPercent decimal.Decimal
	DayGain          decimal.Decimal
	DayGainPercent   decimal.Decimal

	// RealizedGain is a flat-margin estimate over sell history, not
	// lot-accurate P&L.
	RealizedGain decimal.Decimal
}

// Allocation is one asset-type slice of the portfolio.
type Allocation struct {
	Value      decimal.Decimal
	Percentage decimal.Decimal
}
