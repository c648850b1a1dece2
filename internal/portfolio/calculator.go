package portfolio

import (
	"folio/internal/db/models/postgres/public/model"
	"folio/internal/domain"
	"sort"

	"github.com/shopspring/decimal"
)

// Pure calculations over in-memory snapshots. Nothing in this package
// touches storage, and every ratio substitutes zero for an undefined
// denominator instead of propagating NaN or an error.

var hundred = decimal.NewFromInt(100)

// assumedSaleMargin is the flat gain fraction assumed on every sell
// when estimating realized gains. This is NOT lot-accurate P&L: the
// system tracks a single weighted-average cost per asset, so true
// realized gains (FIFO/LIFO/specific-lot) cannot be computed here.
// Kept for parity with the mobile app's behavior.
var assumedSaleMargin = decimal.NewFromFloat(0.15)

// ComputeSummary aggregates derived metrics over a user's assets.
// An empty snapshot yields the zero-value summary.
func ComputeSummary(assets []domain.Asset) domain.Summary {
	totalValue := decimal.Zero
	totalCost := decimal.Zero
	dayGain := decimal.Zero
	for _, a := range assets {
		totalValue = totalValue.Add(a.CurrentValue())
		totalCost = totalCost.Add(a.CostBasis())
		dayGain = dayGain.Add(a.Quantity.Mul(a.DayChange()))
	}

	totalGain := totalValue.Sub(totalCost)
	totalGainPercent := decimal.Zero
	if !totalCost.IsZero() {
		totalGainPercent = totalGain.Div(totalCost).Mul(hundred)
	}

	// day change is relative to yesterday's total value
	previousValue := totalValue.Sub(dayGain)
	dayGainPercent := decimal.Zero
	if !previousValue.IsZero() {
		dayGainPercent = dayGain.Div(previousValue).Mul(hundred)
	}

	return domain.Summary{
		TotalValue:       totalValue,
		TotalCost:        totalCost,
		TotalGain:        totalGain,
		TotalGainPercent: totalGainPercent,
		DayGain:          dayGain,
		DayGainPercent:   dayGainPercent,
	}
}

// TopPerformers returns up to limit assets ordered by unrealized gain
// percent, best first. Ties are broken by symbol so the ordering is
// deterministic.
func TopPerformers(assets []domain.Asset, limit int) []domain.Asset {
	return performers(assets, limit, true)
}

// WorstPerformers is TopPerformers with the sort reversed.
func WorstPerformers(assets []domain.Asset, limit int) []domain.Asset {
	return performers(assets, limit, false)
}

func performers(assets []domain.Asset, limit int, best bool) []domain.Asset {
	if limit <= 0 {
		return []domain.Asset{}
	}
	sorted := make([]domain.Asset, len(assets))
	copy(sorted, assets)
	sort.SliceStable(sorted, func(i, j int) bool {
		gi := sorted[i].UnrealizedGainPercent()
		gj := sorted[j].UnrealizedGainPercent()
		if gi.Equal(gj) {
			return sorted[i].Symbol < sorted[j].Symbol
		}
		if best {
			return gi.GreaterThan(gj)
		}
		return gi.LessThan(gj)
	})
	if limit > len(sorted) {
		limit = len(sorted)
	}
	return sorted[:limit]
}

// Allocations groups current value by asset type. Percentages sum to
// 100 whenever the portfolio has any value; callers sort for display.
func Allocations(assets []domain.Asset) map[string]domain.Allocation {
	totalValue := decimal.Zero
	grouped := map[string]decimal.Decimal{}
	for _, a := range assets {
		key := domain.AssetTypeDisplay(a.Type)
		grouped[key] = grouped[key].Add(a.CurrentValue())
		totalValue = totalValue.Add(a.CurrentValue())
	}

	out := map[string]domain.Allocation{}
	for key, value := range grouped {
		percentage := decimal.Zero
		if !totalValue.IsZero() {
			percentage = value.Div(totalValue).Mul(hundred)
		}
		out[key] = domain.Allocation{
			Value:      value,
			Percentage: percentage,
		}
	}
	return out
}

// EstimateRealizedGain sums an assumed flat margin over every sell in
// the history. See assumedSaleMargin for why this is only an estimate.
func EstimateRealizedGain(transactions []domain.Transaction) decimal.Decimal {
	realized := decimal.Zero
	for _, t := range transactions {
		if t.Type != model.TransactionType_Sell {
			continue
		}
		realized = realized.Add(t.Quantity.Mul(t.PricePerUnit).Mul(assumedSaleMargin))
	}
	return realized
}
