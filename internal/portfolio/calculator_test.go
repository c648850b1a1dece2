package portfolio

import (
	"testing"

	"folio/internal/db/models/postgres/public/model"
	"folio/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func asset(symbol string, assetType model.AssetType, quantity, currentPrice, previousClose, averageCost int64) domain.Asset {
	return domain.Asset{
		Symbol:        symbol,
		Type:          assetType,
		Quantity:      decimal.NewFromInt(quantity),
		CurrentPrice:  decimal.NewFromInt(currentPrice),
		PreviousClose: decimal.NewFromInt(previousClose),
		AverageCost:   decimal.NewFromInt(averageCost),
	}
}

func TestComputeSummary(t *testing.T) {
	summary := ComputeSummary([]domain.Asset{
		asset("AAPL", model.AssetType_Stock, 2, 110, 100, 100),
		asset("VTI", model.AssetType_Etf, 1, 50, 60, 40),
	})

	// AAPL: value 220, cost 200, day +20; VTI: value 50, cost 40, day -10
	require.True(t, summary.TotalValue.Equal(decimal.NewFromInt(270)), "total value was %s", summary.TotalValue)
	require.True(t, summary.TotalCost.Equal(decimal.NewFromInt(240)), "total cost was %s", summary.TotalCost)
	require.True(t, summary.TotalGain.Equal(decimal.NewFromInt(30)), "total gain was %s", summary.TotalGain)
	require.True(t, summary.TotalGainPercent.Equal(decimal.NewFromFloat(12.5)), "total gain percent was %s", summary.TotalGainPercent)
	require.True(t, summary.DayGain.Equal(decimal.NewFromInt(10)), "day gain was %s", summary.DayGain)

	// day gain is measured against yesterday's value of 260
	expectedDayGainPercent := decimal.NewFromInt(10).Div(decimal.NewFromInt(260)).Mul(decimal.NewFromInt(100))
	require.True(t, summary.DayGainPercent.Equal(expectedDayGainPercent), "day gain percent was %s", summary.DayGainPercent)
}

func TestComputeSummary_Empty(t *testing.T) {
	summary := ComputeSummary(nil)

	require.True(t, summary.TotalValue.IsZero())
	require.True(t, summary.TotalCost.IsZero())
	require.True(t, summary.TotalGain.IsZero())
	require.True(t, summary.TotalGainPercent.IsZero())
	require.True(t, summary.DayGain.IsZero())
	require.True(t, summary.DayGainPercent.IsZero())
}

func TestComputeSummary_Additive(t *testing.T) {
	groupA := []domain.Asset{
		asset("AAPL", model.AssetType_Stock, 2, 110, 100, 100),
		asset("VTI", model.AssetType_Etf, 1, 50, 60, 40),
	}
	groupB := []domain.Asset{
		asset("BTC", model.AssetType_Crypto, 3, 40000, 39000, 25000),
	}

	combined := ComputeSummary(append(append([]domain.Asset{}, groupA...), groupB...))
	a := ComputeSummary(groupA)
	b := ComputeSummary(groupB)

	require.True(t, combined.TotalValue.Equal(a.TotalValue.Add(b.TotalValue)), "total value was %s", combined.TotalValue)
	require.True(t, combined.TotalCost.Equal(a.TotalCost.Add(b.TotalCost)), "total cost was %s", combined.TotalCost)
	require.True(t, combined.TotalGain.Equal(a.TotalGain.Add(b.TotalGain)), "total gain was %s", combined.TotalGain)
	require.True(t, combined.DayGain.Equal(a.DayGain.Add(b.DayGain)), "day gain was %s", combined.DayGain)
}

func TestComputeSummary_ZeroCostBasis(t *testing.T) {
	summary := ComputeSummary([]domain.Asset{
		asset("FREE", model.AssetType_Other, 10, 5, 5, 0),
	})

	require.True(t, summary.TotalGain.Equal(decimal.NewFromInt(50)))
	require.True(t, summary.TotalGainPercent.IsZero(), "gain percent must be zero when nothing was invested")
}

func TestComputeSummary_ZeroPreviousValue(t *testing.T) {
	// previous close of zero means yesterday's value was zero; the day
	// gain percent has no denominator and stays zero
	summary := ComputeSummary([]domain.Asset{
		asset("NEW", model.AssetType_Stock, 1, 10, 0, 10),
	})

	require.True(t, summary.DayGain.Equal(decimal.NewFromInt(10)))
	require.True(t, summary.DayGainPercent.IsZero())
}

func TestPerformers(t *testing.T) {
	assets := []domain.Asset{
		asset("FLAT", model.AssetType_Stock, 1, 100, 100, 100), // 0%
		asset("UP", model.AssetType_Stock, 1, 150, 150, 100),   // +50%
		asset("DOWN", model.AssetType_Stock, 1, 80, 80, 100),   // -20%
	}

	top := TopPerformers(assets, 2)
	require.Len(t, top, 2)
	require.Equal(t, "UP", top[0].Symbol)
	require.Equal(t, "FLAT", top[1].Symbol)

	worst := WorstPerformers(assets, 2)
	require.Len(t, worst, 2)
	require.Equal(t, "DOWN", worst[0].Symbol)
	require.Equal(t, "FLAT", worst[1].Symbol)
}

func TestPerformers_LimitClamped(t *testing.T) {
	assets := []domain.Asset{
		asset("A", model.AssetType_Stock, 1, 110, 110, 100),
	}

	require.Len(t, TopPerformers(assets, 10), 1)
	require.Empty(t, TopPerformers(assets, 0))
	require.Empty(t, TopPerformers(assets, -1))
}

func TestPerformers_TopAndWorstMirror(t *testing.T) {
	// with a limit covering every asset, worst is top read backwards
	assets := []domain.Asset{
		asset("FLAT", model.AssetType_Stock, 1, 100, 100, 100),
		asset("UP", model.AssetType_Stock, 1, 150, 150, 100),
		asset("DOWN", model.AssetType_Stock, 1, 80, 80, 100),
	}

	top := TopPerformers(assets, 10)
	worst := WorstPerformers(assets, 10)
	require.Len(t, top, len(assets))
	require.Len(t, worst, len(assets))
	for i := range top {
		require.Equal(t, top[i].Symbol, worst[len(worst)-1-i].Symbol)
	}
}

func TestPerformers_TiesBreakBySymbol(t *testing.T) {
	assets := []domain.Asset{
		asset("ZZZ", model.AssetType_Stock, 1, 110, 110, 100),
		asset("AAA", model.AssetType_Stock, 1, 110, 110, 100),
	}

	top := TopPerformers(assets, 2)
	require.Equal(t, "AAA", top[0].Symbol)
	require.Equal(t, "ZZZ", top[1].Symbol)
}

func TestAllocations(t *testing.T) {
	allocations := Allocations([]domain.Asset{
		asset("AAPL", model.AssetType_Stock, 1, 300, 300, 300),
		asset("MSFT", model.AssetType_Stock, 1, 100, 100, 100),
		asset("BTC", model.AssetType_Crypto, 2, 300, 300, 300),
	})

	require.Len(t, allocations, 2)
	require.True(t, allocations["Stock"].Value.Equal(decimal.NewFromInt(400)))
	require.True(t, allocations["Stock"].Percentage.Equal(decimal.NewFromInt(40)), "stock percentage was %s", allocations["Stock"].Percentage)
	require.True(t, allocations["Crypto"].Value.Equal(decimal.NewFromInt(600)))
	require.True(t, allocations["Crypto"].Percentage.Equal(decimal.NewFromInt(60)), "crypto percentage was %s", allocations["Crypto"].Percentage)

	total := decimal.Zero
	for _, a := range allocations {
		total = total.Add(a.Percentage)
	}
	require.True(t, total.Equal(decimal.NewFromInt(100)), "percentages summed to %s", total)
}

func TestAllocations_ZeroValuePortfolio(t *testing.T) {
	allocations := Allocations([]domain.Asset{
		asset("DUST", model.AssetType_Other, 0, 100, 100, 100),
	})

	require.True(t, allocations["Other"].Value.IsZero())
	require.True(t, allocations["Other"].Percentage.IsZero())
}

func TestEstimateRealizedGain(t *testing.T) {
	history := []domain.Transaction{
		buy(10, 100, day(1)),
		sell(5, 200, day(2)),
		sell(1, 100, day(3)),
	}

	// 15% of each sell's proceeds: 0.15 * (1000 + 100)
	realized := EstimateRealizedGain(history)
	require.True(t, realized.Equal(decimal.NewFromInt(165)), "realized gain was %s", realized)
}

func TestEstimateRealizedGain_NoSells(t *testing.T) {
	require.True(t, EstimateRealizedGain([]domain.Transaction{buy(10, 100, day(1))}).IsZero())
	require.True(t, EstimateRealizedGain(nil).IsZero())
}
