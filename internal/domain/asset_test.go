package domain

import (
	"testing"

	"folio/internal/db/models/postgres/public/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParseAssetType(t *testing.T) {
	require.Equal(t, model.AssetType_Stock, ParseAssetType("stock"))
	require.Equal(t, model.AssetType_Stock, ParseAssetType("  Stock "))
	require.Equal(t, model.AssetType_Crypto, ParseAssetType("CRYPTO"))
	require.Equal(t, model.AssetType_Etf, ParseAssetType("etf"))
	require.Equal(t, model.AssetType_Other, ParseAssetType("bond"))
	require.Equal(t, model.AssetType_Other, ParseAssetType(""))
}

func TestAssetTypeDisplay(t *testing.T) {
	require.Equal(t, "Stock", AssetTypeDisplay(model.AssetType_Stock))
	require.Equal(t, "Crypto", AssetTypeDisplay(model.AssetType_Crypto))
	require.Equal(t, "ETF", AssetTypeDisplay(model.AssetType_Etf))
	require.Equal(t, "Other", AssetTypeDisplay(model.AssetType_Other))
}

func TestAssetDerivedMetrics(t *testing.T) {
	a := Asset{
		Quantity:      decimal.NewFromInt(2),
		CurrentPrice:  decimal.NewFromInt(110),
		PreviousClose: decimal.NewFromInt(100),
		AverageCost:   decimal.NewFromInt(100),
	}

	require.True(t, a.CurrentValue().Equal(decimal.NewFromInt(220)))
	require.True(t, a.CostBasis().Equal(decimal.NewFromInt(200)))
	require.True(t, a.UnrealizedGain().Equal(decimal.NewFromInt(20)))
	require.True(t, a.UnrealizedGainPercent().Equal(decimal.NewFromInt(10)), "gain percent was %s", a.UnrealizedGainPercent())
	require.True(t, a.DayChange().Equal(decimal.NewFromInt(10)))
	require.True(t, a.DayChangePercent().Equal(decimal.NewFromInt(10)), "day change percent was %s", a.DayChangePercent())
}

func TestAssetZeroDenominators(t *testing.T) {
	a := Asset{
		Quantity:     decimal.NewFromInt(5),
		CurrentPrice: decimal.NewFromInt(10),
	}

	require.True(t, a.UnrealizedGainPercent().IsZero(), "zero cost basis must not divide")
	require.True(t, a.DayChangePercent().IsZero(), "zero previous close must not divide")
}
