package domain

import (
	"folio/internal/db/models/postgres/public/model"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Asset is a single holding in a user's portfolio. Quantity and
// AverageCost are derived from transaction history once the asset has
// any transactions; until then they hold the user's manual entry.
type Asset struct {
	AssetID       uuid.UUID
	UserID        uuid.UUID
	Symbol        string
	Name          string
	Type          model.AssetType
	CurrentPrice  decimal.Decimal
	PreviousClose decimal.Decimal
	Quantity      decimal.Decimal
	AverageCost   decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (a Asset) Ptr() *Asset { return &a }

func (a Asset) CurrentValue() decimal.Decimal {
	return a.Quantity.Mul(a.CurrentPrice)
}

func (a Asset) CostBasis() decimal.Decimal {
	return a.Quantity.Mul(a.AverageCost)
}

func (a Asset) UnrealizedGain() decimal.Decimal {
	return a.CurrentValue().Sub(a.CostBasis())
}

// UnrealizedGainPercent is on percent scale (12.34 means 12.34%).
// Returns zero when the cost basis is zero.
func (a Asset) UnrealizedGainPercent() decimal.Decimal {
	basis := a.CostBasis()
	if basis.IsZero() {
		return decimal.Zero
	}
	return a.UnrealizedGain().Div(basis).Mul(hundred)
}

func (a Asset) DayChange() decimal.Decimal {
	return a.CurrentPrice.Sub(a.PreviousClose)
}

// DayChangePercent is on percent scale. Returns zero when there is no
// previous close to compare against.
func (a Asset) DayChangePercent() decimal.Decimal {
	if a.PreviousClose.IsZero() {
		return decimal.Zero
	}
	return a.DayChange().Div(a.PreviousClose).Mul(hundred)
}

// ParseAssetType maps free-form user input onto the closed asset type
// enum. Unknown values land in the Other bucket rather than erroring.
func ParseAssetType(s string) model.AssetType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "stock":
		return model.AssetType_Stock
	case "crypto":
		return model.AssetType_Crypto
	case "etf":
		return model.AssetType_Etf
	default:
		return model.AssetType_Other
	}
}

// AssetTypeDisplay is the capitalized label used for grouping and display.
func AssetTypeDisplay(t model.AssetType) string {
	switch t {
	case model.AssetType_Stock:
		return "Stock"
	case model.AssetType_Crypto:
		return "Crypto"
	case model.AssetType_Etf:
		return "ETF"
	default:
		return "Other"
	}
}
