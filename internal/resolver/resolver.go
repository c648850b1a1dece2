package resolver

import (
	"database/sql"

	api_types "folio/api-types"
	"folio/internal/domain"
	"folio/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Resolver sits between the HTTP layer and the services: it owns the
// db transaction per request and converts between wire and domain
// representations.
type Resolver interface {
	CreateAsset(req api_types.CreateAssetRequest) (*api_types.CreateAssetResponse, error)
	GetAsset(assetID uuid.UUID) (*api_types.Asset, error)
	ListAssets(userID uuid.UUID) (*api_types.ListAssetsResponse, error)
	UpdatePrices(assetID uuid.UUID, req api_types.UpdatePricesRequest) error
	DeleteAsset(assetID uuid.UUID) error
	RecalculateAsset(assetID uuid.UUID) (*api_types.RecalculateAssetResponse, error)

	AddTransaction(req api_types.AddTransactionRequest) (*api_types.AddTransactionResponse, error)
	UpdateTransaction(transactionID uuid.UUID, req api_types.UpdateTransactionRequest) (*api_types.UpdateTransactionResponse, error)
	DeleteTransaction(transactionID uuid.UUID) (*api_types.DeleteTransactionResponse, error)
	ListTransactions(userID uuid.UUID, assetID *uuid.UUID) (*api_types.ListTransactionsResponse, error)

	GetPortfolioSummary(userID uuid.UUID) (*api_types.PortfolioSummary, error)
	GetAllocations(userID uuid.UUID) (*api_types.GetAllocationsResponse, error)
	GetPerformers(userID uuid.UUID, limit int) (*api_types.GetPerformersResponse, error)
}

type resolverHandler struct {
	Db                 *sql.DB
	AssetService       service.AssetService
	TransactionService service.TransactionService
	PortfolioService   service.PortfolioService
	Logger             *logrus.Logger
}

func NewResolver(
	db *sql.DB,
	assetService service.AssetService,
	transactionService service.TransactionService,
	portfolioService service.PortfolioService,
	logger *logrus.Logger,
) Resolver {
	return resolverHandler{
		Db:                 db,
		AssetService:       assetService,
		TransactionService: transactionService,
		PortfolioService:   portfolioService,
		Logger:             logger,
	}
}

func assetToApi(a domain.Asset) api_types.Asset {
	return api_types.Asset{
		AssetID:       a.AssetID.String(),
		UserID:        a.UserID.String(),
		Symbol:        a.Symbol,
		Name:          a.Name,
		AssetType:     domain.AssetTypeDisplay(a.Type),
		CurrentPrice:  a.CurrentPrice.InexactFloat64(),
		PreviousClose: a.PreviousClose.InexactFloat64(),
		Quantity:      a.Quantity.InexactFloat64(),
		AverageCost:   a.AverageCost.InexactFloat64(),

		CurrentValue:          a.CurrentValue().InexactFloat64(),
		CostBasis:             a.CostBasis().InexactFloat64(),
		UnrealizedGain:        a.UnrealizedGain().InexactFloat64(),
		UnrealizedGainPercent: a.UnrealizedGainPercent().InexactFloat64(),
		DayChange:             a.DayChange().InexactFloat64(),
		DayChangePercent:      a.DayChangePercent().InexactFloat64(),

		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func assetsToApi(in []domain.Asset) []api_types.Asset {
	out := make([]api_types.Asset, len(in))
	for i, a := range in {
		out[i] = assetToApi(a)
	}
	return out
}

func transactionToApi(t domain.Transaction) api_types.Transaction {
	return api_types.Transaction{
		TransactionID: t.TransactionID.String(),
		UserID:        t.UserID.String(),
		AssetID:       t.AssetID.String(),
		Type:          t.Type.String(),
		Quantity:      t.Quantity.InexactFloat64(),
		PricePerUnit:  t.PricePerUnit.InexactFloat64(),
		Date:          t.Date,
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
	}
}

func positionToApi(p domain.Position) api_types.Position {
	return api_types.Position{
		Quantity:    p.Quantity.InexactFloat64(),
		AverageCost: p.AverageCost.InexactFloat64(),
	}
}
