package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"folio/internal/db/models/postgres/public/model"
	"folio/internal/domain"
	"folio/internal/repository"

	folio_errors "folio/internal"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newAssetServiceWithMocks(t *testing.T) (AssetService, *repository.MockAssetRepository, *repository.MockTransactionRepository) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	assetRepository := repository.NewMockAssetRepository(ctrl)
	transactionRepository := repository.NewMockTransactionRepository(ctrl)
	logger := testLogger()
	transactionService := NewTransactionService(assetRepository, transactionRepository, logger)
	return NewAssetService(assetRepository, transactionService, logger), assetRepository, transactionRepository
}

func TestCreateAsset(t *testing.T) {
	svc, assetRepository, _ := newAssetServiceWithMocks(t)

	userID := uuid.New()
	in := domain.Asset{
		UserID: userID,
		Symbol: "aapl",
		Name:   "Apple",
		Type:   model.AssetType_Stock,
	}

	assetRepository.EXPECT().
		List(gomock.Any(), userID).
		Return([]domain.Asset{}, nil)
	assetRepository.EXPECT().
		Add(gomock.Any(), gomock.Any()).
		DoAndReturn(func(tx *sql.Tx, added domain.Asset) (*domain.Asset, error) {
			require.Equal(t, "AAPL", added.Symbol, "symbols are stored uppercase")
			require.NotEqual(t, uuid.Nil, added.AssetID)
			return added.Ptr(), nil
		})

	created, err := svc.CreateAsset(context.Background(), nil, in, nil)
	require.NoError(t, err)
	require.Equal(t, "AAPL", created.Symbol)
}

func TestCreateAsset_DuplicateSymbol(t *testing.T) {
	svc, assetRepository, _ := newAssetServiceWithMocks(t)

	userID := uuid.New()
	assetRepository.EXPECT().
		List(gomock.Any(), userID).
		Return([]domain.Asset{{UserID: userID, Symbol: "AAPL"}}, nil)

	_, err := svc.CreateAsset(context.Background(), nil, domain.Asset{
		UserID: userID,
		Symbol: "aapl",
		Type:   model.AssetType_Stock,
	}, nil)
	require.ErrorAs(t, err, &folio_errors.ErrDuplicateAsset{})
}

func TestCreateAsset_WithInitialPurchase(t *testing.T) {
	svc, assetRepository, transactionRepository := newAssetServiceWithMocks(t)

	userID := uuid.New()
	in := domain.Asset{
		UserID: userID,
		Symbol: "VTI",
		Type:   model.AssetType_Etf,
	}
	purchase := domain.Transaction{
		// type is forced to buy regardless of what the caller sends
		Type:         model.TransactionType_Sell,
		Quantity:     decimal.NewFromInt(10),
		PricePerUnit: decimal.NewFromInt(200),
		Date:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	var assetID uuid.UUID
	var ledger []domain.Transaction
	assetRepository.EXPECT().
		List(gomock.Any(), userID).
		Return([]domain.Asset{}, nil)
	assetRepository.EXPECT().
		Add(gomock.Any(), gomock.Any()).
		DoAndReturn(func(tx *sql.Tx, added domain.Asset) (*domain.Asset, error) {
			assetID = added.AssetID
			return added.Ptr(), nil
		})
	transactionRepository.EXPECT().
		Add(gomock.Any(), gomock.Any()).
		DoAndReturn(func(tx *sql.Tx, added domain.Transaction) (*domain.Transaction, error) {
			require.Equal(t, model.TransactionType_Buy, added.Type)
			require.Equal(t, assetID, added.AssetID)
			require.Equal(t, userID, added.UserID)
			ledger = append(ledger, added)
			return added.Ptr(), nil
		})

	// position recalculation after the purchase
	assetRepository.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(tx *sql.Tx, id uuid.UUID) (*domain.Asset, error) {
			return domain.Asset{AssetID: id, UserID: userID, Symbol: "VTI"}.Ptr(), nil
		}).
		Times(2) // once for replay, once to re-read the created asset
	transactionRepository.EXPECT().
		ListForAsset(gomock.Any(), gomock.Any()).
		DoAndReturn(func(tx *sql.Tx, id uuid.UUID) ([]domain.Transaction, error) {
			return ledger, nil
		})

	var persisted domain.Position
	assetRepository.EXPECT().
		UpdatePosition(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(tx *sql.Tx, id uuid.UUID, position domain.Position) error {
			persisted = position
			return nil
		})

	_, err := svc.CreateAsset(context.Background(), nil, in, purchase.Ptr())
	require.NoError(t, err)
	require.True(t, persisted.Quantity.Equal(decimal.NewFromInt(10)), "quantity was %s", persisted.Quantity)
	require.True(t, persisted.AverageCost.Equal(decimal.NewFromInt(200)), "average cost was %s", persisted.AverageCost)
}

func TestUpdatePrices_RejectsNegative(t *testing.T) {
	svc, _, _ := newAssetServiceWithMocks(t)

	err := svc.UpdatePrices(context.Background(), nil, uuid.New(), decimal.NewFromInt(-1), decimal.NewFromInt(10))
	require.Error(t, err)
}
