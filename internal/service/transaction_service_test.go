package service

import (
	"context"
	"database/sql"
	"io"
	"testing"
	"time"

	"folio/internal/db/models/postgres/public/model"
	"folio/internal/domain"
	"folio/internal/repository"

	folio_errors "folio/internal"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestAddTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	assetRepository := repository.NewMockAssetRepository(ctrl)
	transactionRepository := repository.NewMockTransactionRepository(ctrl)
	svc := NewTransactionService(assetRepository, transactionRepository, testLogger())

	assetID := uuid.New()
	userID := uuid.New()
	in := domain.Transaction{
		UserID:       userID,
		AssetID:      assetID,
		Type:         model.TransactionType_Buy,
		Quantity:     decimal.NewFromInt(10),
		PricePerUnit: decimal.NewFromInt(100),
		Date:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	transactionRepository.EXPECT().
		Add(gomock.Any(), gomock.Any()).
		DoAndReturn(func(tx *sql.Tx, added domain.Transaction) (*domain.Transaction, error) {
			require.NotEqual(t, uuid.Nil, added.TransactionID, "service must assign an id")
			require.False(t, added.CreatedAt.IsZero(), "service must stamp creation time")
			return added.Ptr(), nil
		})
	assetRepository.EXPECT().
		Get(gomock.Any(), assetID).
		Return(domain.Asset{AssetID: assetID, Symbol: "AAPL"}.Ptr(), nil)
	transactionRepository.EXPECT().
		ListForAsset(gomock.Any(), assetID).
		Return([]domain.Transaction{in}, nil)

	var persisted domain.Position
	assetRepository.EXPECT().
		UpdatePosition(gomock.Any(), assetID, gomock.Any()).
		DoAndReturn(func(tx *sql.Tx, id uuid.UUID, position domain.Position) error {
			persisted = position
			return nil
		})

	inserted, position, err := svc.AddTransaction(context.Background(), nil, in)
	require.NoError(t, err)
	require.NotNil(t, inserted)
	require.NotNil(t, position)

	require.True(t, persisted.Quantity.Equal(decimal.NewFromInt(10)), "quantity was %s", persisted.Quantity)
	require.True(t, persisted.AverageCost.Equal(decimal.NewFromInt(100)), "average cost was %s", persisted.AverageCost)
}

func TestAddTransaction_Invalid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no repository expectations: an invalid transaction must be
	// rejected before anything is written
	assetRepository := repository.NewMockAssetRepository(ctrl)
	transactionRepository := repository.NewMockTransactionRepository(ctrl)
	svc := NewTransactionService(assetRepository, transactionRepository, testLogger())

	base := domain.Transaction{
		AssetID:      uuid.New(),
		Type:         model.TransactionType_Buy,
		Quantity:     decimal.NewFromInt(1),
		PricePerUnit: decimal.NewFromInt(1),
		Date:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	noAsset := base
	noAsset.AssetID = uuid.Nil
	badType := base
	badType.Type = model.TransactionType("transfer")
	zeroQuantity := base
	zeroQuantity.Quantity = decimal.Zero
	negativePrice := base
	negativePrice.PricePerUnit = decimal.NewFromInt(-1)
	noDate := base
	noDate.Date = time.Time{}

	for _, in := range []domain.Transaction{noAsset, badType, zeroQuantity, negativePrice, noDate} {
		_, _, err := svc.AddTransaction(context.Background(), nil, in)
		require.ErrorAs(t, err, &folio_errors.ErrInvalidTransaction{})
	}
}

func TestDeleteTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	assetRepository := repository.NewMockAssetRepository(ctrl)
	transactionRepository := repository.NewMockTransactionRepository(ctrl)
	svc := NewTransactionService(assetRepository, transactionRepository, testLogger())

	assetID := uuid.New()
	transactionID := uuid.New()
	existing := domain.Transaction{
		TransactionID: transactionID,
		AssetID:       assetID,
		Type:          model.TransactionType_Buy,
		Quantity:      decimal.NewFromInt(5),
		PricePerUnit:  decimal.NewFromInt(20),
		Date:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	transactionRepository.EXPECT().
		Get(gomock.Any(), transactionID).
		Return(existing.Ptr(), nil)
	transactionRepository.EXPECT().
		Delete(gomock.Any(), transactionID).
		Return(nil)
	assetRepository.EXPECT().
		Get(gomock.Any(), assetID).
		Return(domain.Asset{AssetID: assetID, Symbol: "AAPL"}.Ptr(), nil)
	transactionRepository.EXPECT().
		ListForAsset(gomock.Any(), assetID).
		Return([]domain.Transaction{}, nil)
	assetRepository.EXPECT().
		UpdatePosition(gomock.Any(), assetID, gomock.Any()).
		Return(nil)

	position, err := svc.DeleteTransaction(context.Background(), nil, transactionID)
	require.NoError(t, err)
	require.True(t, position.Quantity.IsZero())
}

func TestRecalculateAsset_OversoldHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	assetRepository := repository.NewMockAssetRepository(ctrl)
	transactionRepository := repository.NewMockTransactionRepository(ctrl)
	svc := NewTransactionService(assetRepository, transactionRepository, testLogger())

	assetID := uuid.New()
	assetRepository.EXPECT().
		Get(gomock.Any(), assetID).
		Return(domain.Asset{
			AssetID:     assetID,
			Symbol:      "DOGE",
			Quantity:    decimal.NewFromInt(2),
			AverageCost: decimal.NewFromInt(42),
		}.Ptr(), nil)
	transactionRepository.EXPECT().
		ListForAsset(gomock.Any(), assetID).
		Return([]domain.Transaction{{
			AssetID:      assetID,
			Type:         model.TransactionType_Sell,
			Quantity:     decimal.NewFromInt(10),
			PricePerUnit: decimal.NewFromInt(1),
			Date:         time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		}}, nil)

	var persisted domain.Position
	assetRepository.EXPECT().
		UpdatePosition(gomock.Any(), assetID, gomock.Any()).
		DoAndReturn(func(tx *sql.Tx, id uuid.UUID, position domain.Position) error {
			persisted = position
			return nil
		})

	position, err := svc.RecalculateAsset(context.Background(), nil, assetID)
	require.NoError(t, err)
	require.True(t, position.Quantity.IsZero())
	require.True(t, persisted.AverageCost.Equal(decimal.NewFromInt(42)), "prior average must survive an emptied position")
}

func TestUpdateTransaction_PreservesImmutableFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	assetRepository := repository.NewMockAssetRepository(ctrl)
	transactionRepository := repository.NewMockTransactionRepository(ctrl)
	svc := NewTransactionService(assetRepository, transactionRepository, testLogger())

	assetID := uuid.New()
	userID := uuid.New()
	transactionID := uuid.New()
	createdAt := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

	existing := domain.Transaction{
		TransactionID: transactionID,
		UserID:        userID,
		AssetID:       assetID,
		Type:          model.TransactionType_Buy,
		Quantity:      decimal.NewFromInt(5),
		PricePerUnit:  decimal.NewFromInt(20),
		Date:          time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:     createdAt,
	}

	// the caller tries to move the transaction onto another asset
	in := existing
	in.UserID = uuid.New()
	in.AssetID = uuid.New()
	in.Quantity = decimal.NewFromInt(7)

	transactionRepository.EXPECT().
		Get(gomock.Any(), transactionID).
		Return(existing.Ptr(), nil)
	transactionRepository.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(tx *sql.Tx, updated domain.Transaction) (*domain.Transaction, error) {
			require.Equal(t, userID, updated.UserID)
			require.Equal(t, assetID, updated.AssetID)
			require.Equal(t, createdAt, updated.CreatedAt)
			require.True(t, updated.Quantity.Equal(decimal.NewFromInt(7)))
			return updated.Ptr(), nil
		})
	assetRepository.EXPECT().
		Get(gomock.Any(), assetID).
		Return(domain.Asset{AssetID: assetID, Symbol: "AAPL"}.Ptr(), nil)
	transactionRepository.EXPECT().
		ListForAsset(gomock.Any(), assetID).
		Return([]domain.Transaction{}, nil)
	assetRepository.EXPECT().
		UpdatePosition(gomock.Any(), assetID, gomock.Any()).
		Return(nil)

	_, _, err := svc.UpdateTransaction(context.Background(), nil, in)
	require.NoError(t, err)
}
