package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"folio/internal/db/models/postgres/public/model"
	"folio/internal/domain"
	"folio/internal/portfolio"
	"folio/internal/repository"

	folio_errors "folio/internal"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// TransactionService owns the ledger and keeps each asset's derived
// position in sync: every mutation replays the asset's full history and
// writes the resulting quantity and average cost back onto the asset.
// Callers must serialize writes per asset (one tx per mutation);
// recalculation of a stale snapshot would otherwise overwrite a newer
// one.
type TransactionService interface {
	AddTransaction(ctx context.Context, tx *sql.Tx, in domain.Transaction) (*domain.Transaction, *domain.Position, error)
	UpdateTransaction(ctx context.Context, tx *sql.Tx, in domain.Transaction) (*domain.Transaction, *domain.Position, error)
	DeleteTransaction(ctx context.Context, tx *sql.Tx, transactionID uuid.UUID) (*domain.Position, error)
	ListTransactions(ctx context.Context, tx *sql.Tx, userID uuid.UUID, assetID *uuid.UUID) ([]domain.Transaction, error)
	RecalculateAsset(ctx context.Context, tx *sql.Tx, assetID uuid.UUID) (*domain.Position, error)
}

type transactionServiceHandler struct {
	AssetRepository       repository.AssetRepository
	TransactionRepository repository.TransactionRepository
	Logger                *logrus.Logger
}

func NewTransactionService(
	assetRepository repository.AssetRepository,
	transactionRepository repository.TransactionRepository,
	logger *logrus.Logger,
) TransactionService {
	return transactionServiceHandler{
		AssetRepository:       assetRepository,
		TransactionRepository: transactionRepository,
		Logger:                logger,
	}
}

func (h transactionServiceHandler) AddTransaction(ctx context.Context, tx *sql.Tx, in domain.Transaction) (*domain.Transaction, *domain.Position, error) {
	if err := validateTransaction(in); err != nil {
		return nil, nil, err
	}
	if in.TransactionID == uuid.Nil {
		in.TransactionID = uuid.New()
	}
	in.CreatedAt = time.Now().UTC()

	inserted, err := h.TransactionRepository.Add(tx, in)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to add transaction: %w", err)
	}

	position, err := h.recalculate(tx, inserted.AssetID)
	if err != nil {
		return nil, nil, err
	}

	return inserted, position, nil
}

func (h transactionServiceHandler) UpdateTransaction(ctx context.Context, tx *sql.Tx, in domain.Transaction) (*domain.Transaction, *domain.Position, error) {
	existing, err := h.TransactionRepository.Get(tx, in.TransactionID)
	if err != nil {
		return nil, nil, err
	}
	// ownership and record-creation time are immutable
	in.UserID = existing.UserID
	in.AssetID = existing.AssetID
	in.CreatedAt = existing.CreatedAt

	if err := validateTransaction(in); err != nil {
		return nil, nil, err
	}

	updated, err := h.TransactionRepository.Update(tx, in)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	position, err := h.recalculate(tx, updated.AssetID)
	if err != nil {
		return nil, nil, err
	}

	return updated, position, nil
}

func (h transactionServiceHandler) DeleteTransaction(ctx context.Context, tx *sql.Tx, transactionID uuid.UUID) (*domain.Position, error) {
	existing, err := h.TransactionRepository.Get(tx, transactionID)
	if err != nil {
		return nil, err
	}

	err = h.TransactionRepository.Delete(tx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete transaction: %w", err)
	}

	return h.recalculate(tx, existing.AssetID)
}

func (h transactionServiceHandler) ListTransactions(ctx context.Context, tx *sql.Tx, userID uuid.UUID, assetID *uuid.UUID) ([]domain.Transaction, error) {
	return h.TransactionRepository.List(tx, userID, assetID)
}

func (h transactionServiceHandler) RecalculateAsset(ctx context.Context, tx *sql.Tx, assetID uuid.UUID) (*domain.Position, error) {
	return h.recalculate(tx, assetID)
}

// recalculate replays the asset's full transaction history and persists
// the derived position. The asset's stored average cost is handed to the
// replay as the prior state so an emptied position keeps its last
// meaningful average.
func (h transactionServiceHandler) recalculate(tx *sql.Tx, assetID uuid.UUID) (*domain.Position, error) {
	asset, err := h.AssetRepository.Get(tx, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load asset %s for recalculation: %w", assetID, err)
	}

	transactions, err := h.TransactionRepository.ListForAsset(tx, assetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for asset %s: %w", assetID, err)
	}

	prior := domain.Position{
		Quantity:    asset.Quantity,
		AverageCost: asset.AverageCost,
	}
	position, oversold := portfolio.Replay(transactions, prior)
	if oversold {
		h.Logger.WithFields(logrus.Fields{
			"assetID": assetID,
			"symbol":  asset.Symbol,
		}).Warn("transaction history sells more than was held; position clamped to zero")
	}

	err = h.AssetRepository.UpdatePosition(tx, assetID, position)
	if err != nil {
		return nil, fmt.Errorf("failed to persist position for asset %s: %w", assetID, err)
	}

	return &position, nil
}

func validateTransaction(t domain.Transaction) error {
	if t.AssetID == uuid.Nil {
		return folio_errors.ErrInvalidTransaction{Reason: "transaction has no asset"}
	}
	if t.Type != model.TransactionType_Buy && t.Type != model.TransactionType_Sell {
		return folio_errors.ErrInvalidTransaction{Reason: fmt.Sprintf("unknown transaction type %q", t.Type)}
	}
	if t.Quantity.LessThanOrEqual(decimal.Zero) {
		return folio_errors.ErrInvalidTransaction{Reason: fmt.Sprintf("quantity must be higher than 0, received %s", t.Quantity)}
	}
	if t.PricePerUnit.LessThanOrEqual(decimal.Zero) {
		return folio_errors.ErrInvalidTransaction{Reason: fmt.Sprintf("price per unit must be higher than 0, received %s", t.PricePerUnit)}
	}
	if t.Date.IsZero() {
		return folio_errors.ErrInvalidTransaction{Reason: "transaction has no date"}
	}

	return nil
}
