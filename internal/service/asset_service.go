package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"folio/internal/db/models/postgres/public/model"
	"folio/internal/domain"
	"folio/internal/repository"

	folio_errors "folio/internal"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type AssetService interface {
	CreateAsset(ctx context.Context, tx *sql.Tx, in domain.Asset, initialPurchase *domain.Transaction) (*domain.Asset, error)
	GetAsset(ctx context.Context, tx *sql.Tx, assetID uuid.UUID) (*domain.Asset, error)
	ListAssets(ctx context.Context, tx *sql.Tx, userID uuid.UUID) ([]domain.Asset, error)
	UpdatePrices(ctx context.Context, tx *sql.Tx, assetID uuid.UUID, currentPrice, previousClose decimal.Decimal) error
	DeleteAsset(ctx context.Context, tx *sql.Tx, assetID uuid.UUID) error
}

type assetServiceHandler struct {
	AssetRepository    repository.AssetRepository
	TransactionService TransactionService
	Logger             *logrus.Logger
}

func NewAssetService(
	assetRepository repository.AssetRepository,
	transactionService TransactionService,
	logger *logrus.Logger,
) AssetService {
	return assetServiceHandler{
		AssetRepository:    assetRepository,
		TransactionService: transactionService,
		Logger:             logger,
	}
}

// CreateAsset records a new holding. The manual quantity and average
// cost are authoritative only until the asset has transactions; when an
// initial purchase is supplied the position is derived from it
// immediately.
func (h assetServiceHandler) CreateAsset(ctx context.Context, tx *sql.Tx, in domain.Asset, initialPurchase *domain.Transaction) (*domain.Asset, error) {
	if err := validateAsset(in); err != nil {
		return nil, err
	}
	in.Symbol = strings.ToUpper(strings.TrimSpace(in.Symbol))

	existing, err := h.AssetRepository.List(tx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing assets: %w", err)
	}
	for _, a := range existing {
		if strings.EqualFold(a.Symbol, in.Symbol) {
			return nil, folio_errors.ErrDuplicateAsset{Symbol: in.Symbol}
		}
	}

	if in.AssetID == uuid.Nil {
		in.AssetID = uuid.New()
	}
	now := time.Now().UTC()
	in.CreatedAt = now
	in.UpdatedAt = now

	created, err := h.AssetRepository.Add(tx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to add asset: %w", err)
	}

	if initialPurchase != nil {
		purchase := *initialPurchase
		purchase.UserID = created.UserID
		purchase.AssetID = created.AssetID
		purchase.Type = model.TransactionType_Buy
		_, _, err = h.TransactionService.AddTransaction(ctx, tx, purchase)
		if err != nil {
			return nil, fmt.Errorf("failed to record initial purchase: %w", err)
		}
		// re-read so the returned asset reflects the derived position
		created, err = h.AssetRepository.Get(tx, created.AssetID)
		if err != nil {
			return nil, err
		}
	}

	return created, nil
}

func (h assetServiceHandler) GetAsset(ctx context.Context, tx *sql.Tx, assetID uuid.UUID) (*domain.Asset, error) {
	return h.AssetRepository.Get(tx, assetID)
}

func (h assetServiceHandler) ListAssets(ctx context.Context, tx *sql.Tx, userID uuid.UUID) ([]domain.Asset, error) {
	return h.AssetRepository.List(tx, userID)
}

func (h assetServiceHandler) UpdatePrices(ctx context.Context, tx *sql.Tx, assetID uuid.UUID, currentPrice, previousClose decimal.Decimal) error {
	if currentPrice.IsNegative() || previousClose.IsNegative() {
		return errors.New("prices must not be negative")
	}
	return h.AssetRepository.UpdatePrices(tx, assetID, currentPrice, previousClose)
}

// DeleteAsset removes the holding and all of its transactions.
func (h assetServiceHandler) DeleteAsset(ctx context.Context, tx *sql.Tx, assetID uuid.UUID) error {
	err := h.AssetRepository.Delete(tx, assetID)
	if err != nil {
		return err
	}
	h.Logger.WithField("assetID", assetID).Info("deleted asset and its transactions")

	return nil
}

func validateAsset(a domain.Asset) error {
	if a.UserID == uuid.Nil {
		return errors.New("asset has no owner")
	}
	if len(strings.TrimSpace(a.Symbol)) == 0 {
		return errors.New("asset has invalid ticker (empty string)")
	}
	if a.Quantity.IsNegative() {
		return fmt.Errorf("asset quantity must not be negative, received %s", a.Quantity)
	}
	if a.AverageCost.IsNegative() || a.CurrentPrice.IsNegative() || a.PreviousClose.IsNegative() {
		return errors.New("asset prices must not be negative")
	}

	return nil
}
