package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"folio/internal/db/models/postgres/public/model"
	. "folio/internal/db/models/postgres/public/table"
	"folio/internal/domain"

	folio_errors "folio/internal"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AssetRepository interface {
	Add(tx *sql.Tx, asset domain.Asset) (*domain.Asset, error)
	Get(tx *sql.Tx, assetID uuid.UUID) (*domain.Asset, error)
	List(tx *sql.Tx, userID uuid.UUID) ([]domain.Asset, error)
	ListAll(tx *sql.Tx) ([]domain.Asset, error)
	UpdatePosition(tx *sql.Tx, assetID uuid.UUID, position domain.Position) error
	UpdatePrices(tx *sql.Tx, assetID uuid.UUID, currentPrice, previousClose decimal.Decimal) error
	Delete(tx *sql.Tx, assetID uuid.UUID) error
}

type assetRepositoryHandler struct {
}

func NewAssetRepository() AssetRepository {
	return assetRepositoryHandler{}
}

func (h assetRepositoryHandler) Add(tx *sql.Tx, asset domain.Asset) (*domain.Asset, error) {
	stmt := Asset.INSERT(Asset.AllColumns).
		MODEL(assetToDb(asset)).
		RETURNING(Asset.AllColumns)

	result := model.Asset{}
	err := stmt.Query(tx, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to insert asset: %w", err)
	}

	return assetFromDb(result).Ptr(), nil
}

func (h assetRepositoryHandler) Get(tx *sql.Tx, assetID uuid.UUID) (*domain.Asset, error) {
	stmt := Asset.SELECT(Asset.AllColumns).
		WHERE(Asset.AssetID.EQ(postgres.UUID(assetID)))

	result := model.Asset{}
	err := stmt.Query(tx, &result)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, folio_errors.ErrNotFound{Entity: "asset", ID: assetID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset %s: %w", assetID, err)
	}

	return assetFromDb(result).Ptr(), nil
}

func (h assetRepositoryHandler) List(tx *sql.Tx, userID uuid.UUID) ([]domain.Asset, error) {
	stmt := Asset.SELECT(Asset.AllColumns).
		WHERE(Asset.UserID.EQ(postgres.UUID(userID))).
		ORDER_BY(Asset.Symbol.ASC())

	result := []model.Asset{}
	err := stmt.Query(tx, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets for user %s: %w", userID, err)
	}

	return assetsFromDb(result), nil
}

func (h assetRepositoryHandler) ListAll(tx *sql.Tx) ([]domain.Asset, error) {
	stmt := Asset.SELECT(Asset.AllColumns).
		ORDER_BY(Asset.Symbol.ASC())

	result := []model.Asset{}
	err := stmt.Query(tx, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	return assetsFromDb(result), nil
}

func (h assetRepositoryHandler) UpdatePosition(tx *sql.Tx, assetID uuid.UUID, position domain.Position) error {
	m := model.Asset{
		Quantity:    position.Quantity,
		AverageCost: position.AverageCost,
		UpdatedAt:   time.Now().UTC(),
	}
	stmt := Asset.UPDATE(Asset.Quantity, Asset.AverageCost, Asset.UpdatedAt).
		MODEL(m).
		WHERE(Asset.AssetID.EQ(postgres.UUID(assetID)))

	_, err := stmt.Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to update position for asset %s: %w", assetID, err)
	}

	return nil
}

func (h assetRepositoryHandler) UpdatePrices(tx *sql.Tx, assetID uuid.UUID, currentPrice, previousClose decimal.Decimal) error {
	m := model.Asset{
		CurrentPrice:  currentPrice,
		PreviousClose: previousClose,
		UpdatedAt:     time.Now().UTC(),
	}
	stmt := Asset.UPDATE(Asset.CurrentPrice, Asset.PreviousClose, Asset.UpdatedAt).
		MODEL(m).
		WHERE(Asset.AssetID.EQ(postgres.UUID(assetID)))

	_, err := stmt.Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to update prices for asset %s: %w", assetID, err)
	}

	return nil
}

// Delete removes the asset and cascades to its transactions. The
// cascade is explicit rather than left to the schema so both storage
// backends behave identically.
func (h assetRepositoryHandler) Delete(tx *sql.Tx, assetID uuid.UUID) error {
	_, err := Transaction.DELETE().
		WHERE(Transaction.AssetID.EQ(postgres.UUID(assetID))).
		Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to delete transactions for asset %s: %w", assetID, err)
	}

	_, err = Asset.DELETE().
		WHERE(Asset.AssetID.EQ(postgres.UUID(assetID))).
		Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to delete asset %s: %w", assetID, err)
	}

	return nil
}

func assetToDb(a domain.Asset) model.Asset {
	return model.Asset{
		AssetID:       a.AssetID,
		UserID:        a.UserID,
		Symbol:        a.Symbol,
		Name:          a.Name,
		AssetType:     a.Type,
		CurrentPrice:  a.CurrentPrice,
		PreviousClose: a.PreviousClose,
		Quantity:      a.Quantity,
		AverageCost:   a.AverageCost,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func assetFromDb(a model.Asset) domain.Asset {
	return domain.Asset{
		AssetID:       a.AssetID,
		UserID:        a.UserID,
		Symbol:        a.Symbol,
		Name:          a.Name,
		Type:          a.AssetType,
		CurrentPrice:  a.CurrentPrice,
		PreviousClose: a.PreviousClose,
		Quantity:      a.Quantity,
		AverageCost:   a.AverageCost,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func assetsFromDb(assets []model.Asset) []domain.Asset {
	out := make([]domain.Asset, len(assets))
	for i, a := range assets {
		out[i] = assetFromDb(a)
	}
	return out
}
