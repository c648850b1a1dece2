package resolver

import (
	"context"
	"fmt"

	api_types "folio/api-types"
	"folio/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (r resolverHandler) CreateAsset(req api_types.CreateAssetRequest) (*api_types.CreateAssetResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	tx, err := r.Db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	in := domain.Asset{
		UserID:        userID,
		Symbol:        req.Symbol,
		Name:          req.Name,
		Type:          domain.ParseAssetType(req.AssetType),
		CurrentPrice:  decimal.NewFromFloat(req.CurrentPrice),
		PreviousClose: decimal.NewFromFloat(req.PreviousClose),
		Quantity:      decimal.NewFromFloat(req.Quantity),
		AverageCost:   decimal.NewFromFloat(req.AverageCost),
	}

	var initialPurchase *domain.Transaction
	if req.InitialPurchase != nil {
		initialPurchase = newTransactionToDomain(*req.InitialPurchase).Ptr()
	}

	created, err := r.AssetService.CreateAsset(context.Background(), tx, in, initialPurchase)
	if err != nil {
		return nil, err
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	return &api_types.CreateAssetResponse{Asset: assetToApi(*created)}, nil
}

func (r resolverHandler) GetAsset(assetID uuid.UUID) (*api_types.Asset, error) {
	tx, err := r.Db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	asset, err := r.AssetService.GetAsset(context.Background(), tx, assetID)
	if err != nil {
		return nil, err
	}

	out := assetToApi(*asset)
	return &out, nil
}

func (r resolverHandler) ListAssets(userID uuid.UUID) (*api_types.ListAssetsResponse, error) {
	tx, err := r.Db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	assets, err := r.AssetService.ListAssets(context.Background(), tx, userID)
	if err != nil {
		return nil, err
	}

	return &api_types.ListAssetsResponse{Assets: assetsToApi(assets)}, nil
}

func (r resolverHandler) UpdatePrices(assetID uuid.UUID, req api_types.UpdatePricesRequest) error {
	tx, err := r.Db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = r.AssetService.UpdatePrices(
		context.Background(),
		tx,
		assetID,
		decimal.NewFromFloat(req.CurrentPrice),
		decimal.NewFromFloat(req.PreviousClose),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r resolverHandler) DeleteAsset(assetID uuid.UUID) error {
	tx, err := r.Db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = r.AssetService.DeleteAsset(context.Background(), tx, assetID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r resolverHandler) RecalculateAsset(assetID uuid.UUID) (*api_types.RecalculateAssetResponse, error) {
	tx, err := r.Db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	position, err := r.TransactionService.RecalculateAsset(context.Background(), tx, assetID)
	if err != nil {
		return nil, err
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	return &api_types.RecalculateAssetResponse{Position: positionToApi(*position)}, nil
}
