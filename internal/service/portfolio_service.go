package service

import (
	"context"
	"database/sql"
	"fmt"

	"folio/internal/domain"
	"folio/internal/portfolio"
	"folio/internal/repository"

	"github.com/google/uuid"
)

// PortfolioService hands storage snapshots to the pure calculator.
// Derived metrics are computed per request and never persisted.
type PortfolioService interface {
	GetSummary(ctx context.Context, tx *sql.Tx, userID uuid.UUID) (*domain.Summary, error)
	GetAllocations(ctx context.Context, tx *sql.Tx, userID uuid.UUID) (map[string]domain.Allocation, error)
	GetPerformers(ctx context.Context, tx *sql.Tx, userID uuid.UUID, limit int) (top, worst []domain.Asset, err error)
}

type portfolioServiceHandler struct {
	AssetRepository       repository.AssetRepository
	TransactionRepository repository.TransactionRepository
}

func NewPortfolioService(
	assetRepository repository.AssetRepository,
	transactionRepository repository.TransactionRepository,
) PortfolioService {
	return portfolioServiceHandler{
		AssetRepository:       assetRepository,
		TransactionRepository: transactionRepository,
	}
}

func (h portfolioServiceHandler) GetSummary(ctx context.Context, tx *sql.Tx, userID uuid.UUID) (*domain.Summary, error) {
	assets, err := h.AssetRepository.List(tx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assets for summary: %w", err)
	}
	transactions, err := h.TransactionRepository.List(tx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions for summary: %w", err)
	}

	summary := portfolio.ComputeSummary(assets)
	summary.RealizedGain = portfolio.EstimateRealizedGain(transactions)

	return &summary, nil
}

func (h portfolioServiceHandler) GetAllocations(ctx context.Context, tx *sql.Tx, userID uuid.UUID) (map[string]domain.Allocation, error) {
	assets, err := h.AssetRepository.List(tx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assets for allocations: %w", err)
	}

	return portfolio.Allocations(assets), nil
}

func (h portfolioServiceHandler) GetPerformers(ctx context.Context, tx *sql.Tx, userID uuid.UUID, limit int) ([]domain.Asset, []domain.Asset, error) {
	assets, err := h.AssetRepository.List(tx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load assets for performers: %w", err)
	}

	return portfolio.TopPerformers(assets, limit), portfolio.WorstPerformers(assets, limit), nil
}
