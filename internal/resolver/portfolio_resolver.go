package resolver

import (
	"context"
	"sort"

	api_types "folio/api-types"

	"github.com/google/uuid"
)

func (r resolverHandler) GetPortfolioSummary(userID uuid.UUID) (*api_types.PortfolioSummary, error) {
	tx, err := r.Db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	summary, err := r.PortfolioService.GetSummary(context.Background(), tx, userID)
	if err != nil {
		return nil, err
	}

	return &api_types.PortfolioSummary{
		TotalValue:       summary.TotalValue.InexactFloat64(),
		TotalInvested:    summary.TotalCost.InexactFloat64(),
		TotalGain:        summary.TotalGain.InexactFloat64(),
		TotalGainPercent: summary.TotalGainPercent.InexactFloat64(),
		DayGain:          summary.DayGain.InexactFloat64(),
		DayGainPercent:   summary.DayGainPercent.InexactFloat64(),
		RealizedGain:     summary.RealizedGain.InexactFloat64(),
	}, nil
}

func (r resolverHandler) GetAllocations(userID uuid.UUID) (*api_types.GetAllocationsResponse, error) {
	tx, err := r.Db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	allocations, err := r.PortfolioService.GetAllocations(context.Background(), tx, userID)
	if err != nil {
		return nil, err
	}

	out := []api_types.Allocation{}
	for assetType, a := range allocations {
		out = append(out, api_types.Allocation{
			AssetType:  assetType,
			Value:      a.Value.InexactFloat64(),
			Percentage: a.Percentage.InexactFloat64(),
		})
	}
	// map iteration order is random; sort largest slice first for display
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value == out[j].Value {
			return out[i].AssetType < out[j].AssetType
		}
		return out[i].Value > out[j].Value
	})

	return &api_types.GetAllocationsResponse{Allocations: out}, nil
}

func (r resolverHandler) GetPerformers(userID uuid.UUID, limit int) (*api_types.GetPerformersResponse, error) {
	tx, err := r.Db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	top, worst, err := r.PortfolioService.GetPerformers(context.Background(), tx, userID, limit)
	if err != nil {
		return nil, err
	}

	return &api_types.GetPerformersResponse{
		Top:   assetsToApi(top),
		Worst: assetsToApi(worst),
	}, nil
}
