// Command summary prints a user's portfolio summary and allocations to
// stdout.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"sort"

	"folio/internal/config"
	"folio/internal/db"
	"folio/internal/repository"
	"folio/internal/service"
	"folio/internal/util"

	"github.com/google/uuid"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	userIDFlag := flag.String("user", "", "user id to summarize")
	flag.Parse()

	cfg := config.Load()
	logger := util.NewLogger(cfg.LogLevel)

	userID, err := uuid.Parse(*userIDFlag)
	if err != nil {
		logger.Fatalf("invalid -user flag: %v", err)
	}

	dbConn, assetRepository, transactionRepository, err := openStorage(cfg)
	if err != nil {
		logger.Fatal(err)
	}
	defer dbConn.Close()

	portfolioService := service.NewPortfolioService(assetRepository, transactionRepository)

	tx, err := dbConn.Begin()
	if err != nil {
		logger.Fatal(err)
	}
	defer tx.Rollback()

	ctx := context.Background()

	summary, err := portfolioService.GetSummary(ctx, tx, userID)
	if err != nil {
		logger.Fatal(err)
	}
	allocations, err := portfolioService.GetAllocations(ctx, tx, userID)
	if err != nil {
		logger.Fatal(err)
	}

	fmt.Printf("total value:    %s\n", summary.TotalValue.StringFixed(2))
	fmt.Printf("total invested: %s\n", summary.TotalCost.StringFixed(2))
	fmt.Printf("total gain:     %s (%s%%)\n", summary.TotalGain.StringFixed(2), summary.TotalGainPercent.StringFixed(2))
	fmt.Printf("day gain:       %s (%s%%)\n", summary.DayGain.StringFixed(2), summary.DayGainPercent.StringFixed(2))
	fmt.Printf("realized gain:  %s (estimated)\n", summary.RealizedGain.StringFixed(2))

	assetTypes := make([]string, 0, len(allocations))
	for assetType := range allocations {
		assetTypes = append(assetTypes, assetType)
	}
	sort.Strings(assetTypes)

	fmt.Println("\nallocations:")
	for _, assetType := range assetTypes {
		a := allocations[assetType]
		fmt.Printf("  %-8s %12s  %6s%%\n", assetType, a.Value.StringFixed(2), a.Percentage.StringFixed(2))
	}
}

func openStorage(cfg *config.AppConfig) (*sql.DB, repository.AssetRepository, repository.TransactionRepository, error) {
	switch cfg.DBDriver {
	case "postgres":
		dbConn, err := db.New(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open postgres: %w", err)
		}
		return dbConn, repository.NewAssetRepository(), repository.NewTransactionRepository(), nil
	case "sqlite":
		dbConn, err := db.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		return dbConn, repository.NewSQLiteAssetRepository(), repository.NewSQLiteTransactionRepository(), nil
	}
	return nil, nil, nil, fmt.Errorf("unknown db driver %q", cfg.DBDriver)
}
