// Command recalc replays transaction history for every stored asset and
// rewrites the derived positions. Run it after restoring a backup or
// editing the ledger by hand.
package main

import (
	"context"
	"database/sql"
	"fmt"

	"folio/internal/config"
	"folio/internal/db"
	"folio/internal/repository"
	"folio/internal/service"
	"folio/internal/util"

	"github.com/sirupsen/logrus"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	cfg := config.Load()
	logger := util.NewLogger(cfg.LogLevel)

	dbConn, assetRepository, transactionRepository, err := openStorage(cfg)
	if err != nil {
		logger.Fatal(err)
	}
	defer dbConn.Close()

	transactionService := service.NewTransactionService(assetRepository, transactionRepository, logger)

	tx, err := dbConn.Begin()
	if err != nil {
		logger.Fatal(err)
	}
	defer tx.Rollback()

	assets, err := assetRepository.ListAll(tx)
	if err != nil {
		logger.Fatal(err)
	}

	ctx := context.Background()
	for _, asset := range assets {
		position, err := transactionService.RecalculateAsset(ctx, tx, asset.AssetID)
		if err != nil {
			logger.Fatal(err)
		}
		logger.WithFields(logrus.Fields{
			"symbol":      asset.Symbol,
			"quantity":    position.Quantity.String(),
			"averageCost": position.AverageCost.String(),
		}).Info("recalculated position")
	}

	err = tx.Commit()
	if err != nil {
		logger.Fatal(err)
	}
	logger.WithField("assets", len(assets)).Info("recalculation complete")
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
