package main

import (
	"database/sql"
	"fmt"

	"folio/api"
	"folio/internal/config"
	"folio/internal/db"
	"folio/internal/repository"
	"folio/internal/resolver"
	"folio/internal/service"
	"folio/internal/util"

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
	assetService := service.NewAssetService(assetRepository, transactionService, logger)
	portfolioService := service.NewPortfolioService(assetRepository, transactionRepository)

	r := resolver.NewResolver(dbConn, assetService, transactionService, portfolioService, logger)

	err = api.StartApi(cfg.Port, logger, r)
	if err != nil {
		logger.Fatal(err)
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
