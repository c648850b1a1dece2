package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"folio/internal/db/models/postgres/public/model"
	"folio/internal/domain"

	folio_errors "folio/internal"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SQLite implementations of the repository interfaces, for the local
// single-file store. Decimal columns are stored as text so values
// round-trip without float conversion.

type sqliteAssetRepositoryHandler struct {
}

func NewSQLiteAssetRepository() AssetRepository {
	return sqliteAssetRepositoryHandler{}
}

const sqliteAssetColumns = `asset_id, user_id, symbol, name, asset_type, current_price, previous_close, quantity, average_cost, created_at, updated_at`

func (h sqliteAssetRepositoryHandler) Add(tx *sql.Tx, asset domain.Asset) (*domain.Asset, error) {
	_, err := tx.Exec(
		`INSERT INTO asset (`+sqliteAssetColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		asset.AssetID.String(),
		asset.UserID.String(),
		asset.Symbol,
		asset.Name,
		asset.Type.String(),
		asset.CurrentPrice.String(),
		asset.PreviousClose.String(),
		asset.Quantity.String(),
		asset.AverageCost.String(),
		asset.CreatedAt,
		asset.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert asset: %w", err)
	}

	return asset.Ptr(), nil
}

func (h sqliteAssetRepositoryHandler) Get(tx *sql.Tx, assetID uuid.UUID) (*domain.Asset, error) {
	row := tx.QueryRow(
		`SELECT `+sqliteAssetColumns+` FROM asset WHERE asset_id = ?`,
		assetID.String(),
	)
	asset, err := scanAsset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, folio_errors.ErrNotFound{Entity: "asset", ID: assetID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset %s: %w", assetID, err)
	}

	return asset, nil
}

func (h sqliteAssetRepositoryHandler) List(tx *sql.Tx, userID uuid.UUID) ([]domain.Asset, error) {
	rows, err := tx.Query(
		`SELECT `+sqliteAssetColumns+` FROM asset WHERE user_id = ? ORDER BY symbol ASC`,
		userID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets for user %s: %w", userID, err)
	}
	defer rows.Close()

	return scanAssets(rows)
}

func (h sqliteAssetRepositoryHandler) ListAll(tx *sql.Tx) ([]domain.Asset, error) {
	rows, err := tx.Query(`SELECT ` + sqliteAssetColumns + ` FROM asset ORDER BY symbol ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	return scanAssets(rows)
}

func (h sqliteAssetRepositoryHandler) UpdatePosition(tx *sql.Tx, assetID uuid.UUID, position domain.Position) error {
	_, err := tx.Exec(
		`UPDATE asset SET quantity = ?, average_cost = ?, updated_at = ? WHERE asset_id = ?`,
		position.Quantity.String(),
		position.AverageCost.String(),
		time.Now().UTC(),
		assetID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update position for asset %s: %w", assetID, err)
	}

	return nil
}

func (h sqliteAssetRepositoryHandler) UpdatePrices(tx *sql.Tx, assetID uuid.UUID, currentPrice, previousClose decimal.Decimal) error {
	_, err := tx.Exec(
		`UPDATE asset SET current_price = ?, previous_close = ?, updated_at = ? WHERE asset_id = ?`,
		currentPrice.String(),
		previousClose.String(),
		time.Now().UTC(),
		assetID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update prices for asset %s: %w", assetID, err)
	}

	return nil
}

func (h sqliteAssetRepositoryHandler) Delete(tx *sql.Tx, assetID uuid.UUID) error {
	_, err := tx.Exec(`DELETE FROM "transaction" WHERE asset_id = ?`, assetID.String())
	if err != nil {
		return fmt.Errorf("failed to delete transactions for asset %s: %w", assetID, err)
	}

	_, err = tx.Exec(`DELETE FROM asset WHERE asset_id = ?`, assetID.String())
	if err != nil {
		return fmt.Errorf("failed to delete asset %s: %w", assetID, err)
	}

	return nil
}

type sqliteTransactionRepositoryHandler struct {
}

func NewSQLiteTransactionRepository() TransactionRepository {
	return sqliteTransactionRepositoryHandler{}
}

const sqliteTransactionColumns = `transaction_id, user_id, asset_id, type, quantity, price_per_unit, date, notes, created_at`

func (h sqliteTransactionRepositoryHandler) Add(tx *sql.Tx, transaction domain.Transaction) (*domain.Transaction, error) {
	var count int
	err := tx.QueryRow(
		`SELECT COUNT(*) FROM "transaction" WHERE asset_id = ? AND type = ? AND quantity = ? AND price_per_unit = ? AND date = ?`,
		transaction.AssetID.String(),
		transaction.Type.String(),
		transaction.Quantity.String(),
		transaction.PricePerUnit.String(),
		transaction.Date,
	).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing transactions: %w", err)
	}
	if count > 0 {
		return nil, folio_errors.ErrDuplicateTransaction{AssetID: transaction.AssetID}
	}

	_, err = tx.Exec(
		`INSERT INTO "transaction" (`+sqliteTransactionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		transaction.TransactionID.String(),
		transaction.UserID.String(),
		transaction.AssetID.String(),
		transaction.Type.String(),
		transaction.Quantity.String(),
		transaction.PricePerUnit.String(),
		transaction.Date,
		transaction.Notes,
		transaction.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	return transaction.Ptr(), nil
}

func (h sqliteTransactionRepositoryHandler) Get(tx *sql.Tx, transactionID uuid.UUID) (*domain.Transaction, error) {
	row := tx.QueryRow(
		`SELECT `+sqliteTransactionColumns+` FROM "transaction" WHERE transaction_id = ?`,
		transactionID.String(),
	)
	transaction, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, folio_errors.ErrNotFound{Entity: "transaction", ID: transactionID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}

	return transaction, nil
}

func (h sqliteTransactionRepositoryHandler) List(tx *sql.Tx, userID uuid.UUID, assetID *uuid.UUID) ([]domain.Transaction, error) {
	query := `SELECT ` + sqliteTransactionColumns + ` FROM "transaction" WHERE user_id = ?`
	args := []interface{}{userID.String()}
	if assetID != nil {
		query += ` AND asset_id = ?`
		args = append(args, assetID.String())
	}
	query += ` ORDER BY date ASC, created_at ASC`

	rows, err := tx.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (h sqliteTransactionRepositoryHandler) ListForAsset(tx *sql.Tx, assetID uuid.UUID) ([]domain.Transaction, error) {
	rows, err := tx.Query(
		`SELECT `+sqliteTransactionColumns+` FROM "transaction" WHERE asset_id = ? ORDER BY date ASC, created_at ASC`,
		assetID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for asset %s: %w", assetID, err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

func (h sqliteTransactionRepositoryHandler) Update(tx *sql.Tx, transaction domain.Transaction) (*domain.Transaction, error) {
	result, err := tx.Exec(
		`UPDATE "transaction" SET type = ?, quantity = ?, price_per_unit = ?, date = ?, notes = ? WHERE transaction_id = ?`,
		transaction.Type.String(),
		transaction.Quantity.String(),
		transaction.PricePerUnit.String(),
		transaction.Date,
		transaction.Notes,
		transaction.TransactionID.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction %s: %w", transaction.TransactionID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, folio_errors.ErrNotFound{Entity: "transaction", ID: transaction.TransactionID}
	}

	return transaction.Ptr(), nil
}

func (h sqliteTransactionRepositoryHandler) Delete(tx *sql.Tx, transactionID uuid.UUID) error {
	_, err := tx.Exec(`DELETE FROM "transaction" WHERE transaction_id = ?`, transactionID.String())
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAsset(row rowScanner) (*domain.Asset, error) {
	var (
		assetID       string
		userID        string
		asset         domain.Asset
		assetType     model.AssetType
		currentPrice  string
		previousClose string
		quantity      string
		averageCost   string
	)
	err := row.Scan(
		&assetID,
		&userID,
		&asset.Symbol,
		&asset.Name,
		&assetType,
		&currentPrice,
		&previousClose,
		&quantity,
		&averageCost,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	asset.AssetID, err = uuid.Parse(assetID)
	if err != nil {
		return nil, err
	}
	asset.UserID, err = uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	asset.Type = assetType
	for _, field := range []struct {
		raw  string
		dest *decimal.Decimal
	}{
		{currentPrice, &asset.CurrentPrice},
		{previousClose, &asset.PreviousClose},
		{quantity, &asset.Quantity},
		{averageCost, &asset.AverageCost},
	} {
		*field.dest, err = decimal.NewFromString(field.raw)
		if err != nil {
			return nil, err
		}
	}

	return asset.Ptr(), nil
}

func scanAssets(rows *sql.Rows) ([]domain.Asset, error) {
	out := []domain.Asset{}
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *asset)
	}
	return out, rows.Err()
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var (
		transactionID   string
		userID          string
		assetID         string
		transactionType model.TransactionType
		quantity        string
		pricePerUnit    string
		notes           sql.NullString
		transaction     domain.Transaction
	)
	err := row.Scan(
		&transactionID,
		&userID,
		&assetID,
		&transactionType,
		&quantity,
		&pricePerUnit,
		&transaction.Date,
		&notes,
		&transaction.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	transaction.TransactionID, err = uuid.Parse(transactionID)
	if err != nil {
		return nil, err
	}
	transaction.UserID, err = uuid.Parse(userID)
	if err != nil {
		return nil, err
	}
	transaction.AssetID, err = uuid.Parse(assetID)
	if err != nil {
		return nil, err
	}
	transaction.Type = transactionType
	transaction.Quantity, err = decimal.NewFromString(quantity)
	if err != nil {
		return nil, err
	}
	transaction.PricePerUnit, err = decimal.NewFromString(pricePerUnit)
	if err != nil {
		return nil, err
	}
	if notes.Valid {
		transaction.Notes = &notes.String
	}

	return transaction.Ptr(), nil
}

func scanTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	out := []domain.Transaction{}
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *transaction)
	}
	return out, rows.Err()
}
