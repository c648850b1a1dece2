package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"folio/internal/db/models/postgres/public/model"
	. "folio/internal/db/models/postgres/public/table"
	"folio/internal/domain"

	folio_errors "folio/internal"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
)

type TransactionRepository interface {
	Add(tx *sql.Tx, transaction domain.Transaction) (*domain.Transaction, error)
	Get(tx *sql.Tx, transactionID uuid.UUID) (*domain.Transaction, error)
	List(tx *sql.Tx, userID uuid.UUID, assetID *uuid.UUID) ([]domain.Transaction, error)
	ListForAsset(tx *sql.Tx, assetID uuid.UUID) ([]domain.Transaction, error)
	Update(tx *sql.Tx, transaction domain.Transaction) (*domain.Transaction, error)
	Delete(tx *sql.Tx, transactionID uuid.UUID) error
}

type transactionRepositoryHandler struct {
}

func NewTransactionRepository() TransactionRepository {
	return transactionRepositoryHandler{}
}

func (h transactionRepositoryHandler) Add(tx *sql.Tx, transaction domain.Transaction) (*domain.Transaction, error) {
	err := findDuplicateTransaction(tx, transaction)
	if err != nil {
		return nil, err
	}

	stmt := Transaction.INSERT(Transaction.AllColumns).
		MODEL(transactionToDb(transaction)).
		RETURNING(Transaction.AllColumns)

	result := model.Transaction{}
	err = stmt.Query(tx, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	return transactionFromDb(result).Ptr(), nil
}

func (h transactionRepositoryHandler) Get(tx *sql.Tx, transactionID uuid.UUID) (*domain.Transaction, error) {
	stmt := Transaction.SELECT(Transaction.AllColumns).
		WHERE(Transaction.TransactionID.EQ(postgres.UUID(transactionID)))

	result := model.Transaction{}
	err := stmt.Query(tx, &result)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, folio_errors.ErrNotFound{Entity: "transaction", ID: transactionID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}

	return transactionFromDb(result).Ptr(), nil
}

func (h transactionRepositoryHandler) List(tx *sql.Tx, userID uuid.UUID, assetID *uuid.UUID) ([]domain.Transaction, error) {
	predicate := Transaction.UserID.EQ(postgres.UUID(userID))
	if assetID != nil {
		predicate = postgres.AND(
			predicate,
			Transaction.AssetID.EQ(postgres.UUID(*assetID)),
		)
	}

	stmt := Transaction.SELECT(Transaction.AllColumns).
		WHERE(predicate).
		ORDER_BY(Transaction.Date.ASC(), Transaction.CreatedAt.ASC())

	result := []model.Transaction{}
	err := stmt.Query(tx, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for user %s: %w", userID, err)
	}

	return transactionsFromDb(result), nil
}

func (h transactionRepositoryHandler) ListForAsset(tx *sql.Tx, assetID uuid.UUID) ([]domain.Transaction, error) {
	stmt := Transaction.SELECT(Transaction.AllColumns).
		WHERE(Transaction.AssetID.EQ(postgres.UUID(assetID))).
		ORDER_BY(Transaction.Date.ASC(), Transaction.CreatedAt.ASC())

	result := []model.Transaction{}
	err := stmt.Query(tx, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for asset %s: %w", assetID, err)
	}

	return transactionsFromDb(result), nil
}

func (h transactionRepositoryHandler) Update(tx *sql.Tx, transaction domain.Transaction) (*domain.Transaction, error) {
	stmt := Transaction.UPDATE(Transaction.MutableColumns).
		MODEL(transactionToDb(transaction)).
		WHERE(Transaction.TransactionID.EQ(postgres.UUID(transaction.TransactionID))).
		RETURNING(Transaction.AllColumns)

	result := model.Transaction{}
	err := stmt.Query(tx, &result)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, folio_errors.ErrNotFound{Entity: "transaction", ID: transaction.TransactionID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction %s: %w", transaction.TransactionID, err)
	}

	return transactionFromDb(result).Ptr(), nil
}

func (h transactionRepositoryHandler) Delete(tx *sql.Tx, transactionID uuid.UUID) error {
	_, err := Transaction.DELETE().
		WHERE(Transaction.TransactionID.EQ(postgres.UUID(transactionID))).
		Exec(tx)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}

	return nil
}

// findDuplicateTransaction loosely enforces uniqueness: an entry with
// the same asset, side, quantity, price and date is almost certainly a
// double submission from the client.
func findDuplicateTransaction(tx *sql.Tx, t domain.Transaction) error {
	stmt := Transaction.SELECT(Transaction.AllColumns).
		WHERE(postgres.AND(
			Transaction.AssetID.EQ(postgres.UUID(t.AssetID)),
			Transaction.Type.EQ(postgres.NewEnumValue(t.Type.String())),
			Transaction.Quantity.EQ(postgres.Float(t.Quantity.InexactFloat64())),
			Transaction.PricePerUnit.EQ(postgres.Float(t.PricePerUnit.InexactFloat64())),
			Transaction.Date.EQ(postgres.TimestampzT(t.Date)),
		))

	result := []model.Transaction{}
	err := stmt.Query(tx, &result)
	if err != nil && !errors.Is(err, qrm.ErrNoRows) {
		return fmt.Errorf("failed to check for existing transactions: %w", err)
	}

	if len(result) > 0 {
		return folio_errors.ErrDuplicateTransaction{
			AssetID: t.AssetID,
			Message: fmt.Sprintf("%s %s @ %s on %s", t.Type, t.Quantity, t.PricePerUnit, t.Date.Format("2006-01-02")),
		}
	}

	return nil
}

func transactionToDb(t domain.Transaction) model.Transaction {
	return model.Transaction{
		TransactionID: t.TransactionID,
		UserID:        t.UserID,
		AssetID:       t.AssetID,
		Type:          t.Type,
		Quantity:      t.Quantity,
		PricePerUnit:  t.PricePerUnit,
		Date:          t.Date,
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
	}
}

func transactionFromDb(t model.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: t.TransactionID,
		UserID:        t.UserID,
		AssetID:       t.AssetID,
		Type:          t.Type,
		Quantity:      t.Quantity,
		PricePerUnit:  t.PricePerUnit,
		Date:          t.Date,
		Notes:         t.Notes,
		CreatedAt:     t.CreatedAt,
	}
}

func transactionsFromDb(transactions []model.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(transactions))
	for i, t := range transactions {
		out[i] = transactionFromDb(t)
	}
	return out
}
