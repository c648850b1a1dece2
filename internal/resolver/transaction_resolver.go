package resolver

import (
	"context"
	"fmt"
	"strings"

	api_types "folio/api-types"
	"folio/internal/db/models/postgres/public/model"
	"folio/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newTransactionToDomain(in api_types.NewTransaction) domain.Transaction {
	return domain.Transaction{
		Type:         model.TransactionType(strings.ToLower(strings.TrimSpace(in.Type))),
		Quantity:     decimal.NewFromFloat(in.Quantity),
		PricePerUnit: decimal.NewFromFloat(in.PricePerUnit),
		Date:         in.Date,
		Notes:        in.Notes,
	}
}

func (r resolverHandler) AddTransaction(req api_types.AddTransactionRequest) (*api_types.AddTransactionResponse, error) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	assetID, err := uuid.Parse(req.AssetID)
	if err != nil {
		return nil, fmt.Errorf("invalid asset id: %w", err)
	}

	tx, err := r.Db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	in := newTransactionToDomain(req.NewTransaction)
	in.UserID = userID
	in.AssetID = assetID

	inserted, position, err := r.TransactionService.AddTransaction(context.Background(), tx, in)
	if err != nil {
		return nil, err
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	return &api_types.AddTransactionResponse{
		Transaction: transactionToApi(*inserted),
		Position:    positionToApi(*position),
	}, nil
}

func (r resolverHandler) UpdateTransaction(transactionID uuid.UUID, req api_types.UpdateTransactionRequest) (*api_types.UpdateTransactionResponse, error) {
	tx, err := r.Db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	in := newTransactionToDomain(req.NewTransaction)
	in.TransactionID = transactionID

	updated, position, err := r.TransactionService.UpdateTransaction(context.Background(), tx, in)
	if err != nil {
		return nil, err
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	return &api_types.UpdateTransactionResponse{
		Transaction: transactionToApi(*updated),
		Position:    positionToApi(*position),
	}, nil
}

func (r resolverHandler) DeleteTransaction(transactionID uuid.UUID) (*api_types.DeleteTransactionResponse, error) {
	tx, err := r.Db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	position, err := r.TransactionService.DeleteTransaction(context.Background(), tx, transactionID)
	if err != nil {
		return nil, err
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	return &api_types.DeleteTransactionResponse{Position: positionToApi(*position)}, nil
}

func (r resolverHandler) ListTransactions(userID uuid.UUID, assetID *uuid.UUID) (*api_types.ListTransactionsResponse, error) {
	tx, err := r.Db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	transactions, err := r.TransactionService.ListTransactions(context.Background(), tx, userID, assetID)
	if err != nil {
		return nil, err
	}

	out := make([]api_types.Transaction, len(transactions))
	for i, t := range transactions {
		out[i] = transactionToApi(t)
	}

	return &api_types.ListTransactionsResponse{Transactions: out}, nil
}
