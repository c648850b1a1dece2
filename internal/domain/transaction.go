package domain

import (
	"folio/internal/db/models/postgres/public/model"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is a buy or sell ledger entry against one asset. Date is
// the user-supplied trade date and may be backdated; CreatedAt is when
// the record was entered and breaks ties during replay.
type Transaction struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	AssetID       uuid.UUID
	Type          model.TransactionType
	Quantity      decimal.Decimal
	PricePerUnit  decimal.Decimal
	Date          time.Time
	Notes         *string
	CreatedAt     time.Time
}

func (t Transaction) GetDate() time.Time { return t.Date }

func (t Transaction) Ptr() *Transaction { return &t }

func (t Transaction) DeepCopy() *Transaction {
	return &Transaction{
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
