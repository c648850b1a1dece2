package folio_errors

import (
	"fmt"

	"github.com/google/uuid"
)

type ErrNotFound struct {
	Entity string
	ID     uuid.UUID
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

type ErrDuplicateAsset struct {
	Symbol string
}

func (e ErrDuplicateAsset) Error() string {
	return fmt.Sprintf("asset with symbol %s already exists for user", e.Symbol)
}

type ErrDuplicateTransaction struct {
	AssetID uuid.UUID
	Message string
}

func (e ErrDuplicateTransaction) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("duplicate transaction on asset %s: %s", e.AssetID, e.Message)
	}
	return fmt.Sprintf("attempted to insert duplicate transaction on asset %s", e.AssetID)
}

type ErrInvalidTransaction struct {
	Reason string
}

func (e ErrInvalidTransaction) Error() string {
	return fmt.Sprintf("invalid transaction: %s", e.Reason)
}
