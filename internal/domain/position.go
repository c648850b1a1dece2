package domain

import (
	"github.com/shopspring/decimal"
)

// Position is the reconciled state of one asset: how many units are
// held and the weighted-average cost paid per unit.
type Position struct {
	Quantity    decimal.Decimal
	AverageCost decimal.Decimal
}

func (p Position) DeepCopy() Position {
	return Position{
		Quantity:    p.Quantity,
		AverageCost: p.AverageCost,
	}
}
