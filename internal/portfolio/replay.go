package portfolio

import (
	"folio/internal/db/models/postgres/public/model"
	"folio/internal/domain"
	"sort"

	"github.com/shopspring/decimal"
)

// Replay derives an asset's position from its full transaction history
// using moving weighted-average cost accounting. Buys blend into the
// running cost; sells remove the same fraction of cost as the fraction
// of quantity sold, which leaves the average cost unchanged on any
// partial sell.
//
// prior supplies the asset's last persisted position: when the history
// ends with nothing held there is no meaningful average cost, so the
// prior average is carried forward (zero when there is no prior state).
//
// The second return reports whether the history tried to sell more than
// was held. That is a data-integrity anomaly, not an error: the running
// state clamps to zero and replay continues. Replay never mutates its
// input and holds no state, so replaying the same history is idempotent.
func Replay(transactions []domain.Transaction, prior domain.Position) (domain.Position, bool) {
	sorted := make([]domain.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	runningQuantity := decimal.Zero
	runningCost := decimal.Zero
	oversold := false

	for _, t := range sorted {
		switch t.Type {
		case model.TransactionType_Buy:
			runningCost = runningCost.Add(t.Quantity.Mul(t.PricePerUnit))
			runningQuantity = runningQuantity.Add(t.Quantity)
		case model.TransactionType_Sell:
			if runningQuantity.IsZero() || t.Quantity.GreaterThan(runningQuantity) {
				runningQuantity = decimal.Zero
				runningCost = decimal.Zero
				oversold = true
				continue
			}
			soldFraction := t.Quantity.Div(runningQuantity)
			runningCost = runningCost.Sub(soldFraction.Mul(runningCost))
			runningQuantity = runningQuantity.Sub(t.Quantity)
		}
	}

	averageCost := prior.AverageCost
	if !runningQuantity.IsZero() {
		averageCost = runningCost.Div(runningQuantity)
	}

	return domain.Position{
		Quantity:    runningQuantity,
		AverageCost: averageCost,
	}, oversold
}
