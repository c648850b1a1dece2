package portfolio

import (
	"testing"
	"time"

	"folio/internal/db/models/postgres/public/model"
	"folio/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func buy(quantity, price int64, date time.Time) domain.Transaction {
	return domain.Transaction{
		Type:         model.TransactionType_Buy,
		Quantity:     decimal.NewFromInt(quantity),
		PricePerUnit: decimal.NewFromInt(price),
		Date:         date,
		CreatedAt:    date,
	}
}

func sell(quantity, price int64, date time.Time) domain.Transaction {
	return domain.Transaction{
		Type:         model.TransactionType_Sell,
		Quantity:     decimal.NewFromInt(quantity),
		PricePerUnit: decimal.NewFromInt(price),
		Date:         date,
		CreatedAt:    date,
	}
}

func day(n int) time.Time {
	return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC)
}

func TestReplay_BuysBlendIntoAverage(t *testing.T) {
	position, oversold := Replay([]domain.Transaction{
		buy(10, 100, day(1)),
		buy(10, 200, day(2)),
	}, domain.Position{})

	require.False(t, oversold)
	require.True(t, position.Quantity.Equal(decimal.NewFromInt(20)), "quantity was %s", position.Quantity)
	require.True(t, position.AverageCost.Equal(decimal.NewFromInt(150)), "average cost was %s", position.AverageCost)
}

func TestReplay_PartialSellKeepsAverage(t *testing.T) {
	// the sell price has no bearing on the remaining average cost
	position, oversold := Replay([]domain.Transaction{
		buy(10, 100, day(1)),
		buy(10, 200, day(2)),
		sell(5, 999, day(3)),
	}, domain.Position{})

	require.False(t, oversold)
	require.True(t, position.Quantity.Equal(decimal.NewFromInt(15)), "quantity was %s", position.Quantity)
	require.True(t, position.AverageCost.Equal(decimal.NewFromInt(150)), "average cost was %s", position.AverageCost)
}

func TestReplay_FullSellCarriesPriorAverage(t *testing.T) {
	position, oversold := Replay([]domain.Transaction{
		buy(10, 100, day(1)),
		sell(10, 120, day(2)),
	}, domain.Position{AverageCost: decimal.NewFromInt(42)})

	require.False(t, oversold)
	require.True(t, position.Quantity.IsZero())
	require.True(t, position.AverageCost.Equal(decimal.NewFromInt(42)), "average cost was %s", position.AverageCost)
}

func TestReplay_OversellClampsToZero(t *testing.T) {
	position, oversold := Replay([]domain.Transaction{
		buy(5, 100, day(1)),
		sell(10, 100, day(2)),
	}, domain.Position{})

	require.True(t, oversold)
	require.True(t, position.Quantity.IsZero())
	require.True(t, position.AverageCost.IsZero())
}

func TestReplay_OversellWithPriorAverage(t *testing.T) {
	position, oversold := Replay([]domain.Transaction{
		sell(3, 50, day(1)),
	}, domain.Position{Quantity: decimal.NewFromInt(3), AverageCost: decimal.NewFromInt(42)})

	require.True(t, oversold)
	require.True(t, position.Quantity.IsZero())
	require.True(t, position.AverageCost.Equal(decimal.NewFromInt(42)), "average cost was %s", position.AverageCost)
}

func TestReplay_ContinuesAfterOversell(t *testing.T) {
	position, oversold := Replay([]domain.Transaction{
		sell(10, 100, day(1)),
		buy(4, 25, day(2)),
	}, domain.Position{})

	require.True(t, oversold)
	require.True(t, position.Quantity.Equal(decimal.NewFromInt(4)), "quantity was %s", position.Quantity)
	require.True(t, position.AverageCost.Equal(decimal.NewFromInt(25)), "average cost was %s", position.AverageCost)
}

func TestReplay_InputOrderDoesNotMatter(t *testing.T) {
	ordered := []domain.Transaction{
		buy(10, 100, day(1)),
		buy(10, 200, day(2)),
		sell(5, 150, day(3)),
	}
	shuffled := []domain.Transaction{ordered[2], ordered[0], ordered[1]}

	a, _ := Replay(ordered, domain.Position{})
	b, _ := Replay(shuffled, domain.Position{})

	require.True(t, a.Quantity.Equal(b.Quantity))
	require.True(t, a.AverageCost.Equal(b.AverageCost))
}

func TestReplay_CreatedAtBreaksDateTies(t *testing.T) {
	// both entries share a trade date; the buy was entered first, so the
	// sell is valid rather than an oversell
	tradeDate := day(5)
	buyFirst := buy(10, 100, tradeDate)
	buyFirst.CreatedAt = tradeDate.Add(time.Minute)
	sellSecond := sell(5, 100, tradeDate)
	sellSecond.CreatedAt = tradeDate.Add(2 * time.Minute)

	position, oversold := Replay([]domain.Transaction{sellSecond, buyFirst}, domain.Position{})

	require.False(t, oversold)
	require.True(t, position.Quantity.Equal(decimal.NewFromInt(5)), "quantity was %s", position.Quantity)
}

func TestReplay_Idempotent(t *testing.T) {
	history := []domain.Transaction{
		buy(10, 100, day(1)),
		sell(4, 110, day(2)),
		buy(2, 130, day(3)),
	}

	first, _ := Replay(history, domain.Position{})
	second, _ := Replay(history, domain.Position{})

	require.True(t, first.Quantity.Equal(second.Quantity))
	require.True(t, first.AverageCost.Equal(second.AverageCost))
}

func TestReplay_DoesNotMutateInput(t *testing.T) {
	history := []domain.Transaction{
		sell(5, 150, day(3)),
		buy(10, 100, day(1)),
	}

	_, _ = Replay(history, domain.Position{})

	require.Equal(t, model.TransactionType_Sell, history[0].Type)
	require.Equal(t, model.TransactionType_Buy, history[1].Type)
}

func TestReplay_Empty(t *testing.T) {
	position, oversold := Replay(nil, domain.Position{})

	require.False(t, oversold)
	require.True(t, position.Quantity.IsZero())
	require.True(t, position.AverageCost.IsZero())
}
