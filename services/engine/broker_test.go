package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBroker(cash int64, commission float64) *Broker {
	return NewBroker(
		decimal.NewFromInt(cash),
		decimal.NewFromFloat(commission),
		decimal.NewFromFloat(0.98),
		nil,
	)
}

func TestBuyCommissionExactness(t *testing.T) {
	// Notional buy of N at rate c must cost exactly N*(1+c).
	b := newTestBroker(100000, 0.0015)
	bar := NewBar(day(0), decimal.NewFromInt(10))

	_, err := b.Submit(*BuyNotional(decimal.NewFromInt(5000)), 0)
	require.NoError(t, err)
	order, err := b.Resolve(bar)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, order.Status)

	wantCash := decimal.NewFromInt(100000).
		Sub(decimal.NewFromInt(5000).Mul(decimal.NewFromFloat(1.0015)))
	assert.True(t, b.Cash().Equal(wantCash), "cash = %s, want %s", b.Cash(), wantCash)
	assert.True(t, order.Commission.Equal(decimal.NewFromFloat(7.5)))
	assert.True(t, b.Position().Qty.Equal(decimal.NewFromInt(500)))
}

func TestSellCommissionExactness(t *testing.T) {
	// A sell of notional M credits exactly M*(1-c).
	b := newTestBroker(100000, 0.0015)
	buyBar := NewBar(day(0), decimal.NewFromInt(10))
	_, err := b.Submit(*BuyNotional(decimal.NewFromInt(5000)), 0)
	require.NoError(t, err)
	_, err = b.Resolve(buyBar)
	require.NoError(t, err)
	cashAfterBuy := b.Cash()

	sellBar := NewBar(day(1), decimal.NewFromInt(12))
	_, err = b.Submit(*SellAll(), 1)
	require.NoError(t, err)
	order, err := b.Resolve(sellBar)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, order.Status)

	notional := decimal.NewFromInt(500).Mul(decimal.NewFromInt(12))
	wantCash := cashAfterBuy.Add(notional.Mul(decimal.NewFromFloat(0.9985)))
	assert.True(t, b.Cash().Equal(wantCash), "cash = %s, want %s", b.Cash(), wantCash)
	assert.False(t, b.Position().IsOpen())
}

func TestPercentSizingLeavesCommissionHeadroom(t *testing.T) {
	b := newTestBroker(100000, 0.0015)
	bar := NewBar(day(0), decimal.NewFromInt(25))

	_, err := b.Submit(*BuyAll(), 0)
	require.NoError(t, err)
	order, err := b.Resolve(bar)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, order.Status)

	// 98% of cash in notional, commission paid from the 2% buffer.
	assert.True(t, order.FilledNotional.Equal(decimal.NewFromInt(98000)))
	assert.True(t, b.Cash().Sign() > 0)
}

func TestMarginRejectionLeavesStateUntouched(t *testing.T) {
	b := newTestBroker(1000, 0.0015)
	bar := NewBar(day(0), decimal.NewFromInt(10))

	_, err := b.Submit(*BuyNotional(decimal.NewFromInt(1000)), 0)
	require.NoError(t, err)
	order, err := b.Resolve(bar)
	require.NoError(t, err)

	// 1000 notional + commission exceeds 1000 cash: rejected whole.
	assert.Equal(t, StatusMarginRejected, order.Status)
	assert.True(t, b.Cash().Equal(decimal.NewFromInt(1000)))
	assert.False(t, b.Position().IsOpen())
	assert.Empty(t, b.Trades())
	assert.False(t, b.InFlight())
}

func TestSellWithoutPositionCanceled(t *testing.T) {
	b := newTestBroker(1000, 0)
	_, err := b.Submit(*SellAll(), 0)
	require.NoError(t, err)
	order, err := b.Resolve(NewBar(day(0), decimal.NewFromInt(10)))
	require.NoError(t, err)
	assert.Equal(t, StatusCanceled, order.Status)
	assert.True(t, b.Cash().Equal(decimal.NewFromInt(1000)))
}

func TestSingleOrderInFlight(t *testing.T) {
	b := newTestBroker(1000, 0)
	_, err := b.Submit(*BuyAll(), 0)
	require.NoError(t, err)
	_, err = b.Submit(*BuyAll(), 0)
	assert.ErrorIs(t, err, errOrderInFlight)
}
