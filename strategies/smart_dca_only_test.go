package strategies

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fund-backtest/services/engine"
)

func TestSmartDCAOnlyAccumulates(t *testing.T) {
	strat := NewSmartDCAOnly()
	strat.MAPeriod = 3

	cfg := defaultCfg()
	cfg.InitialCash = decimal.NewFromInt(12000)

	bars := []engine.Bar{
		datedBar(2024, time.January, 28, 100),
		datedBar(2024, time.January, 29, 100),
		datedBar(2024, time.January, 30, 100), // January consumed, no dip
		datedBar(2024, time.February, 1, 90),  // buy
		datedBar(2024, time.February, 2, 85),  // dip, but February is spent
		datedBar(2024, time.March, 1, 80),     // buy, stacks on the position
		datedBar(2024, time.April, 1, 70),     // dip, cash below the tranche
		datedBar(2024, time.April, 2, 60),
	}
	result := runOn(t, strat, bars, cfg)

	// Two tranches, never a sell. The April dip is skipped because
	// 12000 - 2*5007.5 leaves less cash than one tranche.
	require.Len(t, result.Trades, 2)
	requireTrade(t, result.Trades[0], engine.TradeSideBuy, date(2024, 2, 1), 90)
	requireTrade(t, result.Trades[1], engine.TradeSideBuy, date(2024, 3, 1), 80)
	for _, trade := range result.Trades {
		assert.Equal(t, engine.TradeSideBuy, trade.Side)
	}

	// Mirror the broker arithmetic: qty is rounded by the division, so
	// the settled notional is qty*price, not the raw tranche.
	tranche := decimal.NewFromInt(5000)
	costRate := decimal.NewFromFloat(1.0015)
	qty1 := tranche.Div(decimal.NewFromInt(90))
	qty2 := tranche.Div(decimal.NewFromInt(80))
	wantEquity := decimal.NewFromInt(12000).
		Sub(qty1.Mul(decimal.NewFromInt(90)).Mul(costRate)).
		Sub(qty2.Mul(decimal.NewFromInt(80)).Mul(costRate)).
		Add(qty1.Add(qty2).Mul(decimal.NewFromInt(60)))
	assert.True(t, result.FinalEquity.Equal(wantEquity),
		"final equity = %s, want %s", result.FinalEquity, wantEquity)
}

func TestSmartDCAOnlyDefaultsToLargerCashPool(t *testing.T) {
	cfg := DefaultRunConfig("smart_dca_only")
	assert.True(t, cfg.InitialCash.Equal(decimal.NewFromInt(200000)))

	other := DefaultRunConfig("dma_cross")
	assert.True(t, other.InitialCash.Equal(decimal.NewFromInt(100000)))
}
