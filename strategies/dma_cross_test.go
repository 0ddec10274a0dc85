package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fund-backtest/services/engine"
)

func TestDMACrossGoldenAndDeathCross(t *testing.T) {
	// Fast SMA(2) crosses above SMA(3) at index 5 and back below at 8.
	strat := NewDMACross()
	strat.FastPeriod = 2
	strat.SlowPeriod = 3

	bars := dailyBars(date(2024, 1, 1), 10, 9, 8, 7, 8, 9, 10, 9, 8, 7)
	result := runOn(t, strat, bars, defaultCfg())

	require.Len(t, result.Trades, 2)
	requireTrade(t, result.Trades[0], engine.TradeSideBuy, date(2024, 1, 6), 9)
	requireTrade(t, result.Trades[1], engine.TradeSideSell, date(2024, 1, 9), 8)
}

func TestDMACrossHoldsThroughWarmup(t *testing.T) {
	// Default periods far exceed the series length; every bar is warmup.
	bars := dailyBars(date(2024, 1, 1), 10, 11, 12, 13, 14)
	result := runOn(t, NewDMACross(), bars, defaultCfg())

	assert.Empty(t, result.Trades)
	assert.True(t, result.FinalEquity.Equal(result.InitialCash))
}
