package strategies

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"fund-backtest/services/engine"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// dailyBars builds consecutive daily bars starting at the given date.
func dailyBars(start time.Time, closes ...float64) []engine.Bar {
	out := make([]engine.Bar, len(closes))
	for i, c := range closes {
		out[i] = engine.NewBar(start.AddDate(0, 0, i), decimal.NewFromFloat(c))
	}
	return out
}

func datedBar(y int, m time.Month, d int, close float64) engine.Bar {
	return engine.NewBar(date(y, m, d), decimal.NewFromFloat(close))
}

func runOn(t *testing.T, strat engine.Strategy, bars []engine.Bar, cfg engine.Config) *engine.Result {
	t.Helper()
	series, err := engine.NewSeries(bars)
	require.NoError(t, err)
	result, err := engine.NewSimulator(series, strat, cfg, nil).Run()
	require.NoError(t, err)
	return result
}

func defaultCfg() engine.Config { return engine.DefaultConfig() }

func requireTrade(t *testing.T, trade engine.Trade, side engine.TradeSide, day time.Time, price float64) {
	t.Helper()
	require.Equal(t, side, trade.Side)
	require.True(t, trade.Date.Equal(day), "trade date = %s, want %s", trade.Date, day)
	require.True(t, trade.Price.Equal(decimal.NewFromFloat(price)),
		"trade price = %s, want %v", trade.Price, price)
}
