package strategies

import (
	"fund-backtest/services/engine"
	"fund-backtest/services/indicators"
)

// DualConfirm requires both confirmations to enter: price above the
// long-term trend average (regime filter) and the oscillator at or below
// the oversold threshold (timing). It exits when price falls back to the
// trend average.
type DualConfirm struct {
	TrendPeriod int
	RSIPeriod   int
	RSILower    float64

	trend  []float64
	rsi    []float64
	closes []float64
}

func NewDualConfirm() *DualConfirm {
	return &DualConfirm{TrendPeriod: 120, RSIPeriod: 14, RSILower: 30.0}
}

func (s *DualConfirm) Name() string { return "dual_confirm" }

func (s *DualConfirm) Prepare(series *engine.Series) error {
	s.closes = series.Closes()
	s.trend = indicators.SMA(s.closes, s.TrendPeriod)
	s.rsi = indicators.RSI(s.closes, s.RSIPeriod)
	return nil
}

func (s *DualConfirm) Decide(snap engine.Snapshot) *engine.Intent {
	i := snap.Index
	if !indicators.Valid(s.trend[i]) || !indicators.Valid(s.rsi[i]) {
		return nil
	}
	if snap.Position.IsOpen() {
		if s.closes[i] <= s.trend[i] {
			return engine.SellAll()
		}
		return nil
	}
	inUptrend := s.closes[i] > s.trend[i]
	oversold := s.rsi[i] <= s.RSILower
	if inUptrend && oversold {
		return engine.BuyAll()
	}
	return nil
}

func (s *DualConfirm) NotifyFill(*engine.Order) {}
