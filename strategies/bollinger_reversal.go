package strategies

import (
	"fund-backtest/services/engine"
	"fund-backtest/services/indicators"
)

// BollingerReversal buys a touch of the lower band and sells the reversion
// to the middle band.
type BollingerReversal struct {
	Period    int
	DevFactor float64

	middle []float64
	lower  []float64
	closes []float64
}

func NewBollingerReversal() *BollingerReversal {
	return &BollingerReversal{Period: 50, DevFactor: 2.0}
}

func (s *BollingerReversal) Name() string { return "bollinger_reversal" }

func (s *BollingerReversal) Prepare(series *engine.Series) error {
	s.closes = series.Closes()
	_, s.middle, s.lower = indicators.BBands(s.closes, s.Period, s.DevFactor)
	return nil
}

func (s *BollingerReversal) Decide(snap engine.Snapshot) *engine.Intent {
	i := snap.Index
	if !indicators.Valid(s.middle[i]) {
		return nil
	}
	if snap.Position.IsOpen() {
		if s.closes[i] >= s.middle[i] {
			return engine.SellAll()
		}
		return nil
	}
	if s.closes[i] <= s.lower[i] {
		return engine.BuyAll()
	}
	return nil
}

func (s *BollingerReversal) NotifyFill(*engine.Order) {}
