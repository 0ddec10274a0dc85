// Package strategies holds the nine fund-trading decision variants. Each
// variant owns its indicator series and mutable state; the shared driver,
// broker and recorder live in services/engine.
package strategies

import (
	"fund-backtest/services/engine"
	"fund-backtest/services/indicators"
)

// DMACross trades the fast/slow simple moving average crossover: buy the
// golden cross, close on the death cross.
type DMACross struct {
	FastPeriod int
	SlowPeriod int

	cross []int
}

func NewDMACross() *DMACross {
	return &DMACross{FastPeriod: 20, SlowPeriod: 60}
}

func (s *DMACross) Name() string { return "dma_cross" }

func (s *DMACross) Prepare(series *engine.Series) error {
	closes := series.Closes()
	fast := indicators.SMA(closes, s.FastPeriod)
	slow := indicators.SMA(closes, s.SlowPeriod)
	s.cross = indicators.Crossover(fast, slow)
	return nil
}

func (s *DMACross) Decide(snap engine.Snapshot) *engine.Intent {
	if snap.Position.IsOpen() {
		if s.cross[snap.Index] < 0 {
			return engine.SellAll()
		}
		return nil
	}
	if s.cross[snap.Index] > 0 {
		return engine.BuyAll()
	}
	return nil
}

func (s *DMACross) NotifyFill(*engine.Order) {}
