package strategies

import (
	"fund-backtest/services/engine"
	"fund-backtest/services/indicators"
)

// MACDTrend follows the MACD fast line (DIF) crossing its signal line
// (DEA): buy the golden cross, close on the death cross.
type MACDTrend struct {
	FastPeriod   int
	SlowPeriod   int
	SignalPeriod int

	cross []int
}

func NewMACDTrend() *MACDTrend {
	return &MACDTrend{FastPeriod: 12, SlowPeriod: 26, SignalPeriod: 9}
}

func (s *MACDTrend) Name() string { return "macd_trend" }

func (s *MACDTrend) Prepare(series *engine.Series) error {
	macd, signal := indicators.MACD(series.Closes(), s.FastPeriod, s.SlowPeriod, s.SignalPeriod)
	s.cross = indicators.Crossover(macd, signal)
	return nil
}

func (s *MACDTrend) Decide(snap engine.Snapshot) *engine.Intent {
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

func (s *MACDTrend) NotifyFill(*engine.Order) {}
