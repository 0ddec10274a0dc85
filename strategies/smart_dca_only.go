package strategies

import (
	"time"

	"github.com/shopspring/decimal"

	"fund-backtest/services/engine"
	"fund-backtest/services/indicators"
)

// SmartDCAOnly is the accumulation-only variant: a monthly fixed-notional
// buy below a long baseline average, no exit logic at all. Buys stack on
// top of the existing position. Runs want a larger cash pool; see
// DefaultRunConfig.
type SmartDCAOnly struct {
	InvestmentDay  int
	BaseInvestment decimal.Decimal
	MAPeriod       int

	baseline  []float64
	closes    []float64
	lastMonth time.Month
}

func NewSmartDCAOnly() *SmartDCAOnly {
	return &SmartDCAOnly{
		InvestmentDay:  1,
		BaseInvestment: decimal.NewFromInt(5000),
		MAPeriod:       120,
	}
}

func (s *SmartDCAOnly) Name() string { return "smart_dca_only" }

func (s *SmartDCAOnly) Prepare(series *engine.Series) error {
	s.closes = series.Closes()
	s.baseline = indicators.SMA(s.closes, s.MAPeriod)
	return nil
}

func (s *SmartDCAOnly) Decide(snap engine.Snapshot) *engine.Intent {
	i := snap.Index
	if !indicators.Valid(s.baseline[i]) {
		return nil
	}
	if !monthlyGate(snap.Bar.Date, s.InvestmentDay, s.lastMonth) {
		return nil
	}
	// Month consumed regardless of the filters below.
	s.lastMonth = snap.Bar.Date.Month()
	if s.closes[i] < s.baseline[i] && snap.Cash.GreaterThan(s.BaseInvestment) {
		return engine.BuyNotional(s.BaseInvestment)
	}
	return nil
}

func (s *SmartDCAOnly) NotifyFill(*engine.Order) {}
