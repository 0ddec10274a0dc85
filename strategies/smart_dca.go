package strategies

import (
	"time"

	"github.com/shopspring/decimal"

	"fund-backtest/services/engine"
	"fund-backtest/services/indicators"
)

// SmartDCA invests a fixed notional once per month, but only below the
// baseline moving average, and takes profit on the whole position at the
// configured threshold. The take-profit check runs before the monthly-buy
// check on every step. After a sell the strategy sits in cash until the
// next eligible dip.
type SmartDCA struct {
	TakeProfitPct  decimal.Decimal
	InvestmentDay  int
	BaseInvestment decimal.Decimal
	MAPeriod       int

	baseline  []float64
	closes    []float64
	lastMonth time.Month // zero = never invested
}

func NewSmartDCA() *SmartDCA {
	return &SmartDCA{
		TakeProfitPct:  decimal.NewFromFloat(0.20),
		InvestmentDay:  1,
		BaseInvestment: decimal.NewFromInt(5000),
		MAPeriod:       20,
	}
}

func (s *SmartDCA) Name() string { return "smart_dca" }

func (s *SmartDCA) Prepare(series *engine.Series) error {
	s.closes = series.Closes()
	s.baseline = indicators.SMA(s.closes, s.MAPeriod)
	return nil
}

func (s *SmartDCA) Decide(snap engine.Snapshot) *engine.Intent {
	i := snap.Index
	if !indicators.Valid(s.baseline[i]) {
		return nil
	}

	if snap.Position.IsOpen() {
		profit := snap.Bar.Close.Sub(snap.Position.AvgPrice).Div(snap.Position.AvgPrice)
		if profit.GreaterThanOrEqual(s.TakeProfitPct) {
			return engine.SellAll()
		}
		return nil
	}

	if monthlyGate(snap.Bar.Date, s.InvestmentDay, s.lastMonth) {
		// The month is consumed even when the MA filter blocks the buy.
		s.lastMonth = snap.Bar.Date.Month()
		if s.closes[i] < s.baseline[i] {
			return engine.BuyNotional(s.BaseInvestment)
		}
	}
	return nil
}

func (s *SmartDCA) NotifyFill(*engine.Order) {}
