package strategies

import (
	"time"

	"github.com/shopspring/decimal"

	"fund-backtest/services/engine"
)

// MonthlyInvest buys a fixed notional on the first eligible day of every
// month, unconditionally on price. When cash cannot cover the amount the
// step is skipped without consuming the month, so the buy retries while
// the month lasts.
type MonthlyInvest struct {
	InvestmentDay    int
	InvestmentAmount decimal.Decimal

	lastMonth time.Month
}

func NewMonthlyInvest() *MonthlyInvest {
	return &MonthlyInvest{
		InvestmentDay:    1,
		InvestmentAmount: decimal.NewFromInt(2000),
	}
}

func (s *MonthlyInvest) Name() string { return "monthly_invest" }

func (s *MonthlyInvest) Prepare(*engine.Series) error { return nil }

func (s *MonthlyInvest) Decide(snap engine.Snapshot) *engine.Intent {
	if !monthlyGate(snap.Bar.Date, s.InvestmentDay, s.lastMonth) {
		return nil
	}
	if !snap.Cash.GreaterThan(s.InvestmentAmount) {
		return nil
	}
	s.lastMonth = snap.Bar.Date.Month()
	return engine.BuyNotional(s.InvestmentAmount)
}

func (s *MonthlyInvest) NotifyFill(*engine.Order) {}
