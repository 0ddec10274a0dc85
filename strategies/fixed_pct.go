package strategies

import (
	"github.com/shopspring/decimal"

	"fund-backtest/services/engine"
)

// FixedPct holds until price moves a fixed percentage either way from the
// cost basis (profit target checked before the stop), then waits for price
// to break a fixed percentage either way from the last sell price before
// rebuying. The very first entry is unconditional. The recorded sell price
// is the raw fill price, commission excluded.
type FixedPct struct {
	ProfitPct decimal.Decimal
	LossPct   decimal.Decimal
	RebuyPct  decimal.Decimal

	lastSellPrice decimal.Decimal // zero = never sold
}

func NewFixedPct() *FixedPct {
	return &FixedPct{
		ProfitPct: decimal.NewFromFloat(0.05),
		LossPct:   decimal.NewFromFloat(0.05),
		RebuyPct:  decimal.NewFromFloat(0.05),
	}
}

func (s *FixedPct) Name() string { return "fixed_pct" }

func (s *FixedPct) Prepare(*engine.Series) error { return nil }

func (s *FixedPct) Decide(snap engine.Snapshot) *engine.Intent {
	price := snap.Bar.Close

	if snap.Position.IsOpen() {
		if price.GreaterThanOrEqual(snap.Position.AvgPrice.Mul(onePlus(s.ProfitPct))) {
			return engine.SellAll()
		}
		if price.LessThanOrEqual(snap.Position.AvgPrice.Mul(oneMinus(s.LossPct))) {
			return engine.SellAll()
		}
		return nil
	}

	if s.lastSellPrice.Sign() == 0 {
		return engine.BuyAll()
	}
	if price.GreaterThanOrEqual(s.lastSellPrice.Mul(onePlus(s.RebuyPct))) {
		return engine.BuyAll()
	}
	if price.LessThanOrEqual(s.lastSellPrice.Mul(oneMinus(s.RebuyPct))) {
		return engine.BuyAll()
	}
	return nil
}

func (s *FixedPct) NotifyFill(order *engine.Order) {
	if order.Status == engine.StatusCompleted && order.Side == engine.TradeSideSell {
		s.lastSellPrice = order.FilledPrice
	}
}
