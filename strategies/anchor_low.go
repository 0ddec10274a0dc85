package strategies

import (
	"github.com/shopspring/decimal"

	"fund-backtest/services/engine"
)

// AnchorLow runs in two phases. Phase 1: buy immediately, sell at the
// initial profit target; the first completed sell moves the strategy to
// phase 2 permanently. Phase 2: rebuy whenever price comes back within
// RebuyTrigger of the all-time low, then cycle between the cycle profit
// target and the cycle stop. The tracked low only ever decreases.
type AnchorLow struct {
	InitialProfit decimal.Decimal
	CycleProfit   decimal.Decimal
	CycleLoss     decimal.Decimal
	RebuyTrigger  decimal.Decimal

	phase  int
	low    decimal.Decimal
	lowSet bool
}

func NewAnchorLow() *AnchorLow {
	return &AnchorLow{
		InitialProfit: decimal.NewFromFloat(0.15),
		CycleProfit:   decimal.NewFromFloat(0.10),
		CycleLoss:     decimal.NewFromFloat(0.05),
		RebuyTrigger:  decimal.NewFromFloat(0.03),
		phase:         1,
	}
}

func (s *AnchorLow) Name() string { return "anchor_low" }

// Phase reports the current phase; exported for scenario tests and the
// HTTP result payload.
func (s *AnchorLow) Phase() int { return s.phase }

func (s *AnchorLow) Prepare(*engine.Series) error { return nil }

func (s *AnchorLow) Decide(snap engine.Snapshot) *engine.Intent {
	price := snap.Bar.Close

	// The anchor updates on every bar, in or out of a position.
	if !s.lowSet || price.LessThan(s.low) {
		s.low = price
		s.lowSet = true
	}

	if s.phase == 1 {
		if !snap.Position.IsOpen() {
			return engine.BuyAll()
		}
		target := snap.Position.AvgPrice.Mul(onePlus(s.InitialProfit))
		if price.GreaterThanOrEqual(target) {
			return engine.SellAll()
		}
		return nil
	}

	if !snap.Position.IsOpen() {
		trigger := s.low.Mul(onePlus(s.RebuyTrigger))
		if price.LessThanOrEqual(trigger) {
			return engine.BuyAll()
		}
		return nil
	}
	// Profit target first, then the stop.
	if price.GreaterThanOrEqual(snap.Position.AvgPrice.Mul(onePlus(s.CycleProfit))) {
		return engine.SellAll()
	}
	if price.LessThanOrEqual(snap.Position.AvgPrice.Mul(oneMinus(s.CycleLoss))) {
		return engine.SellAll()
	}
	return nil
}

// NotifyFill advances to phase 2 on the first completed sell. The
// transition is one-way.
func (s *AnchorLow) NotifyFill(order *engine.Order) {
	if order.Status == engine.StatusCompleted && order.Side == engine.TradeSideSell && s.phase == 1 {
		s.phase = 2
	}
}
