package engine

import "github.com/shopspring/decimal"

// Snapshot is everything a strategy may look at on one step.
type Snapshot struct {
	Index    int
	Bar      Bar
	Position Position
	Cash     decimal.Decimal
}

// Strategy is one decision-rule variant. Prepare receives the full series
// once before the run so indicator series can be computed up front; Decide
// is called once per bar when no order is in flight and returns at most one
// intent (nil = hold). Steps inside an indicator's warm-up window must
// return nil rather than error.
//
// NotifyFill delivers every terminally-resolved order, completed or not.
// Variants that carry fill-dependent state (last sell price, phase
// transitions) hang their bookkeeping off completed sells here.
type Strategy interface {
	Name() string
	Prepare(series *Series) error
	Decide(snap Snapshot) *Intent
	NotifyFill(order *Order)
}
