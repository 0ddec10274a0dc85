package engine

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TradeSide int

const (
	TradeSideBuy TradeSide = iota
	TradeSideSell
)

func (s TradeSide) String() string {
	if s == TradeSideBuy {
		return "BUY"
	}
	return "SELL"
}

// SizingKind selects how a buy order is sized. Sells always close the full
// position; a SizingKind on a sell is ignored.
type SizingKind int

const (
	// SizingPercent buys with a configured fraction of available cash.
	SizingPercent SizingKind = iota
	// SizingNotional buys a fixed monetary amount.
	SizingNotional
)

type OrderStatus int

const (
	StatusSubmitted OrderStatus = iota
	StatusAccepted
	StatusCompleted
	StatusCanceled
	StatusMarginRejected
	StatusRejected
)

var statusNames = map[OrderStatus]string{
	StatusSubmitted:      "Submitted",
	StatusAccepted:       "Accepted",
	StatusCompleted:      "Completed",
	StatusCanceled:       "Canceled",
	StatusMarginRejected: "MarginRejected",
	StatusRejected:       "Rejected",
}

func (s OrderStatus) String() string { return statusNames[s] }

// Terminal reports whether the status ends the order lifecycle.
func (s OrderStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCanceled, StatusMarginRejected, StatusRejected:
		return true
	}
	return false
}

// transitions is the closed lifecycle table:
// Submitted -> Accepted -> {Completed, Canceled, MarginRejected, Rejected}.
var transitions = map[OrderStatus][]OrderStatus{
	StatusSubmitted: {StatusAccepted, StatusCanceled, StatusRejected},
	StatusAccepted:  {StatusCompleted, StatusCanceled, StatusMarginRejected, StatusRejected},
}

// Intent is a strategy decision: at most one per step, nil meaning hold.
type Intent struct {
	Side     TradeSide
	Sizing   SizingKind
	Notional decimal.Decimal
}

// BuyAll requests a buy sized by the percent-of-cash policy.
func BuyAll() *Intent { return &Intent{Side: TradeSideBuy, Sizing: SizingPercent} }

// BuyNotional requests a buy of a fixed monetary amount.
func BuyNotional(amount decimal.Decimal) *Intent {
	return &Intent{Side: TradeSideBuy, Sizing: SizingNotional, Notional: amount}
}

// SellAll requests a full close of the position.
func SellAll() *Intent { return &Intent{Side: TradeSideSell} }

// Order tracks one trade request through its lifecycle.
type Order struct {
	ID          string
	Side        TradeSide
	Sizing      SizingKind
	Notional    decimal.Decimal
	Status      OrderStatus
	SubmitIndex int

	FilledQty      decimal.Decimal
	FilledPrice    decimal.Decimal
	FilledNotional decimal.Decimal
	Commission     decimal.Decimal
}

func newOrder(intent Intent, submitIndex int) *Order {
	return &Order{
		ID:          uuid.New().String(),
		Side:        intent.Side,
		Sizing:      intent.Sizing,
		Notional:    intent.Notional,
		Status:      StatusSubmitted,
		SubmitIndex: submitIndex,
	}
}

func (o *Order) setStatus(to OrderStatus) error {
	for _, allowed := range transitions[o.Status] {
		if allowed == to {
			o.Status = to
			return nil
		}
	}
	return fmt.Errorf("order %s: illegal transition %s -> %s", o.ID, o.Status, to)
}
