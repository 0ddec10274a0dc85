package engine

import (
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Trade is one completed order as seen by the trade log.
type Trade struct {
	Date       time.Time       `json:"date"`
	Side       TradeSide       `json:"-"`
	SideName   string          `json:"side"`
	Qty        decimal.Decimal `json:"qty"`
	Price      decimal.Decimal `json:"price"`
	Notional   decimal.Decimal `json:"notional"`
	Commission decimal.Decimal `json:"commission"`
}

// Broker owns the account, the position and the single in-flight order.
// It enforces the one-order-at-a-time discipline: Submit while an order is
// in flight is a programming error surfaced to the driver.
type Broker struct {
	account  Account
	position Position
	percent  decimal.Decimal // fraction of cash consumed by SizingPercent buys
	inflight *Order
	trades   []Trade
	log      *zap.Logger
}

func NewBroker(initialCash, commissionRate, sizingPercent decimal.Decimal, log *zap.Logger) *Broker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Broker{
		account: Account{Cash: initialCash, CommissionRate: commissionRate},
		percent: sizingPercent,
		log:     log,
	}
}

func (b *Broker) Cash() decimal.Decimal { return b.account.Cash }
func (b *Broker) Position() Position    { return b.position }
func (b *Broker) InFlight() bool        { return b.inflight != nil }

// Trades returns the completed trade log. Callers must not mutate it.
func (b *Broker) Trades() []Trade { return b.trades }

// Equity is cash plus position value at the given price.
func (b *Broker) Equity(price decimal.Decimal) decimal.Decimal {
	return b.account.Cash.Add(b.position.MarketValue(price))
}

// Submit creates the in-flight order for a strategy intent.
func (b *Broker) Submit(intent Intent, barIndex int) (*Order, error) {
	if b.inflight != nil {
		return nil, errOrderInFlight
	}
	o := newOrder(intent, barIndex)
	if err := o.setStatus(StatusAccepted); err != nil {
		return nil, err
	}
	b.inflight = o
	return o, nil
}

// Resolve fills the in-flight order against the bar's close: zero slippage,
// zero spread, same-bar settlement. The returned order is terminal; nil
// means nothing was in flight. Rejections clear the order without touching
// the ledger - the strategy re-decides on a later step, there is no retry.
func (b *Broker) Resolve(bar Bar) (*Order, error) {
	o := b.inflight
	if o == nil {
		return nil, nil
	}
	b.inflight = nil

	price := bar.Close
	switch o.Side {
	case TradeSideBuy:
		var qty decimal.Decimal
		if o.Sizing == SizingNotional {
			qty = o.Notional.Div(price)
		} else {
			qty = b.account.Cash.Mul(b.percent).Div(price)
		}
		if qty.Sign() <= 0 {
			if err := o.setStatus(StatusRejected); err != nil {
				return nil, err
			}
			b.log.Warn("order rejected: nothing to buy",
				zap.String("order_id", o.ID), zap.String("date", bar.Date.Format("2006-01-02")))
			return o, nil
		}
		notional := qty.Mul(price)
		if b.account.buyCost(notional).GreaterThan(b.account.Cash) {
			if err := o.setStatus(StatusMarginRejected); err != nil {
				return nil, err
			}
			b.log.Warn("order failed: margin rejected",
				zap.String("order_id", o.ID),
				zap.String("date", bar.Date.Format("2006-01-02")),
				zap.String("notional", notional.StringFixed(2)),
				zap.String("cash", b.account.Cash.StringFixed(2)))
			return o, nil
		}
		fee := b.account.settleBuy(notional)
		b.position.applyBuy(price, qty)
		b.complete(o, bar, qty, price, notional, fee)
		return o, nil

	case TradeSideSell:
		if !b.position.IsOpen() {
			if err := o.setStatus(StatusCanceled); err != nil {
				return nil, err
			}
			b.log.Warn("order canceled: no position to close",
				zap.String("order_id", o.ID), zap.String("date", bar.Date.Format("2006-01-02")))
			return o, nil
		}
		qty := b.position.Qty
		notional := qty.Mul(price)
		fee := b.account.settleSell(notional)
		b.position.close()
		b.complete(o, bar, qty, price, notional, fee)
		return o, nil
	}
	return nil, errUnknownSide
}

func (b *Broker) complete(o *Order, bar Bar, qty, price, notional, fee decimal.Decimal) {
	o.FilledQty = qty
	o.FilledPrice = price
	o.FilledNotional = notional
	o.Commission = fee
	// Accepted -> Completed is always legal; setStatus kept for the table.
	_ = o.setStatus(StatusCompleted)
	b.trades = append(b.trades, Trade{
		Date:       bar.Date,
		Side:       o.Side,
		SideName:   o.Side.String(),
		Qty:        qty,
		Price:      price,
		Notional:   notional,
		Commission: fee,
	})
	b.log.Info("trade executed",
		zap.String("date", bar.Date.Format("2006-01-02")),
		zap.String("side", o.Side.String()),
		zap.String("qty", qty.StringFixed(2)),
		zap.String("price", price.StringFixed(4)),
		zap.String("notional", notional.StringFixed(2)),
		zap.String("commission", fee.StringFixed(2)))
}
