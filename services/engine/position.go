package engine

import "github.com/shopspring/decimal"

// Position is the long-only holding. Qty zero means flat; a full-close
// sell resets both fields.
type Position struct {
	Qty      decimal.Decimal
	AvgPrice decimal.Decimal
}

func (p Position) IsOpen() bool { return p.Qty.Sign() > 0 }

// applyBuy folds a fill into the weighted-average cost basis.
func (p *Position) applyBuy(price, qty decimal.Decimal) {
	if qty.Sign() <= 0 {
		return
	}
	newQty := p.Qty.Add(qty)
	p.AvgPrice = p.AvgPrice.Mul(p.Qty).Add(price.Mul(qty)).Div(newQty)
	p.Qty = newQty
}

// close flattens the position. Sells are always full closes.
func (p *Position) close() {
	p.Qty = decimal.Zero
	p.AvgPrice = decimal.Zero
}

// MarketValue is quantity times the given price.
func (p *Position) MarketValue(price decimal.Decimal) decimal.Decimal {
	return p.Qty.Mul(price)
}
