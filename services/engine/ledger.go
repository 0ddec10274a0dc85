package engine

import "github.com/shopspring/decimal"

// Account is the cash ledger for one simulation run. Cash is mutated only
// by completed fills and never goes negative: a buy whose full cost exceeds
// available cash is margin-rejected, not partially filled.
type Account struct {
	Cash           decimal.Decimal
	CommissionRate decimal.Decimal
}

// buyCost is notional plus commission for a buy of the given notional.
func (a *Account) buyCost(notional decimal.Decimal) decimal.Decimal {
	return notional.Add(notional.Mul(a.CommissionRate))
}

// settleBuy deducts notional*(1+c) from cash and returns the commission.
func (a *Account) settleBuy(notional decimal.Decimal) decimal.Decimal {
	fee := notional.Mul(a.CommissionRate)
	a.Cash = a.Cash.Sub(notional).Sub(fee)
	return fee
}

// settleSell credits notional*(1-c) to cash and returns the commission.
func (a *Account) settleSell(notional decimal.Decimal) decimal.Decimal {
	fee := notional.Mul(a.CommissionRate)
	a.Cash = a.Cash.Add(notional).Sub(fee)
	return fee
}
