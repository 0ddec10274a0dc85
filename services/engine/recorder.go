package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// EquityPoint is the portfolio value (cash + position) at one bar.
type EquityPoint struct {
	Date   time.Time       `json:"date"`
	Equity decimal.Decimal `json:"equity"`
}

// ReturnPoint is the period return between two consecutive bars.
type ReturnPoint struct {
	Date   time.Time `json:"date"`
	Return float64   `json:"return"`
}

// PerformanceRecorder accumulates the per-bar equity trajectory and the
// derived period-return series. Append-only, chronological; risk metrics
// are the report step's business, not ours.
type PerformanceRecorder struct {
	equity  []EquityPoint
	returns []ReturnPoint
}

func NewPerformanceRecorder(capacity int) *PerformanceRecorder {
	return &PerformanceRecorder{
		equity:  make([]EquityPoint, 0, capacity),
		returns: make([]ReturnPoint, 0, capacity),
	}
}

// Record appends one equity observation. From the second bar on it also
// appends the period return against the previous equity value.
func (r *PerformanceRecorder) Record(date time.Time, equity decimal.Decimal) {
	if n := len(r.equity); n > 0 {
		prev := r.equity[n-1].Equity
		ret := 0.0
		if prev.Sign() != 0 {
			ret = equity.Div(prev).InexactFloat64() - 1
		}
		r.returns = append(r.returns, ReturnPoint{Date: date, Return: ret})
	}
	r.equity = append(r.equity, EquityPoint{Date: date, Equity: equity})
}

func (r *PerformanceRecorder) Equity() []EquityPoint  { return r.equity }
func (r *PerformanceRecorder) Returns() []ReturnPoint { return r.returns }
