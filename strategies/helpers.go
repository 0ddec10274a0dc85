package strategies

import (
	"time"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

func onePlus(pct decimal.Decimal) decimal.Decimal  { return one.Add(pct) }
func oneMinus(pct decimal.Decimal) decimal.Decimal { return one.Sub(pct) }

// monthlyGate implements the shared periodic-investment gate: a bar is
// eligible when its month-of-year differs from the last invested month and
// its day has reached the configured investment day. Day-of-month >= keeps
// the first trading day after holidays eligible.
func monthlyGate(date time.Time, investmentDay int, lastMonth time.Month) bool {
	return date.Month() != lastMonth && date.Day() >= investmentDay
}
