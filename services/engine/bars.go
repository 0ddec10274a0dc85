package engine

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Bar is one daily NAV observation. Fund NAV feeds only publish a single
// price per day, so the synthetic OHLC convention is open=high=low=close
// with a fixed placeholder volume and zero open interest.
type Bar struct {
	Date         time.Time
	Close        decimal.Decimal
	Volume       decimal.Decimal
	OpenInterest decimal.Decimal
}

var syntheticVolume = decimal.NewFromInt(1000)

// NewBar builds a bar with the synthetic volume/open-interest pair.
func NewBar(date time.Time, close decimal.Decimal) Bar {
	return Bar{
		Date:         date,
		Close:        close,
		Volume:       syntheticVolume,
		OpenInterest: decimal.Zero,
	}
}

// Series is an immutable, date-ordered bar sequence. It keeps a float64
// mirror of the closes for indicator calculations; money stays decimal.
type Series struct {
	bars   []Bar
	closes []float64
}

// NewSeries validates ordering and wraps the bars. Dates must be strictly
// increasing; duplicates are a data error, not something to dedupe here.
func NewSeries(bars []Bar) (*Series, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("series: no bars")
	}
	closes := make([]float64, len(bars))
	for i, b := range bars {
		if i > 0 && !b.Date.After(bars[i-1].Date) {
			return nil, fmt.Errorf("series: bar %d (%s) not after bar %d (%s)",
				i, b.Date.Format("2006-01-02"), i-1, bars[i-1].Date.Format("2006-01-02"))
		}
		if b.Close.Sign() <= 0 {
			return nil, fmt.Errorf("series: bar %d (%s) has non-positive close %s",
				i, b.Date.Format("2006-01-02"), b.Close)
		}
		closes[i] = b.Close.InexactFloat64()
	}
	return &Series{bars: bars, closes: closes}, nil
}

func (s *Series) Len() int      { return len(s.bars) }
func (s *Series) Bar(i int) Bar { return s.bars[i] }
func (s *Series) First() Bar    { return s.bars[0] }
func (s *Series) Last() Bar     { return s.bars[len(s.bars)-1] }

// Closes returns the float64 close mirror. Callers must not mutate it.
func (s *Series) Closes() []float64 { return s.closes }
