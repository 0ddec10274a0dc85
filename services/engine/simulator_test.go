package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted replays a fixed intent per bar index; used to exercise the
// driver without real decision logic.
type scripted struct {
	intents map[int]*Intent
	fills   []*Order
}

func (s *scripted) Name() string            { return "scripted" }
func (s *scripted) Prepare(*Series) error   { return nil }
func (s *scripted) NotifyFill(o *Order)     { s.fills = append(s.fills, o) }
func (s *scripted) Decide(snap Snapshot) *Intent {
	return s.intents[snap.Index]
}

func testConfig() Config {
	return Config{
		InitialCash:    decimal.NewFromInt(100000),
		CommissionRate: decimal.NewFromFloat(0.0015),
		SizingPercent:  decimal.NewFromFloat(0.98),
	}
}

func TestSimulatorSameBarFill(t *testing.T) {
	series, err := NewSeries(barsFromCloses(10, 11, 12, 13))
	require.NoError(t, err)

	strat := &scripted{intents: map[int]*Intent{1: BuyAll()}}
	sim := NewSimulator(series, strat, testConfig(), nil)
	result, err := sim.Run()
	require.NoError(t, err)

	require.Len(t, result.Trades, 1)
	trade := result.Trades[0]
	assert.True(t, trade.Date.Equal(day(1)))
	assert.True(t, trade.Price.Equal(decimal.NewFromInt(11)))
	require.Len(t, strat.fills, 1)
	assert.Equal(t, StatusCompleted, strat.fills[0].Status)
}

func TestSimulatorDeterminism(t *testing.T) {
	run := func() *Result {
		series, err := NewSeries(barsFromCloses(10, 12, 9, 14, 13, 15, 8, 11))
		require.NoError(t, err)
		strat := &scripted{intents: map[int]*Intent{
			0: BuyAll(),
			2: SellAll(),
			4: BuyNotional(decimal.NewFromInt(20000)),
			6: SellAll(),
		}}
		sim := NewSimulator(series, strat, testConfig(), nil)
		result, err := sim.Run()
		require.NoError(t, err)
		return result
	}

	a, b := run(), run()
	require.Equal(t, len(a.Trades), len(b.Trades))
	for i := range a.Trades {
		assert.True(t, a.Trades[i].Qty.Equal(b.Trades[i].Qty))
		assert.True(t, a.Trades[i].Price.Equal(b.Trades[i].Price))
		assert.True(t, a.Trades[i].Commission.Equal(b.Trades[i].Commission))
	}
	assert.True(t, a.FinalEquity.Equal(b.FinalEquity))
}

func TestSimulatorInvariants(t *testing.T) {
	series, err := NewSeries(barsFromCloses(10, 5, 20, 2, 40, 1, 50, 3, 30, 7))
	require.NoError(t, err)

	// Buy on every even bar, sell on every odd one; the broker must keep
	// cash and quantity non-negative throughout.
	intents := map[int]*Intent{}
	for i := 0; i < series.Len(); i++ {
		if i%2 == 0 {
			intents[i] = BuyAll()
		} else {
			intents[i] = SellAll()
		}
	}
	sim := NewSimulator(series, &scripted{intents: intents}, testConfig(), nil)
	result, err := sim.Run()
	require.NoError(t, err)

	for _, p := range result.Equity {
		assert.True(t, p.Equity.Sign() > 0, "equity at %s", p.Date)
	}
	assert.True(t, sim.broker.Cash().Sign() >= 0)
	assert.True(t, sim.broker.Position().Qty.Sign() >= 0)
	assert.Len(t, result.Equity, series.Len())
	assert.Len(t, result.Returns, series.Len()-1)
}

func TestSimulatorRejectionIsNotFatal(t *testing.T) {
	series, err := NewSeries(barsFromCloses(10, 10, 10))
	require.NoError(t, err)

	// A notional buy larger than cash is margin-rejected and the run
	// carries on without ledger changes.
	strat := &scripted{intents: map[int]*Intent{1: BuyNotional(decimal.NewFromInt(500000))}}
	sim := NewSimulator(series, strat, testConfig(), nil)
	result, err := sim.Run()
	require.NoError(t, err)

	assert.Empty(t, result.Trades)
	require.Len(t, strat.fills, 1)
	assert.Equal(t, StatusMarginRejected, strat.fills[0].Status)
	assert.True(t, result.FinalEquity.Equal(decimal.NewFromInt(100000)))
}

func TestSimulatorNoData(t *testing.T) {
	sim := NewSimulator(nil, &scripted{}, testConfig(), nil)
	_, err := sim.Run()
	assert.ErrorIs(t, err, ErrNoData)
}
