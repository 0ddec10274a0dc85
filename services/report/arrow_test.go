package report

import (
	"bytes"
	"testing"

	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/ipc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fund-backtest/services/engine"
)

func equityPoints(values ...int64) []engine.EquityPoint {
	out := make([]engine.EquityPoint, len(values))
	for i, v := range values {
		out[i] = engine.EquityPoint{Date: day(i), Equity: decimal.NewFromInt(v)}
	}
	return out
}

func TestWriteArrowRoundTrip(t *testing.T) {
	equity := equityPoints(100000, 101000, 99990)
	returns := []engine.ReturnPoint{
		{Date: day(1), Return: 0.01},
		{Date: day(2), Return: -0.01},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteArrow(&buf, equity, returns))

	reader, err := ipc.NewReader(&buf)
	require.NoError(t, err)
	defer reader.Release()

	require.True(t, reader.Next())
	record := reader.Record()
	require.EqualValues(t, 3, record.NumRows())

	dates := record.Column(0).(*array.Int64)
	equities := record.Column(1).(*array.Float64)
	rets := record.Column(2).(*array.Float64)

	assert.Equal(t, day(0).UnixMilli(), dates.Value(0))
	assert.Equal(t, day(2).UnixMilli(), dates.Value(2))
	assert.InDelta(t, 100000, equities.Value(0), 1e-9)
	assert.InDelta(t, 99990, equities.Value(2), 1e-9)
	// First row carries a zero return by convention.
	assert.Equal(t, 0.0, rets.Value(0))
	assert.InDelta(t, 0.01, rets.Value(1), 1e-12)
	assert.InDelta(t, -0.01, rets.Value(2), 1e-12)

	assert.False(t, reader.Next())
}

func TestWriteArrowMisalignedReturns(t *testing.T) {
	var buf bytes.Buffer
	err := WriteArrow(&buf, equityPoints(100, 200), nil)
	assert.Error(t, err)
}

func TestWriteArrowEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteArrow(&buf, nil, nil))
}
