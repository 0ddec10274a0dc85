package strategies

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryNames(t *testing.T) {
	want := []string{
		"anchor_low",
		"bollinger_reversal",
		"dma_cross",
		"dual_confirm",
		"fixed_pct",
		"macd_trend",
		"monthly_invest",
		"smart_dca",
		"smart_dca_only",
	}
	assert.Equal(t, want, Names())
}

func TestRegistryNewReturnsFreshInstances(t *testing.T) {
	a, err := New("anchor_low")
	require.NoError(t, err)
	b, err := New("anchor_low")
	require.NoError(t, err)

	// Instances carry run state and must never be shared.
	assert.NotSame(t, a, b)
	assert.Equal(t, "anchor_low", a.Name())
}

func TestRegistryUnknownVariant(t *testing.T) {
	_, err := New("martingale")
	assert.Error(t, err)
}
