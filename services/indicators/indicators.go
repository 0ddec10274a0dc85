// Package indicators wraps go-talib into full-length series aligned with
// the input bars. Entries inside an indicator's warm-up window are NaN so
// strategies can treat them as an implicit hold instead of trading on
// half-initialized values.
package indicators

import (
	"math"

	"github.com/markcheno/go-talib"
)

// Valid reports whether an indicator value is usable (outside warm-up).
func Valid(v float64) bool { return !math.IsNaN(v) }

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// maskWarmup overwrites the first lookback entries with NaN. talib leaves
// zeros there, which are indistinguishable from real values.
func maskWarmup(values []float64, lookback int) []float64 {
	if lookback > len(values) {
		lookback = len(values)
	}
	for i := 0; i < lookback; i++ {
		values[i] = math.NaN()
	}
	return values
}

// SMA is the simple moving average; warm-up is period-1 bars.
func SMA(closes []float64, period int) []float64 {
	if len(closes) < period {
		return nanSlice(len(closes))
	}
	return maskWarmup(talib.Sma(closes, period), period-1)
}

// EMA is the exponential moving average; warm-up is period-1 bars.
func EMA(closes []float64, period int) []float64 {
	if len(closes) < period {
		return nanSlice(len(closes))
	}
	return maskWarmup(talib.Ema(closes, period), period-1)
}

// RSI is the relative strength index; the first value needs period+1 bars.
func RSI(closes []float64, period int) []float64 {
	if len(closes) < period+1 {
		return nanSlice(len(closes))
	}
	return maskWarmup(talib.Rsi(closes, period), period)
}

// MACD returns the fast (DIF) and signal (DEA) lines. The signal line is an
// EMA of the fast line, so warm-up is slow+signal-2 bars.
func MACD(closes []float64, fast, slow, signal int) (macd, sig []float64) {
	lookback := slow + signal - 2
	if len(closes) <= lookback {
		return nanSlice(len(closes)), nanSlice(len(closes))
	}
	m, s, _ := talib.Macd(closes, fast, slow, signal)
	return maskWarmup(m, lookback), maskWarmup(s, lookback)
}

// BBands returns upper, middle and lower Bollinger bands over an SMA basis.
func BBands(closes []float64, period int, dev float64) (upper, middle, lower []float64) {
	if len(closes) < period {
		n := len(closes)
		return nanSlice(n), nanSlice(n), nanSlice(n)
	}
	u, m, l := talib.BBands(closes, period, dev, dev, 0)
	return maskWarmup(u, period-1), maskWarmup(m, period-1), maskWarmup(l, period-1)
}

// Crossover computes the per-bar crossing sign of fast versus slow:
// +1 where fast crosses above slow, -1 where it crosses below, 0 otherwise.
// Bars where either line is still warming up yield 0.
func Crossover(fast, slow []float64) []int {
	n := len(fast)
	if len(slow) < n {
		n = len(slow)
	}
	out := make([]int, n)
	for i := 1; i < n; i++ {
		if !Valid(fast[i-1]) || !Valid(slow[i-1]) || !Valid(fast[i]) || !Valid(slow[i]) {
			continue
		}
		switch {
		case fast[i-1] <= slow[i-1] && fast[i] > slow[i]:
			out[i] = 1
		case fast[i-1] >= slow[i-1] && fast[i] < slow[i]:
			out[i] = -1
		}
	}
	return out
}
