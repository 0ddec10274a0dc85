package strategies

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"fund-backtest/services/engine"
)

var constructors = map[string]func() engine.Strategy{
	"dma_cross":          func() engine.Strategy { return NewDMACross() },
	"anchor_low":         func() engine.Strategy { return NewAnchorLow() },
	"smart_dca":          func() engine.Strategy { return NewSmartDCA() },
	"smart_dca_only":     func() engine.Strategy { return NewSmartDCAOnly() },
	"bollinger_reversal": func() engine.Strategy { return NewBollingerReversal() },
	"macd_trend":         func() engine.Strategy { return NewMACDTrend() },
	"dual_confirm":       func() engine.Strategy { return NewDualConfirm() },
	"fixed_pct":          func() engine.Strategy { return NewFixedPct() },
	"monthly_invest":     func() engine.Strategy { return NewMonthlyInvest() },
}

// New returns a fresh strategy instance for the given variant name.
// Instances carry mutable state and must not be shared across runs.
func New(name string) (engine.Strategy, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("strategies: unknown variant %q", name)
	}
	return ctor(), nil
}

// Names lists the registered variants, sorted.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRunConfig is the ledger setup each variant was calibrated
// against. The accumulation-only DCA variant keeps a larger cash pool.
func DefaultRunConfig(name string) engine.Config {
	cfg := engine.DefaultConfig()
	if name == "smart_dca_only" {
		cfg.InitialCash = decimal.NewFromInt(200000)
	}
	return cfg
}
