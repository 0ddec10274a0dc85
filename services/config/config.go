// Package config resolves a run's parameters once before the simulation
// starts and produces a reproducibility snapshot: the same config hash
// plus the same data always yields the same trade log.
package config

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fund-backtest/services/engine"
	"fund-backtest/strategies"
)

// RunConfig is the flat parameter set for one simulation run. All fields
// are fixed before Run; there is no runtime reconfiguration.
type RunConfig struct {
	Strategy       string          `json:"strategy"`
	Symbol         string          `json:"symbol"`
	From           string          `json:"from"`
	To             string          `json:"to"`
	InitialCash    decimal.Decimal `json:"initial_cash"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	SizingPercent  decimal.Decimal `json:"sizing_percent"`
}

// NewRunConfig seeds the per-variant ledger defaults.
func NewRunConfig(strategy, symbol string) RunConfig {
	cfg := strategies.DefaultRunConfig(strategy)
	return RunConfig{
		Strategy:       strategy,
		Symbol:         symbol,
		InitialCash:    cfg.InitialCash,
		CommissionRate: cfg.CommissionRate,
		SizingPercent:  cfg.SizingPercent,
	}
}

// EngineConfig converts to the engine's ledger configuration.
func (c RunConfig) EngineConfig() engine.Config {
	return engine.Config{
		InitialCash:    c.InitialCash,
		CommissionRate: c.CommissionRate,
		SizingPercent:  c.SizingPercent,
	}
}

// Snapshot pins a run configuration for reproducibility.
type Snapshot struct {
	ConfigHash string    `json:"config_hash"`
	CreatedAt  time.Time `json:"created_at"`
	Config     RunConfig `json:"config"`
}

// Snapshot hashes the resolved configuration. The hash covers every field
// that affects the trade log.
func (c RunConfig) Snapshot() Snapshot {
	raw, _ := json.Marshal(c)
	return Snapshot{
		ConfigHash: fmt.Sprintf("%x", sha256.Sum256(raw)),
		CreatedAt:  time.Now().UTC(),
		Config:     c,
	}
}
