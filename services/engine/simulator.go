package engine

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Config is the per-run ledger configuration, resolved once before the run.
type Config struct {
	InitialCash    decimal.Decimal
	CommissionRate decimal.Decimal
	SizingPercent  decimal.Decimal // fraction of cash for SizingPercent buys
}

// DefaultConfig mirrors the standard fund backtest setup: 100k cash,
// 0.15% commission, 98% percent sizing.
func DefaultConfig() Config {
	return Config{
		InitialCash:    decimal.NewFromInt(100000),
		CommissionRate: decimal.NewFromFloat(0.0015),
		SizingPercent:  decimal.NewFromFloat(0.98),
	}
}

// Result is everything a run produces for downstream consumers.
type Result struct {
	Strategy    string          `json:"strategy"`
	InitialCash decimal.Decimal `json:"initial_cash"`
	FinalEquity decimal.Decimal `json:"final_equity"`
	Trades      []Trade         `json:"trades"`
	Equity      []EquityPoint   `json:"equity"`
	Returns     []ReturnPoint   `json:"returns"`
}

// Simulator is the synchronous, deterministic driver: one step per bar in
// strict chronological order, no background work, no shared state across
// runs.
type Simulator struct {
	series   *Series
	strategy Strategy
	broker   *Broker
	recorder *PerformanceRecorder
	cfg      Config
	log      *zap.Logger
}

func NewSimulator(series *Series, strategy Strategy, cfg Config, log *zap.Logger) *Simulator {
	if log == nil {
		log = zap.NewNop()
	}
	size := 0
	if series != nil {
		size = series.Len()
	}
	return &Simulator{
		series:   series,
		strategy: strategy,
		broker:   NewBroker(cfg.InitialCash, cfg.CommissionRate, cfg.SizingPercent, log),
		recorder: NewPerformanceRecorder(size),
		cfg:      cfg,
		log:      log,
	}
}

// Run executes the full simulation. Each step: resolve any order left in
// flight at the current bar's close, run the strategy if nothing is in
// flight, resolve the newly submitted order against the same bar (fills
// are same-bar: synthetic NAV bars have open=high=low=close), then record
// the bar's portfolio value.
func (s *Simulator) Run() (*Result, error) {
	if s.series == nil || s.series.Len() == 0 {
		return nil, ErrNoData
	}
	if err := s.strategy.Prepare(s.series); err != nil {
		return nil, err
	}

	for i := 0; i < s.series.Len(); i++ {
		bar := s.series.Bar(i)

		if s.broker.InFlight() {
			if err := s.resolve(bar); err != nil {
				return nil, err
			}
		}

		if !s.broker.InFlight() {
			intent := s.strategy.Decide(Snapshot{
				Index:    i,
				Bar:      bar,
				Position: s.broker.Position(),
				Cash:     s.broker.Cash(),
			})
			if intent != nil {
				if _, err := s.broker.Submit(*intent, i); err != nil {
					return nil, err
				}
				if err := s.resolve(bar); err != nil {
					return nil, err
				}
			}
		}

		s.recorder.Record(bar.Date, s.broker.Equity(bar.Close))
	}

	final := s.broker.Equity(s.series.Last().Close)
	s.log.Info("backtest finished",
		zap.String("strategy", s.strategy.Name()),
		zap.Int("bars", s.series.Len()),
		zap.Int("trades", len(s.broker.Trades())),
		zap.String("initial_cash", s.cfg.InitialCash.StringFixed(2)),
		zap.String("final_equity", final.StringFixed(2)))

	return &Result{
		Strategy:    s.strategy.Name(),
		InitialCash: s.cfg.InitialCash,
		FinalEquity: final,
		Trades:      s.broker.Trades(),
		Equity:      s.recorder.Equity(),
		Returns:     s.recorder.Returns(),
	}, nil
}

func (s *Simulator) resolve(bar Bar) error {
	order, err := s.broker.Resolve(bar)
	if err != nil {
		return err
	}
	if order != nil {
		s.strategy.NotifyFill(order)
	}
	return nil
}
