package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"fund-backtest/services/config"
	"fund-backtest/services/engine"
	"fund-backtest/services/marketdata"
	"fund-backtest/services/report"
	"fund-backtest/strategies"
)

func main() {
	// Flags
	strategyName := flag.String("strategy", "dma_cross",
		"Strategy variant: "+strings.Join(strategies.Names(), ", "))
	csvPath := flag.String("csv", "", "Path to local NAV CSV (date,close); if set, skip ClickHouse")
	benchCSV := flag.String("benchmark-csv", "", "Path to benchmark close CSV (date,close)")
	chAddr := flag.String("ch-addr", "localhost:19000", "ClickHouse native address")
	chDB := flag.String("ch-db", "fundbacktest", "ClickHouse database")
	chTable := flag.String("ch-table", "nav", "ClickHouse NAV table")
	chUser := flag.String("ch-user", "fundbacktest", "ClickHouse user")
	chPass := flag.String("ch-pass", "fundbacktest123", "ClickHouse password")
	symbol := flag.String("symbol", "001632", "Fund symbol")
	from := flag.String("from", "2020-08-12", "Start date (YYYY-MM-DD)")
	to := flag.String("to", "2025-01-27", "End date (YYYY-MM-DD)")
	initialCash := flag.String("initial-cash", "", "Initial cash override")
	commission := flag.String("commission", "", "Commission rate override (e.g. 0.0015)")
	reportOut := flag.String("report", "", "HTML comparison report output path")
	returnsOut := flag.String("returns-csv", "", "Period-return CSV output path")
	arrowOut := flag.String("arrow-out", "", "Arrow IPC output path for equity/returns")
	verbose := flag.Bool("verbose", false, "Log every trade to stderr")
	flag.Parse()

	logger := newLogger(*verbose)
	defer logger.Sync()

	// Resolve configuration once, before the run.
	runCfg := config.NewRunConfig(*strategyName, *symbol)
	runCfg.From = *from
	runCfg.To = *to
	if *initialCash != "" {
		runCfg.InitialCash = mustDecimal(*initialCash, "initial-cash")
	}
	if *commission != "" {
		runCfg.CommissionRate = mustDecimal(*commission, "commission")
	}
	snapshot := runCfg.Snapshot()
	logger.Info("run configured",
		zap.String("strategy", runCfg.Strategy),
		zap.String("symbol", runCfg.Symbol),
		zap.String("config_hash", snapshot.ConfigHash))

	strat, err := strategies.New(*strategyName)
	if err != nil {
		fatal(logger, "unknown strategy", err)
	}

	series, err := loadSeries(*csvPath, marketdata.ClickHouseConfig{
		Addr:     *chAddr,
		Database: *chDB,
		Username: *chUser,
		Password: *chPass,
		Table:    *chTable,
	}, *symbol, *from, *to)
	if err != nil {
		// Data unavailable: the run never starts on partial data.
		fatal(logger, "load price data", err)
	}

	sim := engine.NewSimulator(series, strat, runCfg.EngineConfig(), logger)
	result, err := sim.Run()
	if err != nil {
		fatal(logger, "backtest run", err)
	}

	printSummary(result, series)

	// Reporting failures are isolated: the run already has its results.
	var benchmark []engine.ReturnPoint
	if *benchCSV != "" {
		benchSeries, err := marketdata.LoadCSV(*benchCSV)
		if err != nil {
			logger.Error("benchmark load failed, report will be strategy-only", zap.Error(err))
		} else {
			benchmark = report.BenchmarkReturns(benchSeries)
		}
	}
	if *reportOut != "" {
		title := fmt.Sprintf("%s - %s vs. benchmark", *symbol, result.Strategy)
		if err := report.Generate(*reportOut, title, result.Returns, benchmark); err != nil {
			logger.Error("report generation failed", zap.Error(err))
		} else {
			fmt.Printf("Report written to %s\n", *reportOut)
		}
	}
	if *returnsOut != "" {
		if err := report.WriteReturnsCSV(*returnsOut, result.Returns); err != nil {
			logger.Error("returns CSV export failed", zap.Error(err))
		}
	}
	if *arrowOut != "" {
		if err := report.WriteArrowFile(*arrowOut, result.Equity, result.Returns); err != nil {
			logger.Error("arrow export failed", zap.Error(err))
		}
	}
}

func loadSeries(csvPath string, chCfg marketdata.ClickHouseConfig, symbol, from, to string) (*engine.Series, error) {
	if csvPath != "" {
		return marketdata.LoadCSV(csvPath)
	}
	fromDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, fmt.Errorf("bad -from date: %w", err)
	}
	toDate, err := time.Parse("2006-01-02", to)
	if err != nil {
		return nil, fmt.Errorf("bad -to date: %w", err)
	}
	store, err := marketdata.NewClickHouseStore(chCfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return store.LoadBars(ctx, symbol, fromDate, toDate)
}

func printSummary(result *engine.Result, series *engine.Series) {
	p := message.NewPrinter(language.English)
	fmt.Println("=== Backtest Summary ===")
	p.Printf("Strategy:      %s\n", result.Strategy)
	p.Printf("Bars:          %d\n", series.Len())
	p.Printf("Trades:        %d\n", len(result.Trades))
	p.Printf("Initial cash:  %.2f\n", result.InitialCash.InexactFloat64())
	p.Printf("Final equity:  %.2f\n", result.FinalEquity.InexactFloat64())
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger
}

func mustDecimal(s, name string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(fmt.Errorf("bad -%s value %q: %w", name, s, err))
	}
	return d
}

func fatal(logger *zap.Logger, msg string, err error) {
	logger.Error(msg, zap.Error(err))
	logger.Sync()
	os.Exit(1)
}
