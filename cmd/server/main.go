// Package main implements the HTTP backtesting service: submit a variant
// plus a NAV series, get the trade log, return series and summary back.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"fund-backtest/services/config"
	"fund-backtest/services/engine"
	"fund-backtest/services/report"
	"fund-backtest/strategies"
)

// apiError is the service error taxonomy.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

const (
	codeInvalidStrategy = "INVALID_STRATEGY"
	codeInvalidParams   = "INVALID_PARAMS"
	codeDataNotFound    = "DATA_NOT_FOUND"
	codeExecutionFailed = "EXECUTION_FAILED"
)

type barPayload struct {
	Date  string          `json:"date" binding:"required"`
	Close decimal.Decimal `json:"close" binding:"required"`
}

type backtestRequest struct {
	Strategy       string           `json:"strategy" binding:"required"`
	Symbol         string           `json:"symbol"`
	Bars           []barPayload     `json:"bars" binding:"required"`
	Benchmark      []barPayload     `json:"benchmark"`
	InitialCash    *decimal.Decimal `json:"initial_cash"`
	CommissionRate *decimal.Decimal `json:"commission_rate"`
}

type backtestResponse struct {
	JobID      string         `json:"job_id"`
	ConfigHash string         `json:"config_hash"`
	Result     *engine.Result `json:"result"`
	Stats      report.Stats   `json:"stats"`
	Benchmark  *report.Stats  `json:"benchmark_stats,omitempty"`
	DurationMs int64          `json:"duration_ms"`
}

type backtestService struct {
	logger *zap.Logger
}

func (s *backtestService) listStrategies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"strategies": strategies.Names()})
}

func (s *backtestService) runBacktest(c *gin.Context) {
	start := time.Now()
	jobID := uuid.New().String()

	var req backtestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apiError{Code: codeInvalidParams, Message: "invalid request body", Details: err.Error()})
		return
	}

	strat, err := strategies.New(req.Strategy)
	if err != nil {
		c.JSON(http.StatusBadRequest, apiError{Code: codeInvalidStrategy, Message: "unknown strategy variant", Details: err.Error()})
		return
	}

	series, err := toSeries(req.Bars)
	if err != nil {
		c.JSON(http.StatusBadRequest, apiError{Code: codeDataNotFound, Message: "unusable price data", Details: err.Error()})
		return
	}

	runCfg := config.NewRunConfig(req.Strategy, req.Symbol)
	if req.InitialCash != nil {
		runCfg.InitialCash = *req.InitialCash
	}
	if req.CommissionRate != nil {
		runCfg.CommissionRate = *req.CommissionRate
	}
	snapshot := runCfg.Snapshot()

	s.logger.Info("starting backtest",
		zap.String("job_id", jobID),
		zap.String("strategy", req.Strategy),
		zap.String("symbol", req.Symbol),
		zap.Int("bars", series.Len()),
		zap.String("config_hash", snapshot.ConfigHash))

	sim := engine.NewSimulator(series, strat, runCfg.EngineConfig(), s.logger)
	result, err := sim.Run()
	if err != nil {
		s.logger.Error("backtest failed", zap.String("job_id", jobID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, apiError{Code: codeExecutionFailed, Message: "backtest execution failed", Details: err.Error()})
		return
	}

	resp := backtestResponse{
		JobID:      jobID,
		ConfigHash: snapshot.ConfigHash,
		Result:     result,
		Stats:      report.ComputeStats(result.Returns),
		DurationMs: time.Since(start).Milliseconds(),
	}
	if len(req.Benchmark) > 0 {
		if benchSeries, err := toSeries(req.Benchmark); err != nil {
			// Benchmark trouble never invalidates the run itself.
			s.logger.Warn("benchmark ignored", zap.String("job_id", jobID), zap.Error(err))
		} else {
			stats := report.ComputeStats(report.BenchmarkReturns(benchSeries))
			resp.Benchmark = &stats
		}
	}

	c.JSON(http.StatusOK, resp)
}

func toSeries(payload []barPayload) (*engine.Series, error) {
	bars := make([]engine.Bar, 0, len(payload))
	for _, p := range payload {
		date, err := time.Parse("2006-01-02", p.Date)
		if err != nil {
			return nil, err
		}
		bars = append(bars, engine.NewBar(date, p.Close))
	}
	return engine.NewSeries(bars)
}

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	svc := &backtestService{logger: logger}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/strategies", svc.listStrategies)
	router.POST("/backtest", svc.runBacktest)

	server := &http.Server{Addr: *addr, Handler: router}

	go func() {
		logger.Info("backtest service listening", zap.String("addr", *addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
