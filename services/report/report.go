// Package report turns a run's period-return series into the comparison
// artifact against the benchmark: summary statistics, an HTML report and a
// per-period CSV. It is the last, isolated step of a run - a failure here
// is logged by the caller and never invalidates the simulation results.
package report

import (
	"fmt"
	"html/template"
	"math"
	"os"

	"gonum.org/v1/gonum/stat"

	"fund-backtest/services/engine"
)

const tradingDaysPerYear = 252

// Stats are the headline risk/return numbers for one return series.
type Stats struct {
	TotalReturn float64 `json:"total_return"`
	CAGR        float64 `json:"cagr"`
	Volatility  float64 `json:"volatility"`
	Sharpe      float64 `json:"sharpe"`
	MaxDrawdown float64 `json:"max_drawdown"`
}

// ComputeStats derives the summary statistics from a period-return series.
// Annualization assumes daily bars.
func ComputeStats(returns []engine.ReturnPoint) Stats {
	n := len(returns)
	if n == 0 {
		return Stats{}
	}

	values := make([]float64, n)
	cum := 1.0
	peak := 1.0
	maxDD := 0.0
	for i, p := range returns {
		values[i] = p.Return
		cum *= 1 + p.Return
		if cum > peak {
			peak = cum
		}
		if dd := cum/peak - 1; dd < maxDD {
			maxDD = dd
		}
	}

	mean := stat.Mean(values, nil)
	std := 0.0
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	sharpe := 0.0
	if std > 0 {
		sharpe = mean / std * math.Sqrt(tradingDaysPerYear)
	}
	years := float64(n) / tradingDaysPerYear
	cagr := 0.0
	if years > 0 && cum > 0 {
		cagr = math.Pow(cum, 1/years) - 1
	}

	return Stats{
		TotalReturn: cum - 1,
		CAGR:        cagr,
		Volatility:  std * math.Sqrt(tradingDaysPerYear),
		Sharpe:      sharpe,
		MaxDrawdown: maxDD,
	}
}

// BenchmarkReturns converts a benchmark close series into close-to-close
// period returns. The benchmark is passed in explicitly; it is scoped to
// one run, never shared process-wide.
func BenchmarkReturns(series *engine.Series) []engine.ReturnPoint {
	if series == nil || series.Len() < 2 {
		return nil
	}
	out := make([]engine.ReturnPoint, 0, series.Len()-1)
	for i := 1; i < series.Len(); i++ {
		prev := series.Bar(i - 1).Close
		cur := series.Bar(i).Close
		ret := 0.0
		if prev.Sign() != 0 {
			ret = cur.Div(prev).InexactFloat64() - 1
		}
		out = append(out, engine.ReturnPoint{Date: series.Bar(i).Date, Return: ret})
	}
	return out
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
td, th { border: 1px solid #999; padding: 6px 12px; text-align: right; }
th:first-child, td:first-child { text-align: left; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Period: {{.From}} to {{.To}} ({{.Periods}} periods)</p>
<table>
<tr><th>Metric</th><th>Strategy</th><th>Benchmark</th></tr>
<tr><td>Total Return</td><td>{{.Strategy.TotalReturn}}</td><td>{{.Benchmark.TotalReturn}}</td></tr>
<tr><td>CAGR</td><td>{{.Strategy.CAGR}}</td><td>{{.Benchmark.CAGR}}</td></tr>
<tr><td>Volatility (ann.)</td><td>{{.Strategy.Volatility}}</td><td>{{.Benchmark.Volatility}}</td></tr>
<tr><td>Sharpe</td><td>{{.Strategy.Sharpe}}</td><td>{{.Benchmark.Sharpe}}</td></tr>
<tr><td>Max Drawdown</td><td>{{.Strategy.MaxDrawdown}}</td><td>{{.Benchmark.MaxDrawdown}}</td></tr>
</table>
</body>
</html>
`))

// tmplColumn is one preformatted table column. A missing benchmark
// renders as "n/a" rather than a flat-looking 0.00% column.
type tmplColumn struct {
	TotalReturn string
	CAGR        string
	Volatility  string
	Sharpe      string
	MaxDrawdown string
}

func toColumn(s Stats) tmplColumn {
	return tmplColumn{
		TotalReturn: fmt.Sprintf("%.2f%%", s.TotalReturn*100),
		CAGR:        fmt.Sprintf("%.2f%%", s.CAGR*100),
		Volatility:  fmt.Sprintf("%.2f%%", s.Volatility*100),
		Sharpe:      fmt.Sprintf("%.2f", s.Sharpe),
		MaxDrawdown: fmt.Sprintf("%.2f%%", s.MaxDrawdown*100),
	}
}

var naColumn = tmplColumn{
	TotalReturn: "n/a",
	CAGR:        "n/a",
	Volatility:  "n/a",
	Sharpe:      "n/a",
	MaxDrawdown: "n/a",
}

// Generate writes the HTML comparison report for a run.
func Generate(path, title string, strategy, benchmark []engine.ReturnPoint) error {
	if len(strategy) == 0 {
		return fmt.Errorf("report: no strategy returns")
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer file.Close()

	benchCol := naColumn
	if len(benchmark) > 0 {
		benchCol = toColumn(ComputeStats(benchmark))
	}
	data := struct {
		Title     string
		From, To  string
		Periods   int
		Strategy  tmplColumn
		Benchmark tmplColumn
	}{
		Title:     title,
		From:      strategy[0].Date.Format("2006-01-02"),
		To:        strategy[len(strategy)-1].Date.Format("2006-01-02"),
		Periods:   len(strategy),
		Strategy:  toColumn(ComputeStats(strategy)),
		Benchmark: benchCol,
	}
	if err := reportTmpl.Execute(file, data); err != nil {
		return fmt.Errorf("report: render %s: %w", path, err)
	}
	return nil
}

// WriteReturnsCSV dumps the period-return series as date,return rows.
func WriteReturnsCSV(path string, returns []engine.ReturnPoint) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer file.Close()

	if _, err := fmt.Fprintln(file, "date,return"); err != nil {
		return err
	}
	for _, p := range returns {
		if _, err := fmt.Fprintf(file, "%s,%.8f\n", p.Date.Format("2006-01-02"), p.Return); err != nil {
			return err
		}
	}
	return nil
}
