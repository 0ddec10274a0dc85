// Package marketdata loads fund NAV and benchmark close series from CSV
// files or ClickHouse. Loaders hand back validated, date-ordered bars; a
// run never starts on partial or unordered data.
package marketdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fund-backtest/services/engine"
)

const dateLayout = "2006-01-02"

// LoadCSV reads a date,close file into bars. A header row is skipped when
// the first field does not parse as a date. The synthetic volume and
// open-interest fields are filled in by the bar constructor.
func LoadCSV(path string) (*engine.Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("marketdata: open %s: %w", path, err)
	}
	defer file.Close()
	return ReadCSV(file)
}

// ReadCSV is LoadCSV over an arbitrary reader.
func ReadCSV(r io.Reader) (*engine.Series, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	var bars []engine.Bar
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("marketdata: read csv line %d: %w", line+1, err)
		}
		line++
		if len(record) < 2 {
			return nil, fmt.Errorf("marketdata: csv line %d: want date,close got %d fields", line, len(record))
		}
		date, err := time.Parse(dateLayout, strings.TrimSpace(record[0]))
		if err != nil {
			if line == 1 {
				continue // header
			}
			return nil, fmt.Errorf("marketdata: csv line %d: bad date %q: %w", line, record[0], err)
		}
		close, err := decimal.NewFromString(strings.TrimSpace(record[1]))
		if err != nil {
			return nil, fmt.Errorf("marketdata: csv line %d: bad close %q: %w", line, record[1], err)
		}
		bars = append(bars, engine.NewBar(date, close))
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("marketdata: %w", engine.ErrNoData)
	}
	return engine.NewSeries(bars)
}
