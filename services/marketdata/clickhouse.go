package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/shopspring/decimal"

	"fund-backtest/services/engine"
)

// ClickHouseConfig carries the connection settings for the NAV store.
type ClickHouseConfig struct {
	Addr     string
	Database string
	Username string
	Password string
	Table    string
}

// ClickHouseStore reads NAV and benchmark close series from the nav table
// (symbol String, nav_date Date, close Decimal(18,6)).
type ClickHouseStore struct {
	conn driver.Conn
	cfg  ClickHouseConfig
}

func NewClickHouseStore(cfg ClickHouseConfig) (*ClickHouseStore, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marketdata: connect clickhouse: %w", err)
	}
	return &ClickHouseStore{conn: conn, cfg: cfg}, nil
}

func (s *ClickHouseStore) Close() error { return s.conn.Close() }

// LoadBars pulls the date-filtered close series for one symbol, ordered by
// date. The window is [from, to] inclusive.
func (s *ClickHouseStore) LoadBars(ctx context.Context, symbol string, from, to time.Time) (*engine.Series, error) {
	query := fmt.Sprintf(`
SELECT nav_date, close
FROM %s.%s
WHERE symbol = ? AND nav_date >= ? AND nav_date <= ?
ORDER BY nav_date`, s.cfg.Database, s.cfg.Table)

	rows, err := s.conn.Query(ctx, query, symbol, from, to)
	if err != nil {
		return nil, fmt.Errorf("marketdata: query nav for %s: %w", symbol, err)
	}
	defer rows.Close()

	var bars []engine.Bar
	for rows.Next() {
		var (
			date  time.Time
			close decimal.Decimal
		)
		if err := rows.Scan(&date, &close); err != nil {
			return nil, fmt.Errorf("marketdata: scan nav row: %w", err)
		}
		bars = append(bars, engine.NewBar(date, close))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("marketdata: nav rows for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("marketdata: %s %s..%s: %w",
			symbol, from.Format(dateLayout), to.Format(dateLayout), engine.ErrNoData)
	}
	return engine.NewSeries(bars)
}
