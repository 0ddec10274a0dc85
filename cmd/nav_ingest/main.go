// nav_ingest is a one-shot installer for fund NAV history: CSV in,
// ClickHouse nav table out, with dedup on (symbol, nav_date).
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	clickhouse "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/shopspring/decimal"
)

// Config via env
type cfg struct {
	Addr     string
	Database string
	Table    string
	User     string
	Password string
	Symbol   string
	CSVPath  string
}

func mustEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func loadCfg() cfg {
	return cfg{
		Addr:     mustEnv("CH_ADDR", "localhost:19000"),
		Database: mustEnv("CH_DB", "fundbacktest"),
		Table:    mustEnv("CH_TABLE", "nav"),
		User:     mustEnv("CH_USER", "fundbacktest"),
		Password: mustEnv("CH_PASS", "fundbacktest123"),
		Symbol:   mustEnv("NAV_SYMBOL", "001632"),
		CSVPath:  mustEnv("NAV_CSV", "./nav.csv"),
	}
}

const ddl = `
CREATE TABLE IF NOT EXISTS %s.%s (
    symbol    LowCardinality(String),
    nav_date  Date,
    close     Decimal(18, 6),
    ingested_at DateTime DEFAULT now()
) ENGINE = ReplacingMergeTree(ingested_at)
ORDER BY (symbol, nav_date)
`

func main() {
	c := loadCfg()
	ctx := context.Background()

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{c.Addr},
		Auth: clickhouse.Auth{
			Database: c.Database,
			Username: c.User,
			Password: c.Password,
		},
	})
	if err != nil {
		panic(fmt.Errorf("connect clickhouse: %w", err))
	}
	defer conn.Close()

	if err := conn.Exec(ctx, fmt.Sprintf(ddl, c.Database, c.Table)); err != nil {
		panic(fmt.Errorf("create table: %w", err))
	}

	file, err := os.Open(c.CSVPath)
	if err != nil {
		panic(fmt.Errorf("open %s: %w", c.CSVPath, err))
	}
	defer file.Close()

	batch, err := conn.PrepareBatch(ctx, fmt.Sprintf(
		"INSERT INTO %s.%s (symbol, nav_date, close)", c.Database, c.Table))
	if err != nil {
		panic(fmt.Errorf("prepare batch: %w", err))
	}

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	rows := 0
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			panic(fmt.Errorf("read csv line %d: %w", line+1, err))
		}
		line++
		if len(record) < 2 {
			panic(fmt.Errorf("csv line %d: want date,close", line))
		}
		date, err := time.Parse("2006-01-02", strings.TrimSpace(record[0]))
		if err != nil {
			if line == 1 {
				continue // header
			}
			panic(fmt.Errorf("csv line %d: bad date %q: %w", line, record[0], err))
		}
		close, err := decimal.NewFromString(strings.TrimSpace(record[1]))
		if err != nil {
			panic(fmt.Errorf("csv line %d: bad close %q: %w", line, record[1], err))
		}
		if err := batch.Append(c.Symbol, date, close); err != nil {
			panic(fmt.Errorf("append row %d: %w", line, err))
		}
		rows++
	}

	if err := batch.Send(); err != nil {
		panic(fmt.Errorf("send batch: %w", err))
	}
	fmt.Printf("Ingested %d NAV rows for %s into %s.%s\n", rows, c.Symbol, c.Database, c.Table)
}
