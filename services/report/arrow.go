package report

import (
	"fmt"
	"io"
	"os"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	"github.com/apache/arrow/go/v14/arrow/ipc"
	"github.com/apache/arrow/go/v14/arrow/memory"

	"fund-backtest/services/engine"
)

// resultSchema is one row per bar: date (ms since epoch, UTC), portfolio
// equity and the period return against the previous bar (0 on the first).
var resultSchema = arrow.NewSchema([]arrow.Field{
	{Name: "date_ms", Type: arrow.PrimitiveTypes.Int64},
	{Name: "equity", Type: arrow.PrimitiveTypes.Float64},
	{Name: "period_return", Type: arrow.PrimitiveTypes.Float64},
}, nil)

// WriteArrow streams the equity/return trajectory as an Arrow IPC record
// batch for downstream analytics tooling.
func WriteArrow(w io.Writer, equity []engine.EquityPoint, returns []engine.ReturnPoint) error {
	if len(equity) == 0 {
		return fmt.Errorf("report: no equity points to export")
	}
	if len(returns) != len(equity)-1 {
		return fmt.Errorf("report: %d returns do not align with %d equity points",
			len(returns), len(equity))
	}

	builder := array.NewRecordBuilder(memory.NewGoAllocator(), resultSchema)
	defer builder.Release()

	dates := builder.Field(0).(*array.Int64Builder)
	equities := builder.Field(1).(*array.Float64Builder)
	rets := builder.Field(2).(*array.Float64Builder)

	for i, p := range equity {
		dates.Append(p.Date.UnixMilli())
		equities.Append(p.Equity.InexactFloat64())
		if i == 0 {
			rets.Append(0)
		} else {
			rets.Append(returns[i-1].Return)
		}
	}

	record := builder.NewRecord()
	defer record.Release()

	writer := ipc.NewWriter(w, ipc.WithSchema(resultSchema))
	if err := writer.Write(record); err != nil {
		writer.Close()
		return fmt.Errorf("report: write arrow record: %w", err)
	}
	return writer.Close()
}

// WriteArrowFile is WriteArrow to a path.
func WriteArrowFile(path string, equity []engine.EquityPoint, returns []engine.ReturnPoint) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer file.Close()
	return WriteArrow(file, equity, returns)
}
