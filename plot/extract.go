package plot

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/beeport/incentiviz/types"
)

// ValueFunc pulls one numeric value out of an event row.
type ValueFunc func(types.CollectedEvent) (float64, error)

// RowFilter decides whether an event row belongs to a series.
type RowFilter func(types.CollectedEvent) bool

// ExtractSeries maps event rows onto a Series. Rows failing the value parse
// are excluded with a warning rather than aborting the extraction
// (skip-and-warn policy). A nil filter keeps every row.
func ExtractSeries(label string, events []types.CollectedEvent, value ValueFunc, filter RowFilter, logger *slog.Logger) *Series {
	series := NewSeries(label)
	for _, ev := range events {
		if filter != nil && !filter(ev) {
			continue
		}
		v, err := value(ev)
		if err != nil {
			logger.Warn("skipping unparsable row",
				slog.String("series", label),
				slog.Int64("block_number", ev.BlockNumber),
				slog.Int64("log_index", ev.LogIndex),
				slog.Any("error", err))
			continue
		}
		series.Set(ev.BlockNumber, v)
	}
	return series
}

// DecimalValue parses an on-chain decimal-string column into a float64.
func DecimalValue(field string, get func(types.CollectedEvent) string) ValueFunc {
	return func(ev types.CollectedEvent) (float64, error) {
		raw := get(ev)
		if raw == "" {
			return 0, types.NewParseError(field, raw, nil)
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return 0, types.NewParseError(field, raw, err)
		}
		return d.InexactFloat64(), nil
	}
}

// CountValue reads an integral count column.
func CountValue(get func(types.CollectedEvent) int64) ValueFunc {
	return func(ev types.CollectedEvent) (float64, error) {
		return float64(get(ev)), nil
	}
}
