package plot

import (
	"fmt"
	"strconv"

	"github.com/beeport/incentiviz/types"
)

// AnchorKind is the event kind whose occurrences bound aggregation windows
// and gate the round-coupled count metrics.
const AnchorKind = types.EventWinnerSelected

// Metric describes one requested series: where its rows come from, how the
// value is read, and how it is classified for rendering.
type Metric struct {
	Label string
	Kind  types.EventKind
	// AnchorGated restricts rows to blocks that also host an anchor event.
	AnchorGated bool
	// Windowed replaces extraction with the anchor-to-anchor count of Kind
	// occurrences.
	Windowed bool
	Value    ValueFunc
	Filter   RowFilter
	Class    Class
}

// DefaultCatalog is the standard dashboard: round counts gated on winner
// selection, the smoothed price trend, the windowed freeze count, one
// shared-axis series per configured freeze duration, and the log-scaled pot
// withdrawals. Order matters: it fixes axis allocation and colors.
func DefaultCatalog(freezeBuckets []int64) []Metric {
	metrics := []Metric{
		{
			Label:       "Reveals",
			Kind:        types.EventCountReveals,
			AnchorGated: true,
			Value:       CountValue(func(ev types.CollectedEvent) int64 { return ev.RevealCount }),
			Class:       Class{Style: StyleScatter, Marker: MarkerCircle},
		},
		{
			Label:       "Commits",
			Kind:        types.EventCountCommits,
			AnchorGated: true,
			Value:       CountValue(func(ev types.CollectedEvent) int64 { return ev.CommitCount }),
			Class:       Class{Style: StyleScatter, Marker: MarkerCircle},
		},
		{
			Label: "Price",
			Kind:  types.EventPriceUpdate,
			Value: DecimalValue("price", func(ev types.CollectedEvent) string { return ev.Price }),
			Class: Class{Style: StyleLine, ColorHex: neonOrangeHex},
		},
		{
			Label:       "Chunks",
			Kind:        types.EventChunkCount,
			AnchorGated: true,
			Value:       CountValue(func(ev types.CollectedEvent) int64 { return ev.ChunkCount }),
			Class:       Class{Style: StyleScatter, Marker: MarkerCircle},
		},
		{
			Label:    "Frozen Events Count",
			Kind:     types.EventStakeFrozen,
			Windowed: true,
			Class:    Class{Style: StyleScatter, Marker: MarkerCircle},
		},
	}

	for _, bucket := range freezeBuckets {
		metrics = append(metrics, freezeBucketMetric(bucket))
	}

	metrics = append(metrics, Metric{
		Label: "Pot Withdrawn (log)",
		Kind:  types.EventPotWithdrawn,
		Value: DecimalValue("pot_total_amount", func(ev types.CollectedEvent) string {
			if ev.PotTotalAmount == nil {
				return ""
			}
			return *ev.PotTotalAmount
		}),
		Filter: func(ev types.CollectedEvent) bool { return ev.PotTotalAmount != nil },
		Class:  Class{Style: StyleScatter, Scale: ScaleLog, Marker: MarkerDiamond, MarkerSize: 3},
	})

	return metrics
}

// freezeBucketMetric builds one shared-axis series holding only the stake
// freezes of a single duration. The plotted value is the duration itself, so
// all buckets share one "freeze duration" scale.
func freezeBucketMetric(bucket int64) Metric {
	want := strconv.FormatInt(bucket, 10)
	return Metric{
		Label: fmt.Sprintf("Freeze %d", bucket),
		Kind:  types.EventStakeFrozen,
		Value: DecimalValue("freeze_time", func(ev types.CollectedEvent) string { return ev.FreezeTime }),
		Filter: func(ev types.CollectedEvent) bool {
			return ev.FreezeTime == want
		},
		Class: Class{Style: StyleScatter, Marker: MarkerSquare, SharedGroup: "freeze"},
	}
}

// neonOrangeHex is the pinned price-line color.
const neonOrangeHex = "FF5F1F"
