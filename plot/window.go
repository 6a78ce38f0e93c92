package plot

import (
	"sort"

	"github.com/beeport/incentiviz/types"
)

// CountBetweenAnchors tallies, for each anchor in key order, the countable
// keys falling in the half-open interval (prevAnchor, anchor]. The first
// window is left-bounded by the sentinel key (0,-1). Comparison always uses
// the full composite key, so multiple anchors inside one block still
// partition correctly by log index.
//
// The result is keyed by the anchor's block number; when two anchors share a
// block the later anchor's count wins (Series keep-last policy). Windows
// partition the countable key space: every countable key at or below the last
// anchor is counted exactly once.
func CountBetweenAnchors(label string, anchors, countables []types.EventKey) *Series {
	series := NewSeries(label)
	if len(anchors) == 0 {
		return series
	}

	sortedAnchors := make([]types.EventKey, len(anchors))
	copy(sortedAnchors, anchors)
	sort.Slice(sortedAnchors, func(i, j int) bool {
		return sortedAnchors[i].Less(sortedAnchors[j])
	})

	sortedCountables := make([]types.EventKey, len(countables))
	copy(sortedCountables, countables)
	sort.Slice(sortedCountables, func(i, j int) bool {
		return sortedCountables[i].Less(sortedCountables[j])
	})

	// Single merge: j only ever advances, so the whole pass is
	// O(len(anchors) + len(countables)) after sorting.
	j := 0
	for j < len(sortedCountables) && sortedCountables[j].LessOrEqual(types.SentinelKey) {
		j++
	}
	for _, anchor := range sortedAnchors {
		count := 0
		for j < len(sortedCountables) && sortedCountables[j].LessOrEqual(anchor) {
			count++
			j++
		}
		series.Set(anchor.BlockNumber, float64(count))
	}

	return series
}
