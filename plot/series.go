// Package plot turns ordered event retrievals into a single multi-axis,
// block-number-aligned dashboard: windowed aggregation, metric extraction,
// timeline alignment, axis allocation and raster rendering.
package plot

import "sort"

// Series is a sparse mapping from block number to one numeric value.
// At most one point exists per block; Set keeps the last written value when a
// block repeats. Series are treated as immutable once extracted.
type Series struct {
	Label  string
	points map[int64]float64
	blocks []int64
	sorted bool
}

func NewSeries(label string) *Series {
	return &Series{
		Label:  label,
		points: make(map[int64]float64),
	}
}

// Set records the value at the given block. A repeated block overwrites the
// previous value (keep-last duplicate policy).
func (s *Series) Set(block int64, value float64) {
	if _, ok := s.points[block]; !ok {
		s.blocks = append(s.blocks, block)
		s.sorted = false
	}
	s.points[block] = value
}

func (s *Series) Len() int {
	return len(s.points)
}

// Blocks returns the block numbers of the series in ascending order.
func (s *Series) Blocks() []int64 {
	if !s.sorted {
		sort.Slice(s.blocks, func(i, j int) bool { return s.blocks[i] < s.blocks[j] })
		s.sorted = true
	}
	return s.blocks
}

func (s *Series) Value(block int64) (float64, bool) {
	v, ok := s.points[block]
	return v, ok
}

// Bounds returns the minimum and maximum block number of the series.
// ok is false when the series is empty.
func (s *Series) Bounds() (minBlock, maxBlock int64, ok bool) {
	blocks := s.Blocks()
	if len(blocks) == 0 {
		return 0, 0, false
	}
	return blocks[0], blocks[len(blocks)-1], true
}
