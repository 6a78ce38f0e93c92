package plot

import (
	"github.com/beeport/incentiviz/types"
)

// Timeline is the dense integer block range spanning all observed series.
// It is rebuilt on every invocation and never persisted.
type Timeline struct {
	MinBlock int64
	MaxBlock int64
}

// BuildTimeline computes the global block range over all non-empty input
// series. Empty series are ignored; if none remain the run has no data and a
// NO_DATA error is returned.
func BuildTimeline(series []*Series) (Timeline, error) {
	var tl Timeline
	found := false
	for _, s := range series {
		lo, hi, ok := s.Bounds()
		if !ok {
			continue
		}
		if !found {
			tl.MinBlock, tl.MaxBlock = lo, hi
			found = true
			continue
		}
		if lo < tl.MinBlock {
			tl.MinBlock = lo
		}
		if hi > tl.MaxBlock {
			tl.MaxBlock = hi
		}
	}
	if !found {
		return Timeline{}, types.NewNoDataError()
	}
	return tl, nil
}

// Len is the number of dense positions covered by the timeline, inclusive.
func (t Timeline) Len() int {
	return int(t.MaxBlock-t.MinBlock) + 1
}

// Index converts a block number into a dense timeline position.
func (t Timeline) Index(block int64) (int, bool) {
	if block < t.MinBlock || block > t.MaxBlock {
		return 0, false
	}
	return int(block - t.MinBlock), true
}

// Block converts a dense timeline position back to a block number.
func (t Timeline) Block(index int) int64 {
	return t.MinBlock + int64(index)
}

// Projection is a series mapped onto timeline positions, keeping only the
// positions present in the source (missing positions are dropped, never
// zero-filled). Offsets ascend; Values aligns with Offsets.
type Projection struct {
	Label   string
	Offsets []int
	Values  []float64
}

func (p Projection) Len() int {
	return len(p.Offsets)
}

// Project maps a series onto the timeline. By construction every point of a
// series that contributed to the timeline is inside the range, so projecting
// then reading back reproduces the original point set exactly.
func (t Timeline) Project(s *Series) Projection {
	proj := Projection{Label: s.Label}
	for _, block := range s.Blocks() {
		idx, ok := t.Index(block)
		if !ok {
			continue
		}
		v, _ := s.Value(block)
		proj.Offsets = append(proj.Offsets, idx)
		proj.Values = append(proj.Values, v)
	}
	return proj
}
