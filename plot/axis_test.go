package plot

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beeport/incentiviz/types"
)

func projection(label string, values ...float64) Projection {
	p := Projection{Label: label}
	for i, v := range values {
		p.Offsets = append(p.Offsets, i)
		p.Values = append(p.Values, v)
	}
	return p
}

func TestAllocateFirstSeriesIsPrimary(t *testing.T) {
	projections := []Projection{
		projection("scatter-first", 1, 2),
		projection("line-second", 3, 4),
	}
	classes := map[string]Class{
		"scatter-first": {Style: StyleScatter},
		"line-second":   {Style: StyleLine},
	}

	assignments, err := Allocate(projections, classes)
	require.NoError(t, err)
	require.Len(t, assignments, 2)

	// The first series binds the primary axis regardless of its class.
	assert.Equal(t, PrimaryAxis, assignments[0].Axis)
	assert.Equal(t, 0, assignments[0].OffsetPx)
	assert.NotEqual(t, PrimaryAxis, assignments[1].Axis)
}

func TestAllocateOffsetsStrictlyIncreasing(t *testing.T) {
	var projections []Projection
	classes := make(map[string]Class)
	for i := 0; i < 6; i++ {
		label := fmt.Sprintf("s%d", i)
		projections = append(projections, projection(label, float64(i+1)))
		classes[label] = Class{Style: StyleScatter}
	}

	assignments, err := Allocate(projections, classes)
	require.NoError(t, err)

	seen := make(map[int]bool)
	prev := -1
	for _, a := range assignments[1:] {
		assert.Greater(t, a.OffsetPx, prev, "offsets must strictly increase in assignment order")
		assert.False(t, seen[a.OffsetPx], "offsets must be pairwise distinct")
		seen[a.OffsetPx] = true
		prev = a.OffsetPx
	}
}

func TestAllocateSharedGroupBindsOneAxis(t *testing.T) {
	projections := []Projection{
		projection("primary", 1),
		projection("freeze-a", 2),
		projection("solo", 3),
		projection("freeze-b", 4),
		projection("freeze-c", 5),
	}
	classes := map[string]Class{
		"primary":  {},
		"freeze-a": {SharedGroup: "freeze"},
		"solo":     {},
		"freeze-b": {SharedGroup: "freeze"},
		"freeze-c": {SharedGroup: "freeze"},
	}

	assignments, err := Allocate(projections, classes)
	require.NoError(t, err)

	byLabel := make(map[string]Assignment)
	for _, a := range assignments {
		byLabel[a.Label] = a
	}

	// All group members resolve to one identical axis at one fixed offset.
	assert.Equal(t, byLabel["freeze-a"].Axis, byLabel["freeze-b"].Axis)
	assert.Equal(t, byLabel["freeze-a"].Axis, byLabel["freeze-c"].Axis)
	assert.Equal(t, byLabel["freeze-a"].OffsetPx, byLabel["freeze-b"].OffsetPx)

	// The dedicated axis is unaffected by how many shared members preceded
	// it: solo sits at iteration index 2.
	assert.Equal(t, axisOffsetStep*2, byLabel["solo"].OffsetPx)
	assert.NotEqual(t, byLabel["freeze-a"].Axis, byLabel["solo"].Axis)
}

func TestAllocateLogScaleRejectsNonPositive(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		ok     bool
	}{
		{"all positive", []float64{1, 0.5, 1e18}, true},
		{"contains zero", []float64{1, 0, 2}, false},
		{"contains negative", []float64{1, -3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			projections := []Projection{
				projection("primary", 1),
				projection("pot", tt.values...),
			}
			classes := map[string]Class{
				"primary": {},
				"pot":     {Scale: ScaleLog},
			}

			_, err := Allocate(projections, classes)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, types.ErrTypeConfig, types.TypeOf(err))
			}
		})
	}
}

func TestAllocateColors(t *testing.T) {
	projections := []Projection{
		projection("a", 1),
		projection("pinned", 2),
	}
	classes := map[string]Class{
		"a":      {},
		"pinned": {ColorHex: neonOrangeHex},
	}

	assignments, err := Allocate(projections, classes)
	require.NoError(t, err)

	assert.Equal(t, okabeItoPalette[0], assignments[0].Color)
	assert.Equal(t, seriesColor(Class{ColorHex: neonOrangeHex}, 9), assignments[1].Color)
}

func TestPaletteCycles(t *testing.T) {
	n := len(okabeItoPalette)
	assert.Equal(t, seriesColor(Class{}, 0), seriesColor(Class{}, n))
	assert.NotEqual(t, seriesColor(Class{}, 0), seriesColor(Class{}, 1))
}
