package plot

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beeport/incentiviz/types"
)

func renderFixture(t *testing.T) (Timeline, []Projection, []Assignment) {
	t.Helper()

	price := seriesOf("Price", map[int64]float64{100: 10, 120: 14, 140: 12, 160: 18, 200: 16})
	reveals := seriesOf("Reveals", map[int64]float64{110: 3, 150: 5})
	pot := seriesOf("Pot Withdrawn (log)", map[int64]float64{130: 1e18, 190: 5e20})
	freezeA := seriesOf("Freeze 77824", map[int64]float64{115: 77824})
	freezeB := seriesOf("Freeze 155648", map[int64]float64{145: 155648})

	all := []*Series{reveals, price, pot, freezeA, freezeB}
	tl, err := BuildTimeline(all)
	require.NoError(t, err)

	var projections []Projection
	for _, s := range all {
		projections = append(projections, tl.Project(s))
	}

	classes := map[string]Class{
		"Reveals":             {Style: StyleScatter, Marker: MarkerCircle},
		"Price":               {Style: StyleLine, ColorHex: neonOrangeHex},
		"Pot Withdrawn (log)": {Style: StyleScatter, Scale: ScaleLog, Marker: MarkerDiamond, MarkerSize: 3},
		"Freeze 77824":        {Style: StyleScatter, Marker: MarkerSquare, SharedGroup: "freeze"},
		"Freeze 155648":       {Style: StyleScatter, Marker: MarkerSquare, SharedGroup: "freeze"},
	}
	assignments, err := Allocate(projections, classes)
	require.NoError(t, err)

	return tl, projections, assignments
}

func TestRenderProducesPNG(t *testing.T) {
	tl, projections, assignments := renderFixture(t)

	var buf bytes.Buffer
	err := Render(&buf, tl, projections, assignments, RenderOptions{
		Width:    800,
		Height:   500,
		Title:    "Storage Incentives Metrics",
		Subtitle: "Database: test",
	})
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 500, cfg.Height)
}

func TestRenderExportScale(t *testing.T) {
	tl, projections, assignments := renderFixture(t)

	var buf bytes.Buffer
	err := Render(&buf, tl, projections, assignments, RenderOptions{
		Width:  640,
		Height: 400,
		Scale:  2,
	})
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1280, cfg.Width)
	assert.Equal(t, 800, cfg.Height)
}

func TestRenderSinglePointSeries(t *testing.T) {
	// One-block timeline: x mapping degenerates to the plot center.
	s := seriesOf("Reveals", map[int64]float64{100: 5})
	tl, err := BuildTimeline([]*Series{s})
	require.NoError(t, err)

	projections := []Projection{tl.Project(s)}
	assignments, err := Allocate(projections, map[string]Class{"Reveals": {Style: StyleScatter}})
	require.NoError(t, err)

	var buf bytes.Buffer
	err = Render(&buf, tl, projections, assignments, RenderOptions{Width: 400, Height: 300})
	require.NoError(t, err)
	assert.NotZero(t, buf.Len())
}

func TestRenderEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, Timeline{}, nil, nil, RenderOptions{})
	require.Error(t, err)
	assert.Equal(t, types.ErrTypeRender, types.TypeOf(err))
	assert.Zero(t, buf.Len())
}

func TestNiceTicks(t *testing.T) {
	ticks := niceTicks(0, 100, 5)
	require.NotEmpty(t, ticks)
	assert.Equal(t, 0.0, ticks[0])
	assert.Equal(t, 100.0, ticks[len(ticks)-1])
	for i := 1; i < len(ticks); i++ {
		assert.Greater(t, ticks[i], ticks[i-1])
	}
}

func TestLogTicksDecades(t *testing.T) {
	// Range covering 10^18..10^21 in log space.
	ticks := logTicks(18, 21)
	assert.Equal(t, []float64{18, 19, 20, 21}, ticks)
}

func TestFormatTick(t *testing.T) {
	assert.Equal(t, "1500000", formatTick(1.5e6))
	assert.Equal(t, "2.5", formatTick(2.5))
	assert.Equal(t, "-40", formatTick(-40))
}
