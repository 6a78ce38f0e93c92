package plot

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/beeport/incentiviz/types"
)

type RenderStyle int

const (
	StyleScatter RenderStyle = iota
	StyleLine
)

type Scale int

const (
	ScaleLinear Scale = iota
	ScaleLog
)

type Marker int

const (
	MarkerCircle Marker = iota
	MarkerSquare
	MarkerDiamond
)

// Class is one row of the static classification table: how a series is drawn
// and where its axis lives.
type Class struct {
	Style      RenderStyle
	Scale      Scale
	Marker     Marker
	MarkerSize float64 // radius in px at scale 1; 0 means the style default
	// SharedGroup names the shared secondary axis this series binds to.
	// Empty means the series gets its own axis.
	SharedGroup string
	// ColorHex pins the series color, overriding the palette (no '#' prefix).
	ColorHex string
}

// AxisID identifies one Y axis of the figure. The primary axis is always 0.
type AxisID int

const PrimaryAxis AxisID = 0

const (
	// axisOffsetStep is the outward distance between consecutive dedicated
	// secondary axes, multiplied by the series' iteration index.
	axisOffsetStep = 60
	// sharedAxisOffset is the fixed outward position of a shared-group axis.
	// Half a step, so it never lands on a dedicated-axis column.
	sharedAxisOffset = axisOffsetStep / 2
)

// Assignment binds one series to an axis with its resolved rendering
// parameters.
type Assignment struct {
	Label    string
	Axis     AxisID
	OffsetPx int
	Class    Class
	Color    drawing.Color
}

// okabeItoPalette is the colorblind-safe cycle used for unpinned series.
var okabeItoPalette = []drawing.Color{
	drawing.ColorFromHex("0072B2"),
	drawing.ColorFromHex("D55E00"),
	drawing.ColorFromHex("009E73"),
	drawing.ColorFromHex("CC79A7"),
	drawing.ColorFromHex("F0E442"),
	drawing.ColorFromHex("56B4E9"),
	drawing.ColorFromHex("999999"),
	drawing.ColorFromHex("E69F00"),
}

// Allocate partitions the ordered projections onto axes.
//
// The first series always takes the primary axis. Shared-group members bind
// one lazily created secondary axis at a fixed offset. Every other series
// gets its own secondary axis offset outward by axisOffsetStep times its
// iteration index, so placement is deterministic and collision-free no matter
// how many shared-group series precede it. Colors cycle the Okabe-Ito palette
// by iteration index unless the class pins one.
//
// A log-scaled series containing a non-positive value is a configuration
// error, surfaced here so rendering never starts on invalid input.
func Allocate(projections []Projection, classes map[string]Class) ([]Assignment, error) {
	assignments := make([]Assignment, 0, len(projections))
	sharedAxes := make(map[string]AxisID)
	nextAxis := PrimaryAxis

	for i, proj := range projections {
		class := classes[proj.Label]

		if class.Scale == ScaleLog {
			for k, v := range proj.Values {
				if v <= 0 {
					return nil, types.NewConfigError(
						fmt.Sprintf("series %q is log-scaled but contains non-positive value %v at position %d", proj.Label, v, proj.Offsets[k]), nil)
				}
			}
		}

		a := Assignment{
			Label: proj.Label,
			Class: class,
			Color: seriesColor(class, i),
		}

		switch {
		case i == 0:
			a.Axis = PrimaryAxis
			nextAxis++
		case class.SharedGroup != "":
			id, ok := sharedAxes[class.SharedGroup]
			if !ok {
				id = nextAxis
				nextAxis++
				sharedAxes[class.SharedGroup] = id
			}
			a.Axis = id
			a.OffsetPx = sharedAxisOffset
		default:
			a.Axis = nextAxis
			nextAxis++
			a.OffsetPx = axisOffsetStep * i
		}

		assignments = append(assignments, a)
	}

	return assignments, nil
}

func seriesColor(class Class, index int) drawing.Color {
	if class.ColorHex != "" {
		return drawing.ColorFromHex(class.ColorHex)
	}
	return okabeItoPalette[index%len(okabeItoPalette)]
}
