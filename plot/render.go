package plot

import (
	"io"
	"math"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/beeport/incentiviz/types"
)

// RenderOptions controls figure geometry and labeling. Scale multiplies the
// pixel dimensions and every stroke/font size, so an export at Scale 3
// reproduces the on-screen figure at triple resolution.
type RenderOptions struct {
	Width    int
	Height   int
	Scale    float64
	Title    string
	Subtitle string
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.Width <= 0 {
		o.Width = 1920
	}
	if o.Height <= 0 {
		o.Height = 1080
	}
	if o.Scale <= 0 {
		o.Scale = 1
	}
	return o
}

// Dark dashboard theme.
var (
	colorBackground = drawing.ColorFromHex("0B0B0B")
	colorGrid       = drawing.ColorFromHex("222222").WithAlpha(90)
	colorSpine      = drawing.ColorFromHex("333333")
	colorText       = drawing.ColorFromHex("E0E0E0")
	colorTickText   = drawing.ColorFromHex("888888")
	colorLegendFill = drawing.ColorFromHex("151515")
	colorLegendEdge = drawing.ColorFromHex("444444")
)

const (
	marginLeft   = 90.0
	marginTop    = 90.0
	marginBottom = 70.0
	marginRight  = 40.0
	// axisColWidth reserves room for tick labels and the rotated axis title
	// to the right of each secondary axis spine.
	axisColWidth = 70.0

	defaultMarkerSize = 5.0
	lineWidth         = 4.5
	glowWidth         = 8.0
	glowAlpha         = 38 // 15% opacity
	scatterAlpha      = 153
	splineSamples     = 500
)

// axisRange is the resolved value range of one axis. Log axes keep their
// bounds in log10 space.
type axisRange struct {
	min, max float64
	log      bool
}

func (a *axisRange) include(v float64) {
	if a.log {
		v = math.Log10(v)
	}
	if v < a.min {
		a.min = v
	}
	if v > a.max {
		a.max = v
	}
}

func (a *axisRange) pad() {
	span := a.max - a.min
	if span == 0 {
		span = math.Abs(a.max)
		if span == 0 {
			span = 1
		}
	}
	a.min -= span * 0.05
	a.max += span * 0.05
}

// frac maps a data value to [0,1] within the range.
func (a axisRange) frac(v float64) float64 {
	if a.log {
		v = math.Log10(v)
	}
	return (v - a.min) / (a.max - a.min)
}

// Render draws the aligned projections onto one figure and serializes it as
// PNG. Scatter series are drawn first and line series above them, so the
// trend line stays visible; axes and the legend follow iteration order.
func Render(w io.Writer, tl Timeline, projections []Projection, assignments []Assignment, opts RenderOptions) error {
	if len(projections) == 0 || len(projections) != len(assignments) {
		return types.NewRenderError("nothing to render: no aligned series", nil)
	}
	opts = opts.withDefaults()

	width := int(math.Round(float64(opts.Width) * opts.Scale))
	height := int(math.Round(float64(opts.Height) * opts.Scale))
	r, err := chart.PNG(width, height)
	if err != nil {
		return types.NewRenderError("cannot create raster renderer", err)
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return types.NewRenderError("cannot load font", err)
	}
	r.SetFont(font)

	d := &drawer{
		r:     r,
		scale: opts.Scale,
		tl:    tl,
	}

	maxOffset := 0
	for _, a := range assignments {
		if a.Axis != PrimaryAxis && a.OffsetPx > maxOffset {
			maxOffset = a.OffsetPx
		}
	}
	d.left = d.px(marginLeft)
	d.top = d.px(marginTop)
	d.right = float64(width) - d.px(marginRight+axisColWidth+float64(maxOffset))
	d.bottom = float64(height) - d.px(marginBottom)

	ranges := resolveRanges(projections, assignments)

	d.fillRect(0, 0, float64(width), float64(height), colorBackground)
	d.drawXAxis()
	d.drawTitle(opts.Title, opts.Subtitle, float64(width))

	drawnAxes := make(map[AxisID]bool)
	for i, a := range assignments {
		if drawnAxes[a.Axis] {
			continue
		}
		drawnAxes[a.Axis] = true
		d.drawYAxis(a, ranges[a.Axis], axisTitle(assignments, i))
	}

	// Scatter first, lines on top.
	for i, a := range assignments {
		if a.Class.Style == StyleScatter {
			d.drawScatter(projections[i], a, ranges[a.Axis])
		}
	}
	for i, a := range assignments {
		if a.Class.Style == StyleLine {
			d.drawLine(projections[i], a, ranges[a.Axis])
		}
	}

	d.drawLegend(assignments)

	if err := r.Save(w); err != nil {
		return types.NewRenderError("cannot encode figure", err)
	}
	return nil
}

// axisTitle picks the label shown along an axis spine. Shared axes carry the
// group quantity instead of any single member's label.
func axisTitle(assignments []Assignment, i int) string {
	if assignments[i].Class.SharedGroup != "" {
		return "Freeze Time Duration"
	}
	return assignments[i].Label
}

func resolveRanges(projections []Projection, assignments []Assignment) map[AxisID]*axisRange {
	ranges := make(map[AxisID]*axisRange)
	for i, a := range assignments {
		ar, ok := ranges[a.Axis]
		if !ok {
			ar = &axisRange{min: math.Inf(1), max: math.Inf(-1), log: a.Class.Scale == ScaleLog}
			ranges[a.Axis] = ar
		}
		for _, v := range projections[i].Values {
			ar.include(v)
		}
	}
	for _, ar := range ranges {
		ar.pad()
	}
	return ranges
}

// drawer carries the shared geometry of one render pass.
type drawer struct {
	r     chart.Renderer
	scale float64
	tl    Timeline

	left, top, right, bottom float64
}

func (d *drawer) px(v float64) float64 {
	return v * d.scale
}

// x maps a timeline position to a horizontal pixel.
func (d *drawer) x(offset float64) float64 {
	span := float64(d.tl.Len() - 1)
	if span == 0 {
		return (d.left + d.right) / 2
	}
	return d.left + offset/span*(d.right-d.left)
}

// y maps a data value through an axis range to a vertical pixel.
func (d *drawer) y(ar *axisRange, v float64) float64 {
	return d.bottom - ar.frac(v)*(d.bottom-d.top)
}

func (d *drawer) fillRect(x0, y0, x1, y1 float64, c drawing.Color) {
	d.r.SetFillColor(c)
	d.r.MoveTo(int(x0), int(y0))
	d.r.LineTo(int(x1), int(y0))
	d.r.LineTo(int(x1), int(y1))
	d.r.LineTo(int(x0), int(y1))
	d.r.Close()
	d.r.Fill()
}

func (d *drawer) line(x0, y0, x1, y1 float64, c drawing.Color, width float64) {
	d.r.SetStrokeColor(c)
	d.r.SetStrokeWidth(width)
	d.r.MoveTo(int(math.Round(x0)), int(math.Round(y0)))
	d.r.LineTo(int(math.Round(x1)), int(math.Round(y1)))
	d.r.Stroke()
}

func (d *drawer) text(s string, x, y float64, c drawing.Color, size float64) {
	d.r.SetFontColor(c)
	d.r.SetFontSize(size * d.scale)
	d.r.Text(s, int(math.Round(x)), int(math.Round(y)))
}

func (d *drawer) textWidth(s string, size float64) float64 {
	d.r.SetFontSize(size * d.scale)
	return float64(d.r.MeasureText(s).Width())
}

func (d *drawer) drawTitle(title, subtitle string, width float64) {
	if title != "" {
		tw := d.textWidth(title, 18)
		d.text(title, (width-tw)/2, d.px(34), colorText, 18)
	}
	if subtitle != "" {
		tw := d.textWidth(subtitle, 12)
		d.text(subtitle, (width-tw)/2, d.px(58), colorTickText, 12)
	}
}

func (d *drawer) drawXAxis() {
	d.line(d.left, d.bottom, d.right, d.bottom, colorSpine, d.px(1))

	ticks := niceTicks(float64(d.tl.MinBlock), float64(d.tl.MaxBlock), 8)
	d.r.SetStrokeDashArray([]float64{d.px(2), d.px(4)})
	for _, t := range ticks {
		x := d.x(t - float64(d.tl.MinBlock))
		d.line(x, d.top, x, d.bottom, colorGrid, d.px(0.5))
	}
	d.r.SetStrokeDashArray(nil)

	for _, t := range ticks {
		x := d.x(t - float64(d.tl.MinBlock))
		label := formatTick(t)
		tw := d.textWidth(label, 10)
		d.text(label, x-tw/2, d.bottom+d.px(18), colorTickText, 10)
	}

	label := "Block Number"
	tw := d.textWidth(label, 12)
	d.text(label, (d.left+d.right-tw)/2, d.bottom+d.px(42), colorText, 12)
}

func (d *drawer) drawYAxis(a Assignment, ar *axisRange, title string) {
	axisX := d.left
	if a.Axis != PrimaryAxis {
		axisX = d.right + d.px(float64(a.OffsetPx))
	}
	d.line(axisX, d.top, axisX, d.bottom, colorSpine, d.px(1))

	var ticks []float64
	if ar.log {
		ticks = logTicks(ar.min, ar.max)
	} else {
		ticks = niceTicks(ar.min, ar.max, 5)
	}
	for _, t := range ticks {
		y := d.bottom - (t-ar.min)/(ar.max-ar.min)*(d.bottom-d.top)
		label := formatTick(t)
		if ar.log {
			label = formatTick(math.Pow(10, t))
		}
		if a.Axis == PrimaryAxis {
			d.line(axisX-d.px(4), y, axisX, y, colorSpine, d.px(1))
			tw := d.textWidth(label, 9)
			d.text(label, axisX-d.px(8)-tw, y+d.px(3), a.Color, 9)
		} else {
			d.line(axisX, y, axisX+d.px(4), y, colorSpine, d.px(1))
			d.text(label, axisX+d.px(8), y+d.px(3), a.Color, 9)
		}
	}

	titleX := axisX + d.px(46)
	if a.Axis == PrimaryAxis {
		titleX = axisX - d.px(50)
	}
	th := d.textWidth(title, 11)
	d.r.SetTextRotation(-math.Pi / 2)
	d.text(title, titleX, (d.top+d.bottom+th)/2, a.Color, 11)
	d.r.ClearTextRotation()
}

func (d *drawer) drawScatter(p Projection, a Assignment, ar *axisRange) {
	radius := a.Class.MarkerSize
	if radius == 0 {
		radius = defaultMarkerSize
	}
	radius = d.px(radius)
	c := a.Color.WithAlpha(scatterAlpha)

	for i, off := range p.Offsets {
		x := d.x(float64(off))
		y := d.y(ar, p.Values[i])
		d.drawMarker(a.Class.Marker, x, y, radius, c)
	}
}

func (d *drawer) drawMarker(m Marker, x, y, radius float64, c drawing.Color) {
	d.r.SetFillColor(c)
	xi, yi, ri := int(math.Round(x)), int(math.Round(y)), int(math.Round(radius))
	switch m {
	case MarkerSquare:
		d.r.MoveTo(xi-ri, yi-ri)
		d.r.LineTo(xi+ri, yi-ri)
		d.r.LineTo(xi+ri, yi+ri)
		d.r.LineTo(xi-ri, yi+ri)
		d.r.Close()
		d.r.Fill()
	case MarkerDiamond:
		d.r.MoveTo(xi, yi-ri)
		d.r.LineTo(xi+ri, yi)
		d.r.LineTo(xi, yi+ri)
		d.r.LineTo(xi-ri, yi)
		d.r.Close()
		d.r.Fill()
	default:
		d.r.Circle(radius, xi, yi)
		d.r.Fill()
	}
}

func (d *drawer) drawLine(p Projection, a Assignment, ar *axisRange) {
	if p.Len() == 0 {
		return
	}

	xs := make([]float64, p.Len())
	ys := make([]float64, p.Len())
	for i, off := range p.Offsets {
		xs[i] = float64(off)
		ys[i] = p.Values[i]
	}

	if p.Len() > 3 {
		xs, ys = splineSample(xs, ys, splineSamples)
		// Glow pass under the main stroke, purely cosmetic.
		d.strokePath(xs, ys, ar, a.Color.WithAlpha(glowAlpha), d.px(glowWidth))
	}
	d.strokePath(xs, ys, ar, a.Color, d.px(lineWidth))
}

func (d *drawer) strokePath(xs, ys []float64, ar *axisRange, c drawing.Color, width float64) {
	d.r.SetStrokeColor(c)
	d.r.SetStrokeWidth(width)
	d.r.MoveTo(int(math.Round(d.x(xs[0]))), int(math.Round(d.y(ar, ys[0]))))
	for i := 1; i < len(xs); i++ {
		d.r.LineTo(int(math.Round(d.x(xs[i]))), int(math.Round(d.y(ar, ys[i]))))
	}
	d.r.Stroke()
}

func (d *drawer) drawLegend(assignments []Assignment) {
	const fontSize = 11.0
	rowH := d.px(20)
	swatch := d.px(10)
	pad := d.px(10)

	maxW := 0.0
	for _, a := range assignments {
		if w := d.textWidth(a.Label, fontSize); w > maxW {
			maxW = w
		}
	}
	boxW := pad + swatch + pad/2 + maxW + pad
	boxH := rowH*float64(len(assignments)) + pad

	x0 := d.left + d.px(15)
	y0 := d.top + d.px(15)
	d.fillRect(x0, y0, x0+boxW, y0+boxH, colorLegendFill)
	d.r.SetStrokeColor(colorLegendEdge)
	d.r.SetStrokeWidth(d.px(1))
	d.r.MoveTo(int(x0), int(y0))
	d.r.LineTo(int(x0+boxW), int(y0))
	d.r.LineTo(int(x0+boxW), int(y0+boxH))
	d.r.LineTo(int(x0), int(y0+boxH))
	d.r.Close()
	d.r.Stroke()

	for i, a := range assignments {
		cy := y0 + pad/2 + rowH*float64(i) + rowH/2
		cx := x0 + pad + swatch/2
		if a.Class.Style == StyleLine {
			d.line(cx-swatch/2, cy, cx+swatch/2, cy, a.Color, d.px(3))
		} else {
			d.drawMarker(a.Class.Marker, cx, cy, swatch/2, a.Color)
		}
		d.text(a.Label, x0+pad+swatch+pad/2, cy+d.px(4), colorText, fontSize)
	}
}

// niceTicks returns round tick positions covering [min,max], aiming for
// roughly target steps using a 1/2/5 progression.
func niceTicks(min, max float64, target int) []float64 {
	if max <= min || target < 1 {
		return []float64{min}
	}
	raw := (max - min) / float64(target)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	norm := raw / mag
	var step float64
	switch {
	case norm <= 1:
		step = mag
	case norm <= 2:
		step = 2 * mag
	case norm <= 5:
		step = 5 * mag
	default:
		step = 10 * mag
	}

	var ticks []float64
	for t := math.Ceil(min/step) * step; t <= max+step/1e6; t += step {
		ticks = append(ticks, t)
	}
	return ticks
}

// logTicks returns decade positions (in log10 space) within [min,max].
// Falls back to linear spacing in log space when the range spans less than
// one full decade.
func logTicks(min, max float64) []float64 {
	var ticks []float64
	for e := math.Ceil(min); e <= max; e++ {
		ticks = append(ticks, e)
	}
	if len(ticks) >= 2 {
		return ticks
	}
	return niceTicks(min, max, 4)
}

func formatTick(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}
