package plot

import (
	"image/color"
	"math"
	"strconv"
	"time"
)

// Canvas is a pane's drawing surface. Coordinates are in CSS pixels; the
// canvas applies the device pixel ratio given to Resize.
type Canvas interface {
	// Resize sizes the backing buffer for area and resets any transform.
	Resize(area Area)
	Clear()
	FillRect(r Rect, c color.NRGBA)
	// DrawLine strokes a polyline through pts.
	DrawLine(pts []Point, width float64, c color.NRGBA)
	// DrawText draws s with its baseline starting at p.
	DrawText(s string, p Point, c color.NRGBA)
}

const (
	GridLines = 5
	gridWidth = 1
	lineWidth = 1.5
	// labelInset is the distance between the pane edge and a label.
	labelInset = 6
	// endLabelOffset is the distance from the right edge to the start of
	// the end timestamp label.
	endLabelOffset = 180
	timeLayout     = "2006-01-02 15:04:05"
)

// PaneOptions are the per-pane display attributes.
type PaneOptions struct {
	// Color is the line color. A zero Color draws in TopLineColor, or in
	// BottomLineColor for the bottom pane of a Chart.
	Color color.NRGBA
}

// FormatTime formats a time in milliseconds as a UTC timestamp with whole
// seconds.
func FormatTime(ms float64) string {
	return time.UnixMilli(int64(math.Floor(ms))).UTC().Format(timeLayout)
}

// FormatValue formats a value label.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// RenderPane paints the visible window v of s onto c. It never changes v.
// Samples with a NaN or infinite coordinate are left out of the line.
func RenderPane(c Canvas, m SurfaceMetrics, s Series, v Viewport, opts PaneOptions) {
	area := m.Area()
	width, height := max(area.Width, 0), max(area.Height, 0)
	c.Resize(area)
	c.Clear()
	c.FillRect(Rect{Max: Pt(width, height)}, BackgroundColor)

	for i := 0; i < GridLines; i++ {
		y := float64(i) / (GridLines - 1) * height
		c.DrawLine([]Point{Pt(0, y), Pt(width, y)}, gridWidth, GridColor)
	}

	if v.Empty() || v.Len() != s.Len() {
		return
	}
	xs, ys := s.Slice(v.Start, v.End)
	mapping, ok := NewMapping(xs, ys, width, height)
	if !ok {
		return
	}
	pts := make([]Point, 0, len(xs))
	for i := range xs {
		if !finite(xs[i], ys[i]) {
			continue
		}
		pts = append(pts, mapping.Project(xs[i], ys[i]))
	}
	lineColor := opts.Color
	if lineColor == (color.NRGBA{}) {
		lineColor = TopLineColor
	}
	c.DrawLine(pts, lineWidth, lineColor)

	c.DrawText(FormatValue(mapping.YMax), Pt(labelInset, 14), LabelColor)
	c.DrawText(FormatValue(mapping.YMin), Pt(labelInset, height-labelInset), LabelColor)
	c.DrawText(FormatTime(mapping.XMin), Pt(labelInset, 26), LabelColor)
	c.DrawText(FormatTime(mapping.XMax), Pt(width-endLabelOffset, 26), LabelColor)
}

// Pane binds a canvas to the metrics of its surface and its options.
type Pane struct {
	Canvas  Canvas
	Metrics SurfaceMetrics
	Options PaneOptions
}

// render paints the pane, drawing the line in fallback when the pane has
// no color of its own.
func (p Pane) render(s Series, v Viewport, fallback color.NRGBA) {
	if p.Canvas == nil || p.Metrics == nil {
		return
	}
	opts := p.Options
	if opts.Color == (color.NRGBA{}) {
		opts.Color = fallback
	}
	RenderPane(p.Canvas, p.Metrics, s, v, opts)
}

// Chart owns the series and the viewport shown by both panes. All
// mutations of the viewport go through a Chart.
type Chart struct {
	Top, Bottom Pane
	series      Series
	view        Viewport
}

// NewChart returns a chart showing s.
func NewChart(top, bottom Pane, s Series) *Chart {
	c := &Chart{Top: top, Bottom: bottom}
	c.SetSeries(s)
	return c
}

// SetSeries replaces the series and resets the viewport to its trailing
// window.
func (c *Chart) SetSeries(s Series) {
	c.series = s
	c.view.Reset(s.Len())
}

func (c *Chart) Series() Series { return c.series }

func (c *Chart) Viewport() Viewport { return c.view }

// Apply executes a viewport command. It reports whether the viewport
// changed.
func (c *Chart) Apply(cmd Command) bool {
	before := c.view
	switch cmd.Kind {
	case CommandPan:
		c.view.Pan(cmd.Delta)
	case CommandZoom:
		c.view.Zoom(cmd.Focal, cmd.Factor)
	case CommandReset:
		c.view.Reset(c.series.Len())
	}
	return c.view != before
}

// Render paints both panes from the same series and viewport.
func (c *Chart) Render() {
	c.Top.render(c.series, c.view, TopLineColor)
	c.Bottom.render(c.series, c.view, BottomLineColor)
}
