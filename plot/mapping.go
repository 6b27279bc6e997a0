package plot

import (
	"image"
	"math"
)

// PadRatio is the share of the value range added above and below the data.
const PadRatio = 0.05

// Point is a position in CSS pixels.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Rect is an axis-aligned rectangle in CSS pixels.
type Rect struct {
	Min, Max Point
}

// Area describes a drawing surface in CSS pixels and its device pixel
// ratio.
type Area struct {
	Width, Height float64
	DPR           float64
}

// Buffer returns the pixel dimensions of a backing buffer for the area.
func (a Area) Buffer() image.Point {
	dpr := a.Scale()
	return image.Point{
		X: int(math.Floor(max(a.Width, 0) * dpr)),
		Y: int(math.Floor(max(a.Height, 0) * dpr)),
	}
}

// Scale returns the device pixel ratio, defaulting to 1.
func (a Area) Scale() float64 {
	if a.DPR <= 0 || math.IsNaN(a.DPR) || math.IsInf(a.DPR, 0) {
		return 1
	}
	return a.DPR
}

// SurfaceMetrics reports the current size of a drawing surface. It is
// queried on every render since layout may change between frames.
type SurfaceMetrics interface {
	Area() Area
}

// StaticMetrics is a SurfaceMetrics with a fixed area.
type StaticMetrics Area

func (s StaticMetrics) Area() Area { return Area(s) }

// Mapping projects samples of a visible slice onto a pane. Times are in
// milliseconds.
type Mapping struct {
	XMin, XMax    float64
	YMin, YMax    float64
	Width, Height float64
}

// NewMapping computes the projection of the visible samples xs (seconds)
// and ys onto a width×height area. Samples with a NaN or infinite
// coordinate are ignored. The boolean result is false when fewer than two
// usable samples are visible and nothing should be plotted.
func NewMapping(xs, ys []float64, width, height float64) (Mapping, bool) {
	m := Mapping{Width: width, Height: height}
	if len(xs) != len(ys) {
		return m, false
	}
	usable := 0
	for i := range xs {
		if !finite(xs[i], ys[i]) {
			continue
		}
		x := xs[i] * 1000
		if usable == 0 {
			m.XMin, m.YMin, m.YMax = x, ys[i], ys[i]
		}
		// Timestamps are ordered, so the last usable one is the maximum.
		m.XMax = x
		m.YMin = min(m.YMin, ys[i])
		m.YMax = max(m.YMax, ys[i])
		usable++
	}
	if usable < 2 {
		return m, false
	}
	pad := (m.YMax - m.YMin) * PadRatio
	if pad == 0 {
		pad = 1
	}
	m.YMin -= pad
	m.YMax += pad
	return m, true
}

// finite reports whether every v is neither NaN nor infinite.
func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// X maps a time in milliseconds to a horizontal position.
func (m Mapping) X(t float64) float64 {
	return (t - m.XMin) / nonZero(m.XMax-m.XMin) * m.Width
}

// Y maps a value to a vertical position. Larger values are higher on
// screen.
func (m Mapping) Y(v float64) float64 {
	return m.Height - (v-m.YMin)/nonZero(m.YMax-m.YMin)*m.Height
}

// TimeAt is the inverse of X.
func (m Mapping) TimeAt(x float64) float64 {
	return m.XMin + x/nonZero(m.Width)*nonZero(m.XMax-m.XMin)
}

// ValueAt is the inverse of Y.
func (m Mapping) ValueAt(y float64) float64 {
	return m.YMin + (m.Height-y)/nonZero(m.Height)*nonZero(m.YMax-m.YMin)
}

// Project maps sample (timestamp in seconds, value) to a point.
func (m Mapping) Project(timestamp, value float64) Point {
	return Point{X: m.X(timestamp * 1000), Y: m.Y(value)}
}
