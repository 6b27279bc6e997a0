package plot

import (
	"fmt"
	"math"
)

const (
	// InitialWindow is the number of trailing samples shown after a reset.
	InitialWindow = 500
	// MinWindow is the narrowest window that zooming can produce.
	MinWindow = 10
)

// Viewport is the closed index interval [Start,End] of a series that is
// currently visible.
type Viewport struct {
	Start, End int
	n          int
}

// NewViewport returns a viewport reset for a series of n samples.
func NewViewport(n int) Viewport {
	var v Viewport
	v.Reset(n)
	return v
}

// Reset shows the trailing window of up to InitialWindow samples of a series
// with n samples.
func (v *Viewport) Reset(n int) {
	n = max(n, 0)
	v.n = n
	if n == 0 {
		v.Start, v.End = 0, 0
		return
	}
	w := min(InitialWindow, n)
	v.Start = n - w
	v.End = n - 1
}

// Len returns the number of samples in the underlying series.
func (v Viewport) Len() int { return v.n }

// Empty reports whether the viewport covers no samples.
func (v Viewport) Empty() bool { return v.n == 0 }

// Width returns the number of visible samples.
func (v Viewport) Width() int {
	if v.Empty() {
		return 0
	}
	return v.End - v.Start + 1
}

// Renderable reports whether enough samples are visible to draw a line.
func (v Viewport) Renderable() bool { return v.Width() >= 2 }

// Mid returns the rounded midpoint index of the window.
func (v Viewport) Mid() int {
	return round(float64(v.Start+v.End) / 2)
}

// Pan shifts the window by delta samples. A shift past either end of the
// series is absorbed by the opposite edge so the width is kept.
func (v *Viewport) Pan(delta int) {
	if v.Empty() || delta == 0 {
		return
	}
	last := v.n - 1
	s, e := v.Start+delta, v.End+delta
	if s < 0 {
		e -= s
		s = 0
	}
	if e > last {
		s -= e - last
		e = last
	}
	v.Start = max(0, s)
	v.End = min(last, e)
}

// Zoom rescales the window width by factor around the focal index. Factors
// above one zoom out and factors below one zoom in. The resulting width is
// kept within [MinWindow, Len()].
func (v *Viewport) Zoom(focal int, factor float64) {
	if v.Empty() || math.IsNaN(factor) || factor <= 0 {
		return
	}
	last := v.n - 1
	width := max(MinWindow, v.Width())
	scaled := float64(width) * factor
	var newWidth int
	if math.IsInf(scaled, 1) || scaled > float64(v.n) {
		newWidth = v.n
	} else {
		newWidth = min(max(round(scaled), MinWindow), v.n)
	}
	focal = clamp(focal, 0, last)
	s := max(0, focal-newWidth/2)
	e := min(last, s+newWidth-1)
	if e-s+1 < newWidth {
		s = max(0, e-newWidth+1)
	}
	v.Start, v.End = s, e
}

func (v Viewport) String() string {
	if v.Empty() {
		return "[]"
	}
	return fmt.Sprintf("[%d,%d]/%d", v.Start, v.End, v.n)
}
