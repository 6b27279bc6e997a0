package main

import (
	"image"
	"image/color"
	"math"

	"gioui.org/f32"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"gioui.org/x/stroke"
	"git.sr.ht/~whereswaldon/hedgechart/plot"
)

// labelSize is the text size of pane labels.
const labelSize = unit.Sp(12)

// gioCanvas is a plot.Canvas that emits Gio operations into the context
// given to begin. Coordinates arrive in Dp and are scaled to pixels here, so
// glyphs are not scaled twice. Every primitive is offset to the pane origin
// and clipped to the pane.
type gioCanvas struct {
	th     *material.Theme
	gtx    C
	origin image.Point
	scale  float32
	size   image.Point
	// segments is reused across frames to build stroke paths.
	segments []stroke.Segment
}

var _ plot.Canvas = (*gioCanvas)(nil)

// begin directs subsequent drawing into gtx at origin, in pixels.
func (g *gioCanvas) begin(gtx C, origin image.Point) {
	g.gtx = gtx
	g.gtx.Constraints.Min = image.Point{}
	g.origin = origin
}

func (g *gioCanvas) push() (pop func()) {
	offset := op.Offset(g.origin).Push(g.gtx.Ops)
	area := clip.Rect{Max: g.size}.Push(g.gtx.Ops)
	return func() {
		area.Pop()
		offset.Pop()
	}
}

func (g *gioCanvas) Resize(area plot.Area) {
	g.scale = float32(area.Scale())
	g.size = area.Buffer()
}

// Clear does nothing; Gio rebuilds its operations every frame.
func (g *gioCanvas) Clear() {}

func (g *gioCanvas) FillRect(r plot.Rect, col color.NRGBA) {
	px := image.Rect(
		int(math.Floor(r.Min.X*float64(g.scale))),
		int(math.Floor(r.Min.Y*float64(g.scale))),
		int(math.Ceil(r.Max.X*float64(g.scale))),
		int(math.Ceil(r.Max.Y*float64(g.scale))),
	)
	defer g.push()()
	paint.FillShape(g.gtx.Ops, col, clip.Rect(px).Op())
}

func (g *gioCanvas) pt(p plot.Point) f32.Point {
	return f32.Pt(float32(p.X)*g.scale, float32(p.Y)*g.scale)
}

func (g *gioCanvas) DrawLine(pts []plot.Point, width float64, col color.NRGBA) {
	if len(pts) < 2 {
		return
	}
	segments := append(g.segments[:0], stroke.MoveTo(g.pt(pts[0])))
	for _, p := range pts[1:] {
		segments = append(segments, stroke.LineTo(g.pt(p)))
	}
	g.segments = segments
	defer g.push()()
	shape := stroke.Stroke{
		Path:  stroke.Path{Segments: segments},
		Width: float32(width) * g.scale,
	}.Op(g.gtx.Ops)
	paint.FillShape(g.gtx.Ops, col, shape)
}

// DrawText lays out s as a material label whose baseline sits on p.
func (g *gioCanvas) DrawText(s string, p plot.Point, col color.NRGBA) {
	l := material.Label(g.th, labelSize, s)
	l.Color = col
	l.MaxLines = 1
	dims, call := rec(g.gtx, l.Layout)
	top := g.pt(p).Round().Sub(image.Pt(0, dims.Size.Y-dims.Baseline))
	defer g.push()()
	defer op.Offset(top).Push(g.gtx.Ops).Pop()
	call.Add(g.gtx.Ops)
}

func rec(gtx C, w layout.Widget) (D, op.CallOp) {
	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()
	return dims, call
}
