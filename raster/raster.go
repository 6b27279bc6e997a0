// Package raster draws plot panes into in-memory RGBA images.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"git.sr.ht/~whereswaldon/hedgechart/plot"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Canvas is a plot.Canvas backed by an *image.RGBA. Its pixel buffer is
// sized to the CSS area times the device pixel ratio.
type Canvas struct {
	img   *image.RGBA
	scale float64
	face  font.Face
	z     vector.Rasterizer
}

var _ plot.Canvas = (*Canvas)(nil)

// New returns a canvas that draws labels with face, or with a 7x13 bitmap
// font if face is nil.
func New(face font.Face) *Canvas {
	if face == nil {
		face = basicfont.Face7x13
	}
	return &Canvas{face: face, scale: 1}
}

// Image returns the backing buffer from the most recent Resize.
func (c *Canvas) Image() *image.RGBA {
	if c.img == nil {
		return image.NewRGBA(image.Rectangle{})
	}
	return c.img
}

func (c *Canvas) Resize(area plot.Area) {
	size := area.Buffer()
	if c.img == nil || c.img.Bounds().Size() != size {
		c.img = image.NewRGBA(image.Rectangle{Max: size})
	}
	c.scale = area.Scale()
}

func (c *Canvas) Clear() {
	if c.img == nil {
		return
	}
	draw.Draw(c.img, c.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func (c *Canvas) FillRect(r plot.Rect, col color.NRGBA) {
	if c.img == nil {
		return
	}
	px := image.Rect(
		int(math.Floor(r.Min.X*c.scale)),
		int(math.Floor(r.Min.Y*c.scale)),
		int(math.Ceil(r.Max.X*c.scale)),
		int(math.Ceil(r.Max.Y*c.scale)),
	).Intersect(c.img.Bounds())
	draw.Draw(c.img, px, image.NewUniform(col), image.Point{}, draw.Over)
}

// DrawLine strokes pts by filling one quad per segment. All quads share a
// winding direction so overlapping joints do not cancel out.
func (c *Canvas) DrawLine(pts []plot.Point, width float64, col color.NRGBA) {
	if c.img == nil || len(pts) < 2 || width <= 0 {
		return
	}
	size := c.img.Bounds().Size()
	if size.X == 0 || size.Y == 0 {
		return
	}
	c.z.Reset(size.X, size.Y)
	c.z.DrawOp = draw.Over
	half := width * c.scale / 2
	drawn := false
	for i := 1; i < len(pts); i++ {
		x0, y0 := pts[i-1].X*c.scale, pts[i-1].Y*c.scale
		x1, y1 := pts[i].X*c.scale, pts[i].Y*c.scale
		dx, dy := x1-x0, y1-y0
		length := math.Hypot(dx, dy)
		if length == 0 || math.IsNaN(length) || math.IsInf(length, 0) {
			continue
		}
		nx, ny := -dy/length*half, dx/length*half
		c.z.MoveTo(float32(x0+nx), float32(y0+ny))
		c.z.LineTo(float32(x1+nx), float32(y1+ny))
		c.z.LineTo(float32(x1-nx), float32(y1-ny))
		c.z.LineTo(float32(x0-nx), float32(y0-ny))
		c.z.ClosePath()
		drawn = true
	}
	if !drawn {
		return
	}
	c.z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

// DrawText renders s at 1x with the canvas face and scales the glyphs by
// the device pixel ratio.
func (c *Canvas) DrawText(s string, p plot.Point, col color.NRGBA) {
	if c.img == nil || s == "" {
		return
	}
	bounds, _ := font.BoundString(c.face, s)
	minX, minY := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
	maxX, maxY := bounds.Max.X.Ceil(), bounds.Max.Y.Ceil()
	if maxX <= minX || maxY <= minY {
		return
	}
	glyphs := image.NewRGBA(image.Rect(0, 0, maxX-minX, maxY-minY))
	d := font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.P(-minX, -minY),
	}
	d.DrawString(s)

	scaled := func(v float64) int { return int(math.Round(v * c.scale)) }
	dst := image.Rectangle{
		Min: image.Pt(scaled(p.X+float64(minX)), scaled(p.Y+float64(minY))),
		Max: image.Pt(scaled(p.X+float64(maxX)), scaled(p.Y+float64(maxY))),
	}
	xdraw.ApproxBiLinear.Scale(c.img, dst, glyphs, glyphs.Bounds(), draw.Over, nil)
}

// Stack composes images vertically with gap pixels between them over bg.
func Stack(gap int, bg color.Color, imgs ...*image.RGBA) *image.RGBA {
	width, height := 0, 0
	for i, img := range imgs {
		size := img.Bounds().Size()
		width = max(width, size.X)
		height += size.Y
		if i > 0 {
			height += gap
		}
	}
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	y := 0
	for _, img := range imgs {
		b := img.Bounds()
		draw.Draw(out, image.Rect(0, y, b.Dx(), y+b.Dy()), img, b.Min, draw.Over)
		y += b.Dy() + gap
	}
	return out
}
