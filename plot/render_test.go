package plot

import (
	"fmt"
	"image/color"
	"math"
	"reflect"
	"testing"
)

type primitive struct {
	op     string
	pts    []Point
	width  float64
	text   string
	color  color.NRGBA
	area   Area
	bounds Rect
}

// recorder is a Canvas that records every call made to it.
type recorder struct {
	ops []primitive
}

func (r *recorder) Resize(area Area) {
	r.ops = append(r.ops, primitive{op: "resize", area: area})
}

func (r *recorder) Clear() {
	r.ops = append(r.ops, primitive{op: "clear"})
}

func (r *recorder) FillRect(b Rect, c color.NRGBA) {
	r.ops = append(r.ops, primitive{op: "fill", bounds: b, color: c})
}

func (r *recorder) DrawLine(pts []Point, width float64, c color.NRGBA) {
	r.ops = append(r.ops, primitive{op: "line", pts: append([]Point(nil), pts...), width: width, color: c})
}

func (r *recorder) DrawText(s string, p Point, c color.NRGBA) {
	r.ops = append(r.ops, primitive{op: "text", text: s, pts: []Point{p}, color: c})
}

func (r *recorder) count(op string) int {
	n := 0
	for _, p := range r.ops {
		if p.op == op {
			n++
		}
	}
	return n
}

// polylines returns the lines that are not grid lines.
func (r *recorder) polylines() []primitive {
	var out []primitive
	for _, p := range r.ops {
		if p.op == "line" && p.color != GridColor {
			out = append(out, p)
		}
	}
	return out
}

func (r *recorder) texts() []string {
	var out []string
	for _, p := range r.ops {
		if p.op == "text" {
			out = append(out, p.text)
		}
	}
	return out
}

func linearSeries(n int) Series {
	ts := make([]float64, n)
	vs := make([]float64, n)
	for i := range ts {
		ts[i] = 1_700_000_000 + float64(i)*3600
		vs[i] = 100 + float64(i%7)
	}
	return NewSeries(ts, vs)
}

var testArea = StaticMetrics{Width: 800, Height: 360, DPR: 2}

func TestRenderPaneShortSeries(t *testing.T) {
	s := linearSeries(5)
	v := NewViewport(s.Len())
	var rec recorder
	RenderPane(&rec, testArea, s, v, PaneOptions{Color: TopLineColor})
	if rec.ops[0].op != "resize" || rec.ops[0].area != Area(testArea) {
		t.Errorf("expected the pane to be resized first, got %+v", rec.ops[0])
	}
	if rec.ops[1].op != "clear" {
		t.Errorf("expected the pane to be cleared second, got %+v", rec.ops[1])
	}
	if n := rec.count("line") - len(rec.polylines()); n != GridLines {
		t.Errorf("expected %d grid lines, got %d", GridLines, n)
	}
	lines := rec.polylines()
	if len(lines) != 1 {
		t.Fatalf("expected one polyline, got %d", len(lines))
	}
	if len(lines[0].pts) != 5 {
		t.Errorf("expected a 5 point polyline, got %d points", len(lines[0].pts))
	}
	if lines[0].color != TopLineColor {
		t.Errorf("expected pane color %v, got %v", TopLineColor, lines[0].color)
	}
	if first, last := lines[0].pts[0], lines[0].pts[4]; first.X != 0 || last.X != 800 {
		t.Errorf("expected the line to span the pane, got %v to %v", first, last)
	}
	if n := rec.count("text"); n != 4 {
		t.Errorf("expected 4 labels, got %d", n)
	}
}

func TestRenderPaneEmptySeries(t *testing.T) {
	for _, s := range []Series{
		{},
		NewSeries([]float64{}, []float64{}),
		NewSeries([]float64{1, 2, 3}, []float64{1, 2}),
		NewSeries([]float64{1}, []float64{1}),
	} {
		var rec recorder
		RenderPane(&rec, testArea, s, NewViewport(s.Len()), PaneOptions{})
		if rec.count("fill") != 1 {
			t.Errorf("expected background to be drawn, got %d fills", rec.count("fill"))
		}
		if n := rec.count("line"); n != GridLines {
			t.Errorf("expected only %d grid lines, got %d lines", GridLines, n)
		}
		if n := rec.count("text"); n != 0 {
			t.Errorf("expected no labels, got %d", n)
		}
	}
}

func TestRenderPaneLabels(t *testing.T) {
	s := NewSeries([]float64{0, 1, 2.9}, []float64{10, 30, 20})
	var rec recorder
	RenderPane(&rec, StaticMetrics{Width: 400, Height: 100, DPR: 1}, s, NewViewport(s.Len()), PaneOptions{})
	expected := []string{"31.00", "9.00", "1970-01-01 00:00:00", "1970-01-01 00:00:02"}
	if got := rec.texts(); !reflect.DeepEqual(got, expected) {
		t.Errorf("expected labels %q, got %q", expected, got)
	}
	var positions []Point
	for _, p := range rec.ops {
		if p.op == "text" {
			positions = append(positions, p.pts[0])
		}
	}
	expectedPos := []Point{Pt(6, 14), Pt(6, 94), Pt(6, 26), Pt(220, 26)}
	if !reflect.DeepEqual(positions, expectedPos) {
		t.Errorf("expected label positions %v, got %v", expectedPos, positions)
	}
}

func TestRenderPaneVisibleWindow(t *testing.T) {
	s := linearSeries(1000)
	v := NewViewport(s.Len())
	v.Pan(-200)
	var rec recorder
	RenderPane(&rec, testArea, s, v, PaneOptions{Color: BottomLineColor})
	lines := rec.polylines()
	if len(lines) != 1 || len(lines[0].pts) != v.Width() {
		t.Fatalf("expected one polyline over %d samples, got %+v", v.Width(), lines)
	}
	start, _ := s.At(v.Start)
	if got := rec.texts()[2]; got != FormatTime(start*1000) {
		t.Errorf("expected start label %q, got %q", FormatTime(start*1000), got)
	}
}

func TestRenderPaneIdempotent(t *testing.T) {
	s := linearSeries(750)
	v := NewViewport(s.Len())
	v.Zoom(600, ZoomInFactor)
	var a, b recorder
	RenderPane(&a, testArea, s, v, PaneOptions{Color: TopLineColor})
	RenderPane(&b, testArea, s, v, PaneOptions{Color: TopLineColor})
	if !reflect.DeepEqual(a.ops, b.ops) {
		t.Errorf("rendering the same input twice produced different primitives")
	}
}

func TestChartRenderBothPanes(t *testing.T) {
	var top, bottom recorder
	chart := NewChart(
		Pane{Canvas: &top, Metrics: StaticMetrics{Width: 600, Height: 360, DPR: 1}, Options: PaneOptions{Color: TopLineColor}},
		Pane{Canvas: &bottom, Metrics: StaticMetrics{Width: 600, Height: 160, DPR: 1}, Options: PaneOptions{Color: BottomLineColor}},
		linearSeries(1000),
	)
	if v := chart.Viewport(); v.Start != 500 || v.End != 999 {
		t.Fatalf("expected the chart to start on the trailing window, got %v", v)
	}
	chart.Render()
	topLines, bottomLines := top.polylines(), bottom.polylines()
	if len(topLines) != 1 || len(bottomLines) != 1 {
		t.Fatalf("expected one polyline per pane, got %d and %d", len(topLines), len(bottomLines))
	}
	if topLines[0].color != TopLineColor || bottomLines[0].color != BottomLineColor {
		t.Errorf("panes should keep their own colors")
	}
	if !reflect.DeepEqual(top.texts(), bottom.texts()) {
		t.Errorf("panes sharing a viewport should label the same window: %q vs %q", top.texts(), bottom.texts())
	}
	for i := range topLines[0].pts {
		if topLines[0].pts[i].X != bottomLines[0].pts[i].X {
			t.Fatalf("point %d differs horizontally between panes", i)
		}
	}
}

func TestRenderPaneNonFinite(t *testing.T) {
	s := NewSeries([]float64{1, 2, 3, 4, 5}, []float64{1, 2, math.NaN(), 4, 5})
	var rec recorder
	RenderPane(&rec, testArea, s, NewViewport(s.Len()), PaneOptions{})
	lines := rec.polylines()
	if len(lines) != 1 {
		t.Fatalf("expected one polyline, got %d", len(lines))
	}
	if len(lines[0].pts) != 4 {
		t.Errorf("expected the NaN sample to be left out, got %d points", len(lines[0].pts))
	}
	for i, p := range lines[0].pts {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			t.Errorf("point %d is not finite: %v", i, p)
		}
	}
	if got := rec.texts(); got[0] != "5.20" || got[1] != "0.80" {
		t.Errorf("expected value labels 5.20 and 0.80, got %q", got)
	}
}

func TestChartDefaultColors(t *testing.T) {
	var top, bottom recorder
	chart := NewChart(
		Pane{Canvas: &top, Metrics: testArea},
		Pane{Canvas: &bottom, Metrics: testArea},
		linearSeries(20),
	)
	chart.Render()
	if lines := top.polylines(); len(lines) != 1 || lines[0].color != TopLineColor {
		t.Errorf("expected the top pane to default to %v", TopLineColor)
	}
	if lines := bottom.polylines(); len(lines) != 1 || lines[0].color != BottomLineColor {
		t.Errorf("expected the bottom pane to default to %v", BottomLineColor)
	}
}

func TestChartApply(t *testing.T) {
	chart := NewChart(Pane{}, Pane{}, linearSeries(200))
	if chart.Apply(Command{Kind: CommandPan, Delta: 950}) {
		t.Errorf("saturated pan should not report a change")
	}
	if !chart.Apply(Command{Kind: CommandPan, Delta: -20}) {
		t.Errorf("pan should report a change")
	}
	if v := chart.Viewport(); v.Start != 0 || v.End != 179 {
		t.Errorf("expected [0,179], got %v", v)
	}
	chart.Apply(Command{Kind: CommandReset})
	if v := chart.Viewport(); v.Start != 0 || v.End != 199 {
		t.Errorf("expected reset to [0,199], got %v", v)
	}
	chart.SetSeries(linearSeries(3))
	if v := chart.Viewport(); v.Start != 0 || v.End != 2 {
		t.Errorf("expected new series to reset the viewport, got %v", v)
	}
	chart.Render()
}

func TestFormatTime(t *testing.T) {
	for _, tc := range []struct {
		ms  float64
		exp string
	}{
		{ms: 0, exp: "1970-01-01 00:00:00"},
		{ms: 1_700_000_000_999, exp: "2023-11-14 22:13:20"},
		{ms: 1_700_000_001_000, exp: "2023-11-14 22:13:21"},
	} {
		if got := FormatTime(tc.ms); got != tc.exp {
			t.Errorf("%v: expected %q, got %q", tc.ms, tc.exp, got)
		}
	}
}

func ExampleRenderPane() {
	var rec recorder
	s := NewSeries([]float64{0, 60}, []float64{1, 2})
	RenderPane(&rec, StaticMetrics{Width: 300, Height: 100}, s, NewViewport(s.Len()), PaneOptions{})
	fmt.Println(rec.texts())
	// Output: [2.05 0.95 1970-01-01 00:00:00 1970-01-01 00:01:00]
}
