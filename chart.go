package main

import (
	"image"
	"image/color"
	"log"
	"math"

	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/op/clip"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"git.sr.ht/~whereswaldon/hedgechart/plot"
)

// paneMetrics reports the Dp size of a pane as of the latest layout.
type paneMetrics struct {
	area plot.Area
}

func (m *paneMetrics) Area() plot.Area { return m.area }

// ChartWidget shows a series in two stacked panes that share one viewport.
// Dragging pans both panes and the scroll wheel zooms them.
type ChartWidget struct {
	TopHeight, BottomHeight, Gap unit.Dp

	chart      *plot.Chart
	controller plot.Controller
	// container receives events over the chart; window receives releases
	// that may happen anywhere once a drag started.
	container, window plot.Hub
	binding           *plot.Binding

	top, bottom               gioCanvas
	topMetrics, bottomMetrics paneMetrics
	// width is the chart width in pixels as of the latest layout.
	width int
}

func NewChartWidget(th *material.Theme, topColor, bottomColor color.NRGBA) *ChartWidget {
	w := &ChartWidget{
		TopHeight:    360,
		BottomHeight: 160,
		Gap:          8,
	}
	w.top.th = th
	w.bottom.th = th
	w.chart = plot.NewChart(
		plot.Pane{Canvas: &w.top, Metrics: &w.topMetrics, Options: plot.PaneOptions{Color: topColor}},
		plot.Pane{Canvas: &w.bottom, Metrics: &w.bottomMetrics, Options: plot.PaneOptions{Color: bottomColor}},
		plot.Series{},
	)
	w.controller.Chart = w.chart
	w.bind()
	return w
}

// SetSeries shows s from its trailing window. Listeners bound for the
// previous series are released first.
func (w *ChartWidget) SetSeries(s plot.Series) {
	if err := s.Validate(); err != nil {
		log.Printf("chart series: %v", err)
	}
	w.chart.SetSeries(s)
	w.controller.Reset()
	w.bind()
}

func (w *ChartWidget) bind() {
	w.binding.Release()
	w.binding = plot.Bind(&w.container, &w.window, func(ev plot.InputEvent) {
		w.controller.Handle(ev)
	})
}

// ResetView returns the viewport to the trailing window of the series.
func (w *ChartWidget) ResetView() {
	w.controller.Reset()
	w.chart.Apply(plot.Command{Kind: plot.CommandReset})
}

// Viewport returns the visible window.
func (w *ChartWidget) Viewport() plot.Viewport {
	return w.chart.Viewport()
}

// Update processes pointer input.
func (w *ChartWidget) Update(gtx C) {
	for {
		ev, ok := gtx.Event(pointer.Filter{
			Target:  w,
			Kinds:   pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel | pointer.Scroll,
			ScrollY: pointer.ScrollRange{Min: math.MinInt32, Max: math.MaxInt32},
		})
		if !ok {
			break
		}
		e, ok := ev.(pointer.Event)
		if !ok {
			continue
		}
		in, toWindow, ok := translate(e, w.width, gtx.Metric.PxPerDp)
		if !ok {
			continue
		}
		if toWindow {
			w.window.Dispatch(in)
		} else {
			w.container.Dispatch(in)
		}
	}
}

// translate converts a Gio pointer event into a chart input event with
// coordinates in Dp. Mouse releases go to the window target; everything
// else goes to the chart container.
func translate(e pointer.Event, widthPx int, pxPerDp float32) (in plot.InputEvent, toWindow, ok bool) {
	if pxPerDp <= 0 {
		pxPerDp = 1
	}
	in = plot.InputEvent{
		X:              float64(e.Position.X / pxPerDp),
		HasX:           true,
		ContainerWidth: float64(float32(widthPx) / pxPerDp),
	}
	touch := e.Source == pointer.Touch
	switch e.Kind {
	case pointer.Press:
		in.Kind = plot.PointerDown
		if touch {
			in.Kind = plot.TouchStart
		}
	case pointer.Drag:
		in.Kind = plot.PointerMove
		if touch {
			in.Kind = plot.TouchMove
		}
	case pointer.Release, pointer.Cancel:
		in.HasX = e.Kind == pointer.Release
		if touch {
			in.Kind = plot.TouchEnd
			return in, false, true
		}
		in.Kind = plot.PointerUp
		return in, true, true
	case pointer.Scroll:
		in.Kind = plot.Wheel
		in.WheelDelta = float64(e.Scroll.Y)
	default:
		return plot.InputEvent{}, false, false
	}
	return in, false, true
}

// Layout draws both panes one gap apart.
func (w *ChartWidget) Layout(gtx C) D {
	w.Update(gtx)
	w.width = gtx.Constraints.Max.X
	topHeight, gap, bottomHeight := gtx.Dp(w.TopHeight), gtx.Dp(w.Gap), gtx.Dp(w.BottomHeight)
	size := gtx.Constraints.Constrain(image.Pt(w.width, topHeight+gap+bottomHeight))

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	pointer.CursorGrab.Add(gtx.Ops)
	event.Op(gtx.Ops, w)

	dpr := float64(gtx.Metric.PxPerDp)
	widthDp := float64(gtx.Metric.PxToDp(w.width))
	w.topMetrics.area = plot.Area{Width: widthDp, Height: float64(w.TopHeight), DPR: dpr}
	w.bottomMetrics.area = plot.Area{Width: widthDp, Height: float64(w.BottomHeight), DPR: dpr}
	w.top.begin(gtx, image.Point{})
	w.bottom.begin(gtx, image.Pt(0, topHeight+gap))
	w.chart.Render()
	return D{Size: size}
}
