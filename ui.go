package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"git.sr.ht/~whereswaldon/hedgechart/backend"
	"git.sr.ht/~whereswaldon/hedgechart/plot"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var openIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.FileFolderOpen)
	return icon
}()

var resetIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.NavigationRefresh)
	return icon
}()

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws   backend.WindowState
	expl *explorer.Explorer
	th   *material.Theme

	chart     *ChartWidget
	openBtn   widget.Clickable
	resetBtn  widget.Clickable
	hasSeries bool
	openErr   string

	seriesStream *stream.Stream[plot.Series]
	statusStream *stream.Stream[backend.Status]
	status       backend.Status
}

// Options configure the chart panes.
type Options struct {
	TopHeight, BottomHeight unit.Dp
	TopColor, BottomColor   color.NRGBA
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, opts Options) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	th.Palette.Bg = plot.BackgroundColor
	th.Palette.Fg = plot.LabelColor
	th.Palette.ContrastBg = plot.GridColor
	th.Palette.ContrastFg = plot.LabelColor
	ui := &UI{
		ws:           ws,
		th:           th,
		expl:         expl,
		chart:        NewChartWidget(th, opts.TopColor, opts.BottomColor),
		seriesStream: stream.New(ws.Controller, ws.Datasource.Series),
		statusStream: stream.New(ws.Controller, ws.Datasource.Status),
	}
	if opts.TopHeight > 0 {
		ui.chart.TopHeight = opts.TopHeight
	}
	if opts.BottomHeight > 0 {
		ui.chart.BottomHeight = opts.BottomHeight
	}
	return ui
}

// Update the state of the UI from backend streams and widget events.
func (ui *UI) Update(gtx C) {
	ui.statusStream.ReadInto(gtx, &ui.status, backend.Status{})
	if s, isNew := ui.seriesStream.ReadNew(gtx); isNew {
		ui.chart.SetSeries(s)
		ui.hasSeries = s.Len() > 0
	}
	if ui.openBtn.Clicked(gtx) {
		ui.openErr = ""
		go func() {
			err := ui.ws.Datasource.LoadFromFile(ui.expl)
			if err != nil && !errors.Is(err, explorer.ErrUserDecline) {
				log.Printf("failed opening series: %v", err)
			}
		}()
	}
	if ui.resetBtn.Clicked(gtx) {
		ui.chart.ResetView()
	}
	if ui.status.Err != nil {
		ui.openErr = ui.status.Err.Error()
	}
}

func (ui *UI) statusText() string {
	if ui.status.Mode == backend.ModeNone {
		return "No source"
	}
	v := ui.chart.Viewport()
	return fmt.Sprintf("%s %s: %d samples, showing %s", ui.status.Mode, ui.status.Source, ui.status.Samples, v)
}

func (ui *UI) layoutToolbar(gtx C) D {
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			btn := material.IconButton(ui.th, &ui.openBtn, openIcon, "Open series")
			btn.Size = unit.Dp(20)
			btn.Inset = layout.UniformInset(6)
			return layout.UniformInset(4).Layout(gtx, btn.Layout)
		}),
		layout.Rigid(func(gtx C) D {
			if !ui.hasSeries {
				gtx = gtx.Disabled()
			}
			btn := material.IconButton(ui.th, &ui.resetBtn, resetIcon, "Reset view")
			btn.Size = unit.Dp(20)
			btn.Inset = layout.UniformInset(6)
			return layout.UniformInset(4).Layout(gtx, btn.Layout)
		}),
		layout.Flexed(1, func(gtx C) D {
			l := material.Body2(ui.th, ui.statusText())
			l.MaxLines = 1
			return layout.UniformInset(4).Layout(gtx, l.Layout)
		}),
	)
}

func (ui *UI) layoutError(gtx C) D {
	if len(ui.openErr) == 0 {
		return D{}
	}
	l := material.Body2(ui.th, ui.openErr)
	l.Color = color.NRGBA{R: 0xf5, G: 0x65, B: 0x65, A: 0xff}
	return layout.UniformInset(4).Layout(gtx, l.Layout)
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(ui.layoutToolbar),
		layout.Rigid(ui.layoutError),
		layout.Flexed(1, ui.chart.Layout),
	)
}

func (ui *UI) layoutStartScreen(gtx C) D {
	l := material.Body1(ui.th, "No chart data yet.")
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.openBtn, "Open Series").Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return ui.layoutError(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	paint.FillShape(gtx.Ops, ui.th.Bg, clip.Rect{Max: gtx.Constraints.Max}.Op())
	if ui.hasSeries {
		return ui.layoutMainArea(gtx)
	}
	return ui.layoutStartScreen(gtx)
}
