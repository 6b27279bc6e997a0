// Command hedgechart shows a time series in two linked panes that pan and
// zoom together.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/x/explorer"
	"git.sr.ht/~whereswaldon/hedgechart/backend"
	"git.sr.ht/~whereswaldon/hedgechart/plot"
)

func main() {
	input := flag.String("input", "", "CSV series to load (timestamp seconds, value)")
	follow := flag.Bool("follow", false, "keep reading -input as it grows")
	demo := flag.Int("demo", 0, "generate this many demo samples when no -input is given")
	topHeight := flag.Float64("top-height", 360, "height of the top pane in Dp")
	bottomHeight := flag.Float64("bottom-height", 160, "height of the bottom pane in Dp")
	topColor := flag.String("top-color", "", "line color of the top pane (#rrggbb)")
	bottomColor := flag.String("bottom-color", "", "line color of the bottom pane (#rrggbb)")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ds := backend.NewDatasource(ctx)
	switch {
	case *input != "" && *follow:
		if err := ds.Follow(*input); err != nil {
			log.Fatalf("failed following series: %v", err)
		}
	case *input != "":
		f, err := os.Open(*input)
		if err != nil {
			log.Fatalf("failed opening series: %v", err)
		}
		ds.LoadFromStream(*input, f)
	case *demo > 0:
		ds.LoadDemo(*demo)
	}
	opts := Options{
		TopHeight:    unit.Dp(*topHeight),
		BottomHeight: unit.Dp(*bottomHeight),
		TopColor:     plot.ColorOr(*topColor, plot.TopLineColor),
		BottomColor:  plot.ColorOr(*bottomColor, plot.BottomLineColor),
	}

	go func() {
		w := app.NewWindow(app.Title("HedgeChart"), app.Size(unit.Dp(960), unit.Dp(640)))
		if err := loop(ctx, w, ds, opts); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}

func loop(ctx context.Context, w *app.Window, ds *backend.Datasource, opts Options) error {
	expl := explorer.NewExplorer(w)
	ws := backend.NewWindowState(ctx, ds, w)
	ui := NewUI(ws, expl, opts)
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			ds.Stop()
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
			ws.Controller.Sweep()
		}
	}
}
