package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"

	"git.sr.ht/~whereswaldon/hedgechart/backend"
	"git.sr.ht/~whereswaldon/hedgechart/plot"
	"git.sr.ht/~whereswaldon/hedgechart/raster"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: render a csv time series as a two pane chart image
Usage:

 %[1]s -input series.csv -output chart.png

OR

 %[1]s -demo 2000 -zoom -3 -pan 200 > chart.png

`, os.Args[0])
	flag.PrintDefaults()
}

// config describes one render.
type config struct {
	Width, TopHeight, BottomHeight float64
	DPR                            float64
	// Pan is a drag distance in CSS pixels. Positive values drag right,
	// revealing earlier samples.
	Pan float64
	// Zoom is a number of wheel steps. Positive values zoom out.
	Zoom                  int
	TopColor, BottomColor color.NRGBA
}

// paneGap is the distance between the panes in CSS pixels.
const paneGap = 8

// render draws s into a single image holding both panes after replaying
// the configured gestures.
func render(s plot.Series, cfg config) (*image.RGBA, plot.Viewport) {
	top, bottom := raster.New(nil), raster.New(nil)
	chart := plot.NewChart(
		plot.Pane{
			Canvas:  top,
			Metrics: plot.StaticMetrics{Width: cfg.Width, Height: cfg.TopHeight, DPR: cfg.DPR},
			Options: plot.PaneOptions{Color: cfg.TopColor},
		},
		plot.Pane{
			Canvas:  bottom,
			Metrics: plot.StaticMetrics{Width: cfg.Width, Height: cfg.BottomHeight, DPR: cfg.DPR},
			Options: plot.PaneOptions{Color: cfg.BottomColor},
		},
		s,
	)
	var container, window plot.Hub
	controller := plot.Controller{Chart: chart}
	binding := plot.Bind(&container, &window, func(ev plot.InputEvent) {
		controller.Handle(ev)
	})
	defer binding.Release()

	wheel := plot.InputEvent{Kind: plot.Wheel, WheelDelta: 1}
	if cfg.Zoom < 0 {
		wheel.WheelDelta = -1
	}
	for i := 0; i < abs(cfg.Zoom); i++ {
		container.Dispatch(wheel)
	}
	if cfg.Pan != 0 {
		x := cfg.Width / 2
		at := func(kind plot.InputKind, x float64) plot.InputEvent {
			return plot.InputEvent{Kind: kind, X: x, HasX: true, ContainerWidth: cfg.Width}
		}
		container.Dispatch(at(plot.PointerDown, x))
		container.Dispatch(at(plot.PointerMove, x+cfg.Pan))
		window.Dispatch(at(plot.PointerUp, x+cfg.Pan))
	}

	chart.Render()
	gap := int(paneGap * max(cfg.DPR, 1))
	return raster.Stack(gap, plot.BackgroundColor, top.Image(), bottom.Image()), chart.Viewport()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func loadSeries(path string, demo int) (plot.Series, error) {
	if path == "" {
		return backend.GenerateDemo(demo, backend.DemoStart, 1), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return plot.Series{}, fmt.Errorf("failed opening series: %w", err)
	}
	s, err := backend.ReadSeries(f)
	return s, errors.Join(err, f.Close())
}

func writePNG(path string, img image.Image) (err error) {
	var out io.WriteCloser = os.Stdout
	if path != "-" {
		f, createErr := os.Create(path)
		if createErr != nil {
			return fmt.Errorf("failed creating output: %w", createErr)
		}
		out = f
		defer func() {
			err = errors.Join(err, f.Close())
		}()
	}
	w := bufio.NewWriter(out)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed encoding png: %w", err)
	}
	return w.Flush()
}

func main() {
	flag.Usage = usage
	input := flag.String("input", "", "CSV series to render (timestamp seconds, value)")
	output := flag.String("output", "-", "Output file for the PNG image")
	demo := flag.Int("demo", 1200, "number of demo samples to render when no -input is given")
	width := flag.Float64("width", 960, "pane width in CSS pixels")
	topHeight := flag.Float64("top-height", 360, "height of the top pane in CSS pixels")
	bottomHeight := flag.Float64("bottom-height", 160, "height of the bottom pane in CSS pixels")
	dpr := flag.Float64("dpr", 1, "device pixel ratio")
	pan := flag.Float64("pan", 0, "drag distance in CSS pixels; positive reveals earlier samples")
	zoom := flag.Int("zoom", 0, "wheel steps; positive zooms out, negative zooms in")
	topColor := flag.String("top-color", "", "line color of the top pane (#rrggbb)")
	bottomColor := flag.String("bottom-color", "", "line color of the bottom pane (#rrggbb)")
	flag.Parse()

	s, err := loadSeries(*input, *demo)
	if err != nil {
		log.Fatalf("failed loading series: %v", err)
	}
	if err := s.Validate(); err != nil {
		log.Printf("series %q: %v", *input, err)
	}
	img, view := render(s, config{
		Width:        *width,
		TopHeight:    *topHeight,
		BottomHeight: *bottomHeight,
		DPR:          *dpr,
		Pan:          *pan,
		Zoom:         *zoom,
		TopColor:     plot.ColorOr(*topColor, plot.TopLineColor),
		BottomColor:  plot.ColorOr(*bottomColor, plot.BottomLineColor),
	})
	log.Printf("rendered %d samples, viewport %v", s.Len(), view)
	if err := writePNG(*output, img); err != nil {
		log.Fatalf("failed writing image: %v", err)
	}
}
