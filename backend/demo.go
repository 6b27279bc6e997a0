package backend

import (
	"math/rand"
	"time"

	"git.sr.ht/~whereswaldon/hedgechart/plot"
)

// DemoStart is the first timestamp of generated demo series.
var DemoStart = time.Unix(1_700_000_000, 0).UTC()

// GenerateDemo returns n hourly samples of a random walk starting at 100.
// The same seed always yields the same series.
func GenerateDemo(n int, start time.Time, seed int64) plot.Series {
	if n <= 0 {
		return plot.Series{}
	}
	r := rand.New(rand.NewSource(seed))
	ts := make([]float64, n)
	vs := make([]float64, n)
	base := float64(start.Unix())
	v := 100.0
	for i := range ts {
		ts[i] = base + float64(i)*time.Hour.Seconds()
		vs[i] = v
		// Steps of up to one percent either way, never below zero.
		v = max(0, v*(1+(r.Float64()-0.5)*0.02))
	}
	return plot.NewSeries(ts, vs)
}
