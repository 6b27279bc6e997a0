package plot

import "testing"

func TestViewportReset(t *testing.T) {
	for n := 0; n <= 1200; n++ {
		v := NewViewport(n)
		if v.Start < 0 || v.Start > v.End || v.End > max(n-1, 0) {
			t.Fatalf("reset(%d) produced out of range viewport %v", n, v)
		}
		if n == 0 {
			if !v.Empty() {
				t.Errorf("reset(0) should be empty, got %v", v)
			}
			continue
		}
		if w := v.Width(); w != min(InitialWindow, n) {
			t.Errorf("reset(%d) expected width %d, got %d", n, min(InitialWindow, n), w)
		}
		if v.End != n-1 {
			t.Errorf("reset(%d) expected end %d, got %d", n, n-1, v.End)
		}
	}
}

func TestViewportResetScenarios(t *testing.T) {
	type testcase struct {
		name       string
		n          int
		start, end int
		renderable bool
	}
	for _, tc := range []testcase{
		{name: "long series", n: 1000, start: 500, end: 999, renderable: true},
		{name: "short series", n: 5, start: 0, end: 4, renderable: true},
		{name: "exact window", n: 500, start: 0, end: 499, renderable: true},
		{name: "single sample", n: 1, start: 0, end: 0},
		{name: "empty", n: 0, start: 0, end: 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			v := NewViewport(tc.n)
			if v.Start != tc.start || v.End != tc.end {
				t.Errorf("expected [%d,%d], got [%d,%d]", tc.start, tc.end, v.Start, v.End)
			}
			if v.Renderable() != tc.renderable {
				t.Errorf("expected renderable %v, got %v", tc.renderable, v.Renderable())
			}
		})
	}
}

func TestViewportPan(t *testing.T) {
	type testcase struct {
		name       string
		n          int
		start, end int
		delta      int
		expStart   int
		expEnd     int
	}
	for _, tc := range []testcase{
		{name: "pan left", n: 1000, start: 100, end: 199, delta: -20, expStart: 80, expEnd: 179},
		{name: "pan right", n: 1000, start: 100, end: 199, delta: 20, expStart: 120, expEnd: 219},
		{name: "saturate right", n: 200, start: 100, end: 199, delta: 950, expStart: 100, expEnd: 199},
		{name: "saturate left", n: 200, start: 10, end: 109, delta: -950, expStart: 0, expEnd: 99},
		{name: "partial clamp right", n: 200, start: 50, end: 149, delta: 70, expStart: 100, expEnd: 199},
		{name: "zero delta", n: 200, start: 50, end: 149, delta: 0, expStart: 50, expEnd: 149},
		{name: "whole series", n: 5, start: 0, end: 4, delta: 3, expStart: 0, expEnd: 4},
	} {
		t.Run(tc.name, func(t *testing.T) {
			v := NewViewport(tc.n)
			v.Start, v.End = tc.start, tc.end
			v.Pan(tc.delta)
			if v.Start != tc.expStart || v.End != tc.expEnd {
				t.Errorf("expected [%d,%d], got [%d,%d]", tc.expStart, tc.expEnd, v.Start, v.End)
			}
		})
	}
}

func TestViewportPanKeepsWidth(t *testing.T) {
	const n = 300
	for _, width := range []int{10, 57, 100, 300} {
		for delta := -700; delta <= 700; delta += 13 {
			v := NewViewport(n)
			v.Start = n - width
			v.Pan(delta)
			if v.Start < 0 || v.End > n-1 || v.Start > v.End {
				t.Fatalf("width %d delta %d: viewport %v out of range", width, delta, v)
			}
			if v.Width() != width {
				t.Errorf("width %d delta %d: expected to keep width, got %d", width, delta, v.Width())
			}
		}
	}
}

func TestViewportPanEmpty(t *testing.T) {
	v := NewViewport(0)
	v.Pan(10)
	if !v.Empty() || v.Start != 0 || v.End != 0 {
		t.Errorf("panning an empty viewport should be a no-op, got %v", v)
	}
}

func TestViewportZoom(t *testing.T) {
	type testcase struct {
		name       string
		n          int
		start, end int
		focal      int
		factor     float64
		expStart   int
		expEnd     int
	}
	for _, tc := range []testcase{
		{name: "zoom in at focal", n: 1000, start: 400, end: 499, focal: 450, factor: ZoomInFactor, expStart: 408, expEnd: 492},
		{name: "zoom out at focal", n: 1000, start: 400, end: 499, focal: 450, factor: ZoomOutFactor, expStart: 393, expEnd: 507},
		{name: "zoom out clamps right", n: 1000, start: 900, end: 999, focal: 990, factor: ZoomOutFactor, expStart: 885, expEnd: 999},
		{name: "zoom out clamps left", n: 1000, start: 0, end: 99, focal: 5, factor: ZoomOutFactor, expStart: 0, expEnd: 114},
		{name: "zoom out saturates", n: 120, start: 10, end: 109, focal: 60, factor: 10, expStart: 0, expEnd: 119},
		{name: "zoom in saturates", n: 1000, start: 400, end: 409, focal: 405, factor: ZoomInFactor, expStart: 400, expEnd: 409},
		{name: "short series", n: 5, start: 0, end: 4, focal: 2, factor: ZoomInFactor, expStart: 0, expEnd: 4},
		{name: "focal out of range", n: 1000, start: 400, end: 499, focal: 5000, factor: ZoomInFactor, expStart: 915, expEnd: 999},
		{name: "invalid factor", n: 1000, start: 400, end: 499, focal: 450, factor: -1, expStart: 400, expEnd: 499},
	} {
		t.Run(tc.name, func(t *testing.T) {
			v := NewViewport(tc.n)
			v.Start, v.End = tc.start, tc.end
			v.Zoom(tc.focal, tc.factor)
			if v.Start != tc.expStart || v.End != tc.expEnd {
				t.Errorf("expected [%d,%d], got [%d,%d]", tc.expStart, tc.expEnd, v.Start, v.End)
			}
		})
	}
}

func TestViewportZoomInvariants(t *testing.T) {
	for _, n := range []int{2, 9, 10, 11, 250, 1000} {
		for _, factor := range []float64{0.1, ZoomInFactor, 1, ZoomOutFactor, 3} {
			for focal := 0; focal < n; focal += max(1, n/17) {
				v := NewViewport(n)
				v.Zoom(focal, factor)
				if v.Start < 0 || v.End > n-1 || v.Start > v.End {
					t.Fatalf("n %d factor %v focal %d: viewport %v out of range", n, factor, focal, v)
				}
				if w := v.Width(); w < min(MinWindow, n) || w > n {
					t.Errorf("n %d factor %v focal %d: width %d outside [%d,%d]", n, factor, focal, w, min(MinWindow, n), n)
				}
				if focal < v.Start || focal > v.End {
					t.Errorf("n %d factor %v focal %d: focal outside %v", n, factor, focal, v)
				}
			}
		}
	}
}
