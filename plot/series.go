// Package plot implements a two-pane, pannable and zoomable time-series
// chart that draws onto any Canvas.
package plot

import (
	"errors"
	"slices"
)

var (
	ErrEmptySeries         = errors.New("series is empty")
	ErrLengthMismatch      = errors.New("series timestamps and values differ in length")
	ErrUnorderedTimestamps = errors.New("series timestamps are not non-decreasing")
	ErrNonFinite           = errors.New("series holds NaN or infinite samples")
)

// Series is one time-ordered data set. Timestamps are in seconds. A Series
// is never modified after construction; new data replaces it wholesale.
type Series struct {
	timestamps []float64
	values     []float64
}

// NewSeries builds a Series from copies of the provided slices.
func NewSeries(timestamps, values []float64) Series {
	return Series{
		timestamps: slices.Clone(timestamps),
		values:     slices.Clone(values),
	}
}

// Validate reports why a series cannot be plotted, if it cannot.
func (s Series) Validate() error {
	if len(s.timestamps) != len(s.values) {
		return ErrLengthMismatch
	}
	if len(s.timestamps) == 0 {
		return ErrEmptySeries
	}
	for i := range s.timestamps {
		if !finite(s.timestamps[i], s.values[i]) {
			return ErrNonFinite
		}
		if i > 0 && s.timestamps[i] < s.timestamps[i-1] {
			return ErrUnorderedTimestamps
		}
	}
	return nil
}

// Len returns the number of usable samples. A series whose timestamps and
// values differ in length has no usable samples.
func (s Series) Len() int {
	if len(s.timestamps) != len(s.values) {
		return 0
	}
	return len(s.timestamps)
}

// At returns the sample at index i.
func (s Series) At(i int) (timestamp, value float64) {
	return s.timestamps[i], s.values[i]
}

// Slice returns the samples in the closed index interval [start,end]. The
// returned slices alias the series and must not be modified.
func (s Series) Slice(start, end int) (timestamps, values []float64) {
	n := s.Len()
	start = max(start, 0)
	end = min(end, n-1)
	if n == 0 || end < start {
		return nil, nil
	}
	return s.timestamps[start : end+1], s.values[start : end+1]
}
