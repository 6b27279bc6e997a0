package plot

import (
	"math"

	"golang.org/x/exp/constraints"
)

func clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	return max(lo, min(v, hi))
}

// round rounds halves away from zero.
func round[T constraints.Float](a T) int {
	return int(math.Round(float64(a)))
}

// nonZero returns span, or 1 if span is zero. It keeps divisions by a
// degenerate range finite.
func nonZero[T constraints.Float](span T) T {
	if span == 0 {
		return 1
	}
	return span
}
