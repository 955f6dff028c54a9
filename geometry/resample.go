package geometry

import (
	"fmt"

	"github.com/poiesic/unistroke/core"
)

// Resample returns exactly n points spaced PathLength(s)/(n-1) apart along s.
// The first point equals s[0]. When floating-point error leaves the walk one
// point short, the last point of s fills the gap.
func Resample(s core.Stroke, n int) (core.Stroke, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: sample count %d, need at least 2", core.ErrInvalidStroke, n)
	}
	if len(s) < core.MinStrokePoints {
		return nil, fmt.Errorf("%w: %d points, need at least %d", core.ErrInvalidStroke, len(s), core.MinStrokePoints)
	}

	length := PathLength(s)
	if length == 0 {
		return nil, fmt.Errorf("%w: stroke has zero path length", core.ErrDegenerateGeometry)
	}
	interval := length / float64(n-1)

	out := make(core.Stroke, 1, n)
	out[0] = s[0]

	// prev starts each measurement. After emitting q it becomes q, so the rest
	// of the current segment is measured from the emitted point.
	prev := s[0]
	accumulated := 0.0
	for i := 1; i < len(s) && len(out) < n; {
		d := Distance(prev, s[i])
		if accumulated+d >= interval {
			t := (interval - accumulated) / d
			q := core.Point{
				X: prev.X + t*(s[i].X-prev.X),
				Y: prev.Y + t*(s[i].Y-prev.Y),
			}
			out = append(out, q)
			prev = q
			accumulated = 0
		} else {
			accumulated += d
			prev = s[i]
			i++
		}
	}

	for len(out) < n {
		out = append(out, s[len(s)-1])
	}
	return out, nil
}
