package geometry

import (
	"fmt"
	"math"

	"github.com/poiesic/unistroke/core"
)

// Distance returns the Euclidean distance between two points.
func Distance(a, b core.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// PathLength returns the sum of distances between consecutive points.
func PathLength(s core.Stroke) float64 {
	var d float64
	for i := 1; i < len(s); i++ {
		d += Distance(s[i-1], s[i])
	}
	return d
}

// Centroid returns the arithmetic mean of all points.
func Centroid(s core.Stroke) (core.Point, error) {
	if len(s) == 0 {
		return core.Point{}, fmt.Errorf("%w: centroid of empty stroke", core.ErrInvalidStroke)
	}
	var x, y float64
	for _, p := range s {
		x += p.X
		y += p.Y
	}
	n := float64(len(s))
	return core.Point{X: x / n, Y: y / n}, nil
}

// Translate returns s shifted by (dx, dy).
func Translate(s core.Stroke, dx, dy float64) core.Stroke {
	out := make(core.Stroke, len(s))
	for i, p := range s {
		out[i] = core.Point{X: p.X + dx, Y: p.Y + dy}
	}
	return out
}

// RotateBy returns s rotated by angle radians about the origin.
func RotateBy(s core.Stroke, angle float64) core.Stroke {
	sin, cos := math.Sincos(angle)
	out := make(core.Stroke, len(s))
	for i, p := range s {
		out[i] = core.Point{
			X: p.X*cos - p.Y*sin,
			Y: p.X*sin + p.Y*cos,
		}
	}
	return out
}

// ScaleBy returns s scaled uniformly by k about the origin.
func ScaleBy(s core.Stroke, k float64) core.Stroke {
	out := make(core.Stroke, len(s))
	for i, p := range s {
		out[i] = core.Point{X: p.X * k, Y: p.Y * k}
	}
	return out
}

// Magnitude returns the Euclidean norm of the stroke flattened to
// (x0, y0, x1, y1, ...). Coordinates are scaled by the largest one before
// squaring, so the result neither overflows nor underflows for finite input
// unless the norm itself is out of range.
func Magnitude(s core.Stroke) float64 {
	scale := maxAbs(s)
	if scale == 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return scale
	}
	var sum float64
	for _, p := range s {
		x, y := p.X/scale, p.Y/scale
		sum += x*x + y*y
	}
	return scale * math.Sqrt(sum)
}

// maxAbs returns the largest absolute coordinate in s.
func maxAbs(s core.Stroke) float64 {
	var m float64
	for _, p := range s {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			return math.NaN()
		}
		m = max(m, math.Abs(p.X), math.Abs(p.Y))
	}
	return m
}

// Thin drops points that lie within minDistance of the last kept point, the
// way pointer capture skips jitter. The first point is always kept.
// A non-positive minDistance returns a copy of s.
func Thin(s core.Stroke, minDistance float64) core.Stroke {
	if minDistance <= 0 || len(s) == 0 {
		return s.Clone()
	}
	out := core.Stroke{s[0]}
	for _, p := range s[1:] {
		if Distance(out[len(out)-1], p) > minDistance {
			out = append(out, p)
		}
	}
	return out
}
