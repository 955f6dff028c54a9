package geometry

import (
	"fmt"
	"math"

	"github.com/poiesic/unistroke/core"
)

// IndicativeAngle returns the angle from the centroid of s to its first point.
func IndicativeAngle(s core.Stroke) (float64, error) {
	c, err := Centroid(s)
	if err != nil {
		return 0, err
	}
	return math.Atan2(s[0].Y-c.Y, s[0].X-c.X), nil
}

// Normalize translates s to its centroid, cancels its indicative angle and
// scales the flattened coordinate vector to unit length.
//
// With orientationSensitive set, the rotation only removes the offset from the
// nearest multiple of 45 degrees, so strokes drawn in different base
// directions stay distinguishable.
func Normalize(s core.Stroke, orientationSensitive bool) (core.Stroke, error) {
	if len(s) < core.MinStrokePoints {
		return nil, fmt.Errorf("%w: %d points, need at least %d", core.ErrInvalidStroke, len(s), core.MinStrokePoints)
	}

	c, err := Centroid(s)
	if err != nil {
		return nil, err
	}
	out := Translate(s, -c.X, -c.Y)

	angle := math.Atan2(out[0].Y, out[0].X)
	delta := -angle
	if orientationSensitive {
		base := (math.Pi / 4) * math.Floor((angle+math.Pi/8)/(math.Pi/4))
		delta = base - angle
	}
	out = RotateBy(out, delta)

	// Bring coordinates into [-1, 1] first so the norm stays representable
	scale := maxAbs(out)
	switch {
	case scale == 0:
		return nil, fmt.Errorf("%w: stroke has zero magnitude", core.ErrDegenerateGeometry)
	case math.IsInf(scale, 0) || math.IsNaN(scale):
		return nil, fmt.Errorf("%w: coordinates out of range", core.ErrDegenerateGeometry)
	}
	for i := range out {
		out[i].X /= scale
		out[i].Y /= scale
	}

	magnitude := Magnitude(out)
	for i := range out {
		out[i].X /= magnitude
		out[i].Y /= magnitude
	}
	return out, nil
}

// Vectorize resamples s to n points and normalizes the result.
func Vectorize(s core.Stroke, n int, orientationSensitive bool) (core.Stroke, error) {
	resampled, err := Resample(s, n)
	if err != nil {
		return nil, err
	}
	return Normalize(resampled, orientationSensitive)
}
