package dataset

import (
	"math"

	"github.com/poiesic/unistroke/core"
)

// Builtin returns the reference shapes shipped with the recognizer, in a
// fixed order. Coordinates use screen orientation (y grows downward).
// Each call returns fresh values that the caller may modify.
func Builtin() []*core.RawTemplate {
	return []*core.RawTemplate{
		{Name: "line", Points: core.Stroke{{X: 0, Y: 0}, {X: 50, Y: 0}, {X: 100, Y: 0}}},
		{Name: "circle", Points: ellipse(32, 50, 50, 50, 50)},
		{Name: "triangle", Points: core.Stroke{{X: 0, Y: 100}, {X: 50, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}},
		{Name: "rectangle", Points: core.Stroke{{X: 0, Y: 0}, {X: 0, Y: 60}, {X: 100, Y: 60}, {X: 100, Y: 0}, {X: 0, Y: 0}}},
		{Name: "check", Points: core.Stroke{{X: 0, Y: 50}, {X: 30, Y: 100}, {X: 100, Y: 0}}},
		{Name: "caret", Points: core.Stroke{{X: 0, Y: 100}, {X: 50, Y: 0}, {X: 100, Y: 100}}},
		{Name: "zigzag", Points: core.Stroke{{X: 0, Y: 0}, {X: 25, Y: 50}, {X: 50, Y: 0}, {X: 75, Y: 50}, {X: 100, Y: 0}}},
		{Name: "arrow", Points: core.Stroke{{X: 0, Y: 50}, {X: 100, Y: 50}, {X: 70, Y: 20}, {X: 100, Y: 50}, {X: 70, Y: 80}}},
		{Name: "star", Points: star(50, 50, 50)},
		{Name: "pigtail", Points: pigtail(24)},
	}
}

// ellipse returns a closed loop of k segments starting at angle 0.
func ellipse(k int, cx, cy, rx, ry float64) core.Stroke {
	s := make(core.Stroke, k+1)
	for i := range s {
		theta := 2 * math.Pi * float64(i) / float64(k)
		s[i] = core.Point{X: cx + rx*math.Cos(theta), Y: cy + ry*math.Sin(theta)}
	}
	return s
}

// star returns a five-pointed star drawn in one stroke, visiting every
// second outer vertex.
func star(cx, cy, r float64) core.Stroke {
	s := make(core.Stroke, 6)
	for i := range s {
		theta := -math.Pi/2 + float64(i*2%5)*2*math.Pi/5
		s[i] = core.Point{X: cx + r*math.Cos(theta), Y: cy + r*math.Sin(theta)}
	}
	return s
}

// pigtail returns a curve with a single loop (a prolate cycloid arch).
func pigtail(k int) core.Stroke {
	s := make(core.Stroke, k)
	for i := range s {
		t := 2 * math.Pi * float64(i) / float64(k-1)
		s[i] = core.Point{X: 20*t - 40*math.Sin(t), Y: -40 * math.Cos(t)}
	}
	return s
}
