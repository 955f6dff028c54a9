package geometry

import (
	"fmt"
	"math"

	"github.com/poiesic/unistroke/core"
)

// OptimalCosineDistance returns the smallest angle, in radians, between v1
// and any rotation of v2. Both strokes must be normalized and of equal length.
//
// The best rotation is found in closed form: with a = Σ(x1·x2 + y1·y2) and
// b = Σ(x1·y2 − y1·x2), the optimum is θ = atan(b/a) and the aligned inner
// product is a·cos θ + b·sin θ.
func OptimalCosineDistance(v1, v2 core.Stroke) (float64, error) {
	if len(v1) == 0 || len(v1) != len(v2) {
		return 0, fmt.Errorf("%w: cannot compare strokes of %d and %d points", core.ErrInvalidStroke, len(v1), len(v2))
	}

	var a, b float64
	for i := range v1 {
		a += v1[i].X*v2[i].X + v1[i].Y*v2[i].Y
		b += v1[i].X*v2[i].Y - v1[i].Y*v2[i].X
	}
	if a == 0 {
		return 0, fmt.Errorf("%w: zero inner product", core.ErrUndefinedRotation)
	}

	angle := math.Atan(b / a)
	x := a*math.Cos(angle) + b*math.Sin(angle)

	// Rounding can push |x| slightly past 1
	x = min(max(x, -1), 1)
	return math.Acos(x), nil
}
