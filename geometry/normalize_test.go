package geometry

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/poiesic/unistroke/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertStrokesInDelta(t *testing.T, expected, actual core.Stroke, delta float64) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		assert.InDelta(t, expected[i].X, actual[i].X, delta, "x of point %d", i)
		assert.InDelta(t, expected[i].Y, actual[i].Y, delta, "y of point %d", i)
	}
}

func TestNormalize_Invariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for trial := 0; trial < 50; trial++ {
		s := randomStroke(rng, 2+rng.IntN(20))
		v, err := Normalize(s, false)
		require.NoError(t, err)
		require.Len(t, v, len(s))

		c, err := Centroid(v)
		require.NoError(t, err)
		assert.InDelta(t, 0, math.Hypot(c.X, c.Y), 1e-9, "centroid must be the origin")
		assert.InDelta(t, 1, Magnitude(v), 1e-9, "flattened vector must have unit length")

		// First point lies on the positive x axis
		assert.InDelta(t, 0, v[0].Y, 1e-9)
		assert.GreaterOrEqual(t, v[0].X, 0.0)
	}
}

func TestNormalize_RotationInvariance(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	s := randomStroke(rng, 12)

	base, err := Vectorize(s, 16, false)
	require.NoError(t, err)

	for _, angle := range []float64{0.3, math.Pi / 2, 2.5, math.Pi, -1.1} {
		rotated, err := Vectorize(RotateBy(s, angle), 16, false)
		require.NoError(t, err)
		assertStrokesInDelta(t, base, rotated, 1e-9)

		d, err := OptimalCosineDistance(base, rotated)
		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-6)
	}
}

func TestNormalize_ScaleAndTranslationInvariance(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	s := randomStroke(rng, 9)

	base, err := Vectorize(s, 16, false)
	require.NoError(t, err)

	for _, k := range []float64{0.01, 0.5, 3, 250} {
		scaled, err := Vectorize(ScaleBy(s, k), 16, false)
		require.NoError(t, err)
		assertStrokesInDelta(t, base, scaled, 1e-9)
	}

	moved, err := Vectorize(Translate(s, 1000, -42), 16, false)
	require.NoError(t, err)
	assertStrokesInDelta(t, base, moved, 1e-9)
}

func TestNormalize_ExtremeScales(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))
	s := randomStroke(rng, 9)

	base, err := Vectorize(s, 16, false)
	require.NoError(t, err)

	for _, k := range []float64{1e160, 1e-170} {
		scaled, err := Vectorize(ScaleBy(s, k), 16, false)
		require.NoError(t, err, "k=%g", k)
		assert.InDelta(t, 1, Magnitude(scaled), 1e-9, "k=%g", k)
		assertStrokesInDelta(t, base, scaled, 1e-9)
	}
}

func TestNormalize_OrientationSensitive(t *testing.T) {
	// First point sits at 100 degrees from the centroid and snaps to 90
	theta := 100 * math.Pi / 180
	s := core.Stroke{
		{X: math.Cos(theta), Y: math.Sin(theta)},
		{X: -math.Cos(theta), Y: -math.Sin(theta)},
	}

	v, err := Normalize(s, true)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, math.Atan2(v[0].Y, v[0].X), 1e-9)
	assert.InDelta(t, 1, Magnitude(v), 1e-9)

	free, err := Normalize(s, false)
	require.NoError(t, err)
	assert.InDelta(t, 0, math.Atan2(free[0].Y, free[0].X), 1e-9)
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	s := core.Stroke{{X: 10, Y: 10}, {X: 20, Y: 15}, {X: 30, Y: 40}}
	original := s.Clone()

	_, err := Normalize(s, false)
	require.NoError(t, err)
	assert.Equal(t, original, s)
}

func TestNormalize_Errors(t *testing.T) {
	t.Run("single point", func(t *testing.T) {
		_, err := Normalize(core.Stroke{{X: 1, Y: 1}}, false)
		assert.ErrorIs(t, err, core.ErrInvalidStroke)
	})

	t.Run("coincident points", func(t *testing.T) {
		_, err := Normalize(core.Stroke{{X: 5, Y: 5}, {X: 5, Y: 5}, {X: 5, Y: 5}}, false)
		assert.ErrorIs(t, err, core.ErrDegenerateGeometry)
	})

	t.Run("centroid overflows", func(t *testing.T) {
		_, err := Normalize(core.Stroke{{X: math.MaxFloat64, Y: 0}, {X: math.MaxFloat64, Y: 1}}, false)
		assert.ErrorIs(t, err, core.ErrDegenerateGeometry)
	})
}

func TestIndicativeAngle(t *testing.T) {
	angle, err := IndicativeAngle(core.Stroke{{X: 0, Y: 2}, {X: 0, Y: 0}})
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, angle, 1e-12)

	_, err = IndicativeAngle(nil)
	assert.ErrorIs(t, err, core.ErrInvalidStroke)
}
