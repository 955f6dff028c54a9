package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDFromTemplate(t *testing.T) {
	points := Stroke{{0, 0}, {1, 0}, {1, 1}}

	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, IDFromTemplate("caret", points), IDFromTemplate("caret", points.Clone()))
	})

	t.Run("name participates", func(t *testing.T) {
		assert.NotEqual(t, IDFromTemplate("caret", points), IDFromTemplate("check", points))
	})

	t.Run("points participate", func(t *testing.T) {
		moved := points.Clone()
		moved[2].Y = 1.0000001
		assert.NotEqual(t, IDFromTemplate("caret", points), IDFromTemplate("caret", moved))
	})
}

func TestStrokeClone(t *testing.T) {
	original := Stroke{{1, 2}, {3, 4}}
	clone := original.Clone()
	require.Equal(t, original, clone)

	clone[0].X = 99
	assert.Equal(t, 1.0, original[0].X, "clone must not alias the original")

	assert.Nil(t, Stroke(nil).Clone())
}

func TestResultName(t *testing.T) {
	var r *Result
	assert.Equal(t, "", r.Name())
	assert.Equal(t, "", (&Result{}).Name())
	assert.Equal(t, "circle", (&Result{Template: &Template{Name: "circle"}}).Name())
}

func TestRawTemplateMUS(t *testing.T) {
	original := RawTemplate{
		Id:         IDFromTemplate("zigzag", Stroke{{0, 0}, {1, 1}}),
		Seq:        42,
		Name:       "zigzag",
		Points:     Stroke{{0, 0}, {10.5, -3.25}, {20, 0}},
		InsertedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	buf := make([]byte, RawTemplateMUS.Size(original))
	n := RawTemplateMUS.Marshal(original, buf)
	assert.Equal(t, len(buf), n)

	decoded, m, err := RawTemplateMUS.Unmarshal(buf)
	require.NoError(t, err)
	assert.Equal(t, n, m)
	assert.Equal(t, original.Id, decoded.Id)
	assert.Equal(t, original.Seq, decoded.Seq)
	assert.Equal(t, original.Name, decoded.Name)
	assert.Equal(t, original.Points, decoded.Points)
	assert.True(t, original.InsertedAt.Equal(decoded.InsertedAt))
}

func TestStrokeMUS_RejectsOversizedLength(t *testing.T) {
	// Claims 1000 points but carries none
	buf := make([]byte, StrokeMUS.Size(Stroke{}))
	StrokeMUS.Marshal(Stroke{}, buf)
	buf[0] = 0xd0
	buf = append(buf, 0x0f)

	_, _, err := StrokeMUS.Unmarshal(buf)
	assert.Error(t, err)
}
