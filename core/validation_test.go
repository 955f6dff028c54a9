package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStroke(t *testing.T) {
	tests := []struct {
		name      string
		points    Stroke
		maxPoints int
		wantErr   error
	}{
		{
			name:    "empty stroke",
			points:  Stroke{},
			wantErr: ErrInvalidStroke,
		},
		{
			name:    "single point",
			points:  Stroke{{1, 1}},
			wantErr: ErrInvalidStroke,
		},
		{
			name:   "two points",
			points: Stroke{{0, 0}, {1, 0}},
		},
		{
			name:      "at limit",
			points:    Stroke{{0, 0}, {1, 0}, {2, 0}},
			maxPoints: 3,
		},
		{
			name:      "over limit",
			points:    Stroke{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
			maxPoints: 3,
			wantErr:   ErrTooManyPoints,
		},
		{
			name:    "NaN coordinate",
			points:  Stroke{{0, 0}, {math.NaN(), 0}},
			wantErr: ErrInvalidStroke,
		},
		{
			name:    "infinite coordinate",
			points:  Stroke{{0, math.Inf(1)}, {1, 0}},
			wantErr: ErrInvalidStroke,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStroke(tt.points, tt.maxPoints)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateRawTemplate(t *testing.T) {
	t.Run("nil template", func(t *testing.T) {
		assert.ErrorIs(t, ValidateRawTemplate(nil, 0), ErrInvalidTemplate)
	})

	t.Run("empty name", func(t *testing.T) {
		err := ValidateRawTemplate(&RawTemplate{Points: Stroke{{0, 0}, {1, 1}}}, 0)
		assert.ErrorIs(t, err, ErrInvalidTemplate)
		assert.ErrorIs(t, err, ErrEmptyTemplateName)
	})

	t.Run("bad stroke", func(t *testing.T) {
		err := ValidateRawTemplate(&RawTemplate{Name: "dot", Points: Stroke{{0, 0}}}, 0)
		assert.ErrorIs(t, err, ErrInvalidTemplate)
		assert.ErrorIs(t, err, ErrInvalidStroke)
		assert.Contains(t, err.Error(), "dot")
	})

	t.Run("valid", func(t *testing.T) {
		err := ValidateRawTemplate(&RawTemplate{Name: "line", Points: Stroke{{0, 0}, {1, 0}}}, 1024)
		assert.NoError(t, err)
	})
}
