// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"math"
)

// MinStrokePoints is the fewest points any stroke may carry.
const MinStrokePoints = 2

// ValidateStroke validates a raw stroke before preprocessing.
//
// Validation rules:
//   - at least MinStrokePoints points
//   - no more than maxPoints points (maxPoints <= 0 disables the check)
//   - every coordinate is finite
func ValidateStroke(points Stroke, maxPoints int) error {
	if len(points) < MinStrokePoints {
		return fmt.Errorf("%w: %d points, need at least %d", ErrInvalidStroke, len(points), MinStrokePoints)
	}
	if maxPoints > 0 && len(points) > maxPoints {
		return fmt.Errorf("%w: %d points, limit is %d", ErrTooManyPoints, len(points), maxPoints)
	}
	for i, p := range points {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return fmt.Errorf("%w: point %d is not finite", ErrInvalidStroke, i)
		}
	}
	return nil
}

// ValidateRawTemplate validates a RawTemplate according to domain rules.
//
// Validation rules:
//   - Name must not be empty
//   - Points must pass ValidateStroke
//
// NOT validated:
//   - ID and Seq (assigned by storage)
func ValidateRawTemplate(template *RawTemplate, maxPoints int) error {
	if template == nil {
		return fmt.Errorf("%w: template is nil", ErrInvalidTemplate)
	}

	if template.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTemplate, ErrEmptyTemplateName)
	}

	if err := ValidateStroke(template.Points, maxPoints); err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidTemplate, template.Name, err)
	}

	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
