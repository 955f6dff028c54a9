package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/poiesic/unistroke/core"
)

// parsePoints reads a stroke written as whitespace separated "x,y" pairs.
func parsePoints(text string) (core.Stroke, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no points given", core.ErrInvalidStroke)
	}

	stroke := make(core.Stroke, 0, len(fields))
	for i, field := range fields {
		xs, ys, ok := strings.Cut(field, ",")
		if !ok {
			return nil, fmt.Errorf("point %d: %q is not an x,y pair", i, field)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, fmt.Errorf("point %d: invalid x: %w", i, err)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, fmt.Errorf("point %d: invalid y: %w", i, err)
		}
		stroke = append(stroke, core.Point{X: x, Y: y})
	}
	return stroke, nil
}
