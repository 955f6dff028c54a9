package recognize

import (
	"errors"
	"fmt"
	"math"

	"github.com/poiesic/unistroke/core"
	"github.com/poiesic/unistroke/geometry"
)

// MaxScore is the score reported for an exact match (zero distance).
const MaxScore = math.MaxFloat64

// undefinedDistance is charged to templates whose best-fit rotation is undefined.
const undefinedDistance = math.Pi

// Classify returns the template most similar to query.
// query must already be normalized to the templates' sample count.
// Ties go to the earliest template.
func Classify(query core.Stroke, templates []*core.Template) (*core.Result, error) {
	return ClassifyWithMonitor(query, templates, nil)
}

// ClassifyWithMonitor is Classify with a monitor receiving each template's
// distance and score.
func ClassifyWithMonitor(query core.Stroke, templates []*core.Template, monitor Monitor) (*core.Result, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	if len(templates) == 0 {
		return nil, core.ErrEmptyTemplateSet
	}

	monitor.Start(len(templates))

	var best *core.Result
	for _, template := range templates {
		d, err := geometry.OptimalCosineDistance(query, template.Vector)
		if err != nil {
			if !errors.Is(err, core.ErrUndefinedRotation) {
				return nil, fmt.Errorf("comparing with template %q: %w", template.Name, err)
			}
			d = undefinedDistance
		}

		score := Score(d)
		monitor.Scored(template, d, score)

		if best == nil || score > best.Score {
			best = &core.Result{Template: template, Distance: d, Score: score}
		}
	}

	monitor.Finish(best)
	return best, nil
}

// Score converts an angular distance into a similarity score (1/d).
// A zero distance scores MaxScore.
func Score(distance float64) float64 {
	if distance <= 0 {
		return MaxScore
	}
	return 1 / distance
}
