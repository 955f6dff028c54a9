package recognize

import (
	"log/slog"

	"github.com/poiesic/unistroke/core"
)

// Monitor provides hooks to observe a classification.
// Implement this interface to inspect per-template distances and scores.
type Monitor interface {
	Start(templateCount int)
	Scored(template *core.Template, distance, score float64)
	Finish(best *core.Result)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ int)                           {}
func (n *noopMonitor) Scored(_ *core.Template, _, _ float64) {}
func (n *noopMonitor) Finish(_ *core.Result)                 {}

// LogMonitor logs every step of a classification at debug level.
type LogMonitor struct {
	logger *slog.Logger
}

var _ Monitor = (*LogMonitor)(nil)

// NewLogMonitor creates a LogMonitor. A nil logger uses slog.Default().
func NewLogMonitor(logger *slog.Logger) *LogMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMonitor{logger: logger}
}

func (m *LogMonitor) Start(templateCount int) {
	m.logger.Debug("classifying stroke", "templates", templateCount)
}

func (m *LogMonitor) Scored(template *core.Template, distance, score float64) {
	m.logger.Debug("scored template", "name", template.Name, "distance", distance, "score", score)
}

func (m *LogMonitor) Finish(best *core.Result) {
	m.logger.Debug("best match", "name", best.Name(), "distance", best.Distance, "score", best.Score)
}
