package recognize

import (
	"log/slog"

	"github.com/panjf2000/ants/v2"
)

const (
	// DefaultNumPoints is the number of points every stroke is resampled to.
	DefaultNumPoints = 16

	// DefaultMaxPoints bounds the length of raw strokes accepted by a Store.
	DefaultMaxPoints = 1024
)

// Option configures a Store.
type Option func(*Store) error

// WithNumPoints sets the resample count N.
// Default is DefaultNumPoints.
func WithNumPoints(n int) Option {
	return func(s *Store) error {
		if n < 2 {
			return ErrInvalidSampleCount
		}
		s.numPoints = n
		return nil
	}
}

// WithMaxPoints sets the largest raw stroke the store accepts.
// Zero or a negative value disables the limit.
// Default is DefaultMaxPoints.
func WithMaxPoints(n int) Option {
	return func(s *Store) error {
		s.maxPoints = n
		return nil
	}
}

// WithOrientationSensitive makes normalization keep the stroke's base
// direction (snapped to 45 degrees) instead of removing all rotation.
// Default is false.
func WithOrientationSensitive(enabled bool) Option {
	return func(s *Store) error {
		s.orientationSensitive = enabled
		return nil
	}
}

// WithPoolSize sets the worker pool size used while loading templates.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Store) error {
		if size < 1 {
			size = 1
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		// Release old pool
		if s.pool != nil {
			s.pool.Release()
		}
		s.pool = pool
		return nil
	}
}

// WithMonitor sets a monitor that observes every classification made
// through the store.
func WithMonitor(monitor Monitor) Option {
	return func(s *Store) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		s.monitor = monitor
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}
