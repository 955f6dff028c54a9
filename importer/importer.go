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


package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/poiesic/unistroke/core"
	"github.com/poiesic/unistroke/geometry"
	"github.com/poiesic/unistroke/storage"
)

// Config holds configuration for an import.
type Config struct {
	// BatchSize is the number of templates written per transaction
	BatchSize int

	// ReportInterval is how often to report progress (number of templates)
	ReportInterval int

	// MaxRetries is the maximum number of attempts for a conflicting batch
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration

	// MaxPoints bounds raw stroke length; zero disables the limit
	MaxPoints int

	// NumPoints and OrientationSensitive must match the recognizer that will
	// load the library. Templates it could not preprocess are invalid.
	NumPoints            int
	OrientationSensitive bool

	// SkipInvalid logs and skips templates that fail validation instead of
	// aborting the import
	SkipInvalid bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     50 * time.Millisecond,
		MaxPoints:      1024,
		NumPoints:      16,
	}
}

// Stats summarizes a finished import.
type Stats struct {
	Added    int // Templates written to the library
	Existing int // Templates already present in the library
	Repeated int // Templates repeated within the input
	Invalid  int // Templates skipped by validation (SkipInvalid only)
}

// Importer writes raw templates into a template library.
type Importer struct {
	repo     storage.TemplateRepository
	config   *Config
	progress io.Writer
	logger   *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(im *Importer) error {
		if logger == nil {
			logger = slog.Default()
		}
		im.logger = logger
		return nil
	}
}

// WithSkipInvalid overrides Config.SkipInvalid.
func WithSkipInvalid(skip bool) Option {
	return func(im *Importer) error {
		im.config.SkipInvalid = skip
		return nil
	}
}

// NewImporter creates a new importer.
// progress: where to write progress output (typically os.Stderr); nil discards it
func NewImporter(repo storage.TemplateRepository, config *Config, progress io.Writer, opts ...Option) (*Importer, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.BatchSize <= 0 {
		return nil, ErrInvalidBatchSize
	}
	if config.MaxRetries <= 0 {
		return nil, ErrInvalidMaxAttempts
	}
	if config.NumPoints < 2 {
		return nil, ErrInvalidNumPoints
	}
	if progress == nil {
		progress = io.Discard
	}

	// Options may modify the config, so keep a private copy
	cfg := *config
	im := &Importer{
		repo:     repo,
		config:   &cfg,
		progress: progress,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(im); err != nil {
			return nil, err
		}
	}
	im.logger = im.logger.With("component", "importer")
	return im, nil
}

// Run imports templates in input order. Templates are validated before
// anything is written. Templates without an ID get their content ID.
// Templates already in the library, or repeated within the input, are
// skipped. On error, batches written before the failure stay written and
// the returned Stats count them.
func (im *Importer) Run(ctx context.Context, templates []*core.RawTemplate) (*Stats, error) {
	stats := &Stats{}

	pending, err := im.filter(ctx, templates, stats)
	if err != nil {
		return stats, err
	}
	if len(pending) == 0 {
		fmt.Fprintf(im.progress, "No new templates to import (%d already present)\n", stats.Existing+stats.Repeated)
		return stats, nil
	}

	fmt.Fprintf(im.progress, "Importing %d templates (batch size: %d)\n", len(pending), im.config.BatchSize)
	tracker := NewProgressTracker(im.progress, len(pending), im.config.ReportInterval)
	tracker.Start()

	for batch := range slices.Chunk(pending, im.config.BatchSize) {
		err := RetryWithBackoff(ctx, func() error {
			_, addErr := im.repo.AddTemplates(ctx, batch...)
			return addErr
		}, im.config.MaxRetries, im.config.RetryDelay, isRetryable)
		if err != nil {
			tracker.Finish()
			im.logger.Error("error writing batch", "err", err, "written", stats.Added)
			return stats, fmt.Errorf("failed to write batch: %w", err)
		}
		stats.Added += len(batch)
		tracker.Increment(len(batch))
	}

	tracker.Finish()
	elapsed := tracker.Elapsed()
	fmt.Fprintf(im.progress, "Import complete. Added %d templates in %v\n", stats.Added, elapsed.Round(time.Millisecond))
	im.logger.Info("import complete", "added", stats.Added, "existing", stats.Existing, "repeated", stats.Repeated, "invalid", stats.Invalid)
	return stats, nil
}

// filter validates templates and drops the ones that need no write.
func (im *Importer) filter(ctx context.Context, templates []*core.RawTemplate, stats *Stats) ([]*core.RawTemplate, error) {
	pending := make([]*core.RawTemplate, 0, len(templates))
	seen := make(map[core.ID]bool, len(templates))

	for i, template := range templates {
		if err := im.validate(template); err != nil {
			if !im.config.SkipInvalid {
				return nil, fmt.Errorf("template %d: %w", i, err)
			}
			im.logger.Warn("skipping invalid template", "index", i, "err", err)
			stats.Invalid++
			continue
		}

		if template.Id == 0 {
			template.Id = core.IDFromTemplate(template.Name, template.Points)
		}
		if seen[template.Id] {
			stats.Repeated++
			continue
		}
		seen[template.Id] = true

		exists, err := im.repo.HasTemplate(ctx, template.Id)
		if err != nil {
			return nil, err
		}
		if exists {
			im.logger.Debug("template already present", "name", template.Name, "id", template.Id)
			stats.Existing++
			continue
		}
		pending = append(pending, template)
	}
	return pending, nil
}

// validate applies the domain rules, then checks that the stroke survives
// resampling and normalization.
func (im *Importer) validate(template *core.RawTemplate) error {
	if err := core.ValidateRawTemplate(template, im.config.MaxPoints); err != nil {
		return err
	}
	if _, err := geometry.Vectorize(template.Points, im.config.NumPoints, im.config.OrientationSensitive); err != nil {
		return fmt.Errorf("%w %q: %w", core.ErrInvalidTemplate, template.Name, err)
	}
	return nil
}

func isRetryable(err error) bool {
	return errors.Is(err, storage.ErrConflict)
}
