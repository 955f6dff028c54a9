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


// Package unistroke ties the template library, the importer and the
// recognizer together.
package unistroke

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/poiesic/unistroke/config"
	"github.com/poiesic/unistroke/dataset"
	"github.com/poiesic/unistroke/importer"
	"github.com/poiesic/unistroke/recognize"
	"github.com/poiesic/unistroke/storage"
	"github.com/poiesic/unistroke/storage/badger"
)

// Library is a persistent template library.
type Library struct {
	backend *badger.Backend
	repo    *badger.TemplateRepository
	config  *config.Config
	base    *slog.Logger // handed to the importer and recognizer
	logger  *slog.Logger
}

// LibraryOption configures a Library.
type LibraryOption func(*libraryOptions)

type libraryOptions struct {
	config   *config.Config
	logger   *slog.Logger
	inMemory bool
}

// WithConfig sets the recognizer and import settings.
// Default is config.DefaultConfig().
func WithConfig(cfg *config.Config) LibraryOption {
	return func(o *libraryOptions) {
		o.config = cfg
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) LibraryOption {
	return func(o *libraryOptions) {
		o.logger = logger
	}
}

// InMemory keeps the library in memory. The file path is ignored.
func InMemory() LibraryOption {
	return func(o *libraryOptions) {
		o.inMemory = true
	}
}

// NewLibrary opens (or creates) the template library stored at filePath.
func NewLibrary(filePath string, opts ...LibraryOption) (*Library, error) {
	options := &libraryOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.config == nil {
		options.config = config.DefaultConfig()
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	if err := options.config.Validate(); err != nil {
		return nil, err
	}

	backend, err := badger.OpenBackendWithLogger(filePath, options.inMemory, options.logger)
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewTemplateRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Library{
		backend: backend,
		repo:    repo,
		config:  options.config,
		base:    options.logger,
		logger:  options.logger.With("component", "library"),
	}, nil
}

// Close closes the repository and the underlying storage.
func (l *Library) Close() error {
	if err := l.repo.Close(); err != nil {
		l.logger.Error("error closing template repository", "err", err)
		return err
	}
	if err := l.backend.Close(); err != nil {
		l.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// TemplateRepository returns the library's template repository.
func (l *Library) TemplateRepository() storage.TemplateRepository {
	return l.repo
}

// Config returns the library's settings.
func (l *Library) Config() *config.Config {
	return l.config
}

// NewImporter creates an importer writing into the library.
// progress: where to write progress output; nil discards it
func (l *Library) NewImporter(progress io.Writer, opts ...importer.Option) (*importer.Importer, error) {
	cfg := importer.DefaultConfig()
	cfg.BatchSize = l.config.ImportBatchSize
	cfg.MaxPoints = l.config.MaxPoints
	cfg.NumPoints = l.config.NumPoints
	cfg.OrientationSensitive = l.config.OrientationSensitive

	opts = append([]importer.Option{importer.WithLogger(l.base)}, opts...)
	return importer.NewImporter(l.repo, cfg, progress, opts...)
}

// SeedBuiltin imports the built-in reference shapes. Shapes already in the
// library are skipped.
func (l *Library) SeedBuiltin(ctx context.Context, progress io.Writer) (*importer.Stats, error) {
	im, err := l.NewImporter(progress)
	if err != nil {
		return nil, err
	}
	return im.Run(ctx, dataset.Builtin())
}

// RecognizerOptions returns store options matching the library's settings.
func (l *Library) RecognizerOptions() []recognize.Option {
	return []recognize.Option{
		recognize.WithNumPoints(l.config.NumPoints),
		recognize.WithMaxPoints(l.config.MaxPoints),
		recognize.WithOrientationSensitive(l.config.OrientationSensitive),
		recognize.WithPoolSize(l.config.PoolSize),
		recognize.WithLogger(l.base),
	}
}

// NewRecognizer builds a Ready template store from every template in the
// library, in insertion order. opts are applied after the library's settings.
// The caller must Release the store.
func (l *Library) NewRecognizer(ctx context.Context, opts ...recognize.Option) (*recognize.Store, error) {
	templates, err := l.repo.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	store, err := recognize.NewStore(append(l.RecognizerOptions(), opts...)...)
	if err != nil {
		return nil, err
	}
	if err := store.Load(ctx, templates...); err != nil {
		store.Release()
		return nil, err
	}
	return store, nil
}
