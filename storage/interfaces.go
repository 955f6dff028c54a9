package storage

import (
	"context"

	"github.com/poiesic/unistroke/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// Repository calls made with the context passed to fn join the
	// transaction. If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// A failed call inside fn may leave partial writes, so fn should return
	// its error rather than continue.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// TemplateRepository provides operations for managing the raw template library.
type TemplateRepository interface {
	Repository

	// AddTemplates adds one or more raw templates to the library.
	// For templates with ID=0, derives the ID from the name and points.
	// Assigns Seq from a sequence and sets InsertedAt if not already set.
	// Returns ErrDuplicateKey if a template with the same ID already exists;
	// in that case nothing from the call is stored.
	AddTemplates(ctx context.Context, templates ...*core.RawTemplate) ([]*core.RawTemplate, error)

	// DeleteTemplates removes templates by their IDs, including index entries.
	// Returns ErrNotFound if any template doesn't exist.
	DeleteTemplates(ctx context.Context, ids ...core.ID) error

	// DeleteTemplatesByName removes every template with the given name.
	// Returns the number of templates removed.
	DeleteTemplatesByName(ctx context.Context, name string) (int, error)

	// GetTemplate retrieves a single template by ID.
	// Returns ErrNotFound if the template doesn't exist.
	GetTemplate(ctx context.Context, id core.ID) (*core.RawTemplate, error)

	// GetTemplates retrieves multiple templates by their IDs.
	// Returns only the templates that exist (no error for missing templates).
	GetTemplates(ctx context.Context, ids ...core.ID) ([]*core.RawTemplate, error)

	// HasTemplate reports whether a template with the given ID exists.
	HasTemplate(ctx context.Context, id core.ID) (bool, error)

	// FindTemplatesByName returns all templates with the given name in
	// insertion order.
	FindTemplatesByName(ctx context.Context, name string) ([]*core.RawTemplate, error)

	// ListTemplates returns every template in insertion order.
	ListTemplates(ctx context.Context) ([]*core.RawTemplate, error)

	// CountTemplates returns the number of stored templates.
	CountTemplates(ctx context.Context) (int, error)
}
