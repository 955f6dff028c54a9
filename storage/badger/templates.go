package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/unistroke/core"
	"github.com/poiesic/unistroke/storage"
)

// TemplateRepository implements storage.TemplateRepository for BadgerDB.
type TemplateRepository struct {
	backend *Backend
	seq     *badger.Sequence
}

var _ storage.TemplateRepository = (*TemplateRepository)(nil)

// NewTemplateRepository creates a new TemplateRepository.
func NewTemplateRepository(backend *Backend) (*TemplateRepository, error) {
	seq, err := backend.GetSequence(templateSeq)
	if err != nil {
		return nil, err
	}

	return &TemplateRepository{
		backend: backend,
		seq:     seq,
	}, nil
}

// Close releases the insertion sequence.
func (r *TemplateRepository) Close() error {
	return r.seq.Release()
}

// WithTransaction runs fn in one write transaction that the repository's
// methods join when called with fn's context.
func (r *TemplateRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddTemplates adds one or more raw templates to the library.
func (r *TemplateRepository) AddTemplates(ctx context.Context, templates ...*core.RawTemplate) ([]*core.RawTemplate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	err := r.backend.update(ctx, func(tx *badger.Txn) error {
		for _, template := range templates {
			if template.Id == 0 {
				template.Id = core.IDFromTemplate(template.Name, template.Points)
			}

			key := makeTemplateKey(template.Id)
			existing, err := readTemplate(tx, key)
			if err != nil {
				return err
			}
			if existing != nil {
				return fmt.Errorf("%w: template %q (id %d)", storage.ErrDuplicateKey, template.Name, template.Id)
			}

			seq, err := r.nextSeq()
			if err != nil {
				return err
			}
			template.Seq = seq
			if template.InsertedAt.IsZero() {
				template.InsertedAt = time.Now().UTC()
			}

			// Store primary record
			if err := tx.Set(key, storage.MarshalRawTemplate(template)); err != nil {
				return err
			}

			// Update order and name indices
			idValue := storage.MarshalID(template.Id)
			if err := tx.Set(makeTemplateOrderKey(template.Seq), idValue); err != nil {
				return err
			}
			if err := tx.Set(makeTemplateNameKey(template.Name, template.Seq), idValue); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.backend.logger.Debug("added templates", "count", len(templates))
	return templates, nil
}

// nextSeq returns the next insertion sequence number.
// BadgerDB sequences can return 0 on first call, so we skip it
func (r *TemplateRepository) nextSeq() (uint64, error) {
	next, err := r.seq.Next()
	if err != nil {
		return 0, err
	}
	if next == 0 {
		return r.seq.Next()
	}
	return next, nil
}

// DeleteTemplates removes templates by their IDs.
func (r *TemplateRepository) DeleteTemplates(ctx context.Context, ids ...core.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.backend.update(ctx, func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeTemplateKey(id)
			template, err := readTemplate(tx, key)
			if err != nil {
				return err
			}
			if template == nil {
				return fmt.Errorf("%w: template id %d", storage.ErrNotFound, id)
			}
			if err := deleteTemplate(tx, template); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteTemplatesByName removes every template with the given name.
func (r *TemplateRepository) DeleteTemplatesByName(ctx context.Context, name string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var removed int
	err := r.backend.update(ctx, func(tx *badger.Txn) error {
		ids, err := readIDs(tx, makePartialTemplateNameKey(name))
		if err != nil {
			return err
		}
		for _, id := range ids {
			template, err := readTemplate(tx, makeTemplateKey(id))
			if err != nil {
				return err
			}
			if template == nil {
				continue
			}
			if err := deleteTemplate(tx, template); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// GetTemplate retrieves a single template by ID.
func (r *TemplateRepository) GetTemplate(ctx context.Context, id core.ID) (*core.RawTemplate, error) {
	var result *core.RawTemplate
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		var err error
		result, err = readTemplate(tx, makeTemplateKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	})
	return result, err
}

// GetTemplates retrieves multiple templates by their IDs.
func (r *TemplateRepository) GetTemplates(ctx context.Context, ids ...core.ID) ([]*core.RawTemplate, error) {
	var result []*core.RawTemplate
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		for _, id := range ids {
			template, err := readTemplate(tx, makeTemplateKey(id))
			if err != nil {
				return err
			}
			if template != nil {
				result = append(result, template)
			}
		}
		return nil
	})
	return result, err
}

// HasTemplate reports whether a template with the given ID exists.
func (r *TemplateRepository) HasTemplate(ctx context.Context, id core.ID) (bool, error) {
	var found bool
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		_, err := tx.Get(makeTemplateKey(id))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return found, err
}

// FindTemplatesByName returns all templates with the given name in insertion order.
func (r *TemplateRepository) FindTemplatesByName(ctx context.Context, name string) ([]*core.RawTemplate, error) {
	return r.listByIndex(ctx, makePartialTemplateNameKey(name))
}

// ListTemplates returns every template in insertion order.
func (r *TemplateRepository) ListTemplates(ctx context.Context) ([]*core.RawTemplate, error) {
	return r.listByIndex(ctx, templateOrderKeyPrefix())
}

// CountTemplates returns the number of stored templates.
func (r *TemplateRepository) CountTemplates(ctx context.Context) (int, error) {
	var count int
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		return scanPrefix(tx, templateKeyPrefix(), func(_ *badger.Item) error {
			count++
			return nil
		})
	})
	return count, err
}

// listByIndex resolves every ID stored under an index prefix.
func (r *TemplateRepository) listByIndex(ctx context.Context, prefix []byte) ([]*core.RawTemplate, error) {
	var results []*core.RawTemplate
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		ids, err := readIDs(tx, prefix)
		if err != nil {
			return err
		}
		for _, id := range ids {
			template, err := readTemplate(tx, makeTemplateKey(id))
			if err != nil {
				return err
			}
			if template != nil {
				results = append(results, template)
			}
		}
		return nil
	})
	return results, err
}

// readIDs collects the IDs stored as values under an index prefix.
func readIDs(tx *badger.Txn, prefix []byte) ([]core.ID, error) {
	var ids []core.ID
	err := scanPrefix(tx, prefix, func(item *badger.Item) error {
		return item.Value(func(val []byte) error {
			id, err := storage.UnmarshalID(val)
			if err != nil {
				return err
			}
			ids = append(ids, id)
			return nil
		})
	})
	return ids, err
}

// readTemplate reads a template, returning nil if the key doesn't exist.
func readTemplate(tx *badger.Txn, key []byte) (*core.RawTemplate, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var template *core.RawTemplate
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		template, unmarshalErr = storage.UnmarshalRawTemplate(val)
		return unmarshalErr
	})
	return template, err
}

// deleteTemplate removes a template and its index entries.
func deleteTemplate(tx *badger.Txn, template *core.RawTemplate) error {
	if err := tx.Delete(makeTemplateOrderKey(template.Seq)); err != nil {
		return err
	}
	if err := tx.Delete(makeTemplateNameKey(template.Name, template.Seq)); err != nil {
		return err
	}
	return tx.Delete(makeTemplateKey(template.Id))
}
