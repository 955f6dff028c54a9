package unistroke

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/poiesic/unistroke/config"
	"github.com/poiesic/unistroke/core"
	"github.com/poiesic/unistroke/importer"
	"github.com/poiesic/unistroke/recognize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLibrary(t *testing.T, opts ...LibraryOption) *Library {
	t.Helper()
	lib, err := NewLibrary("", append([]LibraryOption{InMemory()}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { lib.Close() })
	return lib
}

func TestNewLibrary(t *testing.T) {
	t.Run("create new library", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_lib")
		lib, err := NewLibrary(tmpDir)
		require.NoError(t, err)
		require.NotNil(t, lib)
		defer lib.Close()

		assert.NotNil(t, lib.TemplateRepository())
		assert.Equal(t, config.DefaultConfig(), lib.Config())
		assert.NotNil(t, lib.logger)
	})

	t.Run("error with invalid path", func(t *testing.T) {
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		require.NoError(t, os.WriteFile(tmpFile, []byte("test"), 0644))

		lib, err := NewLibrary(tmpFile)
		assert.Error(t, err)
		assert.Nil(t, lib)
	})

	t.Run("error with invalid config", func(t *testing.T) {
		_, err := NewLibrary("", InMemory(), WithConfig(config.NewConfig(config.WithNumPoints(1))))
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})
}

func TestLibrary_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	lib, err := NewLibrary(dir)
	require.NoError(t, err)
	_, err = lib.SeedBuiltin(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, lib.Close())

	lib, err = NewLibrary(dir)
	require.NoError(t, err)
	defer lib.Close()

	count, err := lib.TemplateRepository().CountTemplates(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, count)
}

func TestLibrary_SeedBuiltinIsIdempotent(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t)

	stats, err := lib.SeedBuiltin(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Added)

	stats, err = lib.SeedBuiltin(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, stats.Added)
	assert.Equal(t, 10, stats.Existing)
}

func TestLibrary_NewRecognizer(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t)

	t.Run("empty library", func(t *testing.T) {
		store, err := lib.NewRecognizer(ctx)
		require.NoError(t, err)
		defer store.Release()

		assert.Equal(t, recognize.StateReady, store.State())
		_, err = store.Recognize(core.Stroke{{X: 0, Y: 0}, {X: 1, Y: 0}})
		assert.ErrorIs(t, err, core.ErrEmptyTemplateSet)
	})

	t.Run("seeded library", func(t *testing.T) {
		_, err := lib.SeedBuiltin(ctx, nil)
		require.NoError(t, err)

		store, err := lib.NewRecognizer(ctx)
		require.NoError(t, err)
		defer store.Release()

		assert.Equal(t, 10, store.Len())
		assert.Equal(t, "line", store.Templates()[0].Name)

		result, err := store.Recognize(core.Stroke{{X: 10, Y: 10}, {X: 200, Y: 12}})
		require.NoError(t, err)
		assert.Equal(t, "line", result.Name())
	})

	t.Run("caller options override library settings", func(t *testing.T) {
		store, err := lib.NewRecognizer(ctx, recognize.WithNumPoints(32))
		require.NoError(t, err)
		defer store.Release()

		assert.Equal(t, 32, store.NumPoints())
		assert.Len(t, store.Templates()[0].Vector, 32)
	})
}

func TestLibrary_NewRecognizerUsesConfig(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t, WithConfig(config.NewConfig(config.WithNumPoints(24), config.WithPoolSize(2))))

	_, err := lib.SeedBuiltin(ctx, nil)
	require.NoError(t, err)

	store, err := lib.NewRecognizer(ctx)
	require.NoError(t, err)
	defer store.Release()
	assert.Equal(t, 24, store.NumPoints())
}

func TestLibrary_NewRecognizerFailsOnBadTemplate(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t)

	// Degenerate strokes can be stored directly through the repository
	_, err := lib.TemplateRepository().AddTemplates(ctx, &core.RawTemplate{
		Name:   "stuck",
		Points: core.Stroke{{X: 1, Y: 1}, {X: 1, Y: 1}},
	})
	require.NoError(t, err)

	_, err = lib.NewRecognizer(ctx)
	assert.ErrorIs(t, err, core.ErrDegenerateGeometry)
}

func TestLibrary_ImportKeepsLibraryLoadable(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t)

	_, err := lib.SeedBuiltin(ctx, nil)
	require.NoError(t, err)

	im, err := lib.NewImporter(nil, importer.WithSkipInvalid(true))
	require.NoError(t, err)
	stats, err := im.Run(ctx, []*core.RawTemplate{{Name: "dot", Points: core.Stroke{{X: 5, Y: 5}, {X: 5, Y: 5}}}})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Invalid)
	assert.Zero(t, stats.Added)

	store, err := lib.NewRecognizer(ctx)
	require.NoError(t, err)
	defer store.Release()
	assert.Equal(t, 10, store.Len())
}

func TestLibrary_ChildLoggersTagOwnComponent(t *testing.T) {
	ctx := context.Background()
	var logs bytes.Buffer
	lib := newTestLibrary(t, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))

	_, err := lib.SeedBuiltin(ctx, nil)
	require.NoError(t, err)
	store, err := lib.NewRecognizer(ctx)
	require.NoError(t, err)
	store.Release()

	out := logs.String()
	assert.Contains(t, out, "component=importer")
	assert.Contains(t, out, "component=template-store")
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, strings.Count(line, "component="), 1, line)
	}
}

func TestLibrary_NewImporterUsesConfig(t *testing.T) {
	ctx := context.Background()
	lib := newTestLibrary(t, WithConfig(config.NewConfig(config.WithMaxPoints(2))))

	im, err := lib.NewImporter(nil)
	require.NoError(t, err)

	_, err = im.Run(ctx, []*core.RawTemplate{{Name: "caret", Points: core.Stroke{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}}})
	assert.ErrorIs(t, err, core.ErrTooManyPoints)
}
