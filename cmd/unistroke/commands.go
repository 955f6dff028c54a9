package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/poiesic/unistroke"
	"github.com/poiesic/unistroke/config"
	"github.com/poiesic/unistroke/core"
	"github.com/poiesic/unistroke/dataset"
	"github.com/poiesic/unistroke/geometry"
	"github.com/poiesic/unistroke/importer"
	"github.com/poiesic/unistroke/recognize"
	"github.com/urfave/cli/v2"
)

// loadConfig reads the --config file, or returns the defaults.
func loadConfig(c *cli.Context) (*config.Config, error) {
	path := c.String("config")
	if path == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadFile(path, slog.Default())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func openLibrary(c *cli.Context) (*unistroke.Library, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	dbPath := c.String("db")
	if dbPath == "" {
		return nil, fmt.Errorf("database path is required")
	}

	lib, err := unistroke.NewLibrary(dbPath, unistroke.WithConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	return lib, nil
}

func importCommand(c *cli.Context) error {
	ctx := context.Background()

	if c.NArg() == 0 {
		return fmt.Errorf("at least one data file is required")
	}

	var templates []*core.RawTemplate
	for _, path := range c.Args().Slice() {
		parsed, err := dataset.ParseFile(path)
		if err != nil {
			return err
		}
		templates = append(templates, parsed...)
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	im, err := lib.NewImporter(c.App.ErrWriter, importer.WithSkipInvalid(c.Bool("skip-invalid")))
	if err != nil {
		return err
	}

	stats, err := im.Run(ctx, templates)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "added %d, already present %d, repeated %d, invalid %d\n",
		stats.Added, stats.Existing, stats.Repeated, stats.Invalid)
	return nil
}

func seedCommand(c *cli.Context) error {
	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	stats, err := lib.SeedBuiltin(context.Background(), c.App.ErrWriter)
	if err != nil {
		return fmt.Errorf("seed failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "added %d, already present %d\n", stats.Added, stats.Existing)
	return nil
}

func listCommand(c *cli.Context) error {
	ctx := context.Background()

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	repo := lib.TemplateRepository()
	var templates []*core.RawTemplate
	if name := c.String("name"); name != "" {
		templates, err = repo.FindTemplatesByName(ctx, name)
	} else {
		templates, err = repo.ListTemplates(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	for _, t := range templates {
		fmt.Fprintf(c.App.Writer, "%d\t%d\t%s\t%d points\n", t.Seq, t.Id, t.Name, len(t.Points))
	}
	return nil
}

func removeCommand(c *cli.Context) error {
	ctx := context.Background()

	idArgs := c.StringSlice("id")
	name := c.String("name")
	if len(idArgs) == 0 && name == "" {
		return fmt.Errorf("either --id or --name is required")
	}

	ids := make([]core.ID, 0, len(idArgs))
	for _, arg := range idArgs {
		id, err := strconv.ParseUint(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid template id %q: %w", arg, err)
		}
		ids = append(ids, core.ID(id))
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	// IDs and name are removed together or not at all
	repo := lib.TemplateRepository()
	removed := 0
	err = repo.WithTransaction(ctx, func(ctx context.Context) error {
		if len(ids) > 0 {
			if err := repo.DeleteTemplates(ctx, ids...); err != nil {
				return err
			}
			removed += len(ids)
		}
		if name != "" {
			n, err := repo.DeleteTemplatesByName(ctx, name)
			if err != nil {
				return err
			}
			removed += n
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to remove templates: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "removed %d\n", removed)
	return nil
}

func exportCommand(c *cli.Context) (err error) {
	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	templates, err := lib.TemplateRepository().ListTemplates(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	var w io.Writer = c.App.Writer
	if path := c.String("output"); path != "" {
		f, createErr := os.Create(path)
		if createErr != nil {
			return createErr
		}
		defer func() {
			err = errors.Join(err, f.Close())
		}()
		w = f
	}

	return dataset.Write(w, templates)
}

func recognizeCommand(c *cli.Context) error {
	ctx := context.Background()

	points, err := readStroke(c)
	if err != nil {
		return err
	}

	var lib *unistroke.Library
	if c.Bool("builtin") {
		lib, err = builtinLibrary(ctx, c)
	} else {
		lib, err = openLibrary(c)
	}
	if err != nil {
		return err
	}
	defer lib.Close()

	var opts []recognize.Option
	if c.Bool("verbose") {
		opts = append(opts, recognize.WithMonitor(recognize.NewLogMonitor(slog.Default())))
	}

	store, err := lib.NewRecognizer(ctx, opts...)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	defer store.Release()

	result, err := store.Recognize(points)
	if err != nil {
		return fmt.Errorf("recognition failed: %w", err)
	}

	minScore := lib.Config().MinScore
	if c.IsSet("min-score") {
		minScore = c.Float64("min-score")
	}
	if result.Score < minScore {
		fmt.Fprintf(c.App.Writer, "unrecognized\t%s\t%s\n", result.Name(), formatScore(result))
		return nil
	}

	fmt.Fprintf(c.App.Writer, "%s\t%s\n", result.Name(), formatScore(result))
	return nil
}

// formatScore prints exact matches as "exact" instead of MaxScore's digits.
func formatScore(result *core.Result) string {
	if result.Distance == 0 {
		return "exact"
	}
	return strconv.FormatFloat(result.Score, 'f', 4, 64)
}

// builtinLibrary returns an in-memory library holding the built-in shapes.
func builtinLibrary(ctx context.Context, c *cli.Context) (*unistroke.Library, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}

	lib, err := unistroke.NewLibrary("", unistroke.InMemory(), unistroke.WithConfig(cfg))
	if err != nil {
		return nil, err
	}
	if _, err := lib.SeedBuiltin(ctx, nil); err != nil {
		lib.Close()
		return nil, err
	}
	return lib, nil
}

func readStroke(c *cli.Context) (core.Stroke, error) {
	text := c.String("points")
	if path := c.String("file"); path != "" {
		if text != "" {
			return nil, fmt.Errorf("--points and --file are mutually exclusive")
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		text = string(data)
	}
	if text == "" {
		return nil, fmt.Errorf("a stroke is required: use --points or --file")
	}
	points, err := parsePoints(text)
	if err != nil {
		return nil, err
	}
	return geometry.Thin(points, c.Float64("min-distance")), nil
}

func initConfigCommand(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("config path is required")
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}
	if err := config.DefaultConfig().WriteFile(path); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "wrote %s\n", path)
	return nil
}
