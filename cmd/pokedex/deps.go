package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/ersonp/pokedex-core/internal/application/handlers"
	"github.com/ersonp/pokedex-core/internal/domain/ports"
	"github.com/ersonp/pokedex-core/internal/domain/services"
	"github.com/ersonp/pokedex-core/internal/infrastructure/catalogdb/sqlite"
	"github.com/ersonp/pokedex-core/internal/infrastructure/config"
	"github.com/ersonp/pokedex-core/internal/infrastructure/feed/file"
	"github.com/ersonp/pokedex-core/internal/infrastructure/feed/pokeapi"
	"github.com/ersonp/pokedex-core/internal/infrastructure/logging"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config         *config.Config
	CatalogHandler *handlers.CatalogHandler
	SeedHandler    *handlers.SeedHandler
}

// depsOptions carries per-command overrides of the loaded config.
type depsOptions struct {
	// feedFile seeds from a saved listing instead of the HTTP feed.
	feedFile  string
	seedLimit int
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	return withDepsOptions(ctx, depsOptions{}, fn)
}

func withDepsOptions(ctx context.Context, opts depsOptions, fn func(*Deps) error) error {
	basePath, err := projectDir()
	if err != nil {
		return err
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return errors.Wrap(err, "creating logger")
	}
	defer logger.Sync() //nolint:errcheck // stderr sync fails on some terminals

	db, err := openCatalog(cfg, basePath)
	if err != nil {
		return err
	}
	defer db.Close()

	// Ensure schema exists
	if err := db.EnsureSchema(ctx); err != nil {
		return errors.Wrap(err, "ensuring sqlite schema")
	}

	feed, err := newFeed(cfg, opts, logger)
	if err != nil {
		return err
	}

	seedLimit := cfg.Feed.Limit
	if opts.seedLimit > 0 {
		seedLimit = opts.seedLimit
	}

	catalogService := services.NewCatalogService(db, services.CatalogOptions{
		DefaultLimit: cfg.Catalog.DefaultLimit,
	}, logger.Named("catalog"))
	seedService := services.NewSeedService(db, feed, services.SeedOptions{
		Limit: seedLimit,
	}, logger.Named("seed"))

	deps := &Deps{
		Config:         cfg,
		CatalogHandler: handlers.NewCatalogHandler(catalogService),
		SeedHandler:    handlers.NewSeedHandler(seedService),
	}

	return fn(deps)
}

// openCatalog opens the SQLite catalog configured for basePath.
func openCatalog(cfg *config.Config, basePath string) (ports.CatalogDB, error) {
	repo, err := sqlite.NewRepository(config.SQLiteConfig{Path: cfg.DatabasePath(basePath)})
	if err != nil {
		return nil, errors.Wrap(err, "creating sqlite repository")
	}
	return repo, nil
}

func newFeed(cfg *config.Config, opts depsOptions, logger *zap.SugaredLogger) (ports.Feed, error) {
	if opts.feedFile != "" {
		f, err := file.NewFeed(opts.feedFile)
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	client, err := pokeapi.NewClient(cfg.Feed, logger)
	if err != nil {
		return nil, errors.Wrap(err, "creating feed client")
	}
	return client, nil
}

// projectDir returns the directory holding .pokedex, from --dir or the
// working directory.
func projectDir() (string, error) {
	if globalDir != "" {
		dir, err := filepath.Abs(globalDir)
		if err != nil {
			return "", errors.Wrap(err, "resolving project directory")
		}
		return dir, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "getting current directory")
	}
	return cwd, nil
}
