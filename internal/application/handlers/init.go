// Package handlers contains application use case handlers.
package handlers

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/ersonp/pokedex-core/internal/domain/ports"
	"github.com/ersonp/pokedex-core/internal/infrastructure/config"
)

// CatalogOpener opens the catalog database described by cfg for the project
// rooted at basePath.
type CatalogOpener func(cfg *config.Config, basePath string) (ports.CatalogDB, error)

// InitHandler handles project initialization.
type InitHandler struct {
	open CatalogOpener
}

// NewInitHandler creates a new init handler.
func NewInitHandler(open CatalogOpener) *InitHandler {
	return &InitHandler{
		open: open,
	}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath   string
	DatabasePath string
}

// Handle writes the default config and creates the catalog schema.
func (h *InitHandler) Handle(ctx context.Context, basePath string) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, errors.Newf("pokedex already initialized in %s", basePath)
	}

	if err := config.WriteDefault(basePath); err != nil {
		return nil, errors.Wrap(err, "writing default config")
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, errors.Wrap(err, "loading config")
	}

	db, err := h.open(cfg, basePath)
	if err != nil {
		return nil, errors.Wrap(err, "opening catalog database")
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		return nil, errors.Wrap(err, "creating schema")
	}

	return &InitResult{
		ConfigPath:   config.ConfigFilePath(basePath),
		DatabasePath: cfg.DatabasePath(basePath),
	}, nil
}
