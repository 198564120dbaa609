package handlers

import (
	"context"

	"github.com/ersonp/pokedex-core/internal/domain/entities"
	"github.com/ersonp/pokedex-core/internal/domain/services"
)

// CatalogHandler handles catalog operations at the application layer.
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// PokemonListResult contains the result of listing the catalog.
type PokemonListResult struct {
	Pokemon []*entities.Pokemon `json:"pokemon"`
	Total   int                 `json:"total"`
	Limit   int                 `json:"limit"`
	Offset  int                 `json:"offset"`
}

// HandleCreate adds a new record to the catalog.
func (h *CatalogHandler) HandleCreate(ctx context.Context, draft entities.PokemonDraft) (*entities.Pokemon, error) {
	return h.catalogService.Create(ctx, draft)
}

// HandleList returns a page of the catalog along with the catalog size.
func (h *CatalogHandler) HandleList(ctx context.Context, limit, offset int) (*PokemonListResult, error) {
	page, err := h.catalogService.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	count, err := h.catalogService.Count(ctx)
	if err != nil {
		return nil, err
	}

	if limit == 0 {
		limit = h.catalogService.DefaultLimit()
	}
	return &PokemonListResult{
		Pokemon: page,
		Total:   count,
		Limit:   limit,
		Offset:  offset,
	}, nil
}

// HandleGet resolves a query to a single record.
func (h *CatalogHandler) HandleGet(ctx context.Context, query string) (*entities.Pokemon, error) {
	return h.catalogService.Resolve(ctx, query)
}

// HandleUpdate resolves a query and applies patch to the match.
func (h *CatalogHandler) HandleUpdate(ctx context.Context, query string, patch entities.PokemonPatch) (*entities.Pokemon, error) {
	return h.catalogService.Update(ctx, query, patch)
}

// HandleDelete removes a record by its exact ID.
func (h *CatalogHandler) HandleDelete(ctx context.Context, id string) error {
	return h.catalogService.Delete(ctx, id)
}

// HandleCount returns the number of records in the catalog.
func (h *CatalogHandler) HandleCount(ctx context.Context) (int, error) {
	return h.catalogService.Count(ctx)
}
