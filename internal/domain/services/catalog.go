package services

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ersonp/pokedex-core/internal/domain/entities"
	"github.com/ersonp/pokedex-core/internal/domain/ports"
)

// DefaultListLimit is used when CatalogOptions leaves DefaultLimit unset.
const DefaultListLimit = 10

// CatalogOptions configures a CatalogService.
type CatalogOptions struct {
	// DefaultLimit is the page size List uses when the caller passes none.
	DefaultLimit int
}

// CatalogService owns create, list, resolve, update and delete against the
// Pokemon catalog. Every error it returns is an *entities.Error.
type CatalogService struct {
	db           ports.CatalogDB
	defaultLimit int
	logger       *zap.SugaredLogger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(db ports.CatalogDB, opts CatalogOptions, logger *zap.SugaredLogger) *CatalogService {
	limit := opts.DefaultLimit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return &CatalogService{
		db:           db,
		defaultLimit: limit,
		logger:       nopIfNil(logger),
	}
}

// DefaultLimit returns the page size used when List is called without one.
func (s *CatalogService) DefaultLimit() int {
	return s.defaultLimit
}

// Create normalizes the draft's name and persists it.
func (s *CatalogService) Create(ctx context.Context, draft entities.PokemonDraft) (*entities.Pokemon, error) {
	name := entities.NormalizeName(draft.Name)
	if name == "" {
		return nil, entities.BadRequest("name is required")
	}
	if draft.No <= 0 {
		return nil, entities.BadRequest("no must be a positive integer, got %d", draft.No)
	}

	pokemon := &entities.Pokemon{No: draft.No, Name: name}
	if err := s.db.InsertPokemon(ctx, pokemon); err != nil {
		return nil, translateErr(s.logger, err, "creating pokemon", "no", draft.No, "name", name)
	}
	return pokemon, nil
}

// List returns a page of the catalog ordered by no ascending. A zero limit
// selects the configured default.
func (s *CatalogService) List(ctx context.Context, limit, offset int) ([]*entities.Pokemon, error) {
	if limit < 0 {
		return nil, entities.BadRequest("limit must not be negative, got %d", limit)
	}
	if offset < 0 {
		return nil, entities.BadRequest("offset must not be negative, got %d", offset)
	}
	if limit == 0 {
		limit = s.defaultLimit
	}

	page, err := s.db.ListPokemon(ctx, limit, offset)
	if err != nil {
		return nil, translateErr(s.logger, err, "listing pokemon", "limit", limit, "offset", offset)
	}
	for _, p := range page {
		p.Revision = 0
	}
	return page, nil
}

// Count returns the number of records in the catalog.
func (s *CatalogService) Count(ctx context.Context) (int, error) {
	n, err := s.db.CountPokemon(ctx)
	if err != nil {
		return 0, translateErr(s.logger, err, "counting pokemon")
	}
	return n, nil
}

// Resolve turns an ambiguous query into exactly one Pokemon. The query is
// tried as a catalog number, then as an ID, then as a name.
func (s *CatalogService) Resolve(ctx context.Context, query string) (*entities.Pokemon, error) {
	pokemon, err := s.resolve(ctx, classifyQuery(query, s.db.IsValidID))
	if err != nil {
		return nil, translateErr(s.logger, err, "resolving pokemon", "query", query)
	}
	if pokemon == nil {
		return nil, entities.NotFound(query)
	}
	return pokemon, nil
}

func (s *CatalogService) resolve(ctx context.Context, q classifiedQuery) (*entities.Pokemon, error) {
	switch q.kind {
	case queryNumeric:
		if p, err := s.db.FindPokemonByNo(ctx, q.no); err != nil || p != nil {
			return p, err
		}
	case queryIdentifier:
		if p, err := s.db.FindPokemonByID(ctx, q.raw); err != nil || p != nil {
			return p, err
		}
	}
	// Name is the last resort for every kind.
	return s.db.FindPokemonByName(ctx, entities.NormalizeName(q.raw))
}

// Update resolves query and merges patch into the matching record. The
// returned Pokemon is the resolved record with the patch applied.
func (s *CatalogService) Update(ctx context.Context, query string, patch entities.PokemonPatch) (*entities.Pokemon, error) {
	current, err := s.Resolve(ctx, query)
	if err != nil {
		return nil, err
	}

	patch = patch.Normalized()
	if patch.Name != nil && *patch.Name == "" {
		return nil, entities.BadRequest("name must not be empty")
	}
	if patch.No != nil && *patch.No <= 0 {
		return nil, entities.BadRequest("no must be a positive integer, got %d", *patch.No)
	}
	if patch.IsEmpty() {
		return current, nil
	}

	if err := s.db.UpdatePokemon(ctx, current.ID, patch); err != nil {
		return nil, translateErr(s.logger, err, "updating pokemon", "id", current.ID)
	}

	merged := patch.ApplyTo(*current)
	return &merged, nil
}

// Delete removes the record with exactly the given ID.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	n, err := s.db.DeletePokemon(ctx, id)
	if err != nil {
		return translateErr(s.logger, err, "deleting pokemon", "id", id)
	}
	if n == 0 {
		return entities.BadRequest("pokemon with id %s not found", id)
	}
	return nil
}

type queryKind int

const (
	queryName queryKind = iota
	queryNumeric
	queryIdentifier
)

// classifiedQuery is a resolve query tagged with the one shape it has.
type classifiedQuery struct {
	kind queryKind
	raw  string
	no   int
}

// classifyQuery decides once which lookup a query denotes. Numeric wins
// over identifier-shaped; anything else is a name.
func classifyQuery(query string, isValidID func(string) bool) classifiedQuery {
	q := classifiedQuery{kind: queryName, raw: query}
	if no, err := strconv.Atoi(strings.TrimSpace(query)); err == nil {
		q.kind = queryNumeric
		q.no = no
		return q
	}
	if isValidID(query) {
		q.kind = queryIdentifier
	}
	return q
}
