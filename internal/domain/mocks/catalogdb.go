// Package mocks provides in-memory implementations of the domain ports for tests.
package mocks

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ersonp/pokedex-core/internal/domain/entities"
	"github.com/ersonp/pokedex-core/internal/domain/ports"
)

// CatalogDB is an in-memory mock implementation of ports.CatalogDB that
// enforces the same uniqueness rules as the real storage.
type CatalogDB struct {
	Records map[string]*entities.Pokemon

	// Err fails every operation when set.
	Err error

	// Per-operation errors (separate from Err for fine-grained control)
	FindErr      error
	InsertErr    error
	UpdateErr    error
	DeleteErr    error
	DeleteAllErr error
	SchemaErr    error

	// Call tracking
	FindByNoCallCount       int
	FindByIDCallCount       int
	FindByNameCallCount     int
	UpdateCallCount         int
	InsertBatchCallCount    int
	DeleteAllCallCount      int
	EnsureSchemaCallCount   int
	Closed                  bool
	InsertBatchLastPokemons []*entities.Pokemon
}

// NewCatalogDB creates a new mock CatalogDB.
func NewCatalogDB() *CatalogDB {
	return &CatalogDB{
		Records: make(map[string]*entities.Pokemon),
	}
}

// EnsureSchema creates the database schema if it doesn't exist.
func (m *CatalogDB) EnsureSchema(_ context.Context) error {
	m.EnsureSchemaCallCount++
	return m.firstErr(m.SchemaErr)
}

// Close closes the database connection.
func (m *CatalogDB) Close() error {
	m.Closed = true
	return nil
}

// InsertPokemon inserts a single record and assigns its ID.
func (m *CatalogDB) InsertPokemon(_ context.Context, pokemon *entities.Pokemon) error {
	if err := m.firstErr(m.InsertErr); err != nil {
		return err
	}
	if err := m.checkUnique("", pokemon.No, pokemon.Name, nil); err != nil {
		return err
	}
	m.store(pokemon)
	return nil
}

// InsertPokemonBatch inserts all records or none of them.
func (m *CatalogDB) InsertPokemonBatch(_ context.Context, batch []*entities.Pokemon) error {
	m.InsertBatchCallCount++
	m.InsertBatchLastPokemons = batch
	if err := m.firstErr(m.InsertErr); err != nil {
		return err
	}
	seen := make([]*entities.Pokemon, 0, len(batch))
	for _, p := range batch {
		if err := m.checkUnique("", p.No, p.Name, seen); err != nil {
			return err
		}
		seen = append(seen, p)
	}
	for _, p := range batch {
		m.store(p)
	}
	return nil
}

// FindPokemonByNo finds a record by catalog number.
func (m *CatalogDB) FindPokemonByNo(_ context.Context, no int) (*entities.Pokemon, error) {
	m.FindByNoCallCount++
	if err := m.firstErr(m.FindErr); err != nil {
		return nil, err
	}
	for _, p := range m.Records {
		if p.No == no {
			return clone(p), nil
		}
	}
	return nil, nil
}

// FindPokemonByID finds a record by ID.
func (m *CatalogDB) FindPokemonByID(_ context.Context, id string) (*entities.Pokemon, error) {
	m.FindByIDCallCount++
	if err := m.firstErr(m.FindErr); err != nil {
		return nil, err
	}
	if p, ok := m.Records[id]; ok {
		return clone(p), nil
	}
	return nil, nil
}

// FindPokemonByName finds a record by normalized name.
func (m *CatalogDB) FindPokemonByName(_ context.Context, name string) (*entities.Pokemon, error) {
	m.FindByNameCallCount++
	if err := m.firstErr(m.FindErr); err != nil {
		return nil, err
	}
	for _, p := range m.Records {
		if p.Name == name {
			return clone(p), nil
		}
	}
	return nil, nil
}

// ListPokemon returns records ordered by no ascending.
func (m *CatalogDB) ListPokemon(_ context.Context, limit, offset int) ([]*entities.Pokemon, error) {
	if err := m.firstErr(m.FindErr); err != nil {
		return nil, err
	}
	all := m.sorted()
	if offset >= len(all) {
		return []*entities.Pokemon{}, nil
	}
	end := len(all)
	if limit < end-offset {
		end = offset + limit
	}
	result := make([]*entities.Pokemon, 0, end-offset)
	for _, p := range all[offset:end] {
		c := clone(p)
		c.Revision = 0
		result = append(result, c)
	}
	return result, nil
}

// UpdatePokemon applies patch to the record with the given ID.
func (m *CatalogDB) UpdatePokemon(_ context.Context, id string, patch entities.PokemonPatch) error {
	m.UpdateCallCount++
	if err := m.firstErr(m.UpdateErr); err != nil {
		return err
	}
	current, ok := m.Records[id]
	if !ok {
		return nil
	}
	updated := patch.ApplyTo(*current)
	if err := m.checkUnique(id, updated.No, updated.Name, nil); err != nil {
		return err
	}
	updated.Revision++
	updated.UpdatedAt = time.Now()
	m.Records[id] = &updated
	return nil
}

// DeletePokemon deletes by exact ID.
func (m *CatalogDB) DeletePokemon(_ context.Context, id string) (int64, error) {
	if err := m.firstErr(m.DeleteErr); err != nil {
		return 0, err
	}
	if _, ok := m.Records[id]; !ok {
		return 0, nil
	}
	delete(m.Records, id)
	return 1, nil
}

// DeleteAllPokemon empties the catalog.
func (m *CatalogDB) DeleteAllPokemon(_ context.Context) (int64, error) {
	m.DeleteAllCallCount++
	if err := m.firstErr(m.DeleteAllErr); err != nil {
		return 0, err
	}
	n := int64(len(m.Records))
	m.Records = make(map[string]*entities.Pokemon)
	return n, nil
}

// CountPokemon returns the number of records.
func (m *CatalogDB) CountPokemon(_ context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.Records), nil
}

// IsValidID reports whether s is a UUID.
func (m *CatalogDB) IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func (m *CatalogDB) firstErr(specific error) error {
	if m.Err != nil {
		return m.Err
	}
	return specific
}

// checkUnique looks for a record other than skipID holding no or name,
// among the stored records and the pending ones.
func (m *CatalogDB) checkUnique(skipID string, no int, name string, pending []*entities.Pokemon) error {
	candidates := make([]*entities.Pokemon, 0, len(m.Records)+len(pending))
	for _, p := range m.Records {
		candidates = append(candidates, p)
	}
	candidates = append(candidates, pending...)
	for _, p := range candidates {
		if skipID != "" && p.ID == skipID {
			continue
		}
		if p.No == no {
			return &ports.UniqueViolation{Field: "no", Value: strconv.Itoa(no)}
		}
		if p.Name == name {
			return &ports.UniqueViolation{Field: "name", Value: name}
		}
	}
	return nil
}

func (m *CatalogDB) store(pokemon *entities.Pokemon) {
	now := time.Now()
	pokemon.ID = uuid.New().String()
	pokemon.CreatedAt = now
	pokemon.UpdatedAt = now
	m.Records[pokemon.ID] = clone(pokemon)
}

func (m *CatalogDB) sorted() []*entities.Pokemon {
	result := make([]*entities.Pokemon, 0, len(m.Records))
	for _, p := range m.Records {
		result = append(result, p)
	}
	// Sort by no for deterministic test results
	sort.Slice(result, func(i, j int) bool {
		return result[i].No < result[j].No
	})
	return result
}

func clone(p *entities.Pokemon) *entities.Pokemon {
	c := *p
	return &c
}
