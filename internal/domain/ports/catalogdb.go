// Package ports defines interfaces for external service communication.
package ports

import (
	"context"
	"fmt"

	"github.com/ersonp/pokedex-core/internal/domain/entities"
)

// CatalogDB defines the storage collaborator for the Pokemon catalog.
// Implementations enforce uniqueness of no and name on every write and
// report collisions as *UniqueViolation.
type CatalogDB interface {
	// EnsureSchema creates the database schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the database connection.
	Close() error

	// InsertPokemon inserts a single record and assigns its ID.
	InsertPokemon(ctx context.Context, pokemon *entities.Pokemon) error

	// InsertPokemonBatch inserts all records or none of them.
	InsertPokemonBatch(ctx context.Context, batch []*entities.Pokemon) error

	// FindPokemonByNo finds a record by catalog number. Returns nil if absent.
	FindPokemonByNo(ctx context.Context, no int) (*entities.Pokemon, error)

	// FindPokemonByID finds a record by ID. Returns nil if absent.
	FindPokemonByID(ctx context.Context, id string) (*entities.Pokemon, error)

	// FindPokemonByName finds a record by normalized name. Returns nil if absent.
	FindPokemonByName(ctx context.Context, name string) (*entities.Pokemon, error)

	// ListPokemon returns records ordered by no ascending.
	ListPokemon(ctx context.Context, limit, offset int) ([]*entities.Pokemon, error)

	// UpdatePokemon applies patch to the record with the given ID.
	UpdatePokemon(ctx context.Context, id string, patch entities.PokemonPatch) error

	// DeletePokemon deletes by exact ID and reports the affected row count.
	DeletePokemon(ctx context.Context, id string) (int64, error)

	// DeleteAllPokemon empties the catalog and reports the affected row count.
	DeleteAllPokemon(ctx context.Context) (int64, error)

	// CountPokemon returns the number of records.
	CountPokemon(ctx context.Context) (int, error)

	// IsValidID reports whether s has the shape of a storage identifier.
	IsValidID(s string) bool
}

// UniqueViolation is returned by CatalogDB writes that collide with an
// existing record on a unique field.
type UniqueViolation struct {
	Field string
	Value string
	Err   error
}

func (e *UniqueViolation) Error() string {
	return fmt.Sprintf("unique constraint violated on %s=%s", e.Field, e.Value)
}

func (e *UniqueViolation) Unwrap() error {
	return e.Err
}
