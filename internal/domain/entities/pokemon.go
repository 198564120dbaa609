// Package entities holds the catalog's domain types.
package entities

import (
	"strings"
	"time"
)

// Pokemon is one catalog record. No and Name are each unique across the
// catalog; Name is always stored in normalized form.
type Pokemon struct {
	ID        string    `json:"id"`
	No        int       `json:"no"`
	Name      string    `json:"name"`
	Revision  int       `json:"-"` // storage-only write counter
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PokemonDraft is the caller-supplied input for creating a Pokemon.
type PokemonDraft struct {
	No   int    `json:"no"`
	Name string `json:"name"`
}

// PokemonPatch is a partial update. Nil fields are left untouched.
type PokemonPatch struct {
	No   *int    `json:"no,omitempty"`
	Name *string `json:"name,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p PokemonPatch) IsEmpty() bool {
	return p.No == nil && p.Name == nil
}

// Normalized returns a copy of the patch with Name normalized.
func (p PokemonPatch) Normalized() PokemonPatch {
	if p.Name != nil {
		name := NormalizeName(*p.Name)
		p.Name = &name
	}
	return p
}

// ApplyTo returns a copy of pokemon with the patch merged in.
func (p PokemonPatch) ApplyTo(pokemon Pokemon) Pokemon {
	if p.No != nil {
		pokemon.No = *p.No
	}
	if p.Name != nil {
		pokemon.Name = *p.Name
	}
	return pokemon
}

// FeedEntry is one raw entry of an external catalog listing. URL is an opaque
// locator whose second-to-last path segment is the catalog number.
type FeedEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// NormalizeName converts a name to its stored form: trimmed and lowercase.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
