// Package feed holds the listing format shared by the seed feed collaborators.
package feed

import (
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/ersonp/pokedex-core/internal/domain/entities"
)

// Listing is one page of a catalog listing:
//
//	{"count": 1302, "next": "...", "results": [{"name": "bulbasaur", "url": ".../pokemon/1/"}]}
//
// Only results is required.
type Listing struct {
	Count   int                  `json:"count,omitempty"`
	Next    *string              `json:"next,omitempty"`
	Results []entities.FeedEntry `json:"results"`
}

// DecodeListing reads a listing from r. A document without a results array
// is rejected.
func DecodeListing(r io.Reader) (*Listing, error) {
	var raw struct {
		Listing
		Results *[]entities.FeedEntry `json:"results"`
	}

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "parsing listing")
	}
	if raw.Results == nil {
		return nil, errors.New("parsing listing: missing results array")
	}

	listing := raw.Listing
	listing.Results = *raw.Results
	return &listing, nil
}

// Truncate returns at most limit entries. A non-positive limit is rejected.
func (l *Listing) Truncate(limit int) ([]entities.FeedEntry, error) {
	if limit <= 0 {
		return nil, errors.Newf("feed limit must be positive, got %d", limit)
	}
	if limit < len(l.Results) {
		return l.Results[:limit], nil
	}
	return l.Results, nil
}
