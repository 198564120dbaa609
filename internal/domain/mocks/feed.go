package mocks

import (
	"context"

	"github.com/ersonp/pokedex-core/internal/domain/entities"
)

// Feed is a mock implementation of ports.Feed that serves a fixed listing.
type Feed struct {
	Entries []entities.FeedEntry
	Err     error

	// Call tracking
	FetchCallCount int
	LastLimit      int
}

// FetchPage returns up to limit of the configured entries.
func (m *Feed) FetchPage(ctx context.Context, limit int) ([]entities.FeedEntry, error) {
	m.FetchCallCount++
	m.LastLimit = limit
	if m.Err != nil {
		return nil, m.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit < len(m.Entries) {
		return m.Entries[:limit], nil
	}
	return m.Entries, nil
}
