package ports

import (
	"context"

	"github.com/ersonp/pokedex-core/internal/domain/entities"
)

// Feed fetches raw catalog listings from an external source.
type Feed interface {
	// FetchPage returns up to limit entries.
	FetchPage(ctx context.Context, limit int) ([]entities.FeedEntry, error)
}
