package handlers

import (
	"context"
	"time"

	"github.com/ersonp/pokedex-core/internal/domain/services"
)

// SeedHandler handles replacing the catalog with the feed's listing.
type SeedHandler struct {
	service *services.SeedService
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(service *services.SeedService) *SeedHandler {
	return &SeedHandler{
		service: service,
	}
}

// SeedOptions controls seed behavior.
type SeedOptions struct {
	DryRun bool // Fetch and validate without touching the catalog
}

// SeedResult contains the result of a seed run. On a dry run Inserted is the
// number of records that would be inserted.
type SeedResult struct {
	Purged   int           `json:"purged"`
	Inserted int           `json:"inserted"`
	DryRun   bool          `json:"dry_run,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Handle purges the catalog and loads it from the feed.
func (h *SeedHandler) Handle(ctx context.Context, opts SeedOptions) (*SeedResult, error) {
	start := time.Now()

	if opts.DryRun {
		n, err := h.service.Preview(ctx)
		if err != nil {
			return nil, err
		}
		return &SeedResult{Inserted: n, DryRun: true, Duration: time.Since(start)}, nil
	}

	result, err := h.service.Execute(ctx)
	if err != nil {
		return nil, err
	}

	return &SeedResult{
		Purged:   result.Purged,
		Inserted: result.Inserted,
		Duration: time.Since(start),
	}, nil
}
