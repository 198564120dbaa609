package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/ersonp/pokedex-core/internal/domain/entities"
	"github.com/ersonp/pokedex-core/internal/domain/ports"
)

// DefaultSeedLimit is the page size requested from the feed when
// SeedOptions leaves Limit unset.
const DefaultSeedLimit = 700

// reseedHint is attached to every failure that happens after the purge.
const reseedHint = "the catalog was purged and stays empty until the seed is run again"

// SeedOptions configures a SeedService.
type SeedOptions struct {
	// Limit is the number of entries requested from the feed.
	Limit int
}

// SeedResult confirms a completed seed.
type SeedResult struct {
	Purged   int `json:"purged"`
	Inserted int `json:"inserted"`
}

// SeedService replaces the whole catalog with a fresh snapshot of a feed.
//
// A seed runs in two phases: Purge, then Load. The sequence is not atomic
// with respect to concurrent readers, which may observe an empty or
// partially loaded catalog while a seed is in flight. A failure after Purge
// leaves the catalog empty; there is no rollback.
type SeedService struct {
	db     ports.CatalogDB
	feed   ports.Feed
	limit  int
	logger *zap.SugaredLogger
}

// NewSeedService creates a new SeedService.
func NewSeedService(db ports.CatalogDB, feed ports.Feed, opts SeedOptions, logger *zap.SugaredLogger) *SeedService {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSeedLimit
	}
	return &SeedService{
		db:     db,
		feed:   feed,
		limit:  limit,
		logger: nopIfNil(logger),
	}
}

// Execute purges the catalog and reloads it from the feed.
func (s *SeedService) Execute(ctx context.Context) (*SeedResult, error) {
	purged, err := s.Purge(ctx)
	if err != nil {
		return nil, err
	}

	inserted, err := s.Load(ctx)
	if err != nil {
		return nil, errors.WithHint(err, reseedHint)
	}

	s.logger.Infow("seed completed", "purged", purged, "inserted", inserted)
	return &SeedResult{Purged: purged, Inserted: inserted}, nil
}

// Preview fetches and validates one page from the feed without touching the
// catalog. It returns the number of records a Load would insert.
func (s *SeedService) Preview(ctx context.Context) (int, error) {
	batch, err := s.fetchBatch(ctx)
	if err != nil {
		return 0, err
	}
	return len(batch), nil
}

// Purge deletes every record in the catalog.
func (s *SeedService) Purge(ctx context.Context) (int, error) {
	n, err := s.db.DeleteAllPokemon(ctx)
	if err != nil {
		return 0, translateErr(s.logger, err, "purging catalog")
	}
	return int(n), nil
}

// Load fetches one page from the feed and bulk-inserts it. The insert is
// all-or-nothing.
func (s *SeedService) Load(ctx context.Context) (int, error) {
	batch, err := s.fetchBatch(ctx)
	if err != nil {
		return 0, err
	}
	if len(batch) == 0 {
		return 0, nil
	}

	if err := s.db.InsertPokemonBatch(ctx, batch); err != nil {
		return 0, translateErr(s.logger, err, "inserting seed batch", "size", len(batch))
	}
	return len(batch), nil
}

func (s *SeedService) fetchBatch(ctx context.Context) ([]*entities.Pokemon, error) {
	feedEntries, err := s.feed.FetchPage(ctx, s.limit)
	if err != nil {
		return nil, translateErr(s.logger, err, "fetching feed", "limit", s.limit)
	}
	return parseFeedEntries(feedEntries)
}

// parseFeedEntries turns raw feed entries into records ready to insert.
// It rejects malformed references and duplicates within the batch so that
// nothing reaches storage that would break uniqueness.
func parseFeedEntries(feedEntries []entities.FeedEntry) ([]*entities.Pokemon, error) {
	batch := make([]*entities.Pokemon, 0, len(feedEntries))
	seenNo := make(map[int]bool, len(feedEntries))
	seenName := make(map[string]bool, len(feedEntries))

	for i, e := range feedEntries {
		no, err := numberFromURL(e.URL)
		if err != nil {
			return nil, entities.BadRequest("entry %d (%s): %v", i+1, e.Name, err)
		}
		name := entities.NormalizeName(e.Name)
		if name == "" {
			return nil, entities.BadRequest("entry %d: missing name", i+1)
		}

		if seenNo[no] {
			return nil, entities.Conflict("no", strconv.Itoa(no))
		}
		if seenName[name] {
			return nil, entities.Conflict("name", name)
		}
		seenNo[no] = true
		seenName[name] = true

		batch = append(batch, &entities.Pokemon{No: no, Name: name})
	}
	return batch, nil
}

// numberFromURL extracts the catalog number from the second-to-last path
// segment of a feed reference, e.g. ".../pokemon/25/" -> 25.
func numberFromURL(ref string) (int, error) {
	segments := strings.Split(ref, "/")
	if len(segments) < 2 {
		return 0, errors.Newf("malformed reference %q", ref)
	}
	segment := segments[len(segments)-2]
	no, err := strconv.Atoi(segment)
	if err != nil {
		return 0, errors.Newf("malformed reference %q: segment %q is not a number", ref, segment)
	}
	if no <= 0 {
		return 0, errors.Newf("malformed reference %q: number must be positive", ref)
	}
	return no, nil
}
