package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/pokedex-core/internal/domain/entities"
	"github.com/ersonp/pokedex-core/internal/domain/mocks"
)

func feedEntry(no int, name string) entities.FeedEntry {
	return entities.FeedEntry{
		Name: name,
		URL:  fmt.Sprintf("https://pokeapi.co/api/v2/pokemon/%d/", no),
	}
}

func sampleFeed() *mocks.Feed {
	return &mocks.Feed{Entries: []entities.FeedEntry{
		feedEntry(1, "bulbasaur"),
		feedEntry(2, "ivysaur"),
		feedEntry(3, "venusaur"),
		feedEntry(25, "Pikachu"),
	}}
}

func TestSeedService_Execute(t *testing.T) {
	ctx := context.Background()
	db := mocks.NewCatalogDB()
	feed := sampleFeed()
	catalog := NewCatalogService(db, CatalogOptions{}, nil)
	mustCreate(t, catalog, 150, "mewtwo")

	service := NewSeedService(db, feed, SeedOptions{Limit: 100}, nil)
	result, err := service.Execute(ctx)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Purged)
	assert.Equal(t, 4, result.Inserted)
	assert.Equal(t, 100, feed.LastLimit)
	assert.Len(t, db.Records, 4)

	_, err = catalog.Resolve(ctx, "mewtwo")
	assert.ErrorIs(t, err, entities.ErrNotFound, "purge must remove prior records")

	p, err := catalog.Resolve(ctx, "25")
	require.NoError(t, err)
	assert.Equal(t, "pikachu", p.Name, "seeded names are normalized")
}

func TestSeedService_ExecuteTwiceIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := mocks.NewCatalogDB()
	service := NewSeedService(db, sampleFeed(), SeedOptions{}, nil)

	_, err := service.Execute(ctx)
	require.NoError(t, err)
	result, err := service.Execute(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, result.Purged)
	assert.Equal(t, 4, result.Inserted)
	assert.Len(t, db.Records, 4)
}

func TestSeedService_DefaultLimit(t *testing.T) {
	feed := sampleFeed()
	service := NewSeedService(mocks.NewCatalogDB(), feed, SeedOptions{}, nil)

	_, err := service.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, DefaultSeedLimit, feed.LastLimit)
}

func TestSeedService_PurgeFailureAbortsBeforeFetch(t *testing.T) {
	db := mocks.NewCatalogDB()
	db.DeleteAllErr = errors.New("database is locked")
	feed := sampleFeed()
	service := NewSeedService(db, feed, SeedOptions{}, nil)

	_, err := service.Execute(context.Background())

	require.ErrorIs(t, err, entities.ErrInternal)
	assert.Zero(t, feed.FetchCallCount)
	assert.Zero(t, db.InsertBatchCallCount)
}

func TestSeedService_FailuresAfterPurgeLeaveCatalogEmpty(t *testing.T) {
	tests := []struct {
		name     string
		feed     *mocks.Feed
		insert   error
		expected error
	}{
		{
			name:     "network failure",
			feed:     &mocks.Feed{Err: errors.New("dial tcp: i/o timeout")},
			expected: entities.ErrInternal,
		},
		{
			name: "malformed reference",
			feed: &mocks.Feed{Entries: []entities.FeedEntry{
				feedEntry(1, "bulbasaur"),
				{Name: "glitch", URL: "https://pokeapi.co/api/v2/pokemon/abc/"},
			}},
			expected: entities.ErrBadRequest,
		},
		{
			name: "duplicate number in batch",
			feed: &mocks.Feed{Entries: []entities.FeedEntry{
				feedEntry(1, "bulbasaur"),
				feedEntry(1, "bulbasaur-clone"),
			}},
			expected: entities.ErrConflict,
		},
		{
			name:     "bulk insert failure",
			feed:     sampleFeed(),
			insert:   errors.New("constraint check failed"),
			expected: entities.ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := mocks.NewCatalogDB()
			catalog := NewCatalogService(db, CatalogOptions{}, nil)
			mustCreate(t, catalog, 150, "mewtwo")
			db.InsertErr = tt.insert

			service := NewSeedService(db, tt.feed, SeedOptions{}, nil)
			_, err := service.Execute(context.Background())

			require.ErrorIs(t, err, tt.expected)
			assert.Contains(t, errors.FlattenHints(err), "run again")
			assert.Empty(t, db.Records)
		})
	}
}

func TestSeedService_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	db := mocks.NewCatalogDB()
	service := NewSeedService(db, sampleFeed(), SeedOptions{}, nil)

	_, err := service.Execute(ctx)

	assert.ErrorIs(t, err, entities.ErrInternal)
	assert.Zero(t, db.InsertBatchCallCount)
}

func TestSeedService_Preview(t *testing.T) {
	ctx := context.Background()
	db := mocks.NewCatalogDB()
	catalog := NewCatalogService(db, CatalogOptions{}, nil)
	mustCreate(t, catalog, 150, "mewtwo")
	service := NewSeedService(db, sampleFeed(), SeedOptions{}, nil)

	n, err := service.Preview(ctx)

	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Len(t, db.Records, 1, "preview must not write")
	assert.Zero(t, db.DeleteAllCallCount)
	assert.Zero(t, db.InsertBatchCallCount)
}

func TestSeedService_PreviewRejectsMalformedFeed(t *testing.T) {
	db := mocks.NewCatalogDB()
	feed := &mocks.Feed{Entries: []entities.FeedEntry{{Name: "glitch", URL: "glitch"}}}
	service := NewSeedService(db, feed, SeedOptions{}, nil)

	_, err := service.Preview(context.Background())

	assert.ErrorIs(t, err, entities.ErrBadRequest)
	assert.Zero(t, db.DeleteAllCallCount)
}

func TestParseFeedEntries(t *testing.T) {
	t.Run("extracts number and normalizes name", func(t *testing.T) {
		batch, err := parseFeedEntries([]entities.FeedEntry{
			feedEntry(25, " Pikachu "),
			{Name: "mew", URL: "151/"},
		})

		require.NoError(t, err)
		require.Len(t, batch, 2)
		assert.Equal(t, 25, batch[0].No)
		assert.Equal(t, "pikachu", batch[0].Name)
		assert.Equal(t, 151, batch[1].No)
	})

	t.Run("duplicate normalized name", func(t *testing.T) {
		_, err := parseFeedEntries([]entities.FeedEntry{
			feedEntry(1, "Bulbasaur"),
			feedEntry(2, "bulbasaur"),
		})

		require.ErrorIs(t, err, entities.ErrConflict)
		var e *entities.Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, "name", e.Field)
	})

	t.Run("empty listing", func(t *testing.T) {
		batch, err := parseFeedEntries(nil)
		require.NoError(t, err)
		assert.Empty(t, batch)
	})
}

func TestNumberFromURL(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		want    int
		wantErr bool
	}{
		{name: "trailing slash", ref: "https://pokeapi.co/api/v2/pokemon/25/", want: 25},
		{name: "relative", ref: "pokemon/151/", want: 151},
		{name: "no trailing slash takes parent segment", ref: "https://pokeapi.co/api/v2/pokemon/25", wantErr: true},
		{name: "no separator", ref: "25", wantErr: true},
		{name: "non numeric", ref: "https://pokeapi.co/api/v2/pokemon/pikachu/", wantErr: true},
		{name: "zero", ref: "pokemon/0/", wantErr: true},
		{name: "empty", ref: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := numberFromURL(tt.ref)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
