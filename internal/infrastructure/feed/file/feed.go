// Package file provides a Feed that reads a saved listing from disk, for
// seeding without network access. JSON and CSV listings are supported.
package file

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/ersonp/pokedex-core/internal/domain/entities"
	"github.com/ersonp/pokedex-core/internal/domain/ports"
	"github.com/ersonp/pokedex-core/internal/infrastructure/feed"
)

// Feed implements ports.Feed over a saved listing file.
type Feed struct {
	path   string
	decode feed.Decoder
}

var _ ports.Feed = (*Feed)(nil)

// NewFeed creates a feed reading from path. The file is opened on every fetch.
func NewFeed(path string) (*Feed, error) {
	if path == "" {
		return nil, errors.New("feed file path is required")
	}

	decode := feed.ForFile(path)
	if decode == nil {
		return nil, errors.Newf("unsupported format for feed file: %s", path)
	}
	return &Feed{path: path, decode: decode}, nil
}

// FetchPage reads the listing and returns up to limit entries.
func (f *Feed) FetchPage(ctx context.Context, limit int) ([]entities.FeedEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(f.path)
	if err != nil {
		return nil, errors.Wrap(err, "opening feed file")
	}
	defer file.Close()

	listing, err := f.decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", f.path)
	}
	return listing.Truncate(limit)
}
