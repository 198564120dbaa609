// Package pokeapi provides a Feed implementation backed by the PokeAPI
// listing endpoint.
package pokeapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/ersonp/pokedex-core/internal/domain/entities"
	"github.com/ersonp/pokedex-core/internal/domain/ports"
	"github.com/ersonp/pokedex-core/internal/infrastructure/config"
	"github.com/ersonp/pokedex-core/internal/infrastructure/feed"
)

const (
	defaultRetryWaitMin = 250 * time.Millisecond
	defaultRetryWaitMax = 5 * time.Second
)

// Client implements ports.Feed over HTTP.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
}

var _ ports.Feed = (*Client)(nil)

// NewClient creates a new feed client. Failed requests are retried
// cfg.Retries times with exponential backoff; every attempt is bounded by
// cfg.Timeout.
func NewClient(cfg config.FeedConfig, logger *zap.SugaredLogger) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errors.Newf("invalid feed base URL %q", cfg.BaseURL)
	}
	if cfg.Retries < 0 {
		return nil, errors.Newf("feed retries must not be negative, got %d", cfg.Retries)
	}

	client := retryablehttp.NewClient()
	client.RetryMax = cfg.Retries
	client.RetryWaitMin = defaultRetryWaitMin
	client.RetryWaitMax = defaultRetryWaitMax
	client.HTTPClient.Timeout = cfg.Timeout
	// Hand the last response back so a persistent 5xx reports its status.
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	if logger != nil {
		client.Logger = leveledLogger{logger.Named("feed")}
	} else {
		client.Logger = nil
	}

	return &Client{
		http:    client,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}, nil
}

// FetchPage fetches the first page of the pokemon listing.
func (c *Client) FetchPage(ctx context.Context, limit int) ([]entities.FeedEntry, error) {
	if limit <= 0 {
		return nil, errors.Newf("feed limit must be positive, got %d", limit)
	}

	endpoint := c.baseURL + "/pokemon?limit=" + strconv.Itoa(limit)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building feed request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %s", endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Newf("fetching %s: unexpected status %d", endpoint, resp.StatusCode)
	}

	listing, err := feed.DecodeListing(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s", endpoint)
	}
	return listing.Truncate(limit)
}

// leveledLogger routes retryablehttp's request logging through zap.
type leveledLogger struct {
	logger *zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Errorw(msg, keysAndValues...)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Infow(msg, keysAndValues...)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warnw(msg, keysAndValues...)
}
