// Package appcache is the reference caching policy: it classifies URLs
// against configured glob rules and backs the application-managed cache
// with a persistent store fronted by an in-memory hot cache.
package appcache

import (
	"encoding/hex"
	"errors"
	"fmt"
	"path"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dgraph-io/ristretto/v2"
	"github.com/rs/zerolog"
	"github.com/zeebo/blake3"

	"github.com/hybridkit/navcache/internal/fetcher"
	"github.com/hybridkit/navcache/internal/store"
	"github.com/hybridkit/navcache/internal/units"
)

var ErrInvalidPattern = errors.New("invalid url pattern")

// Rule assigns a caching strategy to every URL matching its glob pattern.
type Rule struct {
	Pattern  string
	Strategy fetcher.CacheStrategy
}

type Cache struct {
	rules           []Rule
	defaultStrategy fetcher.CacheStrategy
	db              *store.Store[StoredResponse, *StoredResponse]
	hot             *ristretto.Cache[string, *fetcher.AdaptedResponse]
	logger          *zerolog.Logger
}

func New(
	rules []Rule,
	defaultStrategy fetcher.CacheStrategy,
	cachePath string,
	hotCacheSize units.Bytes,
	logger *zerolog.Logger,
) (*Cache, error) {
	for _, rule := range rules {
		if !doublestar.ValidatePattern(rule.Pattern) {
			return nil, fmt.Errorf("%w: '%s'", ErrInvalidPattern, rule.Pattern)
		}
	}

	// Ensure the store logger is not too chatty
	storeLogger := logger.With().Str("component", "appcache").Logger()
	if storeLogger.GetLevel() < zerolog.WarnLevel {
		storeLogger = storeLogger.Level(zerolog.WarnLevel)
	}

	db, err := store.Open[StoredResponse](path.Join(cachePath, "application"), &storeLogger)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize the application cache: %w", err)
	}

	hot, err := ristretto.NewCache(&ristretto.Config[string, *fetcher.AdaptedResponse]{
		NumCounters: 1e5,
		MaxCost:     hotCacheSize.Bytes,
		BufferItems: 64,
	})
	if err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error().Err(closeErr).Msg("error closing the application cache store")
		}
		return nil, fmt.Errorf("unable to initialize the hot cache: %w", err)
	}

	return &Cache{
		rules:           rules,
		defaultStrategy: defaultStrategy,
		db:              db,
		hot:             hot,
		logger:          logger,
	}, nil
}

func (c *Cache) Close() error {
	c.hot.Close()
	return c.db.Close()
}

// Classify returns the strategy of the first rule matching the URL, or
// the default strategy.
func (c *Cache) Classify(url string) fetcher.CacheStrategy {
	for _, rule := range c.rules {
		if doublestar.MatchUnvalidated(rule.Pattern, url) {
			return rule.Strategy
		}
	}
	return c.defaultStrategy
}

func (c *Cache) LoadCached(url string) *fetcher.AdaptedResponse {
	if resp, ok := c.hot.Get(url); ok {
		return resp
	}

	entry, err := c.db.Get(cacheKey(url))
	if err != nil {
		if !errors.Is(err, store.ErrKeyNotFound) {
			c.logger.Error().
				Err(err).
				Str("url", url).
				Msg("unable to read from the application cache")
		}
		return nil
	}

	resp := entry.Value.toAdapted()
	c.hot.Set(url, resp, responseCost(resp))
	return resp
}

// StoreCached persists the response for the URL, replacing any previous
// entry. Failures are logged, callers never see them.
func (c *Cache) StoreCached(url string, resp *fetcher.AdaptedResponse) {
	key := cacheKey(url)

	entry, err := c.db.Get(key)
	switch {
	case err == nil:
		entry.Value = fromAdapted(resp)
		err = c.db.Save(key, entry)
	case errors.Is(err, store.ErrKeyNotFound):
		err = c.db.New(key, fromAdapted(resp))
	}

	if err != nil {
		c.logger.Error().
			Err(err).
			Str("url", url).
			Msg("unable to store response in the application cache")
		return
	}

	c.hot.Set(url, resp, responseCost(resp))
}

func cacheKey(url string) string {
	sum := blake3.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])
}

func responseCost(resp *fetcher.AdaptedResponse) int64 {
	return max(1, int64(len(resp.Body)))
}
