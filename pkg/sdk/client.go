package wordex

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	dbRedis "github.com/kailas-cloud/wordex/internal/db/redis"
	"github.com/kailas-cloud/wordex/internal/domain"
	"github.com/kailas-cloud/wordex/internal/domain/option"
	"github.com/kailas-cloud/wordex/internal/repository/fetchcache"
	"github.com/kailas-cloud/wordex/internal/repository/wordlist"
	"github.com/kailas-cloud/wordex/internal/transport/wordnik"
	healthuc "github.com/kailas-cloud/wordex/internal/usecase/health"
	lookupuc "github.com/kailas-cloud/wordex/internal/usecase/lookup"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultTimeout          = 10 * time.Second
	defaultCacheTTL         = 24 * time.Hour
	defaultResults          = "10"
)

// Internal interfaces for substitution in tests.
type lookupUseCase interface {
	Query(ctx context.Context, inv lookupuc.Invocation) []option.Option
}

// Client is the wordex SDK entry point. It is safe for concurrent use.
type Client struct {
	fetcher   domain.Fetcher
	lookupSvc lookupUseCase
	healthSvc healthUseCase
	settings  domain.Settings
	closer    func()
	obs       *observer
}

// New creates a wordex Client. When WithRedis is given, the provided context
// is used for the initial readiness check of the shared store.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		results:  defaultResults,
		timeout:  defaultTimeout,
		cacheTTL: defaultCacheTTL,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.apiKey == "" {
		return nil, errors.New("wordex: api key required (use WithAPIKey)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.timeout}
	}
	remote := wordnik.NewClient(&wordnik.Config{
		BaseURL:      cfg.baseURL,
		UrbanBaseURL: cfg.urbanBaseURL,
		HTTPClient:   httpClient,
		HealthAPIKey: cfg.apiKey,
	})

	var cacheOpts []fetchcache.Option
	var pinger healthuc.StorePinger
	closer := func() {}
	if len(cfg.redisAddrs) > 0 {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.redisAddrs,
			Password: cfg.redisPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("wordex: create redis store: %w", err)
		}
		if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("wordex: redis not ready: %w", err)
		}
		cacheOpts = append(cacheOpts, fetchcache.WithStore(store, fetchcache.DefaultKeyPrefix, cfg.cacheTTL))
		pinger = store
		closer = store.Close
	}

	cache := fetchcache.New(remote, nil, nil, cacheOpts...)
	c := wireClient(cache, cache, cfg, obs)
	c.healthSvc = healthuc.New(pinger, remote)
	c.closer = closer
	return c, nil
}

// wireClient assembles the lookup stack over an already cached fetcher.
func wireClient(fetcher domain.Fetcher, cache lookupuc.CacheResetter, cfg *clientConfig, obs *observer) *Client {
	settings := domain.Settings{
		APIKey:       cfg.apiKey,
		Results:      cfg.results,
		UseCanonical: cfg.useCanonical,
		WordlistLoc:  cfg.wordlist,
	}

	// Pass nil interface (not typed nil pointer) when suggestions are disabled.
	var suggester lookupuc.Suggester
	if cfg.wordlist != "" {
		suggester = wordlist.New(&wordlist.Config{HTTPClient: cfg.httpClient})
	}

	lookup := lookupuc.New(fetcher, cache, suggester, &lookupuc.Config{
		Keyword:  cfg.keyword,
		Defaults: settings,
	}, nil)

	return &Client{
		fetcher:   fetcher,
		lookupSvc: lookup,
		healthSvc: healthuc.New(nil, nil),
		settings:  settings,
		closer:    func() {},
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.closer != nil {
		c.closer()
	}
}

// Query renders a launcher query ("word", "word!modifier") into result items.
// Lookup failures are rendered as items; only cancellation is returned as an error.
func (c *Client) Query(ctx context.Context, text string) (items []Item, err error) {
	start := time.Now()
	defer func() { c.obs.observe("query", text, start, err) }()

	opts := c.lookupSvc.Query(ctx, lookupuc.Invocation{Query: text})
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	items = make([]Item, 0, len(opts))
	for _, o := range opts {
		items = append(items, itemFromOption(o))
	}
	return items, nil
}
