package fetchcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/wordex/internal/db"
	"github.com/kailas-cloud/wordex/internal/domain"
)

// DefaultKeyPrefix namespaces shared store keys.
const DefaultKeyPrefix = "wordex:fetch:"

// store is the consumer interface for the shared response cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type entry struct {
	payload  []byte
	notFound bool
}

// CachedFetcher deduplicates and caches dictionary fetches per (kind, word).
// At most one inner fetch per key is in flight; concurrent callers share it.
type CachedFetcher struct {
	inner      domain.Fetcher
	store      store
	ttl        time.Duration
	keyPrefix  string
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger

	group singleflight.Group

	mu         sync.RWMutex
	entries    map[string]entry
	generation uint64
}

// Option configures a CachedFetcher.
type Option func(*CachedFetcher)

// WithStore adds a shared second-level store. Entries are written with ttl (0 keeps them forever).
func WithStore(s store, keyPrefix string, ttl time.Duration) Option {
	return func(c *CachedFetcher) {
		c.store = s
		c.ttl = ttl
		if keyPrefix != "" {
			c.keyPrefix = keyPrefix
		}
	}
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result", passed explicitly (nil disables counting).
func New(
	inner domain.Fetcher,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
	opts ...Option,
) *CachedFetcher {
	c := &CachedFetcher{
		inner:      inner,
		keyPrefix:  DefaultKeyPrefix,
		cacheTotal: cacheTotal,
		logger:     logger,
		entries:    make(map[string]entry),
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type flightResult struct {
	payload []byte
	err     error
}

// Fetch implements domain.Fetcher.
// Successful payloads and not-found outcomes are kept until Reset; other
// failures are only shared with callers already waiting on the same key.
func (c *CachedFetcher) Fetch(ctx context.Context, kind domain.FetchKind, word string, settings domain.Settings) ([]byte, error) {
	key := string(kind) + ":" + word

	e, ok, gen := c.lookup(key)
	if ok {
		c.incCache("hit")
		return e.result(kind, word)
	}

	var led bool
	ch := c.group.DoChan(strconv.FormatUint(gen, 10)+":"+key, func() (any, error) {
		led = true
		// Waiters must not inherit the leader's cancellation.
		payload, err := c.fill(context.WithoutCancel(ctx), gen, key, kind, word, settings)
		return flightResult{payload: payload, err: err}, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("fetch %s %q: %w", kind, word, ctx.Err())
	case res := <-ch:
		if !led {
			c.incCache("shared")
		}
		fr := res.Val.(flightResult)
		return fr.payload, fr.err
	}
}

// Reset drops every cached entry. In-flight fetches started before Reset do not repopulate it.
func (c *CachedFetcher) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	c.generation++
}

// Len returns the number of cached entries.
func (c *CachedFetcher) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *CachedFetcher) fill(
	ctx context.Context, gen uint64, key string, kind domain.FetchKind, word string, settings domain.Settings,
) ([]byte, error) {
	if e, ok, _ := c.lookup(key); ok {
		return e.result(kind, word)
	}

	storeKey := c.storeKey(settings, key)
	if payload, ok := c.getFromStore(ctx, storeKey); ok {
		c.incCache("store_hit")
		c.remember(gen, key, entry{payload: payload})
		return payload, nil
	}

	c.incCache("miss")

	payload, err := c.inner.Fetch(ctx, kind, word, settings)
	if err != nil {
		if errors.Is(err, domain.ErrWordNotFound) {
			c.remember(gen, key, entry{notFound: true})
		}
		return nil, fmt.Errorf("fetch %s %q: %w", kind, word, err)
	}

	c.remember(gen, key, entry{payload: payload})
	c.putToStore(ctx, storeKey, payload)
	return payload, nil
}

func (c *CachedFetcher) lookup(key string) (entry, bool, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok, c.generation
}

func (c *CachedFetcher) remember(gen uint64, key string, e entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return
	}
	c.entries[key] = e
}

func (e entry) result(kind domain.FetchKind, word string) ([]byte, error) {
	if e.notFound {
		return nil, fmt.Errorf("fetch %s %q: %w", kind, word, domain.ErrWordNotFound)
	}
	return e.payload, nil
}

func (c *CachedFetcher) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

// storeKey partitions shared entries by the settings that shape the payload.
func (c *CachedFetcher) storeKey(settings domain.Settings, key string) string {
	h := sha256.Sum256([]byte(settings.Fingerprint()))
	return c.keyPrefix + hex.EncodeToString(h[:8]) + ":" + key
}

func (c *CachedFetcher) getFromStore(ctx context.Context, key string) ([]byte, bool) {
	if c.store == nil {
		return nil, false
	}
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached payload", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}
	return data, true
}

func (c *CachedFetcher) putToStore(ctx context.Context, key string, payload []byte) {
	if c.store == nil {
		return
	}
	if err := c.store.SetWithTTL(ctx, key, payload, c.ttl); err != nil {
		c.logger.Warn("Failed to cache payload", zap.String("key", key), zap.Error(err))
	}
}
