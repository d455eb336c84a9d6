package fetchcache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/wordex/internal/db"
	"github.com/kailas-cloud/wordex/internal/domain"
)

type mockFetcher struct {
	payload []byte
	err     error
	// gate, when set, blocks every call until closed.
	gate  chan struct{}
	calls atomic.Int32
}

func (m *mockFetcher) Fetch(ctx context.Context, _ domain.FetchKind, _ string, _ domain.Settings) ([]byte, error) {
	m.calls.Add(1)
	if m.gate != nil {
		<-m.gate
	}
	return m.payload, m.err
}

// mockKVStore implements the consumer interface for tests.
type mockKVStore struct {
	mu    sync.Mutex
	data  map[string][]byte
	ttls  map[string]time.Duration
	getFn func(ctx context.Context, key string) ([]byte, error)
	setFn func(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockKVStore) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func newTestCachedFetcher(t *testing.T, inner *mockFetcher, opts ...Option) *CachedFetcher {
	t.Helper()
	return New(inner, nil, zap.NewNop(), opts...)
}
