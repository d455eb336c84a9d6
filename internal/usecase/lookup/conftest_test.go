package lookup

import (
	"context"
	"sync"

	"github.com/kailas-cloud/wordex/internal/domain"
)

type fetchResult struct {
	payload string
	err     error
}

type mockFetcher struct {
	mu       sync.Mutex
	results  map[domain.FetchKind]fetchResult
	calls    map[domain.FetchKind]int
	settings []domain.Settings
}

func newMockFetcher() *mockFetcher {
	return &mockFetcher{
		results: map[domain.FetchKind]fetchResult{},
		calls:   map[domain.FetchKind]int{},
	}
}

func (m *mockFetcher) on(kind domain.FetchKind, payload string, err error) *mockFetcher {
	m.results[kind] = fetchResult{payload: payload, err: err}
	return m
}

func (m *mockFetcher) Fetch(_ context.Context, kind domain.FetchKind, _ string, settings domain.Settings) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[kind]++
	m.settings = append(m.settings, settings)
	r, ok := m.results[kind]
	if !ok {
		return nil, domain.ErrWordNotFound
	}
	if r.err != nil {
		return nil, r.err
	}
	return []byte(r.payload), nil
}

type mockSuggester struct {
	suggestions []domain.Suggestion
	err         error
	gotPath     string
	gotN        int
}

func (m *mockSuggester) Suggest(_ context.Context, path, _ string, n int) ([]domain.Suggestion, error) {
	m.gotPath = path
	m.gotN = n
	return m.suggestions, m.err
}

type mockResetter struct {
	resets int
}

func (m *mockResetter) Reset() { m.resets++ }

var testSettings = domain.Settings{APIKey: "k", Results: "10"}
