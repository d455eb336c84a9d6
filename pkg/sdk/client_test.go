package wordex

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/wordex/internal/domain"
)

type mockFetcher struct {
	payloads map[domain.FetchKind]string
	err      error
	got      domain.Settings
}

func (m *mockFetcher) Fetch(_ context.Context, kind domain.FetchKind, _ string, settings domain.Settings) ([]byte, error) {
	m.got = settings
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.payloads[kind]
	if !ok {
		return nil, domain.ErrWordNotFound
	}
	return []byte(p), nil
}

type nopResetter struct{}

func (nopResetter) Reset() {}

func newTestClient(f *mockFetcher, opts ...Option) *Client {
	cfg := &clientConfig{apiKey: "k", results: defaultResults}
	for _, o := range opts {
		o.apply(cfg)
	}
	return wireClient(f, nopResetter{}, cfg, nil)
}

func TestNew_NoAPIKey(t *testing.T) {
	_, err := New(context.Background())
	if err == nil {
		t.Fatal("expected error when no api key provided")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &clientConfig{}

	WithAPIKey("secret").apply(cfg)
	WithResults(5).apply(cfg)
	WithCanonical().apply(cfg)
	WithWordlist("/tmp/words.txt").apply(cfg)
	WithKeyword("wd").apply(cfg)
	if cfg.apiKey != "secret" || cfg.results != "5" || !cfg.useCanonical {
		t.Errorf("settings options not applied: %+v", cfg)
	}
	if cfg.wordlist != "/tmp/words.txt" || cfg.keyword != "wd" {
		t.Errorf("lookup options not applied: %+v", cfg)
	}

	WithRedis("localhost:6380", "pass").apply(cfg)
	if len(cfg.redisAddrs) != 1 || cfg.redisAddrs[0] != "localhost:6380" || cfg.redisPassword != "pass" {
		t.Errorf("redis = (%v, %q)", cfg.redisAddrs, cfg.redisPassword)
	}
	WithCacheTTL(time.Hour).apply(cfg)
	if cfg.cacheTTL != time.Hour {
		t.Errorf("cacheTTL = %v, want 1h", cfg.cacheTTL)
	}

	logger := slog.Default()
	WithLogger(logger).apply(cfg)
	if cfg.logger != logger {
		t.Error("expected logger to be set")
	}

	reg := prometheus.NewRegistry()
	WithPrometheus(reg).apply(cfg)
	if cfg.metricsReg != reg {
		t.Error("expected metricsReg to be set")
	}
}

func TestClient_Close_NoStore(t *testing.T) {
	c := &Client{}
	c.Close() // must not panic
}

func TestClient_ScrabbleScore(t *testing.T) {
	f := &mockFetcher{payloads: map[domain.FetchKind]string{domain.FetchScrabbleScore: `{"value": 9}`}}
	score, err := newTestClient(f).ScrabbleScore(context.Background(), "color")
	if err != nil {
		t.Fatalf("ScrabbleScore: %v", err)
	}
	if score != 9 {
		t.Errorf("score = %d, want 9", score)
	}
	if f.got.APIKey != "k" || f.got.Results != "10" {
		t.Errorf("unexpected settings: %+v", f.got)
	}
}

func TestClient_Syllables(t *testing.T) {
	f := &mockFetcher{payloads: map[domain.FetchKind]string{
		domain.FetchHyphenation: `[{"text":"nik","seq":2},{"text":"word","seq":0},{"text":"-","seq":1}]`,
	}}
	got, err := newTestClient(f).Syllables(context.Background(), "wordnik")
	if err != nil {
		t.Fatalf("Syllables: %v", err)
	}
	if strings.Join(got, "-") != "word--nik" {
		t.Errorf("fragments = %v", got)
	}
}

func TestClient_Related(t *testing.T) {
	f := &mockFetcher{payloads: map[domain.FetchKind]string{
		domain.FetchRelatedWords: `[{"relationshipType":"synonym","words":["glad","joyful"]}]`,
	}}
	rels, err := newTestClient(f).Related(context.Background(), "happy")
	if err != nil {
		t.Fatalf("Related: %v", err)
	}
	if len(rels) != 1 || rels[0].Type != "synonym" || len(rels[0].Words) != 2 {
		t.Errorf("unexpected relationships: %+v", rels)
	}
}

func TestClient_Definitions(t *testing.T) {
	f := &mockFetcher{payloads: map[domain.FetchKind]string{
		domain.FetchDefinitions: `[{"word":"color","partOfSpeech":"noun","attributionText":"from GNU",
			"text":"A <i>hue</i>.","wordnikUrl":"https://wordnik.com/words/color"}]`,
	}}
	defs, err := newTestClient(f).Definitions(context.Background(), "color")
	if err != nil {
		t.Fatalf("Definitions: %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(defs))
	}
	if defs[0].Text != "A hue." || defs[0].PartOfSpeech != "noun" || defs[0].AttributionText != "from GNU" {
		t.Errorf("unexpected definition: %+v", defs[0])
	}
}

func TestClient_WordNotFound(t *testing.T) {
	_, err := newTestClient(&mockFetcher{}).Definitions(context.Background(), "qwzx")
	if !errors.Is(err, ErrWordNotFound) {
		t.Errorf("expected ErrWordNotFound, got %v", err)
	}
}

func TestClient_InvalidCredentials(t *testing.T) {
	f := &mockFetcher{err: domain.ErrInvalidCredentials}
	_, err := newTestClient(f).Urban(context.Background(), "yeet")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestClient_Query(t *testing.T) {
	f := &mockFetcher{payloads: map[domain.FetchKind]string{
		domain.FetchRelatedWords: `[{"relationshipType":"synonym","words":["glad","joyful"]}]`,
	}}
	items, err := newTestClient(f, WithKeyword("wd")).Query(context.Background(), "happy!rel-synonym")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %+v", items)
	}
	if items[0].Action == nil || items[0].Action.Method != "rewrite_query" || items[0].Action.Parameters[0] != "wd glad" {
		t.Errorf("unexpected first item: %+v", items[0])
	}
}

func TestClient_QueryCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &mockFetcher{err: context.Canceled}
	_, err := newTestClient(f).Query(ctx, "color")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNew_AgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if strings.HasSuffix(r.URL.Path, "/scrabbleScore") {
			_, _ = w.Write([]byte(`{"value": 9}`))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c, err := New(context.Background(), WithAPIKey("secret"), WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	score, err := c.ScrabbleScore(context.Background(), "color")
	if err != nil || score != 9 {
		t.Errorf("ScrabbleScore = (%d, %v), want (9, nil)", score, err)
	}

	health := c.Health(context.Background())
	if health.Status != "ok" || health.Checks["dictionary"] != "ok" {
		t.Errorf("unexpected health: %+v", health)
	}
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", "word", time.Now(), nil)
	obs.observe("test", "word", time.Now(), errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("definitions", "color", time.Now().Add(-10*time.Millisecond), nil)
	obs.observe("definitions", "qwzx", time.Now(), domain.ErrWordNotFound)
	obs.observe("definitions", "color", time.Now(), errors.New("fail"))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "wordex_sdk_operations_total" {
			found = true
			if len(f.GetMetric()) != 3 {
				t.Errorf("expected 3 metric samples (ok, not_found, error), got %d", len(f.GetMetric()))
			}
		}
	}
	if !found {
		t.Error("wordex_sdk_operations_total not found")
	}
}

func TestObserver_ReusesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("first newObserver: %v", err)
	}
	if _, err := newObserver(nil, reg); err != nil {
		t.Fatalf("second newObserver: %v", err)
	}
}

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{domain.ErrWordNotFound, "not_found"},
		{domain.ErrRemote, "error"},
	}
	for _, tc := range tests {
		if got := statusOf(tc.err); got != tc.want {
			t.Errorf("statusOf(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
