package chi

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/wordex/internal/domain"
	"github.com/kailas-cloud/wordex/internal/domain/option"
	healthuc "github.com/kailas-cloud/wordex/internal/usecase/health"
	lookupuc "github.com/kailas-cloud/wordex/internal/usecase/lookup"
)

type stubFetcher struct {
	payloads map[domain.FetchKind]string
	got      domain.Settings
}

type stubSuggester struct{ paths []string }

func (s *stubSuggester) Suggest(_ context.Context, path, _ string, _ int) ([]domain.Suggestion, error) {
	s.paths = append(s.paths, path)
	return []domain.Suggestion{{Word: "from " + path, Ratio: 0.9}}, nil
}

func (f *stubFetcher) Fetch(_ context.Context, kind domain.FetchKind, _ string, settings domain.Settings) ([]byte, error) {
	f.got = settings
	p, ok := f.payloads[kind]
	if !ok {
		return nil, domain.ErrWordNotFound
	}
	return []byte(p), nil
}

type stubDictionary struct{ err error }

func (d stubDictionary) HealthCheck(context.Context) error { return d.err }

func newTestRouter(f *stubFetcher, dict healthuc.DictionaryChecker) http.Handler {
	return newTestRouterWith(f, nil, domain.Settings{APIKey: "default-key", Results: "10"}, dict)
}

func newTestRouterWith(
	f *stubFetcher, sg lookupuc.Suggester, defaults domain.Settings, dict healthuc.DictionaryChecker,
) http.Handler {
	lookup := lookupuc.New(f, nil, sg, &lookupuc.Config{Defaults: defaults}, nil)
	srv := NewServer(lookup, healthuc.New(nil, dict), nil)

	r := chi.NewRouter()
	srv.Routes(r)
	return r
}

func decodeResult(t *testing.T, rr *httptest.ResponseRecorder) []option.Wire {
	t.Helper()
	var resp QueryResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.Result
}

func TestQuery_Post(t *testing.T) {
	f := &stubFetcher{payloads: map[domain.FetchKind]string{domain.FetchScrabbleScore: `{"value": 9}`}}
	h := newTestRouter(f, nil)

	body := `{"query":"color!scrabble","settings":{"results":"5"}}`
	req := httptest.NewRequest("POST", "/v1/query", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want 200: %s", rr.Code, rr.Body)
	}
	result := decodeResult(t, rr)
	if len(result) != 1 || result[0].Title != "Scrabble Score: 9" {
		t.Errorf("unexpected result: %+v", result)
	}
	if f.got.APIKey != "default-key" || f.got.Results != "5" {
		t.Errorf("settings not merged over defaults: %+v", f.got)
	}
}

func TestQuery_PostIgnoresClientWordlist(t *testing.T) {
	sg := &stubSuggester{}
	h := newTestRouterWith(&stubFetcher{}, sg,
		domain.Settings{APIKey: "k", Results: "10", WordlistLoc: "/srv/words.txt"}, nil)

	body := `{"query":"dbpassword","settings":{"wordlist_loc":"/etc/passwd"}}`
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/v1/query", strings.NewReader(body)))

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want 200: %s", rr.Code, rr.Body)
	}
	if len(sg.paths) != 1 || sg.paths[0] != "/srv/words.txt" {
		t.Fatalf("suggestions read from %v, want only the configured list", sg.paths)
	}
	for _, w := range decodeResult(t, rr) {
		if strings.Contains(w.Title, "/etc/passwd") {
			t.Errorf("client word list leaked into result: %+v", w)
		}
	}
}

func TestQuery_PostExplicitFalseCanonical(t *testing.T) {
	f := &stubFetcher{payloads: map[domain.FetchKind]string{domain.FetchScrabbleScore: `{"value": 1}`}}
	h := newTestRouterWith(f, nil, domain.Settings{APIKey: "k", Results: "10", UseCanonical: true}, nil)

	body := `{"query":"a!scrabble","settings":{"use_canonical":false}}`
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("POST", "/v1/query", strings.NewReader(body)))

	if f.got.UseCanonical {
		t.Error("use_canonical=false from the client was ignored")
	}
}

func TestQuery_PostBadBody(t *testing.T) {
	h := newTestRouter(&stubFetcher{}, nil)

	req := httptest.NewRequest("POST", "/v1/query", strings.NewReader(`{"query":`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rr.Code)
	}
	var errResp ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if errResp.Code != CodeBadRequest {
		t.Errorf("error code: got %s, want %s", errResp.Code, CodeBadRequest)
	}
}

func TestQuery_GetFallsBackForUnknownWord(t *testing.T) {
	h := newTestRouter(&stubFetcher{}, nil)

	req := httptest.NewRequest("GET", "/v1/query?q=qwzx", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rr.Code)
	}
	result := decodeResult(t, rr)
	if len(result) != 1 || result[0].Title != "Word not found" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestQuery_GetMissingParameter(t *testing.T) {
	h := newTestRouter(&stubFetcher{}, nil)

	req := httptest.NewRequest("GET", "/v1/query", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", rr.Code)
	}
}

func TestQuery_GetKeyword(t *testing.T) {
	h := newTestRouter(&stubFetcher{}, nil)

	req := httptest.NewRequest("GET", "/v1/query?q=word!select-modifier&keyword=wd", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	result := decodeResult(t, rr)
	if len(result) < 2 {
		t.Fatalf("expected menu, got %+v", result)
	}
	action := result[1].Action
	if action == nil || len(action.Parameters) != 1 || !strings.HasPrefix(action.Parameters[0], "wd word!") {
		t.Errorf("keyword not applied: %+v", action)
	}
}

func TestQueryStream_WritesNDJSON(t *testing.T) {
	h := newTestRouter(&stubFetcher{}, nil)

	req := httptest.NewRequest("GET", "/v1/query/stream?q=word!select-modifier", http.NoBody)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if ct := rr.Header().Get("Content-Type"); ct != "application/x-ndjson" {
		t.Errorf("content type: got %q", ct)
	}

	var titles []string
	sc := bufio.NewScanner(rr.Body)
	for sc.Scan() {
		var w option.Wire
		if err := json.Unmarshal(sc.Bytes(), &w); err != nil {
			t.Fatalf("decode line %q: %v", sc.Text(), err)
		}
		titles = append(titles, w.Title)
	}
	if len(titles) == 0 || titles[0] != "Modifier Selection Menu" {
		t.Errorf("unexpected stream: %v", titles)
	}
}

func TestHealthCheck(t *testing.T) {
	tests := []struct {
		name       string
		dict       healthuc.DictionaryChecker
		wantStatus int
		wantBody   string
	}{
		{"healthy", stubDictionary{}, http.StatusOK, "ok"},
		{"dictionary down", stubDictionary{err: errors.New("boom")}, http.StatusServiceUnavailable, "error"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newTestRouter(&stubFetcher{}, tc.dict)

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest("GET", "/health", http.NoBody))

			if rr.Code != tc.wantStatus {
				t.Errorf("got %d, want %d", rr.Code, tc.wantStatus)
			}
			var resp HealthResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != tc.wantBody || resp.Checks["dictionary"] != tc.wantBody {
				t.Errorf("unexpected health: %+v", resp)
			}
		})
	}
}
