package wordlist

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pmezard/go-difflib/difflib"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/kailas-cloud/wordex/internal/domain"
)

// DefaultSourceURL is where a missing word list is downloaded from.
const DefaultSourceURL = "https://raw.githubusercontent.com/dwyl/english-words/refs/heads/master/words_alpha.txt"

// DefaultCutoff is the minimum similarity ratio for a suggestion.
const DefaultCutoff = 0.6

const maxDownloadBytes = 16 << 20

var errTooLarge = fmt.Errorf("word list exceeds %d bytes", maxDownloadBytes)

// Config holds the word list settings.
type Config struct {
	SourceURL  string
	Cutoff     float64
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Repository loads word lists from disk, downloading them on first use, and
// keeps them in memory per path.
type Repository struct {
	http      *http.Client
	sourceURL string
	cutoff    float64
	logger    *zap.Logger

	group singleflight.Group

	mu    sync.RWMutex
	lists map[string][]string
}

// New creates a word list repository.
func New(cfg *Config) *Repository {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	sourceURL := cfg.SourceURL
	if sourceURL == "" {
		sourceURL = DefaultSourceURL
	}
	cutoff := cfg.Cutoff
	if cutoff <= 0 {
		cutoff = DefaultCutoff
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{
		http:      httpClient,
		sourceURL: sourceURL,
		cutoff:    cutoff,
		logger:    logger,
		lists:     make(map[string][]string),
	}
}

// Load returns the words at path, downloading the list there if the file does not exist.
func (r *Repository) Load(ctx context.Context, path string) ([]string, error) {
	r.mu.RLock()
	words, ok := r.lists[path]
	r.mu.RUnlock()
	if ok {
		return words, nil
	}

	ch := r.group.DoChan(path, func() (any, error) {
		// Waiters must not inherit the leader's cancellation.
		words, err := r.read(context.WithoutCancel(ctx), path)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.lists[path] = words
		r.mu.Unlock()
		return words, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load word list %s: %w", path, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]string), nil
	}
}

// Suggest returns up to n words from the list at path that are close to word,
// best match first. Ties are broken alphabetically.
func (r *Repository) Suggest(ctx context.Context, path, word string, n int) ([]domain.Suggestion, error) {
	if n <= 0 {
		return nil, nil
	}
	words, err := r.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return closeMatches(strings.ToLower(word), words, n, r.cutoff), nil
}

func (r *Repository) read(ctx context.Context, path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.Info("Word list not found, downloading", zap.String("path", path), zap.String("url", r.sourceURL))
		data, err = r.download(ctx, path)
	}
	if err != nil {
		return nil, fmt.Errorf("load word list %s: %w", path, err)
	}
	return parse(data), nil
}

func (r *Repository) download(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.sourceURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: unexpected status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("download: read body: %w", err)
	}
	if len(data) > maxDownloadBytes {
		return nil, fmt.Errorf("download: %w", errTooLarge)
	}

	if err := writeFile(path, data); err != nil {
		// The list is still usable for this process.
		r.logger.Warn("Failed to save word list", zap.String("path", path), zap.Error(err))
	}
	return data, nil
}

func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".wordlist-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func parse(data []byte) []string {
	var words []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		w := strings.ToLower(strings.TrimSpace(sc.Text()))
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// closeMatches ranks candidates by Ratcliff/Obershelp similarity to word.
func closeMatches(word string, candidates []string, n int, cutoff float64) []domain.Suggestion {
	target := runes(word)
	if len(target) == 0 {
		return nil
	}
	m := difflib.NewMatcher(nil, target)

	var out []domain.Suggestion
	for _, c := range candidates {
		// Upper bound of the ratio from lengths alone.
		lc := len([]rune(c))
		if bound := 2 * float64(min(lc, len(target))) / float64(lc+len(target)); bound < cutoff {
			continue
		}
		m.SetSeq1(runes(c))
		if m.RealQuickRatio() < cutoff || m.QuickRatio() < cutoff {
			continue
		}
		if ratio := m.Ratio(); ratio >= cutoff {
			out = append(out, domain.Suggestion{Word: c, Ratio: ratio})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Ratio != out[j].Ratio {
			return out[i].Ratio > out[j].Ratio
		}
		return out[i].Word < out[j].Word
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
