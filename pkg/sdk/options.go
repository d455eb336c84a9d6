package wordex

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	apiKey       string
	results      string
	useCanonical bool
	wordlist     string
	keyword      string

	baseURL      string
	urbanBaseURL string
	timeout      time.Duration
	httpClient   *http.Client

	redisAddrs    []string
	redisPassword string
	cacheTTL      time.Duration

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithAPIKey sets the Wordnik API key.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = key
	})
}

// WithResults caps the number of definitions and related words. Default: 10.
func WithResults(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.results = strconv.Itoa(n)
	})
}

// WithCanonical looks up the canonical form of words ("cats" → "cat").
func WithCanonical() Option {
	return optionFunc(func(c *clientConfig) {
		c.useCanonical = true
	})
}

// WithWordlist enables "did you mean" suggestions from the newline-separated
// word list at path. A missing file is downloaded on first use.
func WithWordlist(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.wordlist = path
	})
}

// WithKeyword sets the launcher action keyword used in rewritten queries. Default: "def".
func WithKeyword(keyword string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyword = keyword
	})
}

// WithBaseURL overrides the Wordnik API base URL.
func WithBaseURL(u string) Option {
	return optionFunc(func(c *clientConfig) {
		c.baseURL = u
	})
}

// WithUrbanBaseURL overrides the Urban Dictionary API base URL.
func WithUrbanBaseURL(u string) Option {
	return optionFunc(func(c *clientConfig) {
		c.urbanBaseURL = u
	})
}

// WithTimeout sets the per-request timeout for dictionary calls. Default: 10s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithHTTPClient sets the HTTP client for dictionary calls. It takes precedence over WithTimeout.
func WithHTTPClient(hc *http.Client) Option {
	return optionFunc(func(c *clientConfig) {
		c.httpClient = hc
	})
}

// WithRedis shares fetched payloads through a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.redisAddrs = []string{addr}
		c.redisPassword = password
	})
}

// WithCacheTTL sets how long payloads live in the shared store. Default: 24h.
func WithCacheTTL(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheTTL = d
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
