package wordnik

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/wordex/internal/domain"
	"github.com/kailas-cloud/wordex/internal/metrics"
)

// Default upstream locations.
const (
	DefaultBaseURL      = "https://api.wordnik.com/v4"
	DefaultUrbanBaseURL = "https://api.urbandictionary.com/v0"
)

const (
	hyphenationLimit = "50"
	healthWord       = "wordnik"
	maxBodyBytes     = 4 << 20
)

// Client fetches raw dictionary payloads from Wordnik and Urban Dictionary.
type Client struct {
	http         *http.Client
	baseURL      string
	urbanBaseURL string
	healthKey    string
	logger       *zap.Logger
}

// Config holds the remote dictionary settings.
type Config struct {
	BaseURL      string
	UrbanBaseURL string
	Timeout      time.Duration
	// HealthAPIKey is used by HealthCheck, which runs outside any invocation.
	HealthAPIKey string
	HTTPClient   *http.Client
	Logger       *zap.Logger
}

// NewClient creates a dictionary client.
func NewClient(cfg *Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	urbanBaseURL := cfg.UrbanBaseURL
	if urbanBaseURL == "" {
		urbanBaseURL = DefaultUrbanBaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:         httpClient,
		baseURL:      baseURL,
		urbanBaseURL: urbanBaseURL,
		healthKey:    cfg.HealthAPIKey,
		logger:       logger,
	}
}

// Fetch implements domain.Fetcher. The payload is returned undecoded.
func (c *Client) Fetch(ctx context.Context, kind domain.FetchKind, word string, settings domain.Settings) ([]byte, error) {
	endpoint, err := c.endpoint(kind, word, settings)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	status, body, err := c.get(ctx, endpoint)
	duration := time.Since(start)

	if err != nil {
		metrics.FetchRequestsTotal.WithLabelValues(string(kind), "error").Inc()
		c.logger.Debug("dictionary request failed",
			zap.String("kind", string(kind)), zap.String("word", word), zap.Error(err))
		return nil, &domain.RemoteError{Kind: kind, Err: err}
	}
	metrics.FetchRequestDuration.WithLabelValues(string(kind)).Observe(duration.Seconds())

	c.logger.Debug("dictionary response",
		zap.String("kind", string(kind)),
		zap.String("word", word),
		zap.Int("status", status),
		zap.Duration("duration", duration),
	)

	switch {
	case status == http.StatusUnauthorized:
		metrics.FetchRequestsTotal.WithLabelValues(string(kind), "unauthorized").Inc()
		return nil, fmt.Errorf("%s %q: %w", kind, word, domain.ErrInvalidCredentials)
	case status == http.StatusNotFound && kind == domain.FetchScrabbleScore:
		// Wordnik answers 404 for words with no score.
		metrics.FetchRequestsTotal.WithLabelValues(string(kind), "not_found").Inc()
		return []byte("{}"), nil
	case status == http.StatusNotFound:
		metrics.FetchRequestsTotal.WithLabelValues(string(kind), "not_found").Inc()
		return nil, fmt.Errorf("%s %q: %w", kind, word, domain.ErrWordNotFound)
	case status < 200 || status > 299:
		metrics.FetchRequestsTotal.WithLabelValues(string(kind), "error").Inc()
		return nil, domain.NewRemoteError(kind, status)
	}

	metrics.FetchRequestsTotal.WithLabelValues(string(kind), "success").Inc()
	if kind == domain.FetchUrban {
		return unwrapUrban(body)
	}
	return body, nil
}

// HealthCheck verifies upstream availability with a cheap scrabble score lookup.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.Fetch(ctx, domain.FetchScrabbleScore, healthWord, domain.Settings{APIKey: c.healthKey})
	if err != nil {
		return fmt.Errorf("scrabble score: %w", err)
	}
	return nil
}

func (c *Client) endpoint(kind domain.FetchKind, word string, settings domain.Settings) (string, error) {
	params := url.Values{}

	switch kind {
	case domain.FetchUrban:
		params.Set("term", word)
		return c.urbanBaseURL + "/define?" + params.Encode(), nil
	case domain.FetchDefinitions, domain.FetchRelatedWords:
		limit, err := settings.Limit()
		if err != nil {
			return "", fmt.Errorf("%s: %w", kind, err)
		}
		params.Set("limit", strconv.Itoa(limit))
		params.Set("useCanonical", strconv.FormatBool(settings.UseCanonical))
	case domain.FetchHyphenation:
		params.Set("limit", hyphenationLimit)
		params.Set("useCanonical", strconv.FormatBool(settings.UseCanonical))
	case domain.FetchScrabbleScore:
	default:
		return "", fmt.Errorf("unknown fetch kind %q: %w", kind, domain.ErrInternal)
	}

	params.Set("api_key", settings.APIKey)
	return c.baseURL + "/word.json/" + url.PathEscape(word) + "/" + string(kind) + "?" + params.Encode(), nil
}

func (c *Client) get(ctx context.Context, endpoint string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, redactURL(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, nil
}

// redactURL drops the request URL (which carries the api key) from transport errors.
func redactURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}

func unwrapUrban(body []byte) ([]byte, error) {
	var envelope struct {
		List json.RawMessage `json:"list"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: urban envelope: %w", domain.ErrMalformedPayload, err)
	}
	if len(envelope.List) == 0 || string(envelope.List) == "null" {
		return []byte("[]"), nil
	}
	return envelope.List, nil
}
