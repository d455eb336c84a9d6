package lookup

import (
	"context"
	"errors"
	"iter"
	"slices"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/wordex/internal/domain"
	"github.com/kailas-cloud/wordex/internal/domain/modifier"
	"github.com/kailas-cloud/wordex/internal/domain/option"
	"github.com/kailas-cloud/wordex/internal/domain/query"
	"github.com/kailas-cloud/wordex/internal/logger"
	"github.com/kailas-cloud/wordex/internal/metrics"
)

// warmKinds are the payloads the modifier menu leads to.
var warmKinds = []domain.FetchKind{
	domain.FetchHyphenation,
	domain.FetchRelatedWords,
	domain.FetchScrabbleScore,
	domain.FetchDefinitions,
}

// Config holds lookup settings that do not change per invocation.
type Config struct {
	// Keyword is prefixed to rewritten queries. Defaults to DefaultKeyword.
	Keyword string
	// Defaults are merged under every invocation's settings.
	Defaults domain.Settings
	// Suggestions caps the fallback suggestion list. Defaults to DefaultSuggestions.
	Suggestions int
	// PrefetchOnMenu warms the caches behind the modifier menu.
	PrefetchOnMenu bool
	// LogFile is the diagnostic log offered with internal errors.
	LogFile string
}

// Service turns queries into option lists.
type Service struct {
	fetcher        domain.Fetcher
	cache          CacheResetter
	suggester      Suggester
	keyword        string
	defaults       domain.Settings
	suggestions    int
	prefetchOnMenu bool
	logFile        string
	logger         *zap.Logger

	dispatch      map[modifier.Kind]Handler
	errorHandlers []errorHandler

	mu          sync.Mutex
	fingerprint string
}

// New creates a Service. cache and suggester can be nil.
func New(fetcher domain.Fetcher, cache CacheResetter, suggester Suggester, cfg *Config, logger *zap.Logger) *Service {
	keyword := cfg.Keyword
	if keyword == "" {
		keyword = DefaultKeyword
	}
	suggestions := cfg.Suggestions
	if suggestions <= 0 {
		suggestions = DefaultSuggestions
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		fetcher:        fetcher,
		cache:          cache,
		suggester:      suggester,
		keyword:        keyword,
		defaults:       cfg.Defaults,
		suggestions:    suggestions,
		prefetchOnMenu: cfg.PrefetchOnMenu,
		logFile:        cfg.LogFile,
		logger:         logger,
	}
	s.dispatch = s.handlers()
	s.errorHandlers = s.buildErrorHandlers()
	return s
}

// Query runs an invocation and collects its options.
func (s *Service) Query(ctx context.Context, inv Invocation) []option.Option {
	return slices.Collect(s.Stream(ctx, inv))
}

// Stream runs an invocation. The sequence is never empty: handlers that
// produce nothing are replaced by the fallback and errors are rendered as
// options appended after whatever was already produced.
func (s *Service) Stream(ctx context.Context, inv Invocation) iter.Seq[option.Option] {
	return func(yield func(option.Option) bool) {
		req, ok := s.prepare(ctx, inv)
		if !ok {
			yield(emptyQueryOption())
			return
		}

		kind := req.Modifier.Kind()
		metrics.QueriesTotal.WithLabelValues(string(kind)).Inc()
		logger.FromContextOr(ctx, s.logger).Debug("lookup",
			zap.String("word", req.Word()),
			zap.String("modifier", string(kind)),
		)

		produced := false
		for opt, err := range s.dispatch[kind].Produce(ctx, req) {
			if err != nil {
				for _, o := range s.renderError(ctx, req, err) {
					if !yield(o) {
						return
					}
				}
				return
			}
			produced = true
			if !yield(opt) {
				return
			}
		}
		if produced {
			return
		}
		for _, o := range s.fallback(ctx, req, nil) {
			if !yield(o) {
				return
			}
		}
	}
}

// Warm fetches every payload the modifier menu leads to, concurrently.
func (s *Service) Warm(ctx context.Context, word string, o domain.Overrides) error {
	return s.warm(ctx, word, s.defaults.Merge(o))
}

func (s *Service) warm(ctx context.Context, word string, settings domain.Settings) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, kind := range warmKinds {
		g.Go(func() error {
			_, err := s.fetcher.Fetch(ctx, kind, word, settings)
			if errors.Is(err, domain.ErrWordNotFound) {
				return nil
			}
			return err
		})
	}
	return g.Wait() //nolint:wrapcheck // errors already carry fetch context
}

func (s *Service) warmInBackground(ctx context.Context, req Request) {
	if err := s.warm(context.WithoutCancel(ctx), req.Word(), req.Settings); err != nil {
		logger.FromContextOr(ctx, s.logger).Debug("Prefetch failed", zap.String("word", req.Word()), zap.Error(err))
	}
}

func (s *Service) prepare(ctx context.Context, inv Invocation) (Request, bool) {
	settings := s.defaults.Merge(inv.Settings)
	s.observeSettings(ctx, settings)

	q := query.Parse(inv.Query)
	if q.IsEmpty() {
		return Request{}, false
	}

	keyword := inv.Keyword
	if keyword == "" {
		keyword = s.keyword
	}
	text, hasModifier := q.Modifier()
	return Request{
		Query:    q,
		Modifier: modifier.Resolve(text, hasModifier),
		Keyword:  keyword,
		Settings: settings,
	}, true
}

// observeSettings resets the cache when settings that shape payloads change.
func (s *Service) observeSettings(ctx context.Context, settings domain.Settings) {
	fp := settings.Fingerprint()

	s.mu.Lock()
	changed := s.fingerprint != "" && s.fingerprint != fp
	s.fingerprint = fp
	s.mu.Unlock()

	if changed && s.cache != nil {
		logger.FromContextOr(ctx, s.logger).Info("Dictionary settings changed, resetting cache")
		s.cache.Reset()
	}
}

func emptyQueryOption() option.Option {
	return option.New("Word not found", "Type a word, optionally followed by !modifier (e.g. color!select-modifier)").
		WithIcon(option.IconError)
}
