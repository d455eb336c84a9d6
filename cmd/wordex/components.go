package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/wordex/internal/config"
	dbRedis "github.com/kailas-cloud/wordex/internal/db/redis"
	"github.com/kailas-cloud/wordex/internal/metrics"
	"github.com/kailas-cloud/wordex/internal/repository/fetchcache"
	"github.com/kailas-cloud/wordex/internal/repository/wordlist"
	"github.com/kailas-cloud/wordex/internal/transport/wordnik"
	healthuc "github.com/kailas-cloud/wordex/internal/usecase/health"
	lookupuc "github.com/kailas-cloud/wordex/internal/usecase/lookup"
)

// components is the wired lookup stack shared by every command.
type components struct {
	lookup *lookupuc.Service
	health *healthuc.Service
	close  func()
}

// buildComponents assembles the fetcher chain: Wordnik client -> fetch cache (-> Redis) -> lookup.
func buildComponents(ctx context.Context, cfg config.Config, logger *zap.Logger) (*components, error) {
	client := wordnik.NewClient(&wordnik.Config{
		BaseURL:      cfg.Dictionary.BaseURL,
		UrbanBaseURL: cfg.Dictionary.UrbanBaseURL,
		Timeout:      time.Duration(cfg.Dictionary.TimeoutSec) * time.Second,
		HealthAPIKey: cfg.Dictionary.HealthAPIKey,
		Logger:       logger,
	})

	closeFn := func() {}
	var cacheOpts []fetchcache.Option
	// Pass nil interface (not typed nil pointer) when no shared store is configured.
	var pinger healthuc.StorePinger
	if len(cfg.Cache.Redis.Addrs) > 0 {
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Redis.Addrs,
			Username: cfg.Cache.Redis.Username,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("create cache store: %w", err)
		}
		readiness := time.Duration(cfg.Cache.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(ctx, readiness); err != nil {
			store.Close()
			return nil, fmt.Errorf("cache store not ready: %w", err)
		}
		logger.Info("Connected to cache store", zap.Strings("addrs", cfg.Cache.Redis.Addrs))

		ttl := time.Duration(cfg.Cache.TTLSec) * time.Second
		cacheOpts = append(cacheOpts, fetchcache.WithStore(store, cfg.Cache.KeyPrefix, ttl))
		pinger = store
		closeFn = store.Close
	}

	cache := fetchcache.New(client, metrics.FetchCacheTotal, logger, cacheOpts...)

	words := wordlist.New(&wordlist.Config{
		SourceURL:  cfg.Wordlist.SourceURL,
		Cutoff:     cfg.Wordlist.Cutoff,
		HTTPClient: &http.Client{Timeout: time.Duration(cfg.Wordlist.TimeoutSec) * time.Second},
		Logger:     logger,
	})

	lookup := lookupuc.New(cache, cache, words, &lookupuc.Config{
		Keyword:        cfg.Lookup.Keyword,
		Defaults:       cfg.Settings,
		Suggestions:    cfg.Lookup.Suggestions,
		PrefetchOnMenu: cfg.Lookup.PrefetchOnMenu,
		LogFile:        cfg.Logging.DiagnosticFile,
	}, logger)

	var dictionary healthuc.DictionaryChecker
	if cfg.Dictionary.HealthAPIKey != "" {
		dictionary = client
	}

	return &components{
		lookup: lookup,
		health: healthuc.New(pinger, dictionary),
		close:  closeFn,
	}, nil
}
