// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/scholarly/internal/cache"
	"github.com/pdiddy/scholarly/internal/httputil"
	"github.com/pdiddy/scholarly/internal/identifier"
	"github.com/pdiddy/scholarly/internal/papers"
	"github.com/pdiddy/scholarly/internal/provider"
	"github.com/pdiddy/scholarly/internal/secrets"
	"github.com/pdiddy/scholarly/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "scholarly/0.1"
)

// loadConfig assembles the runtime configuration from viper (config file
// plus SCHOLARLY_ environment overrides), with built-in defaults.
func loadConfig() types.Config {
	cfg := types.Config{
		Provider: types.ProviderConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   defaultTimeout,
				UserAgent: defaultUserAgent,
			},
			MaxResults: types.DefaultMaxResults,
		},
		Cache: types.CacheConfig{
			Backend: "sqlite",
			Dir:     defaultCacheDir(),
			TTL:     cache.DefaultTTL,
		},
	}

	if v := viper.GetDuration("provider.timeout"); v > 0 {
		cfg.Provider.Timeout = v
	}
	if v := viper.GetString("provider.user_agent"); v != "" {
		cfg.Provider.UserAgent = v
	}
	if v := viper.GetInt("provider.max_results"); v > 0 {
		cfg.Provider.MaxResults = v
	}
	if v := viper.GetFloat64("provider.requests_per_second"); v > 0 {
		cfg.Provider.RequestsPerSecond = v
	}
	if v := viper.GetInt("provider.max_retries"); v > 0 {
		cfg.Provider.MaxRetries = v
	}
	if v := viper.GetString("cache.backend"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := viper.GetString("cache.dir"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := viper.GetDuration("cache.ttl"); v > 0 {
		cfg.Cache.TTL = v
	}

	// Upstream operators ask for a contact address in the User-Agent.
	if email := secrets.Get(loadedSecrets, "contact-email"); email != "" {
		cfg.Provider.UserAgent += " (" + email + ")"
	}

	return cfg
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".scholarly-cache"
	}
	return filepath.Join(home, ".cache", "scholarly")
}

// openStorage creates the cache storage backend named by the config.
func openStorage(cfg types.CacheConfig) (cache.Storage, error) {
	switch cfg.Backend {
	case "sqlite":
		return cache.NewSQLiteStore(cfg.Dir)
	case "file":
		return cache.NewFileStore(cfg.Dir)
	case "memory":
		return cache.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q (use sqlite, file, or memory)", cfg.Backend)
	}
}

// newRegistry wires the providers behind a retrying HTTP client, with
// arXiv as both a registered provider and the fallback for unrecognized
// identifiers.
func newRegistry(cfg types.Config) *provider.Registry {
	client := httputil.NewRetryClient(
		&http.Client{Timeout: cfg.Provider.Timeout},
		cfg.Provider.MaxRetries,
	)

	arxiv := provider.NewArxiv(client, cfg.Provider)
	biorxiv := provider.NewBiorxiv(client, "biorxiv", cfg.Provider)
	medrxiv := provider.NewBiorxiv(client, "medrxiv", cfg.Provider)

	registry := provider.NewRegistry(arxiv)
	registry.Register(identifier.SchemeArxiv, arxiv)
	registry.Register(identifier.SchemeBioRxiv, biorxiv)
	registry.Register(identifier.SchemeMedRxiv, medrxiv)
	return registry
}

// newService wires the full stack: provider registry plus the alias-aware
// cache over the configured storage backend.
func newService(cfg types.Config) (*papers.Service, *cache.Cache, error) {
	store, err := openStorage(cfg.Cache)
	if err != nil {
		return nil, nil, err
	}
	c := cache.New(store, cfg.Cache.TTL)
	return papers.NewService(newRegistry(cfg), c), c, nil
}
