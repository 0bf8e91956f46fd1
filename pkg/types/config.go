// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by provider clients.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scholarly/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ProviderConfig holds settings for upstream provider clients.
type ProviderConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the default search page size (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// RequestsPerSecond caps outbound request rate per provider.
	// arXiv's terms of use allow one request every three seconds, so the
	// default is 0.33.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// MaxRetries bounds retry attempts on HTTP 429/503 responses made by
	// the caller-side retry helper (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// CacheConfig holds settings for the alias-aware paper cache.
type CacheConfig struct {
	// Backend selects the storage backend: "sqlite" or "file".
	Backend string `json:"backend" yaml:"backend"`

	// Dir is the directory holding the cache database or blob file.
	Dir string `json:"dir" yaml:"dir"`

	// TTL is how long a cached paper stays fresh (default 24h).
	TTL time.Duration `json:"ttl" yaml:"ttl"`
}

// DownloadConfig holds settings for saving paper PDFs to disk.
type DownloadConfig struct {
	HTTPConfig `yaml:",inline"`

	// Dir is the base directory for downloaded papers. PDFs land in
	// Dir/raw, metadata sidecars in Dir/metadata.
	Dir string `json:"dir" yaml:"dir"`

	// Delay is the pause between consecutive downloads.
	Delay time.Duration `json:"delay" yaml:"delay"`
}

// Config groups all scholarly configuration.
type Config struct {
	Provider ProviderConfig `json:"provider" yaml:"provider"`
	Cache    CacheConfig    `json:"cache" yaml:"cache"`
	Download DownloadConfig `json:"download" yaml:"download"`
}
