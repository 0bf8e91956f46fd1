// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider routes identifiers to upstream content providers,
// translates abstract search queries into provider-native syntax, executes
// fetch and search requests, and converts provider wire formats into the
// canonical paper record.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"

	"github.com/pdiddy/scholarly/internal/identifier"
	"github.com/pdiddy/scholarly/pkg/types"
)

// Doer executes one HTTP request. Providers perform exactly one logical
// round trip per call; retry and backoff policy lives in the injected Doer
// (see httputil.RetryClient), not in the provider.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Provider is an upstream content source exposing fetch-by-id and search.
type Provider interface {
	// ID returns the provider identifier (e.g. "arxiv", "biorxiv").
	ID() string

	// Fetch retrieves one paper by its raw (unprefixed) identifier.
	// A well-formed empty response yields ErrNotFound.
	Fetch(ctx context.Context, rawID string) (*types.Paper, error)

	// Search executes one paginated search request.
	Search(ctx context.Context, q types.SearchQuery) (types.SearchResult, error)
}

// ErrNotFound reports a well-formed empty provider response for a
// single-id fetch. It is an absence, not a transport failure.
var ErrNotFound = errors.New("paper not found")

// UnsupportedError reports a recognized scheme with no registered
// provider implementation.
type UnsupportedError struct {
	Scheme identifier.Scheme
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("no provider registered for scheme %q", e.Scheme)
}

// RequestError reports a transport or HTTP failure from an upstream
// provider, carrying the status code and provider id.
type RequestError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: request failed: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s: HTTP %d", e.Provider, e.StatusCode)
}

func (e *RequestError) Unwrap() error { return e.Err }

// ParseError reports a malformed upstream payload.
type ParseError struct {
	Provider string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parsing response: %v", e.Provider, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Registry maps identifier schemes to provider implementations and
// supplies a default provider for unrecognized input.
type Registry struct {
	providers map[identifier.Scheme]Provider
	fallback  Provider
}

// NewRegistry creates a registry whose fallback handles identifiers that
// match no recognized scheme. The fallback is not registered for any
// scheme by itself.
func NewRegistry(fallback Provider) *Registry {
	return &Registry{
		providers: make(map[identifier.Scheme]Provider),
		fallback:  fallback,
	}
}

// Register binds a scheme to a provider, replacing any previous binding.
func (r *Registry) Register(scheme identifier.Scheme, p Provider) {
	r.providers[scheme] = p
}

// Default returns the fallback provider.
func (r *Registry) Default() Provider { return r.fallback }

// ForScheme returns the provider registered for a scheme. A scheme without
// a registered implementation yields *UnsupportedError; callers may choose
// to fall back to Default, which is a documented compatibility behavior
// rather than a silent default.
func (r *Registry) ForScheme(scheme identifier.Scheme) (Provider, error) {
	if p, ok := r.providers[scheme]; ok {
		return p, nil
	}
	return nil, &UnsupportedError{Scheme: scheme}
}

// ForIdentifier resolves raw reference text to a provider. Unrecognized
// text and recognized-but-unimplemented schemes both resolve to the
// fallback: an unrecognized-but-plausible identifier should still attempt
// resolution against the most populous source.
func (r *Registry) ForIdentifier(text string) Provider {
	n, ok := identifier.Recognize(text)
	if !ok {
		return r.fallback
	}
	if p, ok := r.providers[n.Scheme]; ok {
		return p
	}
	return r.fallback
}

// Providers lists every registered provider plus the fallback, sorted by
// id with one entry per provider.
func (r *Registry) Providers() []Provider {
	seen := map[string]Provider{r.fallback.ID(): r.fallback}
	for _, p := range r.providers {
		seen[p.ID()] = p
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]Provider, 0, len(ids))
	for _, id := range ids {
		out = append(out, seen[id])
	}
	return out
}

// ByID returns the provider with the given id, or nil.
func (r *Registry) ByID(id string) Provider {
	for _, p := range r.Providers() {
		if p.ID() == id {
			return p
		}
	}
	return nil
}
