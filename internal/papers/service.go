// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package papers is the inbound facade: resolve free-form reference text
// to a normalized identifier, fetch single papers cache-first, and run
// provider searches.
package papers

import (
	"context"
	"fmt"

	"github.com/pdiddy/scholarly/internal/cache"
	"github.com/pdiddy/scholarly/internal/identifier"
	"github.com/pdiddy/scholarly/internal/provider"
	"github.com/pdiddy/scholarly/pkg/types"
)

// Service wires the identifier recognizer, provider registry, and cache
// behind the three inbound operations.
type Service struct {
	registry *provider.Registry
	cache    *cache.Cache
}

// NewService creates the facade. The cache may be nil, in which case
// every lookup goes to the provider.
func NewService(registry *provider.Registry, c *cache.Cache) *Service {
	return &Service{registry: registry, cache: c}
}

// ResolveIdentifier recognizes free-form reference text. The boolean is
// false when no scheme matches; unrecognized text is not an error.
func (s *Service) ResolveIdentifier(text string) (identifier.Normalized, bool) {
	return identifier.Recognize(text)
}

// GetPaper returns the paper for any identifier representation: cache
// first, then one provider fetch on a miss, populating the cache on the
// way out. A recognized id routes to its scheme's provider; unrecognized
// text goes to the default provider as-is.
func (s *Service) GetPaper(ctx context.Context, id string) (*types.Paper, error) {
	rawID := id
	cacheKey := id
	if n, ok := identifier.Recognize(id); ok {
		rawID = n.Value
		cacheKey = n.Scheme.String() + ":" + n.Value
	}

	if s.cache != nil {
		if paper, ok := s.cache.Get(cacheKey); ok {
			return paper, nil
		}
	}

	p := s.registry.ForIdentifier(id)
	paper, err := p.Fetch(ctx, rawID)
	if err != nil {
		return nil, fmt.Errorf("fetching %q from %s: %w", id, p.ID(), err)
	}

	if s.cache != nil {
		s.cache.Put(paper)
	}
	return paper, nil
}

// SearchPapers runs a search against the named provider, or the default
// provider when providerID is empty. A provider failure yields an empty
// result rather than propagating: downstream consumers render whatever
// came back, and the error travels alongside for out-of-band reporting.
// Returned papers are cached as a side effect.
func (s *Service) SearchPapers(ctx context.Context, q types.SearchQuery, providerID string) (types.SearchResult, error) {
	p := s.registry.Default()
	if providerID != "" {
		if byID := s.registry.ByID(providerID); byID != nil {
			p = byID
		} else {
			return types.SearchResult{ProviderID: providerID},
				fmt.Errorf("unknown provider %q", providerID)
		}
	}

	result, err := p.Search(ctx, q)
	if err != nil {
		return types.SearchResult{ProviderID: p.ID()},
			fmt.Errorf("searching %s: %w", p.ID(), err)
	}

	if s.cache != nil {
		s.cache.PutAll(result.Papers)
	}
	return result, nil
}
