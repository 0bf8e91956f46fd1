// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache stores canonical paper records under every alias a caller
// might later use to look them up, with a shared time-to-live per record.
package cache

import (
	"strings"
	"time"

	"github.com/pdiddy/scholarly/pkg/types"
)

// DefaultTTL applies when the configured TTL is zero or negative.
const DefaultTTL = 24 * time.Hour

// Storage persists cache entries by key. Implementations: SQLiteStore,
// FileStore, and the in-memory MemoryStore.
type Storage interface {
	// Get returns the stored payload, or ok=false when absent.
	Get(key string) (entry Entry, ok bool, err error)

	// Put stores the payload under key, replacing any existing entry.
	Put(key string, entry Entry) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases any resources held by the store.
	Close() error
}

// Lister is implemented by storage backends that can enumerate their
// entries, keyed by alias. Used by cache export.
type Lister interface {
	List() (map[string]Entry, error)
}

// Clearer is implemented by storage backends that can drop all entries.
type Clearer interface {
	Clear() error
}

// Entry is one stored record with its absolute expiry. All aliases of a
// record written together share the same expiry.
type Entry struct {
	Paper     types.Paper `json:"paper"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// Cache is the alias-aware TTL cache over a Storage backend. Storage
// failures degrade to cache misses: the cache is an accelerator, never a
// source of errors for callers.
type Cache struct {
	store Storage
	ttl   time.Duration

	// now is the clock, substitutable in tests.
	now func() time.Time
}

// New creates a cache over the given backend.
func New(store Storage, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{store: store, ttl: ttl, now: time.Now}
}

// aliases returns every key a record is stored under: the canonical
// prefixed id, the raw id, and the provider-qualified raw id. Duplicate
// and empty keys are dropped.
func aliases(paper *types.Paper) []string {
	candidates := []string{paper.ID, paper.RawID}
	if paper.ProviderID != "" && paper.RawID != "" {
		candidates = append(candidates, paper.ProviderID+":"+paper.RawID)
	}

	seen := make(map[string]bool, len(candidates))
	keys := make([]string, 0, len(candidates))
	for _, k := range candidates {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys
}

// variants returns the lookup keys tried for a requested key: the key
// itself, then the arXiv-prefix toggle (a bare id gains the "arxiv:"
// prefix; a prefixed id loses it), so either form finds a record cached
// under the other.
func variants(key string) []string {
	out := []string{key}
	if strings.HasPrefix(key, "arxiv:") {
		out = append(out, strings.TrimPrefix(key, "arxiv:"))
	} else {
		out = append(out, "arxiv:"+key)
	}
	return out
}

// Put stores the record under all of its aliases with one shared expiry.
// The first storage error aborts the remaining aliases.
func (c *Cache) Put(paper *types.Paper) error {
	entry := Entry{
		Paper:     *paper,
		ExpiresAt: c.now().Add(c.ttl),
	}
	for _, key := range aliases(paper) {
		if err := c.store.Put(key, entry); err != nil {
			return err
		}
	}
	return nil
}

// PutAll stores a batch of records, e.g. a page of search results. A
// failing record does not stop the rest; the first error is returned
// after the batch completes.
func (c *Cache) PutAll(papers []types.Paper) error {
	var firstErr error
	for i := range papers {
		if err := c.Put(&papers[i]); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Get looks up a record by any alias, trying the key and its arXiv-prefix
// toggle. Expired entries are misses and are deleted opportunistically.
// Storage errors are swallowed and reported as misses.
func (c *Cache) Get(key string) (*types.Paper, bool) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false
	}

	for _, k := range variants(key) {
		entry, ok, err := c.store.Get(k)
		if err != nil || !ok {
			continue
		}
		if c.now().After(entry.ExpiresAt) {
			c.store.Delete(k)
			continue
		}
		paper := entry.Paper
		return &paper, true
	}
	return nil, false
}

// Delete removes the record stored under any alias of the given paper.
func (c *Cache) Delete(paper *types.Paper) error {
	for _, key := range aliases(paper) {
		if err := c.store.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// Store exposes the underlying storage for maintenance operations
// (listing, sweeping, clearing).
func (c *Cache) Store() Storage { return c.store }

// Close releases the underlying storage.
func (c *Cache) Close() error {
	return c.store.Close()
}
