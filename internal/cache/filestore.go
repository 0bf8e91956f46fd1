// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const cacheFile = "scholarly-papers-cache.json"

// FileStore persists the whole cache as one JSON document on disk, loaded
// at open and rewritten on every mutation. Suited to small personal
// caches where a database is overkill; SQLiteStore is the default.
type FileStore struct {
	path    string
	entries map[string]Entry
}

// NewFileStore opens or creates the cache file at dir/scholarly-papers-cache.json.
// A corrupt or unreadable file starts the cache empty rather than failing.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	s := &FileStore{
		path:    filepath.Join(dir, cacheFile),
		entries: make(map[string]Entry),
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache file: %w", err)
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		// Corrupt cache: discard it.
		s.entries = make(map[string]Entry)
	}
	return s, nil
}

// Get implements Storage.
func (s *FileStore) Get(key string) (Entry, bool, error) {
	entry, ok := s.entries[key]
	return entry, ok, nil
}

// Put implements Storage.
func (s *FileStore) Put(key string, entry Entry) error {
	s.entries[key] = entry
	return s.flush()
}

// Delete implements Storage.
func (s *FileStore) Delete(key string) error {
	if _, ok := s.entries[key]; !ok {
		return nil
	}
	delete(s.entries, key)
	return s.flush()
}

// List implements Lister.
func (s *FileStore) List() (map[string]Entry, error) {
	out := make(map[string]Entry, len(s.entries))
	for k, v := range s.entries {
		out[k] = v
	}
	return out, nil
}

// Clear implements Clearer.
func (s *FileStore) Clear() error {
	s.entries = make(map[string]Entry)
	return s.flush()
}

func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing cache file: %w", err)
	}
	return nil
}

// Close implements Storage. The file is already durable after each
// mutation, so Close has nothing to flush.
func (s *FileStore) Close() error { return nil }
