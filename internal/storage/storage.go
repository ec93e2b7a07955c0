// Package storage persists application state as JSON documents on disk.
// Each key maps to one file under the store directory; writes are atomic
// via a temp-file rename so a crash never leaves a half-written document.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Well-known keys for the single-user draft workflow.
const (
	KeyCV   = "masar_cv"
	KeyUser = "masar_user"
)

// Store is a key-value JSON store rooted at a directory. It is safe for
// concurrent use.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// NewStore opens a store at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, &StoreError{Message: "store directory is required"}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &StoreError{Message: "failed to create store directory", Cause: err}
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Save marshals value and writes it under key, replacing any previous
// document.
func (s *Store) Save(key string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return &StoreError{Message: fmt.Sprintf("failed to marshal %q", key), Cause: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &StoreError{Message: fmt.Sprintf("failed to write %q", key), Cause: err}
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return &StoreError{Message: fmt.Sprintf("failed to commit %q", key), Cause: err}
	}
	return nil
}

// Load reads the document under key into out. It reports false when no
// usable document exists: a missing file and a corrupt one both read as
// absent, so callers always start from a clean default instead of failing.
func (s *Store) Load(key string, out any) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &StoreError{Message: fmt.Sprintf("failed to read %q", key), Cause: err}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, nil
	}
	return true, nil
}

// Delete removes the document under key. Deleting an absent key is not an
// error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return &StoreError{Message: fmt.Sprintf("failed to delete %q", key), Cause: err}
	}
	return nil
}
