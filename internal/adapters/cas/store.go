// Package cas implements the artifact manifest store.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/jlc/internal/core/domain"
	"go.trai.ch/jlc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ManifestStore = (*Store)(nil)

// Store implements ports.ManifestStore with one JSON file per build directory.
type Store struct {
	mu    sync.RWMutex
	cache map[string]domain.Manifest
}

// NewStore creates a new manifest store.
func NewStore() *Store {
	return &Store{
		cache: make(map[string]domain.Manifest),
	}
}

func manifestPath(buildDir string) string {
	return filepath.Join(filepath.Clean(buildDir), domain.ManifestFileName)
}

// Get retrieves the manifest of buildDir. It returns nil, nil when the build
// directory has no manifest.
func (s *Store) Get(buildDir string) (*domain.Manifest, error) {
	key := filepath.Clean(buildDir)

	s.mu.RLock()
	m, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return &m, nil
	}

	path := manifestPath(key)
	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	if err := json.Unmarshal(data, &m); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	s.mu.Lock()
	s.cache[key] = m
	s.mu.Unlock()

	return &m, nil
}

// Put stores the manifest of buildDir, replacing any previous one.
func (s *Store) Put(buildDir string, manifest domain.Manifest) error {
	key := filepath.Clean(buildDir)
	path := manifestPath(key)

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrManifestWriteFailed.Error())
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(path, append(data, '\n'), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}

	s.mu.Lock()
	s.cache[key] = manifest
	s.mu.Unlock()

	return nil
}
