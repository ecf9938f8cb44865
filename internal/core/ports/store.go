package ports

import "go.trai.ch/jlc/internal/core/domain"

// ManifestStore defines the interface for storing and retrieving the
// artifact manifest of a build directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ManifestStore interface {
	// Get retrieves the manifest of the given build directory.
	// Returns nil, nil if not found.
	Get(buildDir string) (*domain.Manifest, error)

	// Put stores the manifest.
	Put(buildDir string, manifest domain.Manifest) error
}
