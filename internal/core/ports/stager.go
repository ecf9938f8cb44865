package ports

import "go.trai.ch/jlc/internal/core/domain"

// Stager performs the filesystem side of the pipeline.
//
//go:generate go run go.uber.org/mock/mockgen -source=stager.go -destination=mocks/mock_stager.go -package=mocks
type Stager interface {
	// Clean removes dir recursively and reports whether it existed.
	Clean(dir string) (bool, error)

	// EnsureDir creates dir if needed and reports whether it was created.
	EnsureDir(dir string) (bool, error)

	// RemoveTemp deletes intermediate object files and the module cache
	// directory from dir and returns the removed names.
	RemoveTemp(dir, objectExt, cachePrefix string) ([]string, error)

	// CopyFiles copies every stale or missing file into dir and returns
	// the names that were copied.
	CopyFiles(files []string, dir string) ([]string, error)

	// RuntimeLibraries lists the shared libraries in dirs that must ship
	// with an executable on platform p.
	RuntimeLibraries(dirs []string, p domain.Platform, dlext string) ([]string, error)

	// WriteFile writes a generated file.
	WriteFile(path string, data []byte) error
}
