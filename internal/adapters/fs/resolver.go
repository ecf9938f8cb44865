package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/jlc/internal/core/domain"
	"go.trai.ch/zerr"
)

// Resolver expands copy sources to concrete file paths.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveFiles returns the paths named by sources in order, without duplicates.
// A source that exists is taken literally. Otherwise a source containing glob
// meta characters is expanded. A source matching nothing is an error.
func (r *Resolver) ResolveFiles(sources []string) ([]string, error) {
	seen := make(map[string]bool, len(sources))
	resolved := make([]string, 0, len(sources))

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			resolved = append(resolved, path)
		}
	}

	for _, src := range sources {
		_, err := os.Lstat(src)
		if err == nil {
			add(src)
			continue
		}
		if !errors.Is(err, iofs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", src)
		}

		if !hasMeta(src) {
			return nil, zerr.With(domain.ErrCopySourceNotFound, "path", src)
		}

		matches, err := filepath.Glob(src)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "path", src)
		}
		if len(matches) == 0 {
			return nil, zerr.With(domain.ErrCopySourceNotFound, "path", src)
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}

	return resolved, nil
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, `*?[`)
}
