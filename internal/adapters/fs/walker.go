// Package fs provides the filesystem adapters of the build pipeline.
package fs

import (
	iofs "io/fs"
	"iter"
	"os"

	"go.trai.ch/jlc/internal/core/domain"
	"go.trai.ch/zerr"
)

// Walker lists directory contents.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// Entries yields the direct entries of dir in name order. A read failure is
// yielded once as the error of a nil entry.
func (w *Walker) Entries(dir string) iter.Seq2[iofs.DirEntry, error] {
	return func(yield func(iofs.DirEntry, error) bool) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			err = zerr.With(zerr.Wrap(err, domain.ErrReadDirFailed.Error()), "path", dir)
			yield(nil, err)
			return
		}
		for _, e := range entries {
			if !yield(e, nil) {
				return
			}
		}
	}
}
