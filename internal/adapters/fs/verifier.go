package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/jlc/internal/core/domain"
	"go.trai.ch/jlc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Verifier = (*Verifier)(nil)

// Verifier provides functionality to verify the existence of files.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// FileExists reports whether path exists and is not a directory.
func (v *Verifier) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", path)
	}
	return !info.IsDir(), nil
}

// VerifyArtifacts checks if all named files exist in the given root directory.
// It returns true if all of them exist, false otherwise.
func (v *Verifier) VerifyArtifacts(root string, names []string) (bool, error) {
	for _, name := range names {
		ok, err := v.FileExists(filepath.Join(root, name))
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
