package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.trai.ch/jlc/internal/core/domain"
	"go.trai.ch/jlc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Stager = (*Stager)(nil)

var errNotDirectory = errors.New("path exists and is not a directory")

// sharedObjectPattern matches versioned ELF shared objects such as libjulia.so.1.10.
var sharedObjectPattern = regexp.MustCompile(`^lib.+\.so(\.\d+)*$`)

// Stager implements the filesystem stages of a build.
type Stager struct {
	walker   *Walker
	resolver *Resolver
}

// NewStager creates a new Stager.
func NewStager(walker *Walker, resolver *Resolver) *Stager {
	return &Stager{walker: walker, resolver: resolver}
}

// Clean removes dir and everything below it. It reports false when dir did
// not exist.
func (s *Stager) Clean(dir string) (bool, error) {
	if _, err := os.Lstat(dir); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", dir)
	}

	if err := os.RemoveAll(dir); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrRemoveFailed.Error()), "path", dir)
	}
	return true, nil
}

// EnsureDir creates dir and its parents. It reports whether dir was created.
func (s *Stager) EnsureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return false, nil
	case err == nil:
		return false, zerr.With(zerr.Wrap(errNotDirectory, domain.ErrCreateDirFailed.Error()), "path", dir)
	case !errors.Is(err, iofs.ErrNotExist):
		return false, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", dir)
	}

	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrCreateDirFailed.Error()), "path", dir)
	}
	return true, nil
}

// RemoveTemp deletes every entry of dir whose name ends in objectExt or
// starts with cachePrefix. It returns the removed names in order.
func (s *Stager) RemoveTemp(dir, objectExt, cachePrefix string) ([]string, error) {
	var removed []string

	for entry, err := range s.walker.Entries(dir) {
		if err != nil {
			return removed, err
		}

		name := entry.Name()
		if !strings.HasSuffix(name, objectExt) && !strings.HasPrefix(name, cachePrefix) {
			continue
		}

		path := filepath.Join(dir, name)
		if err := os.RemoveAll(path); err != nil {
			return removed, zerr.With(zerr.Wrap(err, domain.ErrRemoveFailed.Error()), "path", path)
		}
		removed = append(removed, name)
	}

	return removed, nil
}

// CopyFiles copies files into dir. Sources may be glob patterns.
// A file is copied only if the destination is missing, differs in size, or
// is older than the source by change time or modification time.
// Symbolic links are recreated rather than followed.
func (s *Stager) CopyFiles(files []string, dir string) ([]string, error) {
	sources, err := s.resolver.ResolveFiles(files)
	if err != nil {
		return nil, err
	}

	var copied []string
	for _, src := range sources {
		dst := filepath.Join(dir, filepath.Base(src))

		ok, err := copyIfStale(src, dst)
		if err != nil {
			return copied, err
		}
		if ok {
			copied = append(copied, filepath.Base(src))
		}
	}
	return copied, nil
}

// RuntimeLibraries lists the runtime libraries in dirs that ship with an
// executable. Suffix platforms select *.<dlext> files not starting with
// "sys". Unix selects versioned lib*.so files. Debug builds are excluded.
func (s *Stager) RuntimeLibraries(dirs []string, p domain.Platform, dlext string) ([]string, error) {
	suffix := "." + strings.TrimPrefix(dlext, ".")

	var libs []string
	for _, dir := range dirs {
		for entry, err := range s.walker.Entries(dir) {
			if err != nil {
				return nil, err
			}
			if entry.IsDir() {
				continue
			}

			name := entry.Name()
			if strings.Contains(name, "debug") {
				continue
			}

			var selected bool
			if p.SelectsLibrariesBySuffix() {
				selected = strings.HasSuffix(name, suffix) && !strings.HasPrefix(name, "sys")
			} else {
				selected = sharedObjectPattern.MatchString(name)
			}
			if selected {
				libs = append(libs, filepath.Join(dir, name))
			}
		}
	}
	return libs, nil
}

// WriteFile writes data to path, replacing any existing file.
func (s *Stager) WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrWriteFailed.Error()), "path", path)
	}
	return nil
}

func copyIfStale(src, dst string) (bool, error) {
	srcInfo, err := os.Lstat(src)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return false, zerr.With(domain.ErrCopySourceNotFound, "path", src)
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", src)
	}

	if srcInfo.Mode()&iofs.ModeSymlink != 0 {
		return copySymlink(src, dst)
	}

	dstInfo, err := os.Lstat(dst)
	switch {
	case errors.Is(err, iofs.ErrNotExist):
	case err != nil:
		return false, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", dst)
	case !isStale(src, srcInfo, dst, dstInfo):
		return false, nil
	}

	if err := copyRegular(src, dst, srcInfo); err != nil {
		return false, err
	}
	return true, nil
}

func isStale(src string, srcInfo os.FileInfo, dst string, dstInfo os.FileInfo) bool {
	if srcInfo.Size() != dstInfo.Size() {
		return true
	}
	if changeTime(src, srcInfo).After(changeTime(dst, dstInfo)) {
		return true
	}
	// Compared at microsecond precision.
	return srcInfo.ModTime().Truncate(time.Microsecond).After(dstInfo.ModTime().Truncate(time.Microsecond))
}

// copyRegular copies content, permission bits and modification time.
func copyRegular(src, dst string, srcInfo os.FileInfo) error {
	in, err := os.Open(src) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFileOpenFailed.Error()), "path", src)
	}
	defer in.Close() //nolint:errcheck // Read-only file

	// Replace rather than truncate so a destination symlink is not followed.
	if err := os.Remove(dst); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", dst)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, srcInfo.Mode().Perm()) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", dst)
	}
	if err := out.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", dst)
	}

	mtime := srcInfo.ModTime()
	if err := os.Chtimes(dst, mtime, mtime); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", dst)
	}
	return nil
}

// copySymlink recreates the link at dst unless it already points to the same target.
func copySymlink(src, dst string) (bool, error) {
	target, err := os.Readlink(src)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", src)
	}

	if existing, err := os.Readlink(dst); err == nil && existing == target {
		return false, nil
	}

	if err := os.Remove(dst); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return false, zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", dst)
	}
	if err := os.Symlink(target, dst); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrCopyFailed.Error()), "path", dst)
	}
	return true, nil
}
