package domain

import (
	"strings"

	"golang.org/x/mod/semver"
)

// firstArchiveVersion is the first runtime release that emits static
// archives from --output-o and supports a relocatable module cache.
const firstArchiveVersion = "v0.7.0-0"

// RuntimeInfo describes an installed language runtime, as reported by the
// runtime itself.
type RuntimeInfo struct {
	Version       string
	WordSize      int
	Arch          string
	BinDir        string
	SharedLibDir  string
	PrivateLibDir string
	// DLExt is the shared library extension without the leading dot.
	DLExt        string
	ConfigScript string
	// Invocation is the runtime's canonical command line: the executable
	// followed by the CPU target, system image, compile mode and deprecation
	// warning flags.
	Invocation []string
	// BaseFlags are the include and link flags needed to embed the runtime.
	BaseFlags FlagSet
}

// AtLeast reports whether the runtime version is at or above v ("v1.2.3").
// Unparseable runtime versions are treated as current.
func (r RuntimeInfo) AtLeast(v string) bool {
	sv := "v" + strings.TrimPrefix(r.Version, "v")
	if !semver.IsValid(sv) {
		return true
	}
	return semver.Compare(sv, v) >= 0
}

// ModernFlags reports whether the runtime uses the post-0.7 names for the
// native-code and module-cache command line flags.
func (r RuntimeInfo) ModernFlags() bool {
	return r.AtLeast(firstArchiveVersion)
}

// UsesArchive reports whether compiled output is a static archive rather
// than a single object file.
func (r RuntimeInfo) UsesArchive() bool {
	return r.AtLeast(firstArchiveVersion)
}

// SupportsCachePriming reports whether a local module cache can be primed.
func (r RuntimeInfo) SupportsCachePriming() bool {
	return r.AtLeast(firstArchiveVersion)
}

// CacheDirName returns the name of the per-version module cache directory.
func (r RuntimeInfo) CacheDirName() string {
	return CacheDirPrefix + r.Version
}

// LibraryDirs returns the directories holding the runtime's shared libraries.
func (r RuntimeInfo) LibraryDirs() []string {
	dirs := make([]string, 0, 2)
	if r.SharedLibDir != "" {
		dirs = append(dirs, r.SharedLibDir)
	}
	if r.PrivateLibDir != "" && r.PrivateLibDir != r.SharedLibDir {
		dirs = append(dirs, r.PrivateLibDir)
	}
	return dirs
}
