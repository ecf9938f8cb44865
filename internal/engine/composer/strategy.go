package composer

import (
	"os"
	"strings"

	"go.trai.ch/jlc/internal/core/domain"
)

// LinkStrategy holds the linking conventions of one platform family.
type LinkStrategy interface {
	// WholeArchive wraps a static archive so every member is linked.
	WholeArchive(archive string) []string
	// SharedFlags are appended when linking the shared library lib.
	SharedFlags(lib string) []string
	// ExecutableFlags are appended when linking an executable against lib.
	ExecutableFlags(lib string) []string
	// Env is the environment overlay of C compiler subprocesses.
	Env(rt domain.RuntimeInfo, toolchainPath string) []string
}

// StrategyFor returns the link strategy of p. Unknown platforms link the
// unix way.
func StrategyFor(p domain.Platform) LinkStrategy {
	switch p {
	case domain.PlatformApple:
		return appleStrategy{}
	case domain.PlatformWindows:
		return windowsStrategy{}
	default:
		return unixStrategy{}
	}
}

type unixStrategy struct{}

func (unixStrategy) WholeArchive(archive string) []string {
	return []string{"-Wl,--whole-archive", archive, "-Wl,--no-whole-archive"}
}

func (unixStrategy) SharedFlags(string) []string { return nil }

func (unixStrategy) ExecutableFlags(string) []string {
	return []string{"-Wl,-rpath,$ORIGIN"}
}

func (unixStrategy) Env(_ domain.RuntimeInfo, toolchainPath string) []string {
	return pathOverlay(toolchainPath)
}

type appleStrategy struct{}

func (appleStrategy) WholeArchive(archive string) []string {
	return []string{"-Wl,-all_load", archive}
}

func (appleStrategy) SharedFlags(lib string) []string {
	return []string{"-Wl,-install_name,@rpath/" + lib}
}

func (appleStrategy) ExecutableFlags(string) []string {
	return []string{"-Wl,-rpath,@executable_path"}
}

func (appleStrategy) Env(_ domain.RuntimeInfo, toolchainPath string) []string {
	return pathOverlay(toolchainPath)
}

type windowsStrategy struct{}

func (windowsStrategy) WholeArchive(archive string) []string {
	return []string{"-Wl,--whole-archive", archive, "-Wl,--no-whole-archive"}
}

func (windowsStrategy) SharedFlags(string) []string {
	return []string{"-Wl,--export-all-symbols"}
}

func (windowsStrategy) ExecutableFlags(string) []string { return nil }

// Env puts the runtime binaries on PATH so the linker finds the runtime DLLs.
func (windowsStrategy) Env(rt domain.RuntimeInfo, toolchainPath string) []string {
	return pathOverlay(rt.BinDir, toolchainPath)
}

func pathOverlay(dirs ...string) []string {
	var parts []string
	for _, d := range dirs {
		if d != "" {
			parts = append(parts, d)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return []string{"PATH=" + strings.Join(parts, string(os.PathListSeparator))}
}
