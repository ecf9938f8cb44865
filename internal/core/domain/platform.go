package domain

// Platform identifies the family of linking conventions of a target.
type Platform string

const (
	// PlatformUnix covers Linux and the BSDs (ELF, $ORIGIN rpaths).
	PlatformUnix Platform = "unix"
	// PlatformApple covers macOS (Mach-O, @rpath install names).
	PlatformApple Platform = "apple"
	// PlatformWindows covers Windows with a MinGW toolchain.
	PlatformWindows Platform = "windows"
)

// PlatformFor maps a GOOS value to its Platform.
func PlatformFor(goos string) Platform {
	switch goos {
	case "darwin", "ios":
		return PlatformApple
	case "windows":
		return PlatformWindows
	default:
		return PlatformUnix
	}
}

// ParsePlatform converts a user supplied name to a Platform.
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(s) {
	case PlatformUnix, PlatformApple, PlatformWindows:
		return Platform(s), true
	case "linux":
		return PlatformUnix, true
	case "darwin", "macos":
		return PlatformApple, true
	default:
		return "", false
	}
}

// SharedLibExt returns the shared library extension including the dot.
func (p Platform) SharedLibExt() string {
	switch p {
	case PlatformApple:
		return ".dylib"
	case PlatformWindows:
		return ".dll"
	default:
		return ".so"
	}
}

// ExecutableExt returns the executable extension including the dot, if any.
func (p Platform) ExecutableExt() string {
	if p == PlatformWindows {
		return ".exe"
	}
	return ""
}

// SelectsLibrariesBySuffix reports whether runtime libraries are found by
// extension rather than by the versioned lib*.so pattern.
func (p Platform) SelectsLibrariesBySuffix() bool {
	return p == PlatformApple || p == PlatformWindows
}

// DefaultCompiler returns the C compiler used when none is configured.
func (p Platform) DefaultCompiler(wordSize int) string {
	if p != PlatformWindows {
		return "gcc"
	}
	if wordSize == 32 {
		return "i686-w64-mingw32-gcc"
	}
	return "x86_64-w64-mingw32-gcc"
}
