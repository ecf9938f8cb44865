package app

import (
	"path/filepath"
	"runtime"

	"go.trai.ch/jlc/internal/core/domain"
)

// HostDefaults derives the fallback configuration of the host. The bundled
// driver program is expected at ../share/jlc relative to the jlc executable.
func HostDefaults(workDir, executable string, getenv func(string) string) domain.Defaults {
	var driver string
	if executable != "" {
		driver = filepath.Join(filepath.Dir(executable), "..", "share", "jlc", domain.DriverProgramName)
	}
	return domain.Defaults{
		WorkDir:       workDir,
		DriverProgram: driver,
		Runtime:       getenv("JULIA"),
		CC:            getenv("CC"),
		Platform:      domain.PlatformFor(runtime.GOOS),
	}
}
