package composer

import "go.trai.ch/jlc/internal/core/domain"

// LinkRequest describes one C compiler link.
type LinkRequest struct {
	CC       string
	Runtime  domain.RuntimeInfo
	Platform domain.Platform
	Paths    domain.ArtifactPaths
	// Flags are the compiler flags from domain.BuildFlags.
	Flags         domain.FlagSet
	ToolchainPath string
	// InitShared links the generated init source into the shared library.
	InitShared bool
	// Driver is the C driver program of an executable link.
	Driver string
	// Dir is the build directory, the working directory of the link.
	Dir string
}

// RenderShared renders the C compiler command that links the shared library.
func RenderShared(req LinkRequest) domain.Command {
	strategy := StrategyFor(req.Platform)
	lib := req.Paths.Shared

	args := []string{"-shared", libNameDefine(lib), "-o", lib}
	if req.Runtime.UsesArchive() {
		args = append(args, strategy.WholeArchive(req.Paths.Object)...)
	} else {
		args = append(args, req.Paths.Object)
	}
	if req.InitShared {
		args = append(args, req.Paths.InitSource)
	}
	args = append(args, req.Flags...)
	args = append(args, strategy.SharedFlags(lib)...)

	return domain.Command{
		Name: req.CC,
		Args: args,
		Dir:  req.Dir,
		Env:  strategy.Env(req.Runtime, req.ToolchainPath),
	}
}

// RenderExecutable renders the C compiler command that links the driver
// program against the shared library.
func RenderExecutable(req LinkRequest) domain.Command {
	strategy := StrategyFor(req.Platform)
	lib := req.Paths.Shared

	args := []string{libNameDefine(lib), "-o", req.Paths.Executable, req.Driver, lib}
	args = append(args, req.Flags...)
	args = append(args, strategy.ExecutableFlags(lib)...)
	if isX86_32(req.Runtime) {
		args = append(args, "-march=pentium4")
	}

	return domain.Command{
		Name: req.CC,
		Args: args,
		Dir:  req.Dir,
		Env:  strategy.Env(req.Runtime, req.ToolchainPath),
	}
}

func libNameDefine(lib string) string {
	return "-D" + domain.LibNameMacro + `="` + lib + `"`
}

func isX86_32(rt domain.RuntimeInfo) bool {
	if rt.WordSize != 32 {
		return false
	}
	switch rt.Arch {
	case "i386", "i486", "i586", "i686", "x86":
		return true
	}
	return false
}
