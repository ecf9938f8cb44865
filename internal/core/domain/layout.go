package domain

const (
	// DefaultBuildDirName is the build directory used when none is given.
	// Relative build directories resolve against the source program's directory.
	DefaultBuildDirName = "builddir"

	// ConfigFileName is the name of the optional project configuration file.
	ConfigFileName = "jlc.yaml"

	// ManifestFileName is the name of the artifact manifest inside the build directory.
	ManifestFileName = "jlc-manifest.json"

	// InitSourceName is the name of the synthesized runtime initialization source.
	InitSourceName = "init.c"

	// PrecompileScriptName is the precompilation script written by the snoop pre-pass.
	PrecompileScriptName = "precompile.jl"

	// SnoopMainName is the wrapper program that includes the source and its precompile script.
	SnoopMainName = "julia_main.jl"

	// CacheDirPrefix prefixes the local precompiled-module cache directory.
	CacheDirPrefix = "cache_v"

	// DriverProgramName is the file name of the bundled default driver program.
	DriverProgramName = "program.c"

	// LibNameMacro is the preprocessor define carrying the shared library file name.
	LibNameMacro = "PROGRAM_LIBNAME"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
