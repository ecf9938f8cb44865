package domain

import "go.trai.ch/zerr"

// Error categories. Every error returned by the pipeline is joined with
// exactly one of these so callers can classify it with errors.Is.
var (
	// ErrEnvironment is returned when a required tool cannot be found or run.
	ErrEnvironment = zerr.New("environment error")

	// ErrConfiguration is returned when the build configuration is unusable.
	ErrConfiguration = zerr.New("configuration error")

	// ErrStageFailed is returned when a build stage fails.
	ErrStageFailed = zerr.New("stage failed")

	// ErrFilesystem is returned when a filesystem operation fails.
	ErrFilesystem = zerr.New("filesystem error")
)

var (
	// ErrSourceNotFound is returned when the source program does not exist.
	ErrSourceNotFound = zerr.New("cannot find source program")

	// ErrNoSourceProgram is returned when no source program was given.
	ErrNoSourceProgram = zerr.New("no source program specified")

	// ErrDriverProgramNotFound is returned when the C driver program does not exist.
	ErrDriverProgramNotFound = zerr.New("cannot find driver program")

	// ErrSnoopFileNotFound is returned when the snoop script does not exist.
	ErrSnoopFileNotFound = zerr.New("cannot find snoop file")

	// ErrInvalidOption is returned when an option value is outside its domain.
	ErrInvalidOption = zerr.New("invalid option value")

	// ErrIncompatibleRuntime is returned when the runtime's canonical invocation has an unexpected shape.
	ErrIncompatibleRuntime = zerr.New("unexpected runtime invocation format, you may be using an incompatible runtime version")

	// ErrRuntimeNotFound is returned when the language runtime cannot be located.
	ErrRuntimeNotFound = zerr.New("language runtime not found")

	// ErrRuntimeProbeFailed is returned when querying the runtime for its layout fails.
	ErrRuntimeProbeFailed = zerr.New("failed to probe language runtime")

	// ErrCompilerNotFound is returned when the system C compiler cannot be located.
	ErrCompilerNotFound = zerr.New("C compiler not found")

	// ErrCompilationFailed is returned when the runtime fails to compile the program.
	ErrCompilationFailed = zerr.New("compilation failed")

	// ErrCachePrimingFailed is returned when the cache priming run fails.
	ErrCachePrimingFailed = zerr.New("cache priming failed")

	// ErrSnoopFailed is returned when the snoop pre-pass fails.
	ErrSnoopFailed = zerr.New("snoop pre-pass failed")

	// ErrLinkingFailed is returned when the C compiler fails to link an artifact.
	ErrLinkingFailed = zerr.New("linking failed")

	// ErrMissingPrerequisite is returned when a stage input was never built.
	ErrMissingPrerequisite = zerr.New("missing prerequisite artifact")

	// ErrCopySourceNotFound is returned when a file to copy does not exist.
	ErrCopySourceNotFound = zerr.New("cannot find file to copy")

	// ErrCopyFailed is returned when copying a file fails.
	ErrCopyFailed = zerr.New("failed to copy file")

	// ErrRemoveFailed is returned when removing a file or directory fails.
	ErrRemoveFailed = zerr.New("failed to remove path")

	// ErrCreateDirFailed is returned when the build directory cannot be created.
	ErrCreateDirFailed = zerr.New("failed to create build directory")

	// ErrWriteFailed is returned when a generated file cannot be written.
	ErrWriteFailed = zerr.New("failed to write file")

	// ErrReadDirFailed is returned when a directory cannot be listed.
	ErrReadDirFailed = zerr.New("failed to read directory")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when the config file does not exist.
	ErrConfigNotFound = zerr.New("config file not found")

	// ErrManifestReadFailed is returned when the artifact manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read artifact manifest")

	// ErrManifestWriteFailed is returned when the artifact manifest cannot be written.
	ErrManifestWriteFailed = zerr.New("failed to write artifact manifest")

	// ErrFileOpenFailed is returned when a file cannot be opened.
	ErrFileOpenFailed = zerr.New("failed to open file")

	// ErrFileHashFailed is returned when hashing a file fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")
)
