package domain

import (
	"errors"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// Verbosity controls how much progress narration a run produces.
type Verbosity int

const (
	// VerbosityNormal prints headline progress.
	VerbosityNormal Verbosity = iota
	// VerbosityQuiet prints nothing on success.
	VerbosityQuiet
	// VerbosityVerbose prints every step and command line.
	VerbosityVerbose
)

const (
	// MaxOptimizeLevel is the highest optimization level, used by release builds.
	MaxOptimizeLevel = 3
	// DebugNone is the debug level that emits no debug information.
	DebugNone = 0
	// DebugSymbols is the debug level that also asks the C compiler for symbols.
	DebugSymbols = 2
)

// RuntimeOptions are the language compiler settings of a build.
type RuntimeOptions struct {
	Path            string
	SysImage        string
	CPUTarget       string
	Compile         string
	Depwarn         string
	Precompiled     string
	CompiledModules string
	Home            string
	StartupFile     string
	HandleSignals   string
	Optimize        *int
	Debug           *int
	Inline          string
	CheckBounds     string
	MathMode        string
	PrimeCache      bool
}

// ToolchainOptions are the C compiler settings of a build.
type ToolchainOptions struct {
	// CC is empty when nothing was configured. The platform default is then
	// picked once the runtime word size is known.
	CC    string
	Flags []string
	// Path is prepended to PATH for C compiler subprocesses only.
	Path string
}

// BuildConfiguration is a fully resolved build. It is created once by
// Resolve and only read afterwards.
type BuildConfiguration struct {
	Program       string
	BuildDir      string
	OutName       string
	DriverProgram string
	SnoopFile     string
	CopyFiles     []string
	Verbosity     Verbosity
	Stages        StageSelection
	Runtime       RuntimeOptions
	Toolchain     ToolchainOptions
	Platform      Platform
}

var (
	yesNo       = []string{"yes", "no"}
	compileMode = []string{"yes", "no", "all", "min"}
	depwarnMode = []string{"yes", "no", "error"}
	mathMode    = []string{"ieee", "fast"}
)

// Resolve applies macro expansion, dependency closure and default filling to
// opts and returns the resulting configuration. It does not touch the
// filesystem; existence checks belong to the pipeline.
func Resolve(opts Options, defaults Defaults) (BuildConfiguration, error) {
	if err := validateOptions(opts); err != nil {
		return BuildConfiguration{}, errors.Join(ErrConfiguration, err)
	}

	cfg := BuildConfiguration{
		Verbosity: resolveVerbosity(opts.Verbose, opts.Quiet),
		Stages:    resolveStages(opts),
		Platform:  defaults.Platform,
	}

	if opts.Platform != "" {
		p, ok := ParsePlatform(opts.Platform)
		if !ok {
			err := zerr.With(ErrInvalidOption, "platform", opts.Platform)
			return BuildConfiguration{}, errors.Join(ErrConfiguration, err)
		}
		cfg.Platform = p
	}
	if cfg.Platform == "" {
		cfg.Platform = PlatformUnix
	}

	cfg.Program = absFrom(defaults.WorkDir, opts.Program)
	programDir := filepath.Dir(cfg.Program)

	buildDir := opts.BuildDir
	if buildDir == "" {
		buildDir = DefaultBuildDirName
	}
	cfg.BuildDir = absFrom(programDir, buildDir)

	cfg.OutName = opts.OutName
	if cfg.OutName == "" {
		base := filepath.Base(cfg.Program)
		cfg.OutName = strings.TrimSuffix(base, filepath.Ext(base))
	}

	if cfg.Stages.Executable {
		driver := opts.DriverProgram
		if driver == "" {
			driver = defaults.DriverProgram
		}
		cfg.DriverProgram = absFrom(defaults.WorkDir, driver)
	}

	if opts.SnoopFile != "" {
		cfg.SnoopFile = absFrom(defaults.WorkDir, opts.SnoopFile)
	}

	for _, f := range opts.CopyFiles {
		cfg.CopyFiles = append(cfg.CopyFiles, absFrom(defaults.WorkDir, f))
	}

	cfg.Runtime = resolveRuntime(opts, defaults)
	cfg.Toolchain = resolveToolchain(opts, defaults)

	return cfg, nil
}

func resolveVerbosity(verbose, quiet bool) Verbosity {
	switch {
	case verbose:
		return VerbosityVerbose
	case quiet:
		return VerbosityQuiet
	default:
		return VerbosityNormal
	}
}

func resolveStages(opts Options) StageSelection {
	s := StageSelection{
		Clean:           opts.Clean,
		Object:          opts.Object,
		Shared:          opts.Shared || opts.InitShared,
		InitShared:      opts.InitShared,
		Executable:      opts.Executable,
		RemoveTemp:      opts.RemoveTemp,
		CopyRuntimeLibs: opts.CopyRuntimeLibs,
		CopyUserFiles:   len(opts.CopyFiles) > 0,
	}

	autoDeps := opts.AutoDeps
	if opts.FullRelease {
		s.Clean = true
		autoDeps = true
		s.Executable = true
		s.RemoveTemp = true
		s.CopyRuntimeLibs = true
	}

	if autoDeps {
		if s.Executable {
			s.Shared = true
		}
		if s.Shared {
			s.Object = true
		}
	}

	return s
}

func resolveRuntime(opts Options, defaults Defaults) RuntimeOptions {
	r := RuntimeOptions{
		Path:            opts.Runtime,
		SysImage:        opts.SysImage,
		CPUTarget:       opts.CPUTarget,
		Compile:         opts.Compile,
		Depwarn:         opts.Depwarn,
		Precompiled:     opts.Precompiled,
		CompiledModules: opts.CompiledModules,
		Home:            opts.Home,
		StartupFile:     opts.StartupFile,
		HandleSignals:   opts.HandleSignals,
		Optimize:        copyLevel(opts.Optimize),
		Debug:           copyLevel(opts.Debug),
		Inline:          opts.Inline,
		CheckBounds:     opts.CheckBounds,
		MathMode:        opts.MathMode,
		PrimeCache:      opts.PrimeCache,
	}
	if r.Path == "" {
		r.Path = defaults.Runtime
	}
	if r.Path == "" {
		r.Path = "julia"
	}

	if opts.Release || opts.FullRelease {
		if r.Optimize == nil {
			r.Optimize = IntPtr(MaxOptimizeLevel)
		}
		if r.Debug == nil {
			r.Debug = IntPtr(DebugNone)
		}
	}
	return r
}

func resolveToolchain(opts Options, defaults Defaults) ToolchainOptions {
	t := ToolchainOptions{
		CC:    opts.CC,
		Flags: slices.Clone(opts.CCFlags),
		Path:  opts.ToolchainPath,
	}
	if t.CC == "" {
		t.CC = defaults.CC
	}
	return t
}

func validateOptions(opts Options) error {
	if opts.Program == "" {
		return ErrNoSourceProgram
	}
	if err := checkLevel("optimize", opts.Optimize, MaxOptimizeLevel); err != nil {
		return err
	}
	if err := checkLevel("debug", opts.Debug, DebugSymbols); err != nil {
		return err
	}

	policies := []struct {
		name    string
		value   string
		allowed []string
	}{
		{"compile", opts.Compile, compileMode},
		{"depwarn", opts.Depwarn, depwarnMode},
		{"precompiled", opts.Precompiled, yesNo},
		{"compiled-modules", opts.CompiledModules, yesNo},
		{"startup-file", opts.StartupFile, yesNo},
		{"handle-signals", opts.HandleSignals, yesNo},
		{"inline", opts.Inline, yesNo},
		{"check-bounds", opts.CheckBounds, yesNo},
		{"math-mode", opts.MathMode, mathMode},
	}
	for _, p := range policies {
		if p.value != "" && !slices.Contains(p.allowed, p.value) {
			err := zerr.With(ErrInvalidOption, "option", p.name)
			err = zerr.With(err, "value", p.value)
			return zerr.With(err, "allowed", strings.Join(p.allowed, ","))
		}
	}
	return nil
}

func checkLevel(name string, level *int, maxLevel int) error {
	if level == nil {
		return nil
	}
	if *level < 0 || *level > maxLevel {
		err := zerr.With(ErrInvalidOption, "option", name)
		err = zerr.With(err, "value", strconv.Itoa(*level))
		return zerr.With(err, "allowed", "0-"+strconv.Itoa(maxLevel))
	}
	return nil
}

func copyLevel(level *int) *int {
	if level == nil {
		return nil
	}
	return IntPtr(*level)
}

func absFrom(base, path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) || base == "" {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
