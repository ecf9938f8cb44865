package domain_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jlc/internal/core/domain"
)

func testDefaults(t *testing.T) domain.Defaults {
	t.Helper()
	work := t.TempDir()
	return domain.Defaults{
		WorkDir:       work,
		DriverProgram: filepath.Join(work, "share", "jlc", "program.c"),
		Platform:      domain.PlatformUnix,
	}
}

func TestResolve_RequiresProgram(t *testing.T) {
	_, err := domain.Resolve(domain.Options{}, testDefaults(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.ErrorIs(t, err, domain.ErrNoSourceProgram)
}

func TestResolve_Paths(t *testing.T) {
	defaults := testDefaults(t)

	cfg, err := domain.Resolve(domain.Options{Program: "src/hello.jl"}, defaults)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(defaults.WorkDir, "src", "hello.jl"), cfg.Program)
	assert.Equal(t, filepath.Join(defaults.WorkDir, "src", domain.DefaultBuildDirName), cfg.BuildDir)
	assert.Equal(t, "hello", cfg.OutName)
	assert.Empty(t, cfg.DriverProgram, "driver is only resolved for executable builds")
	assert.Equal(t, "julia", cfg.Runtime.Path)
	assert.Empty(t, cfg.Toolchain.CC, "the platform compiler is chosen after the runtime probe")
}

func TestResolve_ExplicitBuildDirAndOutName(t *testing.T) {
	defaults := testDefaults(t)
	abs := filepath.Join(t.TempDir(), "out")

	cfg, err := domain.Resolve(domain.Options{
		Program:  "hello.jl",
		BuildDir: "build/native",
		OutName:  "app",
	}, defaults)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(defaults.WorkDir, "build", "native"), cfg.BuildDir)
	assert.Equal(t, "app", cfg.OutName)

	cfg, err = domain.Resolve(domain.Options{Program: "hello.jl", BuildDir: abs}, defaults)
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.BuildDir)
}

func TestResolve_StageMacros(t *testing.T) {
	tests := []struct {
		name     string
		opts     domain.Options
		expected domain.StageSelection
	}{
		{
			name:     "Nothing",
			opts:     domain.Options{},
			expected: domain.StageSelection{},
		},
		{
			name:     "ExecutableWithoutAutoDeps",
			opts:     domain.Options{Executable: true},
			expected: domain.StageSelection{Executable: true},
		},
		{
			name:     "ExecutableWithAutoDeps",
			opts:     domain.Options{Executable: true, AutoDeps: true},
			expected: domain.StageSelection{Object: true, Shared: true, Executable: true},
		},
		{
			name:     "SharedWithAutoDeps",
			opts:     domain.Options{Shared: true, AutoDeps: true},
			expected: domain.StageSelection{Object: true, Shared: true},
		},
		{
			name:     "InitSharedImpliesShared",
			opts:     domain.Options{InitShared: true},
			expected: domain.StageSelection{Shared: true, InitShared: true},
		},
		{
			name: "FullRelease",
			opts: domain.Options{FullRelease: true},
			expected: domain.StageSelection{
				Clean:           true,
				Object:          true,
				Shared:          true,
				Executable:      true,
				RemoveTemp:      true,
				CopyRuntimeLibs: true,
			},
		},
		{
			name:     "CopyFiles",
			opts:     domain.Options{CopyFiles: []string{"data.txt"}},
			expected: domain.StageSelection{CopyUserFiles: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Program = "hello.jl"
			cfg, err := domain.Resolve(tt.opts, testDefaults(t))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Stages)
		})
	}
}

func TestResolve_DependencyClosure(t *testing.T) {
	for _, exe := range []bool{false, true} {
		for _, shared := range []bool{false, true} {
			opts := domain.Options{Program: "hello.jl", AutoDeps: true, Executable: exe, Shared: shared}
			cfg, err := domain.Resolve(opts, testDefaults(t))
			require.NoError(t, err)

			if cfg.Stages.Executable {
				assert.True(t, cfg.Stages.Shared)
			}
			if cfg.Stages.Shared {
				assert.True(t, cfg.Stages.Object)
			}
		}
	}
}

func TestResolve_Verbosity(t *testing.T) {
	defaults := testDefaults(t)

	cfg, err := domain.Resolve(domain.Options{Program: "a.jl", Verbose: true, Quiet: true}, defaults)
	require.NoError(t, err)
	assert.Equal(t, domain.VerbosityVerbose, cfg.Verbosity)

	cfg, err = domain.Resolve(domain.Options{Program: "a.jl", Quiet: true}, defaults)
	require.NoError(t, err)
	assert.Equal(t, domain.VerbosityQuiet, cfg.Verbosity)
}

func TestResolve_ReleaseDefaults(t *testing.T) {
	defaults := testDefaults(t)

	cfg, err := domain.Resolve(domain.Options{Program: "a.jl", Release: true}, defaults)
	require.NoError(t, err)
	require.NotNil(t, cfg.Runtime.Optimize)
	require.NotNil(t, cfg.Runtime.Debug)
	assert.Equal(t, domain.MaxOptimizeLevel, *cfg.Runtime.Optimize)
	assert.Equal(t, domain.DebugNone, *cfg.Runtime.Debug)

	cfg, err = domain.Resolve(domain.Options{
		Program:  "a.jl",
		Release:  true,
		Optimize: domain.IntPtr(1),
		Debug:    domain.IntPtr(2),
	}, defaults)
	require.NoError(t, err)
	assert.Equal(t, 1, *cfg.Runtime.Optimize, "explicit levels win over release defaults")
	assert.Equal(t, 2, *cfg.Runtime.Debug)

	cfg, err = domain.Resolve(domain.Options{Program: "a.jl"}, defaults)
	require.NoError(t, err)
	assert.Nil(t, cfg.Runtime.Optimize)
	assert.Nil(t, cfg.Runtime.Debug)
}

func TestResolve_DriverProgram(t *testing.T) {
	defaults := testDefaults(t)

	cfg, err := domain.Resolve(domain.Options{Program: "a.jl", Executable: true}, defaults)
	require.NoError(t, err)
	assert.Equal(t, defaults.DriverProgram, cfg.DriverProgram)

	cfg, err = domain.Resolve(domain.Options{Program: "a.jl", Executable: true, DriverProgram: "main.c"}, defaults)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(defaults.WorkDir, "main.c"), cfg.DriverProgram)
}

func TestResolve_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts domain.Options
	}{
		{"OptimizeTooHigh", domain.Options{Optimize: domain.IntPtr(4)}},
		{"OptimizeNegative", domain.Options{Optimize: domain.IntPtr(-1)}},
		{"DebugTooHigh", domain.Options{Debug: domain.IntPtr(3)}},
		{"Compile", domain.Options{Compile: "maybe"}},
		{"Depwarn", domain.Options{Depwarn: "loud"}},
		{"Inline", domain.Options{Inline: "sometimes"}},
		{"MathMode", domain.Options{MathMode: "fastest"}},
		{"Platform", domain.Options{Platform: "plan9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Program = "a.jl"
			_, err := domain.Resolve(tt.opts, testDefaults(t))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrConfiguration))
			assert.ErrorContains(t, err, domain.ErrInvalidOption.Error())
		})
	}
}

func TestResolve_ToolchainDefaults(t *testing.T) {
	defaults := testDefaults(t)

	cfg, err := domain.Resolve(domain.Options{Program: "a.jl", Platform: "windows"}, defaults)
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformWindows, cfg.Platform)
	assert.Empty(t, cfg.Toolchain.CC)

	defaults.CC = "clang"
	defaults.Runtime = "/opt/julia/bin/julia"
	cfg, err = domain.Resolve(domain.Options{Program: "a.jl", CCFlags: []string{"-Wall"}}, defaults)
	require.NoError(t, err)
	assert.Equal(t, "clang", cfg.Toolchain.CC)
	assert.Equal(t, "/opt/julia/bin/julia", cfg.Runtime.Path)
	assert.Equal(t, []string{"-Wall"}, cfg.Toolchain.Flags)
}
