package pipeline_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jlc/internal/adapters/cas"
	"go.trai.ch/jlc/internal/adapters/fs"
	"go.trai.ch/jlc/internal/adapters/telemetry"
	"go.trai.ch/jlc/internal/core/domain"
	"go.trai.ch/jlc/internal/core/ports/mocks"
	"go.trai.ch/jlc/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

var testRuntime = domain.RuntimeInfo{
	Version:  "1.0.5",
	WordSize: 64,
	Arch:     "x86_64",
	BinDir:   "/opt/julia/bin",
	DLExt:    "so",
	Invocation: []string{
		"/opt/julia/bin/julia", "-Cnative", "-J/opt/julia/lib/julia/sys.so", "--compile=yes", "--depwarn=yes",
	},
	BaseFlags: domain.FlagSet{"-I/opt/julia/include/julia", "-L/opt/julia/lib", "-ljulia"},
}

type fixture struct {
	dir      string
	executor *mocks.MockExecutor
	probe    *mocks.MockRuntimeProbe
	snooper  *mocks.MockSnooper
	store    *cas.Store
	pipeline *pipeline.Pipeline
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	f := &fixture{
		dir:      t.TempDir(),
		executor: mocks.NewMockExecutor(ctrl),
		probe:    mocks.NewMockRuntimeProbe(ctrl),
		snooper:  mocks.NewMockSnooper(ctrl),
		store:    cas.NewStore(),
	}
	f.pipeline = pipeline.NewPipeline(
		log,
		f.executor,
		f.probe,
		f.snooper,
		fs.NewStager(fs.NewWalker(), fs.NewResolver()),
		fs.NewVerifier(),
		fs.NewHasher(),
		f.store,
		telemetry.Noop{},
	)

	writeFile(t, filepath.Join(f.dir, "hello.jl"), "println(\"hello\")\n")
	writeFile(t, filepath.Join(f.dir, "program.c"), "int main(void) { return 0; }\n")
	return f
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

// resolve builds a configuration for hello.jl from opts.
func (f *fixture) resolve(t *testing.T, opts domain.Options) domain.BuildConfiguration {
	t.Helper()
	if opts.Program == "" {
		opts.Program = "hello.jl"
	}
	cfg, err := domain.Resolve(opts, domain.Defaults{
		WorkDir:       f.dir,
		DriverProgram: filepath.Join(f.dir, "program.c"),
		CC:            "gcc",
		Platform:      domain.PlatformUnix,
	})
	require.NoError(t, err)
	return cfg
}

func (f *fixture) buildDir() string {
	return filepath.Join(f.dir, domain.DefaultBuildDirName)
}

func (f *fixture) expectProbe() {
	f.probe.EXPECT().Probe(gomock.Any(), "julia").Return(testRuntime, nil)
}

func (f *fixture) expectCompiler() {
	f.executor.EXPECT().LookPath("gcc", gomock.Any()).Return("/usr/bin/gcc", nil)
}

// produce simulates a tool by creating the file named by its output flag.
func produce(cmd domain.Command) error {
	for i, arg := range cmd.Args {
		if (arg == "-o" || arg == "--output-o") && i+1 < len(cmd.Args) {
			return os.WriteFile(filepath.Join(cmd.Dir, cmd.Args[i+1]), []byte(cmd.Name), 0o600)
		}
	}
	return nil
}

// record returns an Execute action that simulates the tool and keeps the command.
func record(cmds *[]domain.Command) func(context.Context, domain.Command, io.Writer, io.Writer) error {
	return func(_ context.Context, cmd domain.Command, _, _ io.Writer) error {
		*cmds = append(*cmds, cmd)
		return produce(cmd)
	}
}

func TestPipeline_NothingToDo(t *testing.T) {
	f := newFixture(t)

	report, err := f.pipeline.Run(context.Background(), f.resolve(t, domain.Options{}))
	require.NoError(t, err)
	assert.True(t, report.NothingToDo)
	assert.Empty(t, report.Stages)
	assert.NoDirExists(t, f.buildDir())
}

func TestPipeline_CleanIsIdempotent(t *testing.T) {
	f := newFixture(t)
	writeFile(t, filepath.Join(f.buildDir(), "hello.a"), "stale")
	cfg := f.resolve(t, domain.Options{Clean: true})

	report, err := f.pipeline.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, domain.CleanRemoved, report.Clean)
	assert.Equal(t, []string{domain.StageClean}, report.Stages)
	assert.NoDirExists(t, f.buildDir())

	report, err = f.pipeline.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, domain.CleanDirMissing, report.Clean)
	assert.False(t, report.BuildDirCreated)
	assert.NoDirExists(t, f.buildDir())
}

func TestPipeline_ObjectOnly(t *testing.T) {
	f := newFixture(t)
	f.expectProbe()

	var cmds []domain.Command
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(record(&cmds))

	report, err := f.pipeline.Run(context.Background(), f.resolve(t, domain.Options{Object: true}))
	require.NoError(t, err)

	assert.Equal(t, []string{domain.StageObject}, report.Stages)
	assert.True(t, report.BuildDirCreated)
	assert.FileExists(t, filepath.Join(f.buildDir(), "hello.a"))
	assert.NoFileExists(t, filepath.Join(f.buildDir(), "libhello.so"))
	assert.NoFileExists(t, filepath.Join(f.buildDir(), "hello"))

	require.Len(t, cmds, 1)
	assert.Equal(t, "/opt/julia/bin/julia", cmds[0].Name)
	assert.Equal(t, f.buildDir(), cmds[0].Dir)
	assert.Contains(t, cmds[0].Args, "--output-o")

	manifest, err := f.store.Get(f.buildDir())
	require.NoError(t, err)
	require.NotNil(t, manifest)
	require.Len(t, manifest.Artifacts, 1)
	assert.Equal(t, domain.ArtifactObject, manifest.Artifacts[0].Kind)
	assert.Equal(t, "hello.a", manifest.Artifacts[0].Name)
	assert.Equal(t, "1.0.5", manifest.RuntimeVersion)
}

func TestPipeline_ExecutableWithAutoDeps(t *testing.T) {
	f := newFixture(t)
	f.expectProbe()
	f.expectCompiler()

	var cmds []domain.Command
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(record(&cmds)).
		Times(3)

	report, err := f.pipeline.Run(context.Background(), f.resolve(t, domain.Options{AutoDeps: true, Executable: true}))
	require.NoError(t, err)

	assert.Equal(t, []string{domain.StageObject, domain.StageShared, domain.StageExecutable}, report.Stages)
	for _, name := range []string{"hello.a", "libhello.so", "hello"} {
		assert.FileExists(t, filepath.Join(f.buildDir(), name))
	}

	require.Len(t, cmds, 3)
	assert.Equal(t, "/opt/julia/bin/julia", cmds[0].Name)
	assert.Equal(t, "gcc", cmds[1].Name)
	assert.Equal(t, "-shared", cmds[1].Args[0])
	assert.Equal(t, "gcc", cmds[2].Name)
	assert.Contains(t, cmds[2].Args, filepath.Join(f.dir, "program.c"))

	manifest, err := f.store.Get(f.buildDir())
	require.NoError(t, err)
	require.NotNil(t, manifest)
	assert.Len(t, manifest.Artifacts, 3)
}

func TestPipeline_ExecutableWithoutAutoDepsFails(t *testing.T) {
	f := newFixture(t)
	f.expectProbe()
	f.expectCompiler()

	report, err := f.pipeline.Run(context.Background(), f.resolve(t, domain.Options{Executable: true}))
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrStageFailed)
	assert.Contains(t, err.Error(), domain.ErrMissingPrerequisite.Error())
	assert.NotContains(t, report.Stages, domain.StageExecutable)
}

func TestPipeline_MissingProgram(t *testing.T) {
	f := newFixture(t)

	_, err := f.pipeline.Run(context.Background(), f.resolve(t, domain.Options{Program: "missing.jl", Object: true}))
	require.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), domain.ErrSourceNotFound.Error())
	assert.NoDirExists(t, f.buildDir())
}

func TestPipeline_DefaultDriverMissing(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(filepath.Join(f.dir, "program.c")))

	_, err := f.pipeline.Run(context.Background(), f.resolve(t, domain.Options{AutoDeps: true, Executable: true}))
	require.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), domain.ErrDriverProgramNotFound.Error())
	assert.NoDirExists(t, f.buildDir())
}

func TestPipeline_MissingSnoopFile(t *testing.T) {
	f := newFixture(t)

	_, err := f.pipeline.Run(context.Background(), f.resolve(t, domain.Options{Object: true, SnoopFile: "snoop.jl"}))
	require.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), domain.ErrSnoopFileNotFound.Error())
}

func TestPipeline_ReleaseDefaultsReachBothFlagSets(t *testing.T) {
	f := newFixture(t)
	f.expectProbe()
	f.expectCompiler()

	var cmds []domain.Command
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(record(&cmds)).
		Times(2)

	_, err := f.pipeline.Run(context.Background(), f.resolve(t, domain.Options{Release: true, AutoDeps: true, Shared: true}))
	require.NoError(t, err)
	require.Len(t, cmds, 2)

	object, shared := cmds[0].Args, cmds[1].Args
	assert.Contains(t, object, "-O3")
	assert.Contains(t, object, "-g0")
	assert.Contains(t, shared, "-O3")
	assert.NotContains(t, shared, "-g")
}

func TestPipeline_CompilerFlagsOrder(t *testing.T) {
	f := newFixture(t)
	f.expectProbe()
	f.expectCompiler()

	var cmds []domain.Command
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(record(&cmds)).
		Times(2)

	opts := domain.Options{
		AutoDeps: true,
		Shared:   true,
		Optimize: domain.IntPtr(2),
		Debug:    domain.IntPtr(2),
		CCFlags:  []string{"-Wall"},
	}
	_, err := f.pipeline.Run(context.Background(), f.resolve(t, opts))
	require.NoError(t, err)
	require.Len(t, cmds, 2)

	args := cmds[1].Args
	tail := args[len(args)-6:]
	assert.Equal(t, []string{"-I/opt/julia/include/julia", "-L/opt/julia/lib", "-ljulia", "-O2", "-g", "-Wall"}, tail)
}

func TestPipeline_CompilationFailure(t *testing.T) {
	f := newFixture(t)
	f.expectProbe()
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("command failed"))

	report, err := f.pipeline.Run(context.Background(), f.resolve(t, domain.Options{Object: true}))
	require.ErrorIs(t, err, domain.ErrStageFailed)
	assert.Contains(t, err.Error(), domain.ErrCompilationFailed.Error())
	assert.Empty(t, report.Stages)

	manifest, err := f.store.Get(f.buildDir())
	require.NoError(t, err)
	assert.Nil(t, manifest)
}

func TestPipeline_ProbeFailure(t *testing.T) {
	f := newFixture(t)
	f.probe.EXPECT().Probe(gomock.Any(), "julia").Return(domain.RuntimeInfo{}, domain.ErrRuntimeNotFound)

	_, err := f.pipeline.Run(context.Background(), f.resolve(t, domain.Options{Object: true}))
	require.ErrorIs(t, err, domain.ErrEnvironment)
	assert.NoDirExists(t, f.buildDir())
}

func TestPipeline_CompilerNotFound(t *testing.T) {
	f := newFixture(t)
	f.expectProbe()
	f.executor.EXPECT().LookPath("gcc", gomock.Any()).Return("", errors.New("executable not found"))

	_, err := f.pipeline.Run(context.Background(), f.resolve(t, domain.Options{AutoDeps: true, Shared: true}))
	require.ErrorIs(t, err, domain.ErrEnvironment)
	assert.Contains(t, err.Error(), domain.ErrCompilerNotFound.Error())
	assert.NoDirExists(t, f.buildDir())
}

func TestPipeline_EnvironmentFailureKeepsBuildDir(t *testing.T) {
	f := newFixture(t)
	previous := filepath.Join(f.buildDir(), "libhello.so")
	writeFile(t, previous, "previous build")
	f.expectProbe()
	f.executor.EXPECT().LookPath("gcc", gomock.Any()).Return("", errors.New("executable not found"))

	report, err := f.pipeline.Run(context.Background(), f.resolve(t, domain.Options{FullRelease: true}))
	require.ErrorIs(t, err, domain.ErrEnvironment)
	assert.Equal(t, domain.CleanNotRequested, report.Clean)
	assert.Empty(t, report.Stages)
	assert.FileExists(t, previous)
}

func TestPipeline_DefaultCompilerFollowsRuntimeWordSize(t *testing.T) {
	tests := []struct {
		name     string
		platform string
		wordSize int
		arch     string
		want     string
	}{
		{"windows 32-bit", "windows", 32, "i686", "i686-w64-mingw32-gcc"},
		{"windows 64-bit", "windows", 64, "x86_64", "x86_64-w64-mingw32-gcc"},
		{"unix", "unix", 64, "x86_64", "gcc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rt := testRuntime
			rt.WordSize = tt.wordSize
			rt.Arch = tt.arch
			f.probe.EXPECT().Probe(gomock.Any(), "julia").Return(rt, nil)
			f.executor.EXPECT().LookPath(tt.want, gomock.Any()).Return("", errors.New("executable not found"))

			cfg := f.resolve(t, domain.Options{Shared: true, AutoDeps: true, Platform: tt.platform})
			cfg.Toolchain.CC = ""

			_, err := f.pipeline.Run(context.Background(), cfg)
			require.ErrorIs(t, err, domain.ErrEnvironment)
			assert.Contains(t, err.Error(), domain.ErrCompilerNotFound.Error())
		})
	}
}

func TestPipeline_IncompatibleRuntime(t *testing.T) {
	f := newFixture(t)
	rt := testRuntime
	rt.Invocation = append(slices.Clone(testRuntime.Invocation), "-g1")
	f.probe.EXPECT().Probe(gomock.Any(), "julia").Return(rt, nil)

	_, err := f.pipeline.Run(context.Background(), f.resolve(t, domain.Options{Object: true}))
	require.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), domain.ErrIncompatibleRuntime.Error())
}

func TestPipeline_CopyUserFiles(t *testing.T) {
	f := newFixture(t)
	writeFile(t, filepath.Join(f.dir, "assets", "data.txt"), "payload")
	cfg := f.resolve(t, domain.Options{CopyFiles: []string{"assets/data.txt"}})

	report, err := f.pipeline.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.StageCopyUserFiles}, report.Stages)
	assert.Equal(t, []string{"data.txt"}, report.Copied)
	assert.FileExists(t, filepath.Join(f.buildDir(), "data.txt"))

	report, err = f.pipeline.Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Empty(t, report.Copied)
}

func TestPipeline_CopyUserFilesMissingSource(t *testing.T) {
	f := newFixture(t)

	_, err := f.pipeline.Run(context.Background(), f.resolve(t, domain.Options{CopyFiles: []string{"nope.txt"}}))
	require.ErrorIs(t, err, domain.ErrFilesystem)
	assert.Contains(t, err.Error(), domain.ErrCopySourceNotFound.Error())
}

func TestPipeline_RemoveTemp(t *testing.T) {
	f := newFixture(t)
	f.expectProbe()
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cmd domain.Command, _, _ io.Writer) error {
			return produce(cmd)
		})

	report, err := f.pipeline.Run(context.Background(), f.resolve(t, domain.Options{Object: true, RemoveTemp: true}))
	require.NoError(t, err)
	assert.Equal(t, []string{domain.StageObject, domain.StageRemoveTemp}, report.Stages)
	assert.Equal(t, []string{"hello.a"}, report.Removed)
	assert.NoFileExists(t, filepath.Join(f.buildDir(), "hello.a"))

	manifest, err := f.store.Get(f.buildDir())
	require.NoError(t, err)
	require.NotNil(t, manifest)
	assert.Empty(t, manifest.Artifacts)
}

func TestPipeline_CopyRuntimeLibs(t *testing.T) {
	f := newFixture(t)
	libDir := filepath.Join(f.dir, "julia", "lib")
	writeFile(t, filepath.Join(libDir, "libjulia.so.1"), "lib")
	writeFile(t, filepath.Join(libDir, "libjulia-debug.so.1"), "debug")
	writeFile(t, filepath.Join(libDir, "sys.so"), "sysimage")

	rt := testRuntime
	rt.SharedLibDir = libDir
	f.probe.EXPECT().Probe(gomock.Any(), "julia").Return(rt, nil)

	report, err := f.pipeline.Run(context.Background(), f.resolve(t, domain.Options{CopyRuntimeLibs: true}))
	require.NoError(t, err)
	assert.Equal(t, []string{"libjulia.so.1"}, report.Copied)
	assert.FileExists(t, filepath.Join(f.buildDir(), "libjulia.so.1"))
	assert.NoFileExists(t, filepath.Join(f.buildDir(), "sys.so"))
}

func TestPipeline_InitShared(t *testing.T) {
	f := newFixture(t)
	f.expectProbe()
	f.expectCompiler()

	var cmds []domain.Command
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(record(&cmds)).
		Times(2)

	_, err := f.pipeline.Run(context.Background(), f.resolve(t, domain.Options{AutoDeps: true, InitShared: true}))
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(f.buildDir(), domain.InitSourceName))
	require.Len(t, cmds, 2)
	assert.Contains(t, cmds[1].Args, domain.InitSourceName)
}

func TestPipeline_PrimeCache(t *testing.T) {
	f := newFixture(t)
	f.expectProbe()

	var cmds []domain.Command
	f.executor.EXPECT().
		Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(record(&cmds)).
		Times(2)

	_, err := f.pipeline.Run(context.Background(), f.resolve(t, domain.Options{Object: true, PrimeCache: true}))
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	assert.NotContains(t, cmds[0].Args, "--output-o")
	assert.Contains(t, cmds[1].Args, "--output-o")
	assert.Contains(t, cmds[1].Args[len(cmds[1].Args)-1], "cache_v1.0.5")
}

func TestPipeline_Snoop(t *testing.T) {
	f := newFixture(t)
	writeFile(t, filepath.Join(f.dir, "snoop.jl"), "main()\n")
	f.expectProbe()

	precompile := filepath.Join(f.buildDir(), domain.PrecompileScriptName)
	f.snooper.EXPECT().
		Snoop(gomock.Any(), testRuntime, filepath.Join(f.dir, "snoop.jl"), precompile, f.buildDir()).
		Return(nil)

	var cmds []domain.Command
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(record(&cmds))

	_, err := f.pipeline.Run(context.Background(), f.resolve(t, domain.Options{Object: true, SnoopFile: "snoop.jl"}))
	require.NoError(t, err)

	wrapper := filepath.Join(f.buildDir(), domain.SnoopMainName)
	assert.FileExists(t, wrapper)
	require.Len(t, cmds, 1)
	assert.Contains(t, cmds[0].Args[len(cmds[0].Args)-1], wrapper)
}

func TestPipeline_SnoopFailure(t *testing.T) {
	f := newFixture(t)
	writeFile(t, filepath.Join(f.dir, "snoop.jl"), "main()\n")
	f.expectProbe()
	f.snooper.EXPECT().Snoop(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("command failed"))

	_, err := f.pipeline.Run(context.Background(), f.resolve(t, domain.Options{Object: true, SnoopFile: "snoop.jl"}))
	require.ErrorIs(t, err, domain.ErrStageFailed)
	assert.Contains(t, err.Error(), domain.ErrSnoopFailed.Error())
}
