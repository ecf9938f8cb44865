// Package pipeline runs the build stages of a resolved configuration in
// their fixed order.
package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"go.trai.ch/jlc/internal/core/domain"
	"go.trai.ch/jlc/internal/core/ports"
	"go.trai.ch/jlc/internal/engine/composer"
	"go.trai.ch/zerr"
)

// Pipeline drives the runtime and the C compiler through the build stages.
type Pipeline struct {
	logger    ports.Logger
	executor  ports.Executor
	probe     ports.RuntimeProbe
	snooper   ports.Snooper
	stager    ports.Stager
	verifier  ports.Verifier
	hasher    ports.Hasher
	store     ports.ManifestStore
	telemetry ports.Telemetry
}

// NewPipeline creates a new Pipeline.
func NewPipeline(
	logger ports.Logger,
	executor ports.Executor,
	probe ports.RuntimeProbe,
	snooper ports.Snooper,
	stager ports.Stager,
	verifier ports.Verifier,
	hasher ports.Hasher,
	store ports.ManifestStore,
	telemetry ports.Telemetry,
) *Pipeline {
	return &Pipeline{
		logger:    logger,
		executor:  executor,
		probe:     probe,
		snooper:   snooper,
		stager:    stager,
		verifier:  verifier,
		hasher:    hasher,
		store:     store,
		telemetry: telemetry,
	}
}

// run holds the state of one pipeline execution.
type run struct {
	cfg     domain.BuildConfiguration
	rt      domain.RuntimeInfo
	cc      string
	paths   domain.ArtifactPaths
	program string
	report  domain.Report
}

// Run executes the selected stages of cfg. Every returned error is joined
// with one of the domain error categories.
func (p *Pipeline) Run(ctx context.Context, cfg domain.BuildConfiguration) (domain.Report, error) {
	r := &run{cfg: cfg, program: cfg.Program}

	if err := p.validate(cfg); err != nil {
		return r.report, err
	}

	if !cfg.Stages.Any() {
		p.logger.Info("nothing to do")
		r.report.NothingToDo = true
		return r.report, nil
	}

	// Environment errors must surface before clean touches the build directory.
	if cfg.Stages.NeedsBuildDir() {
		if err := p.prepareEnvironment(ctx, r); err != nil {
			return r.report, err
		}
	}

	if cfg.Stages.Clean {
		if err := p.stage(ctx, r, domain.StageClean, p.clean); err != nil {
			return r.report, err
		}
	}
	if !cfg.Stages.NeedsBuildDir() {
		return r.report, nil
	}

	created, err := p.stager.EnsureDir(cfg.BuildDir)
	if err != nil {
		return r.report, errors.Join(domain.ErrFilesystem, err)
	}
	r.report.BuildDirCreated = created
	if created {
		p.logger.Debug("created build directory " + cfg.BuildDir)
	}

	stages := []struct {
		selected bool
		name     string
		fn       stageFunc
	}{
		{cfg.Stages.Object, domain.StageObject, p.buildObject},
		{cfg.Stages.Shared, domain.StageShared, p.buildShared},
		{cfg.Stages.Executable, domain.StageExecutable, p.buildExecutable},
		{cfg.Stages.RemoveTemp, domain.StageRemoveTemp, p.removeTemp},
		{cfg.Stages.CopyRuntimeLibs, domain.StageCopyRuntimeLibs, p.copyRuntimeLibs},
		{cfg.Stages.CopyUserFiles, domain.StageCopyUserFiles, p.copyUserFiles},
	}
	for _, s := range stages {
		if !s.selected {
			continue
		}
		if err := p.stage(ctx, r, s.name, s.fn); err != nil {
			return r.report, err
		}
	}

	if cfg.Stages.BuildsArtifacts() {
		if err := p.writeManifest(r); err != nil {
			return r.report, err
		}
	}

	return r.report, nil
}

// validate checks the input files named by cfg.
func (p *Pipeline) validate(cfg domain.BuildConfiguration) error {
	checks := []struct {
		path     string
		required bool
		missing  error
	}{
		{cfg.Program, true, domain.ErrSourceNotFound},
		{cfg.DriverProgram, cfg.Stages.Executable, domain.ErrDriverProgramNotFound},
		{cfg.SnoopFile, cfg.SnoopFile != "", domain.ErrSnoopFileNotFound},
	}
	for _, c := range checks {
		if !c.required {
			continue
		}
		ok, err := p.verifier.FileExists(c.path)
		if err != nil {
			return errors.Join(domain.ErrFilesystem, err)
		}
		if !ok {
			return errors.Join(domain.ErrConfiguration, zerr.With(c.missing, "path", c.path))
		}
	}
	return nil
}

// prepareEnvironment probes the runtime and locates the C compiler when the
// selected stages need them.
func (p *Pipeline) prepareEnvironment(ctx context.Context, r *run) error {
	cfg := r.cfg

	if cfg.Stages.NeedsRuntime() {
		rt, err := p.probe.Probe(ctx, cfg.Runtime.Path)
		if err != nil {
			return errors.Join(domain.ErrEnvironment, err)
		}
		if err := composer.CheckInvocation(rt); err != nil {
			return errors.Join(domain.ErrConfiguration, err)
		}
		p.logger.Debug("using julia " + rt.Version + " (" + rt.Invocation[0] + ")")
		r.rt = rt
	}

	if cfg.Stages.NeedsCompiler() {
		cc := cfg.Toolchain.CC
		if cc == "" {
			cc = cfg.Platform.DefaultCompiler(r.rt.WordSize)
		}
		env := composer.StrategyFor(cfg.Platform).Env(r.rt, cfg.Toolchain.Path)
		path, err := p.executor.LookPath(cc, env)
		if err != nil {
			err = zerr.With(zerr.Wrap(err, domain.ErrCompilerNotFound.Error()), "cc", cc)
			return errors.Join(domain.ErrEnvironment, err)
		}
		p.logger.Debug("using C compiler " + path)
		r.cc = cc
	}

	r.paths = domain.NewArtifactPaths(cfg.OutName, cfg.Platform, r.rt)
	r.report.Artifacts = r.paths
	return nil
}

// stageFunc runs one stage. It reports cached when the stage had nothing to do.
type stageFunc func(ctx context.Context, r *run, v ports.Vertex) (cached bool, err error)

func (p *Pipeline) stage(ctx context.Context, r *run, name string, fn stageFunc) error {
	ctx, v := p.telemetry.Record(ctx, name)

	cached, err := fn(ctx, r, v)
	if err == nil && cached {
		v.Cached()
	}
	v.Complete(err)
	if err != nil {
		return err
	}

	r.report.Stages = append(r.report.Stages, name)
	return nil
}

// exec runs cmd with its output recorded on v.
func (p *Pipeline) exec(ctx context.Context, v ports.Vertex, cmd domain.Command) error {
	line := shellquote.Join(cmd.Argv()...)
	p.logger.Debug(line)
	v.Log(domain.LogLevelDebug, line)
	return p.executor.Execute(ctx, cmd, v.Stdout(), v.Stderr())
}

func stageError(stage string, sentinel, err error) error {
	err = zerr.With(zerr.Wrap(err, sentinel.Error()), "stage", stage)
	return errors.Join(domain.ErrStageFailed, err)
}

func (p *Pipeline) clean(_ context.Context, r *run, _ ports.Vertex) (bool, error) {
	removed, err := p.stager.Clean(r.cfg.BuildDir)
	if err != nil {
		return false, errors.Join(domain.ErrFilesystem, err)
	}
	if removed {
		r.report.Clean = domain.CleanRemoved
		p.logger.Info("removed build directory " + r.cfg.BuildDir)
		return false, nil
	}
	r.report.Clean = domain.CleanDirMissing
	p.logger.Info("build directory " + r.cfg.BuildDir + " does not exist")
	return true, nil
}

func (p *Pipeline) buildObject(ctx context.Context, r *run, v ports.Vertex) (bool, error) {
	cfg := r.cfg

	if cfg.SnoopFile != "" {
		if err := p.snoop(ctx, r); err != nil {
			return false, err
		}
	}

	req := composer.ObjectRequest{
		Runtime:  r.rt,
		Options:  cfg.Runtime,
		Platform: cfg.Platform,
		Program:  r.program,
		Dir:      cfg.BuildDir,
	}
	if composer.PrimesCache(r.rt, cfg.Runtime) {
		req.CacheDir = filepath.Join(cfg.BuildDir, r.paths.CacheDir)

		cmd, err := composer.RenderObject(req)
		if err != nil {
			return false, errors.Join(domain.ErrConfiguration, err)
		}
		p.logger.Info("priming module cache " + r.paths.CacheDir)
		if err := p.exec(ctx, v, cmd); err != nil {
			return false, stageError(domain.StageObject, domain.ErrCachePrimingFailed, err)
		}
	}

	req.Output = r.paths.Object
	cmd, err := composer.RenderObject(req)
	if err != nil {
		return false, errors.Join(domain.ErrConfiguration, err)
	}
	p.logger.Info("compiling " + cfg.Program + " to " + r.paths.Object)
	if err := p.exec(ctx, v, cmd); err != nil {
		return false, stageError(domain.StageObject, domain.ErrCompilationFailed, err)
	}
	return false, nil
}

// snoop records the precompile statements of the snoop file and switches
// the compiled program to a wrapper that replays them.
func (p *Pipeline) snoop(ctx context.Context, r *run) error {
	cfg := r.cfg
	precompile := filepath.Join(cfg.BuildDir, domain.PrecompileScriptName)

	p.logger.Info("snooping " + cfg.SnoopFile)
	if err := p.snooper.Snoop(ctx, r.rt, cfg.SnoopFile, precompile, cfg.BuildDir); err != nil {
		return stageError(domain.StageObject, domain.ErrSnoopFailed, err)
	}

	wrapper := filepath.Join(cfg.BuildDir, domain.SnoopMainName)
	if err := p.stager.WriteFile(wrapper, composer.SnoopMain(cfg.Program, precompile)); err != nil {
		return errors.Join(domain.ErrFilesystem, err)
	}
	r.program = wrapper
	return nil
}

func (p *Pipeline) linkRequest(r *run) composer.LinkRequest {
	cfg := r.cfg
	flags := domain.BuildFlags(
		r.rt.BaseFlags,
		domain.BitnessFlag(r.rt.Arch, r.rt.WordSize),
		cfg.Runtime.Optimize,
		cfg.Runtime.Debug,
		cfg.Toolchain.Flags,
	)
	return composer.LinkRequest{
		CC:            r.cc,
		Runtime:       r.rt,
		Platform:      cfg.Platform,
		Paths:         r.paths,
		Flags:         flags,
		ToolchainPath: cfg.Toolchain.Path,
		InitShared:    cfg.Stages.InitShared,
		Driver:        cfg.DriverProgram,
		Dir:           cfg.BuildDir,
	}
}

// requireArtifact fails stage when name is missing from the build directory.
func (p *Pipeline) requireArtifact(r *run, stage, name string) error {
	path := filepath.Join(r.cfg.BuildDir, name)
	ok, err := p.verifier.VerifyArtifacts(r.cfg.BuildDir, []string{name})
	if err != nil {
		return errors.Join(domain.ErrFilesystem, err)
	}
	if !ok {
		err := zerr.With(zerr.With(domain.ErrMissingPrerequisite, "stage", stage), "path", path)
		return errors.Join(domain.ErrStageFailed, err)
	}
	return nil
}

func (p *Pipeline) buildShared(ctx context.Context, r *run, v ports.Vertex) (bool, error) {
	if err := p.requireArtifact(r, domain.StageShared, r.paths.Object); err != nil {
		return false, err
	}

	if r.cfg.Stages.InitShared {
		path := filepath.Join(r.cfg.BuildDir, r.paths.InitSource)
		if err := p.stager.WriteFile(path, composer.InitSource()); err != nil {
			return false, errors.Join(domain.ErrFilesystem, err)
		}
	}

	p.logger.Info("linking shared library " + r.paths.Shared)
	if err := p.exec(ctx, v, composer.RenderShared(p.linkRequest(r))); err != nil {
		return false, stageError(domain.StageShared, domain.ErrLinkingFailed, err)
	}
	return false, nil
}

func (p *Pipeline) buildExecutable(ctx context.Context, r *run, v ports.Vertex) (bool, error) {
	if err := p.requireArtifact(r, domain.StageExecutable, r.paths.Shared); err != nil {
		return false, err
	}

	p.logger.Info("linking executable " + r.paths.Executable)
	if err := p.exec(ctx, v, composer.RenderExecutable(p.linkRequest(r))); err != nil {
		return false, stageError(domain.StageExecutable, domain.ErrLinkingFailed, err)
	}
	return false, nil
}

func (p *Pipeline) removeTemp(_ context.Context, r *run, _ ports.Vertex) (bool, error) {
	removed, err := p.stager.RemoveTemp(r.cfg.BuildDir, r.paths.ObjectExt, domain.CacheDirPrefix)
	if err != nil {
		return false, errors.Join(domain.ErrFilesystem, err)
	}
	r.report.Removed = append(r.report.Removed, removed...)
	if len(removed) == 0 {
		p.logger.Info("no temporary files to remove")
		return true, nil
	}
	p.logger.Info("removed " + strings.Join(removed, ", "))
	return false, nil
}

func (p *Pipeline) copyRuntimeLibs(_ context.Context, r *run, _ ports.Vertex) (bool, error) {
	dlext := r.rt.DLExt
	if dlext == "" {
		dlext = strings.TrimPrefix(r.cfg.Platform.SharedLibExt(), ".")
	}

	libs, err := p.stager.RuntimeLibraries(r.rt.LibraryDirs(), r.cfg.Platform, dlext)
	if err != nil {
		return false, errors.Join(domain.ErrFilesystem, err)
	}
	return p.copyInto(r, libs, "runtime libraries")
}

func (p *Pipeline) copyUserFiles(_ context.Context, r *run, _ ports.Vertex) (bool, error) {
	return p.copyInto(r, r.cfg.CopyFiles, "files")
}

func (p *Pipeline) copyInto(r *run, files []string, what string) (bool, error) {
	copied, err := p.stager.CopyFiles(files, r.cfg.BuildDir)
	if err != nil {
		return false, errors.Join(domain.ErrFilesystem, err)
	}
	r.report.Copied = append(r.report.Copied, copied...)
	if len(copied) == 0 {
		p.logger.Info("no " + what + " to copy")
		return true, nil
	}
	for _, name := range copied {
		p.logger.Debug("copied " + name)
	}
	p.logger.Info("copied " + strconv.Itoa(len(copied)) + " " + what)
	return false, nil
}
