// Package config provides the project configuration loader for jlc.
package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/jlc/internal/core/domain"
	"go.trai.ch/jlc/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration file at path. An empty path selects jlc.yaml
// in dir and a missing default file yields zero Options. Relative paths in
// the file resolve against the file's directory, except builddir which
// stays relative to the program.
func (l *Loader) Load(dir, path string) (domain.Options, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, domain.ConfigFileName)
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if !explicit {
				return domain.Options{}, nil
			}
			return domain.Options{}, zerr.With(domain.ErrConfigNotFound, "path", path)
		}
		return domain.Options{}, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	file, err := parse(data)
	if err != nil {
		return domain.Options{}, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}

	l.Logger.Debug("using config file " + path)
	return file.toOptions(filepath.Dir(path)), nil
}

func parse(data []byte) (Jlcfile, error) {
	var file Jlcfile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return Jlcfile{}, err
	}
	return file, nil
}

func (f Jlcfile) toOptions(base string) domain.Options {
	copyFiles := make([]string, 0, len(f.CopyFiles))
	for _, c := range f.CopyFiles {
		copyFiles = append(copyFiles, anchor(base, c))
	}
	if len(copyFiles) == 0 {
		copyFiles = nil
	}

	return domain.Options{
		Program:       anchor(base, f.Program),
		BuildDir:      f.BuildDir,
		OutName:       f.OutName,
		DriverProgram: anchor(base, f.Driver),
		SnoopFile:     anchor(base, f.SnoopFile),
		CopyFiles:     copyFiles,

		Verbose: f.Verbose,
		Quiet:   f.Quiet,

		Clean:           f.Stages.Clean,
		AutoDeps:        f.Stages.AutoDeps,
		Object:          f.Stages.Object,
		Shared:          f.Stages.Shared,
		InitShared:      f.Stages.InitShared,
		Executable:      f.Stages.Executable,
		RemoveTemp:      f.Stages.RemoveTemp,
		CopyRuntimeLibs: f.Stages.CopyRuntimeLibs,
		Release:         f.Stages.Release,
		FullRelease:     f.Stages.FullRelease,

		Runtime:         anchorTool(base, f.Runtime.Path),
		SysImage:        f.Runtime.SysImage,
		CPUTarget:       f.Runtime.CPUTarget,
		Compile:         f.Runtime.Compile,
		Depwarn:         f.Runtime.Depwarn,
		Precompiled:     f.Runtime.Precompiled,
		CompiledModules: f.Runtime.CompiledModules,
		Home:            f.Runtime.Home,
		StartupFile:     f.Runtime.StartupFile,
		HandleSignals:   f.Runtime.HandleSignals,
		Optimize:        f.Runtime.Optimize,
		Debug:           f.Runtime.Debug,
		Inline:          f.Runtime.Inline,
		CheckBounds:     f.Runtime.CheckBounds,
		MathMode:        f.Runtime.MathMode,
		PrimeCache:      f.Runtime.PrimeCache,

		CC:            anchorTool(base, f.Toolchain.CC),
		CCFlags:       f.Toolchain.Flags,
		ToolchainPath: f.Toolchain.Path,
		Platform:      f.Toolchain.Platform,
	}
}

// anchor makes a relative path absolute against base.
func anchor(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// anchorTool anchors a tool given as a relative path and leaves bare
// command names to the PATH lookup.
func anchorTool(base, tool string) string {
	if !strings.ContainsAny(tool, `/\`) {
		return tool
	}
	return anchor(base, tool)
}
