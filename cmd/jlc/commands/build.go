package commands

import (
	"errors"

	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/jlc/internal/app"
	"go.trai.ch/jlc/internal/core/domain"
	"go.trai.ch/zerr"
)

type boolFlag struct {
	name, short, usage string
	field              func(*domain.Options) *bool
}

type stringFlag struct {
	name, short, usage string
	field              func(*domain.Options) *string
}

type levelFlag struct {
	name, short, usage string
	field              func(*domain.Options) **int
}

var boolFlags = []boolFlag{
	{"verbose", "v", "Print every step and command line", func(o *domain.Options) *bool { return &o.Verbose }},
	{"quiet", "q", "Print nothing on success", func(o *domain.Options) *bool { return &o.Quiet }},
	{"clean", "c", "Delete the build directory first", func(o *domain.Options) *bool { return &o.Clean }},
	{"autodeps", "a", "Select the stages the requested ones depend on", func(o *domain.Options) *bool { return &o.AutoDeps }},
	{"object", "o", "Build the object file or archive", func(o *domain.Options) *bool { return &o.Object }},
	{"shared", "s", "Build the shared library", func(o *domain.Options) *bool { return &o.Shared }},
	{"init-shared", "i", "Build the shared library with runtime init entry points", func(o *domain.Options) *bool { return &o.InitShared }},
	{"executable", "e", "Build the executable", func(o *domain.Options) *bool { return &o.Executable }},
	{"rmtemp", "t", "Remove temporary build files", func(o *domain.Options) *bool { return &o.RemoveTemp }},
	{"copy-julialibs", "j", "Copy the runtime shared libraries into the build directory", func(o *domain.Options) *bool { return &o.CopyRuntimeLibs }},
	{"release", "r", "Build in release mode (-O3 -g0 unless given)", func(o *domain.Options) *bool { return &o.Release }},
	{"Release", "R", "Same as -caetjr: a relocatable release build", func(o *domain.Options) *bool { return &o.FullRelease }},
	{"prime-cache", "", "Prime a local module cache before compiling", func(o *domain.Options) *bool { return &o.PrimeCache }},
}

var stringFlags = []stringFlag{
	{"builddir", "d", "Build directory, relative to the program", func(o *domain.Options) *string { return &o.BuildDir }},
	{"outname", "n", "Base name of the output files", func(o *domain.Options) *string { return &o.OutName }},
	{"snoopfile", "", "Script whose compiled methods are precompiled into the image", func(o *domain.Options) *string { return &o.SnoopFile }},
	{"sysimage", "J", "Start-up system image", func(o *domain.Options) *string { return &o.SysImage }},
	{"precompiled", "", "Use precompiled code from the system image {yes|no}", func(o *domain.Options) *string { return &o.Precompiled }},
	{"compiled-modules", "", "Use the incremental module cache {yes|no}", func(o *domain.Options) *string { return &o.CompiledModules }},
	{"home", "H", "Directory of the runtime executable", func(o *domain.Options) *string { return &o.Home }},
	{"startup-file", "", "Load the startup file {yes|no}", func(o *domain.Options) *string { return &o.StartupFile }},
	{"handle-signals", "", "Install the runtime signal handlers {yes|no}", func(o *domain.Options) *string { return &o.HandleSignals }},
	{"compile", "", "JIT compiler mode {yes|no|all|min}", func(o *domain.Options) *string { return &o.Compile }},
	{"cpu-target", "C", "Target CPU of the generated code", func(o *domain.Options) *string { return &o.CPUTarget }},
	{"inline", "", "Respect @inline declarations {yes|no}", func(o *domain.Options) *string { return &o.Inline }},
	{"check-bounds", "", "Emit bounds checks {yes|no}", func(o *domain.Options) *string { return &o.CheckBounds }},
	{"math-mode", "", "Floating point math mode {ieee|fast}", func(o *domain.Options) *string { return &o.MathMode }},
	{"depwarn", "", "Deprecation warnings {yes|no|error}", func(o *domain.Options) *string { return &o.Depwarn }},
	{"runtime", "", "Julia executable (default $JULIA or julia)", func(o *domain.Options) *string { return &o.Runtime }},
	{"cc", "", "C compiler (default $CC or the platform compiler)", func(o *domain.Options) *string { return &o.CC }},
	{"toolchain-path", "", "Directories prepended to PATH for the C compiler", func(o *domain.Options) *string { return &o.ToolchainPath }},
	{"platform", "", "Target platform {unix|apple|windows}", func(o *domain.Options) *string { return &o.Platform }},
}

var levelFlags = []levelFlag{
	{"optimize", "O", "Optimization level {0-3}", func(o *domain.Options) **int { return &o.Optimize }},
	{"debug", "g", "Debug information level {0-2}", func(o *domain.Options) **int { return &o.Debug }},
}

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [flags] [program.jl [driver.c [builddir]]]",
		Short: "Compile a Julia program into an object, shared library or executable",
		Long: "Compile a Julia program into an object, shared library or executable.\n\n" +
			"Stages run in a fixed order: clean, object, shared, executable, rmtemp,\n" +
			"copy-runtime-libs, copy-files. Options not given on the command line are\n" +
			"read from jlc.yaml in the working directory when present.",
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			defaults, err := c.defaults()
			if err != nil {
				return err
			}

			ccFlags, err := parseCCFlags(cmd.Flags())
			if err != nil {
				return err
			}

			configPath, _ := cmd.Flags().GetString("config")
			_, err = c.app.Build(cmd.Context(), app.BuildRequest{
				ConfigPath: configPath,
				Defaults:   defaults,
				Apply: func(opts *domain.Options) {
					applyArgs(args, opts)
					applyFlags(cmd.Flags(), opts)
					if ccFlags != nil {
						opts.CCFlags = ccFlags
					}
				},
			})
			return err
		},
	}

	flags := cmd.Flags()
	for _, f := range boolFlags {
		flags.BoolP(f.name, f.short, false, f.usage)
	}
	for _, f := range stringFlags {
		flags.StringP(f.name, f.short, "", f.usage)
	}
	for _, f := range levelFlags {
		flags.IntP(f.name, f.short, 0, f.usage)
	}
	flags.StringArray("copy-files", nil, "Files to copy into the build directory (repeatable, globs allowed)")
	flags.String("cc-flags", "", "Extra C compiler flags, split like a shell would")
	flags.String("config", "", "Config file (default jlc.yaml in the working directory)")

	return cmd
}

// applyArgs maps the positional program, driver and build directory.
func applyArgs(args []string, opts *domain.Options) {
	fields := []*string{&opts.Program, &opts.DriverProgram, &opts.BuildDir}
	for i, arg := range args {
		*fields[i] = arg
	}
}

// applyFlags copies the explicitly set flags onto opts.
func applyFlags(flags *pflag.FlagSet, opts *domain.Options) {
	for _, f := range boolFlags {
		if flags.Changed(f.name) {
			*f.field(opts), _ = flags.GetBool(f.name)
		}
	}
	for _, f := range stringFlags {
		if flags.Changed(f.name) {
			*f.field(opts), _ = flags.GetString(f.name)
		}
	}
	for _, f := range levelFlags {
		if flags.Changed(f.name) {
			v, _ := flags.GetInt(f.name)
			*f.field(opts) = domain.IntPtr(v)
		}
	}
	if flags.Changed("copy-files") {
		opts.CopyFiles, _ = flags.GetStringArray("copy-files")
	}
}

func parseCCFlags(flags *pflag.FlagSet) ([]string, error) {
	if !flags.Changed("cc-flags") {
		return nil, nil
	}
	raw, _ := flags.GetString("cc-flags")
	words, err := shellquote.Split(raw)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrInvalidOption.Error()), "option", "cc-flags")
		return nil, errors.Join(domain.ErrConfiguration, err)
	}
	return words, nil
}
