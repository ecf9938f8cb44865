// Package composer turns typed stage requests into runtime and C compiler
// command lines.
package composer

import (
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/jlc/internal/core/domain"
	"go.trai.ch/zerr"
)

// invocationPrefixes are the expected prefixes of the canonical invocation
// elements after the executable, in order.
var invocationPrefixes = []string{"-C", "-J", "--compile", "--depwarn"}

// ObjectRequest describes one runtime compilation of the program.
type ObjectRequest struct {
	Runtime  domain.RuntimeInfo
	Options  domain.RuntimeOptions
	Platform domain.Platform
	// Program is the absolute path of the program to include.
	Program string
	// Output is the object or archive file. Empty renders a cache priming run.
	Output string
	// CacheDir is the absolute local module cache pushed onto the depot path.
	// Empty leaves the depot path alone.
	CacheDir string
	// Dir is the working directory of the run.
	Dir string
}

// CheckInvocation reports whether the runtime's canonical invocation has the
// shape RenderObject relies on: the executable followed by the CPU target,
// system image, compile mode and deprecation warning flags.
func CheckInvocation(rt domain.RuntimeInfo) error {
	inv := rt.Invocation
	ok := len(inv) == len(invocationPrefixes)+1
	for i := 0; ok && i < len(invocationPrefixes); i++ {
		ok = strings.HasPrefix(inv[i+1], invocationPrefixes[i])
	}
	if !ok {
		return zerr.With(domain.ErrIncompatibleRuntime, "invocation", strings.Join(inv, " "))
	}
	return nil
}

// PrimesCache reports whether a cache priming run precedes the compilation.
func PrimesCache(rt domain.RuntimeInfo, opts domain.RuntimeOptions) bool {
	return opts.PrimeCache && rt.SupportsCachePriming() && opts.CompiledModules != "no"
}

// RenderObject renders the runtime command for req.
func RenderObject(req ObjectRequest) (domain.Command, error) {
	if err := CheckInvocation(req.Runtime); err != nil {
		return domain.Command{}, err
	}

	inv := req.Runtime.Invocation
	opts := req.Options
	modern := req.Runtime.ModernFlags()

	args := slices.Clone(inv[1:])
	if opts.CPUTarget != "" {
		args[0] = "-C" + opts.CPUTarget
	}
	if opts.SysImage != "" {
		args[1] = "-J" + opts.SysImage
	}
	if opts.Compile != "" {
		args[2] = "--compile=" + opts.Compile
	}
	if opts.Depwarn != "" {
		args[3] = "--depwarn=" + opts.Depwarn
	}

	appendSet := func(flag, value string) {
		if value != "" {
			args = append(args, flag+value)
		}
	}

	if modern {
		appendSet("--sysimage-native-code=", opts.Precompiled)
		appendSet("--compiled-modules=", opts.CompiledModules)
	} else {
		appendSet("--precompiled=", opts.Precompiled)
		appendSet("--compilecache=", opts.CompiledModules)
	}
	appendSet("-H=", opts.Home)
	appendSet("--startup-file=", opts.StartupFile)
	appendSet("--handle-signals=", opts.HandleSignals)
	if opts.Optimize != nil {
		args = append(args, "-O"+strconv.Itoa(*opts.Optimize))
	}
	if opts.Debug != nil {
		args = append(args, "-g"+strconv.Itoa(*opts.Debug))
	}
	appendSet("--inline=", opts.Inline)
	appendSet("--check-bounds=", opts.CheckBounds)
	appendSet("--math-mode=", opts.MathMode)

	if req.Output != "" {
		args = append(args, "--output-o", req.Output)
	}
	args = append(args, "-e", includeExpr(req, modern))

	return domain.Command{
		Name: inv[0],
		Args: args,
		Dir:  req.Dir,
	}, nil
}

// includeExpr builds the expression that loads the program. Runtimes with
// the modern flag set need the depot and load paths initialised first.
func includeExpr(req ObjectRequest, modern bool) string {
	var b strings.Builder
	if modern {
		b.WriteString("Base.init_depot_path(); Base.init_load_path(); ")
		if req.CacheDir != "" {
			b.WriteString(`pushfirst!(DEPOT_PATH, abspath("` + escapeString(req.CacheDir) + `")); `)
		}
	}
	b.WriteString(`include("` + escapeString(req.Program) + `")`)
	return b.String()
}

var stringEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`)

// escapeString escapes s for use inside a double-quoted string literal of
// the runtime.
func escapeString(s string) string {
	return stringEscaper.Replace(s)
}
