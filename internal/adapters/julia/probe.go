// Package julia provides the adapters that talk to the Julia runtime itself:
// the layout probe and the snoop pre-pass.
package julia

import (
	"bufio"
	"bytes"
	"context"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"go.trai.ch/jlc/internal/core/domain"
	"go.trai.ch/jlc/internal/core/ports"
	"go.trai.ch/zerr"
)

// probeScript prints the runtime layout as key=value lines. The canonical
// invocation is printed one element per cmd= line.
const probeScript = `import Libdl
println("version=", VERSION)
println("word_size=", Sys.WORD_SIZE)
println("arch=", Sys.ARCH)
println("bindir=", Sys.BINDIR)
println("shlibdir=", abspath(Sys.BINDIR, Base.LIBDIR))
println("private_shlibdir=", abspath(Sys.BINDIR, Base.PRIVATE_LIBDIR))
println("dlext=", Libdl.dlext)
println("config_script=", joinpath(Sys.BINDIR, Base.DATAROOTDIR, "julia", "julia-config.jl"))
foreach(a -> println("cmd=", a), Base.julia_cmd().exec)
`

var _ ports.RuntimeProbe = (*Probe)(nil)

// Probe implements ports.RuntimeProbe by running the runtime.
type Probe struct {
	executor ports.Executor
}

// NewProbe creates a new Probe.
func NewProbe(executor ports.Executor) *Probe {
	return &Probe{executor: executor}
}

// Probe locates the runtime at path and asks it for its version, layout,
// canonical invocation and embedding flags.
func (p *Probe) Probe(ctx context.Context, path string) (domain.RuntimeInfo, error) {
	exe, err := p.executor.LookPath(path, nil)
	if err != nil {
		return domain.RuntimeInfo{}, zerr.With(zerr.Wrap(err, domain.ErrRuntimeNotFound.Error()), "path", path)
	}

	var out bytes.Buffer
	cmd := domain.Command{
		Name:    exe,
		Args:    []string{"--startup-file=no", "-e", probeScript},
		Capture: true,
	}
	if err := p.executor.Execute(ctx, cmd, &out, nil); err != nil {
		return domain.RuntimeInfo{}, zerr.With(zerr.Wrap(err, domain.ErrRuntimeProbeFailed.Error()), "path", exe)
	}

	info, err := parseProbe(out.Bytes())
	if err != nil {
		return domain.RuntimeInfo{}, zerr.With(zerr.Wrap(err, domain.ErrRuntimeProbeFailed.Error()), "path", exe)
	}

	if info.ConfigScript != "" {
		flags, err := p.allFlags(ctx, exe, info.ConfigScript)
		if err != nil {
			return domain.RuntimeInfo{}, err
		}
		info.BaseFlags = flags
	}

	return info, nil
}

func (p *Probe) allFlags(ctx context.Context, exe, script string) (domain.FlagSet, error) {
	var out bytes.Buffer
	cmd := domain.Command{
		Name:    exe,
		Args:    []string{"--startup-file=no", script, "--allflags"},
		Capture: true,
	}
	if err := p.executor.Execute(ctx, cmd, &out, nil); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRuntimeProbeFailed.Error()), "script", script)
	}

	words, err := shellquote.Split(strings.TrimSpace(out.String()))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRuntimeProbeFailed.Error()), "script", script)
	}
	return domain.FlagSet(words), nil
}

func parseProbe(data []byte) (domain.RuntimeInfo, error) {
	var info domain.RuntimeInfo
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimRight(scanner.Text(), "\r"), "=")
		if !ok {
			continue
		}
		seen[key] = true

		switch key {
		case "version":
			info.Version = value
		case "word_size":
			n, err := strconv.Atoi(value)
			if err != nil {
				return domain.RuntimeInfo{}, zerr.With(zerr.Wrap(err, "invalid word size"), "value", value)
			}
			info.WordSize = n
		case "arch":
			info.Arch = value
		case "bindir":
			info.BinDir = value
		case "shlibdir":
			info.SharedLibDir = value
		case "private_shlibdir":
			info.PrivateLibDir = value
		case "dlext":
			info.DLExt = value
		case "config_script":
			info.ConfigScript = value
		case "cmd":
			info.Invocation = append(info.Invocation, value)
		}
	}
	if err := scanner.Err(); err != nil {
		return domain.RuntimeInfo{}, err
	}

	for _, key := range []string{"version", "word_size", "arch", "bindir", "cmd"} {
		if !seen[key] {
			return domain.RuntimeInfo{}, zerr.With(zerr.New("missing probe key"), "key", key)
		}
	}
	return info, nil
}
