package composer_test

import (
	"fmt"
	"strings"

	"go.trai.ch/jlc/internal/core/domain"
)

var (
	modernRuntime = domain.RuntimeInfo{
		Version:  "1.0.5",
		WordSize: 64,
		Arch:     "x86_64",
		BinDir:   "/opt/julia/bin",
		Invocation: []string{
			"/opt/julia/bin/julia", "-Cnative", "-J/opt/julia/lib/julia/sys.so", "--compile=yes", "--depwarn=yes",
		},
	}

	legacyRuntime = domain.RuntimeInfo{
		Version:  "0.6.4",
		WordSize: 64,
		Arch:     "x86_64",
		BinDir:   "/usr/bin",
		Invocation: []string{
			"/usr/bin/julia", "-Cx86-64", "-J/usr/lib/julia/sys.so", "--compile=yes", "--depwarn=yes",
		},
	}

	baseFlags = domain.FlagSet{"-I/opt/julia/include/julia", "-L/opt/julia/lib", "-ljulia"}
)

// dump renders a command one argument per line for golden comparison.
func dump(cmd domain.Command) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "name: %s\n", cmd.Name)
	fmt.Fprintf(&b, "dir: %s\n", cmd.Dir)
	for _, e := range cmd.Env {
		fmt.Fprintf(&b, "env: %s\n", e)
	}
	b.WriteString("args:\n")
	for _, a := range cmd.Args {
		fmt.Fprintf(&b, "  %s\n", a)
	}
	return []byte(b.String())
}
