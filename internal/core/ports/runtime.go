package ports

import (
	"context"

	"go.trai.ch/jlc/internal/core/domain"
)

// RuntimeProbe queries a language runtime installation for its layout.
//
//go:generate go run go.uber.org/mock/mockgen -source=runtime.go -destination=mocks/mock_runtime.go -package=mocks
type RuntimeProbe interface {
	// Probe runs the runtime at path and reports its version, directories,
	// canonical invocation and embedding flags.
	Probe(ctx context.Context, path string) (domain.RuntimeInfo, error)
}

// Snooper runs the precompile-statement discovery pre-pass.
type Snooper interface {
	// Snoop runs script with the runtime and writes the precompile
	// statements it traces to output.
	Snoop(ctx context.Context, rt domain.RuntimeInfo, script, output, dir string) error
}
