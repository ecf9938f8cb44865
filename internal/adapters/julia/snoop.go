package julia

import (
	"context"

	"go.trai.ch/jlc/internal/core/domain"
	"go.trai.ch/jlc/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Snooper = (*Snooper)(nil)

// Snooper implements ports.Snooper by running the snoop script with
// --trace-compile, which records every method the script compiles.
type Snooper struct {
	executor ports.Executor
}

// NewSnooper creates a new Snooper.
func NewSnooper(executor ports.Executor) *Snooper {
	return &Snooper{executor: executor}
}

// Snoop runs script in dir and writes the precompile statements to output.
func (s *Snooper) Snoop(ctx context.Context, rt domain.RuntimeInfo, script, output, dir string) error {
	if len(rt.Invocation) == 0 {
		return domain.ErrIncompatibleRuntime
	}

	cmd := domain.Command{
		Name: rt.Invocation[0],
		Args: []string{"--startup-file=no", "--trace-compile=" + output, script},
		Dir:  dir,
	}
	if err := s.executor.Execute(ctx, cmd, nil, nil); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSnoopFailed.Error()), "script", script)
	}
	return nil
}
