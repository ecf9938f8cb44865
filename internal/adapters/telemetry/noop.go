// Package telemetry holds telemetry implementations that need no backend.
package telemetry

import (
	"context"
	"io"

	"go.trai.ch/jlc/internal/core/domain"
	"go.trai.ch/jlc/internal/core/ports"
)

var _ ports.Telemetry = Noop{}

// Noop is a ports.Telemetry that records nothing.
type Noop struct{}

// Record returns ctx carrying a vertex that discards everything.
func (Noop) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	v := NoopVertex{}
	return ports.ContextWithVertex(ctx, v), v
}

// Close does nothing.
func (Noop) Close() error { return nil }

// NoopVertex is a ports.Vertex that discards output.
type NoopVertex struct{}

// Stdout returns io.Discard.
func (NoopVertex) Stdout() io.Writer { return io.Discard }

// Stderr returns io.Discard.
func (NoopVertex) Stderr() io.Writer { return io.Discard }

// Log does nothing.
func (NoopVertex) Log(domain.LogLevel, string) {}

// Complete does nothing.
func (NoopVertex) Complete(error) {}

// Cached does nothing.
func (NoopVertex) Cached() {}
