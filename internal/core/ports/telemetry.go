package ports

import (
	"context"
	"io"

	"go.trai.ch/jlc/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Telemetry records the progress of pipeline stages.
type Telemetry interface {
	// Record starts a new vertex and returns a context carrying it.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	// Close flushes and closes the recording session.
	Close() error
}

// Vertex is a single recorded unit of work.
type Vertex interface {
	// Stdout returns a writer capturing the standard output of the work.
	Stdout() io.Writer
	// Stderr returns a writer capturing the error output of the work.
	Stderr() io.Writer
	// Log records a message associated with this vertex.
	Log(level domain.LogLevel, msg string)
	// Complete marks the vertex as finished, failed when err is not nil.
	Complete(err error)
	// Cached marks the vertex as having had nothing to do.
	Cached()
}

type vertexKey struct{}

// ContextWithVertex returns a copy of ctx carrying v.
func ContextWithVertex(ctx context.Context, v Vertex) context.Context {
	return context.WithValue(ctx, vertexKey{}, v)
}

// VertexFromContext returns the vertex stored in ctx, if any.
func VertexFromContext(ctx context.Context) (Vertex, bool) {
	v, ok := ctx.Value(vertexKey{}).(Vertex)
	return v, ok
}
