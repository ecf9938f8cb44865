// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"strconv"
	"sync/atomic"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/jlc/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry on a progrock tape. Each pipeline stage
// becomes one vertex.
type Recorder struct {
	w   progrock.Writer
	rec *progrock.Recorder
	seq atomic.Uint64
}

// New creates a new Recorder with a default tape.
func New() *Recorder {
	return NewRecorder(progrock.NewTape())
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer) *Recorder {
	return &Recorder{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Record starts recording a new vertex named name.
func (r *Recorder) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	// Stages may repeat a name, the sequence keeps their digests distinct.
	d := digest.FromString(strconv.FormatUint(r.seq.Add(1), 10) + ":" + name)
	vertex := &StageVertex{stage: name, vertex: r.rec.Vertex(d, name)}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
