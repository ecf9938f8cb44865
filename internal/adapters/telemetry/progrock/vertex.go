package progrock

import (
	"fmt"
	"io"
	"sync"

	"github.com/vito/progrock"
	"go.trai.ch/jlc/internal/core/domain"
)

// StageVertex is the progrock vertex of one pipeline stage. Subprocess
// output of the stage is streamed into it.
type StageVertex struct {
	stage  string
	vertex *progrock.VertexRecorder
	once   sync.Once
}

// Stage returns the name of the stage this vertex records.
func (v *StageVertex) Stage() string {
	return v.stage
}

// Stdout receives the standard output of the stage subprocesses.
func (v *StageVertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Stderr receives the error output of the stage subprocesses.
func (v *StageVertex) Stderr() io.Writer {
	return v.vertex.Stderr()
}

// Log records msg on the stage. Warnings and errors go to the error stream.
func (v *StageVertex) Log(level domain.LogLevel, msg string) {
	w := v.vertex.Stdout()
	if level >= domain.LogLevelWarn {
		w = v.vertex.Stderr()
	}
	_, _ = fmt.Fprintf(w, "[%s] %s\n", level.String(), msg)
}

// Complete finishes the stage. A failed stage gets its error written to the
// error stream. Only the first call has an effect.
func (v *StageVertex) Complete(err error) {
	v.once.Do(func() {
		if err != nil {
			_, _ = fmt.Fprintf(v.vertex.Stderr(), "%s failed: %v\n", v.stage, err)
		}
		v.vertex.Done(err)
	})
}

// Cached marks a stage that had nothing to do, such as a copy with every
// file already up to date.
func (v *StageVertex) Cached() {
	v.vertex.Cached()
}
