// Package shell provides the subprocess executor adapter.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"go.trai.ch/jlc/internal/core/domain"
	"go.trai.ch/jlc/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs cmd and waits for it to exit.
// The environment is os.Environ() with cmd.Env applied on top. PATH entries
// of cmd.Env are prepended to the inherited PATH.
//
// Stdout lines are logged at info level and stderr lines at warn level.
// A capturing command writes stdout to stdout only.
func (e *Executor) Execute(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error {
	if cmd.Name == "" {
		return nil
	}

	cmdEnv := resolveEnvironment(os.Environ(), cmd.Env)

	// Resolve bare names against the overlaid PATH, not the parent's.
	executable := cmd.Name
	if isBareName(cmd.Name) {
		if lp, err := lookPath(cmd.Name, cmdEnv); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, cmd.Args...) //nolint:gosec // composed command line

	// exec.CommandContext sets Args[0] to the executable path.
	// Preserve the name as invoked.
	if len(c.Args) > 0 {
		c.Args[0] = cmd.Name
	}

	if cmd.Dir != "" {
		c.Dir = cmd.Dir
	}
	c.Env = cmdEnv

	outLog := &logWriter{emit: e.logger.Info}
	errLog := &logWriter{emit: e.logger.Warn}
	c.Stdout = tee(outLog, stdout)
	c.Stderr = tee(errLog, stderr)
	if cmd.Capture {
		c.Stdout = stdout
	}

	err := c.Run()
	outLog.Flush()
	errLog.Flush()

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}

		err = zerr.With(zerr.Wrap(err, "command failed"), "command", cmd.Name)
		return zerr.With(err, "exit_code", exitCode)
	}

	return nil
}

// LookPath resolves name the way Execute would with the env overlay applied.
func (e *Executor) LookPath(name string, env []string) (string, error) {
	if !isBareName(name) {
		if err := findExecutable(name); err != nil {
			return "", zerr.With(zerr.Wrap(err, "executable not found"), "name", name)
		}
		return name, nil
	}

	path, err := lookPath(name, resolveEnvironment(os.Environ(), env))
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "executable not found"), "name", name)
	}
	return path, nil
}

func tee(log io.Writer, extra io.Writer) io.Writer {
	if extra == nil {
		return log
	}
	return io.MultiWriter(log, extra)
}

// logWriter forwards complete lines to emit. A trailing partial line is
// held back until the next newline or Flush.
type logWriter struct {
	mu   sync.Mutex
	emit func(string)
	buf  bytes.Buffer
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Incomplete line: put it back.
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.emit(strings.TrimRight(line, "\r\n"))
	}
	return len(p), nil
}

// Flush emits any buffered partial line.
func (w *logWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		w.emit(strings.TrimRight(w.buf.String(), "\r"))
		w.buf.Reset()
	}
}

// resolveEnvironment merges the overlay into the system environment.
// PATH from the overlay is prepended, every other key replaces the system value.
func resolveEnvironment(sysEnv, overlay []string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overlay))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}

	for _, entry := range overlay {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if k == "PATH" {
			if sysPath := envMap["PATH"]; sysPath != "" {
				v = v + string(os.PathListSeparator) + sysPath
			}
		}
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	sort.Strings(result)
	return result
}

func isBareName(name string) bool {
	return !filepath.IsAbs(name) && !strings.ContainsAny(name, `/\`)
}

// lookPath searches for an executable in the directories named by the PATH environment variable.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	candidates := []string{file}
	if runtime.GOOS == "windows" && filepath.Ext(file) == "" {
		candidates = append(candidates, file+".exe")
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		for _, name := range candidates {
			p := filepath.Join(dir, name)
			if err := findExecutable(p); err == nil {
				return p, nil
			}
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && (m&0o111 != 0 || runtime.GOOS == "windows") {
		return nil
	}
	return os.ErrPermission
}
