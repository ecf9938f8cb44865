package shell_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/jlc/internal/adapters/shell"
	"go.trai.ch/jlc/internal/core/domain"
	"go.trai.ch/jlc/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestExecutor_Execute_MultiLineOutput(t *testing.T) {
	skipWithoutShell(t)
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	gomock.InOrder(
		mockLogger.EXPECT().Info("line1"),
		mockLogger.EXPECT().Info("line2"),
	)

	executor := shell.NewExecutor(mockLogger)
	cmd := domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo line1; echo line2"},
		Dir:  t.TempDir(),
	}

	err := executor.Execute(context.Background(), cmd, io.Discard, io.Discard)
	require.NoError(t, err)
}

func TestExecutor_Execute_FragmentedOutput(t *testing.T) {
	skipWithoutShell(t)
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("part1part2").Times(1)

	executor := shell.NewExecutor(mockLogger)
	cmd := domain.Command{
		Name: "sh",
		Args: []string{"-c", "printf part1; sleep 0.1; echo part2"},
		Dir:  t.TempDir(),
	}

	err := executor.Execute(context.Background(), cmd, nil, nil)
	require.NoError(t, err)
}

func TestExecutor_Execute_TrailingPartialLineIsFlushed(t *testing.T) {
	skipWithoutShell(t)
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("no newline").Times(1)

	executor := shell.NewExecutor(mockLogger)
	cmd := domain.Command{Name: "sh", Args: []string{"-c", "printf 'no newline'"}}

	require.NoError(t, executor.Execute(context.Background(), cmd, nil, nil))
}

func TestExecutor_Execute_StderrIsWarning(t *testing.T) {
	skipWithoutShell(t)
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("to stdout")
	mockLogger.EXPECT().Warn("to stderr")

	var stdout, stderr bytes.Buffer
	executor := shell.NewExecutor(mockLogger)
	cmd := domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo to stdout; echo to stderr >&2"},
	}

	require.NoError(t, executor.Execute(context.Background(), cmd, &stdout, &stderr))
	assert.Equal(t, "to stdout\n", stdout.String())
	assert.Equal(t, "to stderr\n", stderr.String())
}

func TestExecutor_Execute_EnvironmentOverlay(t *testing.T) {
	skipWithoutShell(t)
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("test-value-123").Times(1)

	executor := shell.NewExecutor(mockLogger)
	cmd := domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo $MY_TEST_VAR"},
		Env:  []string{"MY_TEST_VAR=test-value-123"},
	}

	require.NoError(t, executor.Execute(context.Background(), cmd, nil, nil))
}

func TestExecutor_Execute_WorkingDirectory(t *testing.T) {
	skipWithoutShell(t)
	ctrl := gomock.NewController(t)

	dir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).Times(1)

	var stdout bytes.Buffer
	executor := shell.NewExecutor(mockLogger)
	cmd := domain.Command{Name: "sh", Args: []string{"-c", "pwd -P"}, Dir: dir}

	require.NoError(t, executor.Execute(context.Background(), cmd, &stdout, nil))
	assert.Equal(t, resolved+"\n", stdout.String())
}

func TestExecutor_Execute_ToolchainPathIsPrepended(t *testing.T) {
	skipWithoutShell(t)
	ctrl := gomock.NewController(t)

	toolDir := t.TempDir()
	script := filepath.Join(toolDir, "fakecc")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho fake compiler $@\n"), 0o755)) //nolint:gosec // test script

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("fake compiler -shared").Times(1)

	executor := shell.NewExecutor(mockLogger)
	cmd := domain.Command{
		Name: "fakecc",
		Args: []string{"-shared"},
		Env:  []string{"PATH=" + toolDir},
	}

	require.NoError(t, executor.Execute(context.Background(), cmd, nil, nil))
}

func TestExecutor_Execute_InvalidCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	executor := shell.NewExecutor(mockLogger)
	cmd := domain.Command{Name: "nonexistent-command-xyz123", Dir: t.TempDir()}

	err := executor.Execute(context.Background(), cmd, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command failed")
}

func TestExecutor_Execute_CommandFailure(t *testing.T) {
	skipWithoutShell(t)
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	executor := shell.NewExecutor(mockLogger)
	cmd := domain.Command{Name: "sh", Args: []string{"-c", "exit 42"}}

	err := executor.Execute(context.Background(), cmd, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "command failed")
}

func TestExecutor_Execute_EmptyCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	executor := shell.NewExecutor(mockLogger)
	require.NoError(t, executor.Execute(context.Background(), domain.Command{}, nil, nil))
}

func TestExecutor_Execute_ContextCanceled(t *testing.T) {
	skipWithoutShell(t)
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	executor := shell.NewExecutor(mockLogger)
	err := executor.Execute(ctx, domain.Command{Name: "sh", Args: []string{"-c", "sleep 5"}}, nil, nil)
	require.Error(t, err)
}

func TestExecutor_LookPath(t *testing.T) {
	skipWithoutShell(t)
	ctrl := gomock.NewController(t)
	executor := shell.NewExecutor(mocks.NewMockLogger(ctrl))

	toolDir := t.TempDir()
	tool := filepath.Join(toolDir, "jlc-test-fake-cc")
	require.NoError(t, os.WriteFile(tool, []byte("#!/bin/sh\n"), 0o755)) //nolint:gosec // test script

	// Not on the inherited PATH.
	_, err := executor.LookPath("jlc-test-fake-cc", nil)
	require.Error(t, err)

	got, err := executor.LookPath("jlc-test-fake-cc", []string{"PATH=" + toolDir})
	require.NoError(t, err)
	assert.Equal(t, tool, got)

	got, err = executor.LookPath(tool, nil)
	require.NoError(t, err)
	assert.Equal(t, tool, got)

	_, err = executor.LookPath(filepath.Join(toolDir, "missing"), nil)
	require.Error(t, err)
}

func TestExecutor_Execute_CaptureSkipsLog(t *testing.T) {
	skipWithoutShell(t)
	ctrl := gomock.NewController(t)

	// No Info expectation: captured stdout must not reach the logger.
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn("still logged")

	var stdout bytes.Buffer
	executor := shell.NewExecutor(mockLogger)
	cmd := domain.Command{
		Name:    "sh",
		Args:    []string{"-c", "echo version=1.0.5; echo still logged >&2"},
		Capture: true,
	}

	require.NoError(t, executor.Execute(context.Background(), cmd, &stdout, nil))
	assert.Equal(t, "version=1.0.5\n", stdout.String())
}
