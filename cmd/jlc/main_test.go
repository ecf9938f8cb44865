package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name         string
		setup        func(t *testing.T, dir string)
		args         []string
		expectedExit int
	}{
		{
			name:         "Version",
			args:         []string{"version"},
			expectedExit: 0,
		},
		{
			name:         "Nothing to do",
			setup:        writeProgram,
			args:         []string{"build", "hello.jl"},
			expectedExit: 0,
		},
		{
			name:         "Missing program",
			args:         []string{"build", "-o", "missing.jl"},
			expectedExit: 1,
		},
		{
			name:         "No program",
			args:         []string{"build", "-o"},
			expectedExit: 1,
		},
		{
			name: "Invalid config file",
			setup: func(t *testing.T, dir string) {
				t.Helper()
				writeProgram(t, dir)
				require.NoError(t, os.WriteFile(filepath.Join(dir, "jlc.yaml"), []byte("bogus: [\n"), 0o600))
			},
			args:         []string{"build", "-o", "hello.jl"},
			expectedExit: 1,
		},
		{
			name:         "Status without build",
			args:         []string{"status"},
			expectedExit: 0,
		},
		{
			name:         "Unknown command",
			args:         []string{"frobnicate"},
			expectedExit: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.setup != nil {
				tt.setup(t, dir)
			}
			t.Chdir(dir)
			t.Setenv("NO_COLOR", "1")

			var stderr bytes.Buffer
			exitCode := run(tt.args, &stderr)
			assert.Equal(t, tt.expectedExit, exitCode)
			assert.Empty(t, stderr.String())
		})
	}
}

func writeProgram(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.jl"), []byte("println(\"hello\")\n"), 0o600))
}
