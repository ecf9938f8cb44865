// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/jlc/internal/core/domain"
)

// Executor runs external programs.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs cmd to completion and blocks until it exits.
	//
	// Output is always forwarded to the logger line by line. When stdout or
	// stderr are not nil the raw streams are copied there as well.
	//
	// It returns an error if the process cannot be started or exits non-zero.
	Execute(ctx context.Context, cmd domain.Command, stdout, stderr io.Writer) error

	// LookPath resolves name against the PATH of the inherited environment
	// extended by the env overlay.
	LookPath(name string, env []string) (string, error)
}
