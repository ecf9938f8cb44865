package ports

import "go.trai.ch/jlc/internal/core/domain"

// Logger defines the interface for logging.
//
//go:generate go run go.uber.org/mock/mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warn(msg string)
	Error(err error)
	// SetLevel sets the minimum level that is printed.
	SetLevel(level domain.LogLevel)
}
