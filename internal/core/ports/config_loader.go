package ports

import "go.trai.ch/jlc/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration file.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path. An empty path looks for
	// the default file in dir and returns zero Options when there is none.
	Load(dir, path string) (domain.Options, error)
}
