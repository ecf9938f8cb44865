// Package app implements the application layer for jlc.
package app

import (
	"context"
	"errors"
	"strings"

	"go.trai.ch/jlc/internal/core/domain"
	"go.trai.ch/jlc/internal/core/ports"
	"go.trai.ch/jlc/internal/engine/pipeline"
)

// Runner executes a resolved build configuration.
type Runner interface {
	Run(ctx context.Context, cfg domain.BuildConfiguration) (domain.Report, error)
}

var _ Runner = (*pipeline.Pipeline)(nil)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	runner       Runner
	logger       ports.Logger
	store        ports.ManifestStore
	verifier     ports.Verifier
	hasher       ports.Hasher
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	runner Runner,
	log ports.Logger,
	store ports.ManifestStore,
	verifier ports.Verifier,
	hasher ports.Hasher,
) *App {
	return &App{
		configLoader: loader,
		runner:       runner,
		logger:       log,
		store:        store,
		verifier:     verifier,
		hasher:       hasher,
	}
}

// BuildRequest describes one invocation of the build pipeline.
type BuildRequest struct {
	// ConfigPath names the config file. Empty selects jlc.yaml in the
	// working directory of Defaults.
	ConfigPath string
	// Defaults are the host-derived fallbacks.
	Defaults domain.Defaults
	// Apply overlays command line options onto the loaded file options.
	Apply func(*domain.Options)
}

// Build loads the configuration, resolves it and runs the pipeline.
func (a *App) Build(ctx context.Context, req BuildRequest) (domain.Report, error) {
	opts, err := a.configLoader.Load(req.Defaults.WorkDir, req.ConfigPath)
	if err != nil {
		return domain.Report{}, errors.Join(domain.ErrConfiguration, err)
	}
	if req.Apply != nil {
		req.Apply(&opts)
	}

	cfg, err := domain.Resolve(opts, req.Defaults)
	if err != nil {
		return domain.Report{}, err
	}
	a.logger.SetLevel(domain.LogLevelFor(cfg.Verbosity))

	if stages := cfg.Stages.Names(); len(stages) > 0 {
		a.logger.Debug("stages: " + strings.Join(stages, ", "))
	}
	return a.runner.Run(ctx, cfg)
}
