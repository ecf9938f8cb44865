package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/jlc/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/jlc/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/jlc/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/jlc/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/jlc/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/jlc/internal/core/ports"
	"go.trai.ch/jlc/internal/engine/pipeline"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			pipeline.NodeID,
			logger.NodeID,
			cas.NodeID,
			fs.VerifierNodeID,
			fs.HasherNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	p, err := graft.Dep[*pipeline.Pipeline](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ManifestStore](ctx)
	if err != nil {
		return nil, err
	}

	verifier, err := graft.Dep[ports.Verifier](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, p, log, store, verifier, hasher), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	a, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:       a,
		Logger:    log,
		Telemetry: telemetry,
	}, nil
}
