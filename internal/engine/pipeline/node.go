package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/jlc/internal/adapters/cas"                //nolint:depguard // Wired in engine wiring
	"go.trai.ch/jlc/internal/adapters/fs"                 //nolint:depguard // Wired in engine wiring
	"go.trai.ch/jlc/internal/adapters/julia"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/jlc/internal/adapters/logger"             //nolint:depguard // Wired in engine wiring
	"go.trai.ch/jlc/internal/adapters/shell"              //nolint:depguard // Wired in engine wiring
	"go.trai.ch/jlc/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/jlc/internal/core/ports"
)

// NodeID is the unique identifier for the pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			logger.NodeID,
			shell.NodeID,
			julia.ProbeNodeID,
			julia.SnooperNodeID,
			fs.StagerNodeID,
			fs.VerifierNodeID,
			fs.HasherNodeID,
			cas.NodeID,
			progrock.NodeID,
		},
		Run: runPipelineNode,
	})
}

func runPipelineNode(ctx context.Context) (*Pipeline, error) {
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	probe, err := graft.Dep[ports.RuntimeProbe](ctx)
	if err != nil {
		return nil, err
	}

	snooper, err := graft.Dep[ports.Snooper](ctx)
	if err != nil {
		return nil, err
	}

	stager, err := graft.Dep[ports.Stager](ctx)
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

	store, err := graft.Dep[ports.ManifestStore](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return NewPipeline(log, executor, probe, snooper, stager, verifier, hasher, store, telemetry), nil
}
