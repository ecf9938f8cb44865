package julia

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/jlc/internal/adapters/shell"
	"go.trai.ch/jlc/internal/core/ports"
)

// Graft node identifiers of the runtime adapters.
const (
	ProbeNodeID   graft.ID = "adapter.julia.probe"
	SnooperNodeID graft.ID = "adapter.julia.snooper"
)

func init() {
	graft.Register(graft.Node[ports.RuntimeProbe]{
		ID:        ProbeNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.RuntimeProbe, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewProbe(executor), nil
		},
	})

	graft.Register(graft.Node[ports.Snooper]{
		ID:        SnooperNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.Snooper, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewSnooper(executor), nil
		},
	})
}
