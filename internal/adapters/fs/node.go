package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/jlc/internal/core/ports"
)

// Graft node identifiers of the filesystem adapters.
const (
	WalkerNodeID   graft.ID = "adapter.fs.walker"
	ResolverNodeID graft.ID = "adapter.fs.resolver"
	HasherNodeID   graft.ID = "adapter.fs.hasher"
	VerifierNodeID graft.ID = "adapter.fs.verifier"
	StagerNodeID   graft.ID = "adapter.fs.stager"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[*Resolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Resolver, error) {
			return NewResolver(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.Verifier]{
		ID:        VerifierNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Verifier, error) {
			return NewVerifier(), nil
		},
	})

	graft.Register(graft.Node[ports.Stager]{
		ID:        StagerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID, ResolverNodeID},
		Run: func(ctx context.Context) (ports.Stager, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[*Resolver](ctx)
			if err != nil {
				return nil, err
			}
			return NewStager(walker, resolver), nil
		},
	})
}
