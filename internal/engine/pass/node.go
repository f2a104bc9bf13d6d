package pass

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/relink/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/relink/internal/core/ports"
)

// NodeID is the unique identifier for the pass runner Graft node.
const NodeID graft.ID = "engine.pass"

func init() {
	graft.Register(graft.Node[*Runner]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{progrock.NodeID},
		Run: func(ctx context.Context) (*Runner, error) {
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			return NewRunner(telemetry), nil
		},
	})
}
