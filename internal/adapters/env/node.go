package env

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bundleplan/internal/core/ports"
)

// NodeID is the unique identifier for the environment source Graft node.
const NodeID graft.ID = "adapter.environment_source"

func init() {
	graft.Register(graft.Node[ports.EnvironmentSource]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.EnvironmentSource, error) {
			return NewSource(), nil
		},
	})
}
