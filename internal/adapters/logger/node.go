package logger

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/bundleplan/internal/core/domain"
	"go.trai.ch/bundleplan/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			return fromEnv(os.Getenv(domain.EnvLogFormat))
		},
	})
}

// fromEnv creates the process logger in the format named by
// BUNDLEPLAN_LOG_FORMAT, so records written before flag parsing honor it.
func fromEnv(format string) (*Logger, error) {
	l := New()
	if format == "" {
		return l, nil
	}
	if err := l.SetFormat(format); err != nil {
		return nil, zerr.With(err, "source", domain.EnvLogFormat)
	}
	return l, nil
}
