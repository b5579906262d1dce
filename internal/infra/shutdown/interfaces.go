package shutdown

import (
	"context"
)

// Shutdowner is the interface that components must implement for graceful shutdown
type Shutdowner interface {
	Name() string
	Shutdown(ctx context.Context) error
}
