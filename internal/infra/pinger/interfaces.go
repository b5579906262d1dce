package pinger

import (
	"context"
	"time"
)

// Pinger is a component whose liveness is probed periodically.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// Optional interfaces a Pinger may implement to tune how it is probed.
type readyCriticalPinger interface {
	PingerReadyCritical() bool
}

type healthCriticalPinger interface {
	PingerCritical() bool
}

type timeoutPinger interface {
	PingerTimeout() time.Duration
}
