package app

import (
	"context"
	"time"

	"github.com/engula/engula-operator/internal/infra/appstate"
	"github.com/engula/engula-operator/internal/infra/pinger"
	"github.com/engula/engula-operator/internal/infra/shutdown"
	"github.com/engula/engula-operator/internal/logic/controller"
)

// appstater defines the interface for application state management
type appstater interface {
	RegisterPinger(pinger pinger.Pinger) error
	RegisterShutdowner(shutdowner shutdown.Shutdowner)
	GetAllStats() map[string]*pinger.Statistics
	RecordEvent(at time.Time)
	LastEvent() time.Time
	Reporter() string
	SetStarting(ctx context.Context) error
	SetRunning(ctx context.Context) error
	GetStartTime() time.Time
	GetState() appstate.State
	GetUptime() time.Duration
	IsHealthy() bool
	IsReady() bool
	Shutdown(ctx context.Context) error
}

// component is a long running part of the process with a start/ready/stop lifecycle.
type component interface {
	Start(ctx context.Context) error
	Ready() <-chan struct{}
	shutdown.Shutdowner
}

// pingedComponent is a component probed by the pinger service.
type pingedComponent interface {
	component
	pinger.Pinger
}

type installChecker interface {
	CheckInstalledQuery(ctx context.Context, kind controller.Kind) error
}
