package appstate

import (
	"time"

	"github.com/engula/engula-operator/internal/infra/pinger"
)

// pingerServer is the view of the pinger service the application state needs.
type pingerServer interface {
	Register(p pinger.Pinger) error
	GetAllStats() map[string]*pinger.Statistics
	Healthy() bool
	IsReady() bool
}

// healthChecker is an internal interface for health checking
type healthChecker interface {
	IsHealthy() bool
}

// readyChecker is an internal interface for readiness checking
type readyChecker interface {
	IsReady() bool
}

// statusGetter is an internal interface for getting the application status
type statusGetter interface {
	GetState() State
	GetUptime() time.Duration
	GetStartTime() time.Time
	LastEvent() time.Time
	Reporter() string
	GetAllStats() map[string]*pinger.Statistics
}
