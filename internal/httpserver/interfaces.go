package httpserver

import (
	"time"

	"github.com/engula/engula-operator/internal/infra/appstate"
	"github.com/engula/engula-operator/internal/infra/pinger"
)

// appstater is an internal interface for application state management
type appstater interface {
	GetState() appstate.State
	IsHealthy() bool
	IsReady() bool
	GetUptime() time.Duration
	GetStartTime() time.Time
	LastEvent() time.Time
	Reporter() string
	GetAllStats() map[string]*pinger.Statistics
}
