// Package appstate tracks the process lifecycle and the process-wide
// reconciliation state shown on the status endpoint.
package appstate

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/engula/engula-operator/internal/infra/pinger"
	"github.com/engula/engula-operator/internal/infra/shutdown"
)

// State represents the application state
type State string

const (
	// StateInit is the initial state when the application is created
	StateInit State = "init"

	// StateStarting is the state when the application is starting up
	StateStarting State = "starting"

	// StateRunning is the state when the application is running normally
	StateRunning State = "running"

	// StateTerminating is the state when the application is shutting down
	StateTerminating State = "terminating"

	// StateTerminated is the final state when the application has terminated
	StateTerminated State = "terminated"
)

const defaultShutdownersCount = 10

// AppState manages the application state with thread-safe operations.
// It also holds the time the most recent reconciliation pass started,
// shared by every controller of the process.
type AppState struct {
	mu                  sync.RWMutex
	logger              *slog.Logger
	startedAt           time.Time
	readyAt             *time.Time
	terminatingAt       *time.Time
	lastEvent           time.Time
	state               State
	reporter            string
	terminationFilePath string
	shutdownTimeout     time.Duration
	pinger              pingerServer
	shutdowners         []shutdown.Shutdowner
}

// New creates a new AppState. The last event time starts at appStart.
func New(
	logger *slog.Logger,
	appStart time.Time,
	reporter string,
	terminationFilePath string,
	pinger pingerServer,
) *AppState {
	return &AppState{
		logger:              logger,
		startedAt:           appStart,
		lastEvent:           appStart,
		state:               StateInit,
		reporter:            reporter,
		terminationFilePath: terminationFilePath,
		shutdownTimeout:     shutdown.DefaultTimeout,
		pinger:              pinger,
		shutdowners:         make([]shutdown.Shutdowner, 0, defaultShutdownersCount),
	}
}

func (s *AppState) RegisterPinger(p pinger.Pinger) error {
	return s.pinger.Register(p)
}

// RegisterShutdowner appends a component; components are shut down in
// reverse registration order.
func (s *AppState) RegisterShutdowner(shutdowner shutdown.Shutdowner) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.shutdowners = append(s.shutdowners, shutdowner)
}

func (s *AppState) GetAllStats() map[string]*pinger.Statistics {
	return s.pinger.GetAllStats()
}

// RecordEvent marks the start of a reconciliation pass. Concurrent passes
// may record out of order; the latest time wins.
func (s *AppState) RecordEvent(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if at.After(s.lastEvent) {
		s.lastEvent = at
	}
}

// LastEvent returns when the most recent reconciliation pass started.
func (s *AppState) LastEvent() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastEvent
}

// Reporter returns the name the operator reports itself under.
func (s *AppState) Reporter() string {
	return s.reporter
}

// SetStarting transitions the state from Init to Starting
func (s *AppState) SetStarting(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInit {
		return fmt.Errorf("set starting: %w", ErrInvalidStateTransition)
	}

	return s.setState(StateStarting)
}

// SetRunning transitions the state from Starting to Running. If the
// termination file appeared during startup the process signals itself.
func (s *AppState) SetRunning(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateStarting {
		return fmt.Errorf("set running: %w", ErrInvalidStateTransition)
	}

	now := time.Now()
	s.readyAt = &now

	err := s.setState(StateRunning)
	if err != nil {
		return err
	}

	if shutdown.CheckTerminationFile(ctx, s.logger, s.terminationFilePath) {
		pid := os.Getpid()
		s.logger.InfoContext(ctx, "termination file found after initialization, sending SIGTERM", "pid", pid)

		killErr := syscall.Kill(pid, syscall.SIGTERM)
		if killErr != nil {
			s.logger.ErrorContext(ctx, "failed to send SIGTERM", "pid", pid, "reason", killErr)
		}
	}

	return nil
}

// SetTerminating transitions the state to Terminating
func (s *AppState) SetTerminating(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateTerminated {
		return fmt.Errorf("set terminating: %w", ErrAlreadyTerminated)
	}

	now := time.Now()
	s.terminatingAt = &now

	return s.setState(StateTerminating)
}

func (s *AppState) setState(newState State) error {
	if s.state == StateTerminated {
		return fmt.Errorf("set state: %w", ErrAlreadyTerminated)
	}

	s.state = newState

	return nil
}

// GetState returns the current application state
func (s *AppState) GetState() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// GetStartTime returns the time when the application started
func (s *AppState) GetStartTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.startedAt
}

// GetUptime returns the duration since the application started
func (s *AppState) GetUptime() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return time.Since(s.startedAt)
}

// IsHealthy reports whether the application is running and no health
// critical pinger is failing.
func (s *AppState) IsHealthy() bool {
	s.mu.RLock()
	running := s.state == StateRunning
	s.mu.RUnlock()

	return running && s.pinger.Healthy()
}

// IsReady reports whether the application finished starting and no ready
// critical pinger is failing.
func (s *AppState) IsReady() bool {
	s.mu.RLock()
	ready := s.state == StateRunning && s.readyAt != nil
	s.mu.RUnlock()

	return ready && s.pinger.IsReady()
}

// Shutdown stops every registered component and moves to Terminated.
// Calling it again after termination is a no-op.
func (s *AppState) Shutdown(ctx context.Context) error {
	s.mu.RLock()
	terminated := s.state == StateTerminated
	shutdowners := append([]shutdown.Shutdowner(nil), s.shutdowners...)
	s.mu.RUnlock()

	if terminated {
		return nil
	}

	err := s.SetTerminating(ctx)
	if err != nil {
		return fmt.Errorf("set terminating application state: %w", err)
	}

	shutdownErr := shutdown.GracefulShutdown(ctx, s.logger, s.shutdownTimeout, shutdowners)

	s.mu.Lock()
	s.state = StateTerminated
	s.mu.Unlock()

	if shutdownErr != nil {
		return fmt.Errorf("shutdown: %w", shutdownErr)
	}

	return nil
}
