// Package pinger probes registered components periodically and keeps
// per-component statistics for the health and status endpoints.
package pinger

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

const defaultPingTimeout = 1 * time.Second

// Service runs every registered pinger on a fixed interval.
type Service struct {
	logger     *slog.Logger
	interval   time.Duration
	mu         sync.RWMutex
	probes     map[string]*probe
	ready      chan struct{}
	doneCh     chan struct{}
	inShutdown atomic.Bool
	started    atomic.Bool
}

// New creates a new pinger service with the specified interval
func New(
	logger *slog.Logger,
	interval time.Duration,
) *Service {
	return &Service{
		logger:   logger.With("component", "pinger"),
		interval: interval,
		probes:   make(map[string]*probe),
		ready:    make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Name returns the name of the pinger service component
func (s *Service) Name() string {
	return "pinger-service"
}

// Register adds p to the probed set. Pingers are ready and health critical
// unless they implement the optional interfaces saying otherwise.
func (s *Service) Register(p Pinger) error {
	if p == nil {
		return fmt.Errorf("register pinger: %w", ErrNilPinger)
	}

	name := p.Name()

	pr := &probe{
		pinger:         p,
		readyCritical:  true,
		healthCritical: true,
		timeout:        defaultPingTimeout,
	}

	if rc, ok := p.(readyCriticalPinger); ok {
		pr.readyCritical = rc.PingerReadyCritical()
	}

	if hc, ok := p.(healthCriticalPinger); ok {
		pr.healthCritical = hc.PingerCritical()
	}

	if tp, ok := p.(timeoutPinger); ok && tp.PingerTimeout() > 0 {
		pr.timeout = tp.PingerTimeout()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.probes[name]; exists {
		return fmt.Errorf("register pinger %s: %w", name, ErrPingerAlreadyRegistered)
	}

	s.probes[name] = pr

	s.logger.Info("pinger registered",
		"name", name,
		"readyCritical", pr.readyCritical,
		"healthCritical", pr.healthCritical,
		"timeout", pr.timeout,
	)

	return nil
}

// Start runs the first round synchronously in the background loop and then
// probes every interval until ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "pinger service is shutting down, skipping start")

		return nil
	}

	if !s.started.CompareAndSwap(false, true) {
		return fmt.Errorf("start pinger service: %w", ErrAlreadyStarted)
	}

	go s.run(ctx)

	return nil
}

// Ready is closed once the first round of pings has completed.
func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

// Shutdown waits for the probe loop to exit.
func (s *Service) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "pinger service is already shutting down, skipping shutdown")

		return nil
	}

	defer func() {
		s.logger.InfoContext(ctx, "pinger service shut downed")
	}()

	if !s.started.Load() {
		return nil
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before pinger loop exited: %w", ctx.Err())
	case <-s.doneCh:
	}

	return nil
}

// GetStats returns statistics for a specific pinger
func (s *Service) GetStats(name string) (*Statistics, error) {
	s.mu.RLock()
	pr, ok := s.probes[name]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("get stats %s: %w", name, ErrPingerNotFound)
	}

	return pr.statistics(), nil
}

// GetAllStats returns statistics of every registered pinger keyed by name.
func (s *Service) GetAllStats() map[string]*Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*Statistics, len(s.probes))
	for name, pr := range s.probes {
		result[name] = pr.statistics()
	}

	return result
}

// Healthy reports whether no health critical pinger is failing.
func (s *Service) Healthy() bool {
	for _, stats := range s.GetAllStats() {
		if !stats.IsHealthy {
			return false
		}
	}

	return true
}

// IsReady reports whether no ready critical pinger is failing.
func (s *Service) IsReady() bool {
	for _, stats := range s.GetAllStats() {
		if !stats.IsReady {
			return false
		}
	}

	return true
}

func (s *Service) run(ctx context.Context) {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.pingAll(ctx)
	close(s.ready)

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "terminating pinger loop")

			return
		case <-ticker.C:
			if s.inShutdown.Load() {
				s.logger.InfoContext(ctx, "terminating pinger loop")

				return
			}

			s.pingAll(ctx)
		}
	}
}

// pingAll probes every pinger in parallel and waits for all of them;
// each probe is bounded by its own timeout.
func (s *Service) pingAll(ctx context.Context) {
	s.mu.RLock()
	names := make([]string, 0, len(s.probes))
	probes := make(map[string]*probe, len(s.probes))

	for name, pr := range s.probes {
		names = append(names, name)
		probes[name] = pr
	}
	s.mu.RUnlock()

	slices.Sort(names)

	var wg sync.WaitGroup

	for _, name := range names {
		pr := probes[name]

		wg.Add(1)

		go func() {
			defer wg.Done()

			s.ping(ctx, name, pr)
		}()
	}

	wg.Wait()
}

func (s *Service) ping(ctx context.Context, name string, pr *probe) {
	pingCtx, cancel := context.WithTimeout(ctx, pr.timeout)
	defer cancel()

	start := time.Now()
	err := pr.pinger.Ping(pingCtx)
	latency := time.Since(start)

	pr.record(start, latency, err)

	if err != nil {
		s.logger.DebugContext(ctx, "ping failed", "name", name, "latency", latency, "reason", err)

		return
	}

	s.logger.DebugContext(ctx, "ping succeeded", "name", name, "latency", latency)
}
