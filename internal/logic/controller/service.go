package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"k8s.io/client-go/util/workqueue"
)

// Service drives one kind: it feeds watch events into a work queue keyed by
// resource identity and drains it with a pool of workers. The queue never
// hands the same key to two workers at once.
type Service struct {
	logger               *slog.Logger
	reconciler           *Reconciler
	source               ResourceSource
	queue                workqueue.TypedRateLimitingInterface[Key]
	workers              int
	ready                chan struct{}
	doneCh               chan struct{}
	inShutdown           atomic.Bool
	mu                   sync.RWMutex
	lastReconcileEndTime time.Time
}

// New creates a new controller service for the reconciler's kind.
func New(
	logger *slog.Logger,
	reconciler *Reconciler,
	source ResourceSource,
	workers int,
) *Service {
	if workers < 1 {
		workers = 1
	}

	kind := reconciler.Kind()

	return &Service{
		logger:     logger.With("controller", kind.Resource),
		reconciler: reconciler,
		source:     source,
		queue: workqueue.NewTypedRateLimitingQueueWithConfig(
			workqueue.DefaultTypedControllerRateLimiter[Key](),
			workqueue.TypedRateLimitingQueueConfig[Key]{Name: kind.Resource},
		),
		workers: workers,
		ready:   make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// Name returns the name of the controller component
func (s *Service) Name() string {
	return s.reconciler.Kind().Resource + "-controller"
}

// Start begins watching and returns once the watch cache is synced;
// workers keep running until ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	if s.inShutdown.Load() {
		s.logger.InfoContext(ctx, "controller service is shutting down, skipping start")

		return nil
	}

	err := s.source.Watch(ctx, s.Enqueue)
	if err != nil {
		return fmt.Errorf("watch %s: %w", s.reconciler.Kind().Resource, err)
	}

	go s.RunCommand(ctx)

	return nil
}

func (s *Service) Ready() <-chan struct{} {
	return s.ready
}

func (s *Service) Ping(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.ready:
	default:
		return ErrNotReady
	}

	if s.queue.ShuttingDown() {
		return ErrQueueShuttingDown
	}

	if !s.source.HasSynced() {
		return ErrCacheNotSynced
	}

	return nil
}

func (s *Service) Shutdown(ctx context.Context) error {
	if !s.inShutdown.CompareAndSwap(false, true) {
		s.logger.ErrorContext(ctx, "controller service is already shutting down, skipping shutdown")

		return nil
	}

	defer func() {
		s.logger.InfoContext(ctx, "controller service shut downed")
	}()

	s.logger.InfoContext(ctx, "shutting down controller service")

	select {
	case <-s.ready:
	default:
		// never started
		s.queue.ShutDown()

		return nil
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("shutdown context done before controller workers exited: %w", ctx.Err())
	case <-s.doneCh:
		s.logger.InfoContext(ctx, "controller workers exited")
	}

	return nil
}

// Enqueue schedules a reconciliation pass for key.
func (s *Service) Enqueue(key Key) {
	s.queue.Add(key)
}

// Resync enqueues every resource known to the watch cache.
func (s *Service) Resync(ctx context.Context) {
	keys := s.source.ListKeysQuery(ctx)
	for _, key := range keys {
		s.queue.Add(key)
	}

	s.logger.DebugContext(ctx, "resync enqueued", "count", len(keys))
}

// LastReconcileEndTime returns when a worker last finished a pass.
func (s *Service) LastReconcileEndTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastReconcileEndTime
}

// RunCommand drains the work queue with the configured number of workers
// until ctx is cancelled.
func (s *Service) RunCommand(ctx context.Context) {
	defer close(s.doneCh)

	go func() {
		<-ctx.Done()
		s.queue.ShutDownWithDrain()
	}()

	var group errgroup.Group

	for range s.workers {
		group.Go(func() error {
			for s.processNextItem(ctx) {
			}

			return nil
		})
	}

	close(s.ready)

	s.logger.InfoContext(ctx, "controller workers started", "workers", s.workers)

	_ = group.Wait()

	s.logger.InfoContext(ctx, "terminating controller workers")
}

func (s *Service) processNextItem(ctx context.Context) bool {
	key, shutdown := s.queue.Get()
	if shutdown {
		return false
	}

	defer s.queue.Done(key)

	s.handle(ctx, key)
	s.setLastReconcileEndTime()

	return true
}

func (s *Service) handle(ctx context.Context, key Key) {
	res, err := s.source.GetResourceQuery(ctx, key)
	if err != nil {
		var target notFound
		if errors.As(err, &target) {
			s.logger.DebugContext(ctx, "resource is gone, dropping key", "key", key.String())
			s.queue.Forget(key)

			return
		}

		s.logger.ErrorContext(ctx, "read resource from cache", "key", key.String(), "reason", err)
		s.requeue(key, ErrorPolicy(err))

		return
	}

	result, err := s.reconciler.Reconcile(ctx, *res)
	if err != nil {
		result = ErrorPolicy(err)
	}

	s.requeue(key, result)
}

func (s *Service) requeue(key Key, result Result) {
	s.queue.Forget(key)

	if result.RequeueAfter > 0 {
		s.queue.AddAfter(key, result.RequeueAfter)
	}
}

func (s *Service) setLastReconcileEndTime() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastReconcileEndTime = time.Now()
}
