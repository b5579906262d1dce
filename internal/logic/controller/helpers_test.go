package controller_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	appsv1 "k8s.io/api/apps/v1"

	"github.com/engula/engula-operator/internal/logic/controller"
)

// The error types below implement the controller's private marker interfaces
// so fakes can return them and the controller recognizes them.
type testNotFoundError struct{}

func (testNotFoundError) Error() string { return "not found" }
func (testNotFoundError) IsNotFound()   {}

type testTransientError struct{}

func (testTransientError) Error() string { return "connection reset" }
func (testTransientError) IsTransient()  {}

type testAlreadyExistsError struct{}

func (testAlreadyExistsError) Error() string    { return "already exists" }
func (testAlreadyExistsError) IsAlreadyExists() {}

type recordingState struct {
	mu        sync.Mutex
	lastEvent time.Time
	events    int
}

func (s *recordingState) RecordEvent(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastEvent = at
	s.events++
}

func (s *recordingState) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.events
}

type recordingMetrics struct {
	mu       sync.Mutex
	observed int
	failed   int
}

func (m *recordingMetrics) ObserveReconcile(_ time.Duration, failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.observed++

	if failed {
		m.failed++
	}
}

// memoryRepository is an in-memory cluster used where call sequences matter
// more than individual expectations. It also checks for concurrent mutation
// of the same resource.
type memoryRepository struct {
	mu          sync.Mutex
	deployments map[string]*appsv1.Deployment
	statuses    map[string][]controller.Status
	creates     int
	events      []controller.Event
	inFlight    map[string]int
	maxInFlight int
	delay       time.Duration
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		deployments: make(map[string]*appsv1.Deployment),
		statuses:    make(map[string][]controller.Status),
		inFlight:    make(map[string]int),
	}
}

func (r *memoryRepository) enter(id string) {
	r.mu.Lock()
	r.inFlight[id]++
	r.maxInFlight = max(r.maxInFlight, r.inFlight[id])
	r.mu.Unlock()

	if r.delay > 0 {
		time.Sleep(r.delay)
	}
}

func (r *memoryRepository) leave(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.inFlight[id]--
}

func (r *memoryRepository) GetDeploymentQuery(
	_ context.Context,
	namespace,
	name string,
) (*appsv1.Deployment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.deployments[namespace+"/"+name]
	if !ok {
		return nil, testNotFoundError{}
	}

	return d.DeepCopy(), nil
}

func (r *memoryRepository) CreateDeploymentCommand(
	_ context.Context,
	deployment *appsv1.Deployment,
) error {
	id := deployment.Namespace + "/" + deployment.Name

	r.enter(id)
	defer r.leave(id)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.deployments[id]; ok {
		return testAlreadyExistsError{}
	}

	r.deployments[id] = deployment.DeepCopy()
	r.creates++

	return nil
}

func (r *memoryRepository) ApplyStatusCommand(
	_ context.Context,
	_ controller.Kind,
	namespace,
	name string,
	status controller.Status,
) error {
	id := namespace + "/" + name

	r.enter(id)
	defer r.leave(id)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.statuses[id] = append(r.statuses[id], status)

	return nil
}

func (r *memoryRepository) PublishEventCommand(
	_ context.Context,
	_ controller.Kind,
	_ controller.Resource,
	event controller.Event,
) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
}

func (r *memoryRepository) snapshot() (deployments, creates, maxInFlight int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.deployments), r.creates, r.maxInFlight
}

func (r *memoryRepository) statusCount(namespace, name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.statuses[namespace+"/"+name])
}

// memorySource is a watch feed backed by a map.
type memorySource struct {
	mu        sync.Mutex
	resources map[controller.Key]controller.Resource
	enqueue   func(controller.Key)
	unsynced  atomic.Bool
}

func newMemorySource(kind controller.Kind, resources ...controller.Resource) *memorySource {
	s := &memorySource{resources: make(map[controller.Key]controller.Resource)}
	for _, res := range resources {
		s.resources[controller.Key{Kind: kind.Name, Namespace: res.Namespace, Name: res.Name}] = res
	}

	return s
}

func (s *memorySource) Watch(_ context.Context, enqueue func(controller.Key)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enqueue = enqueue

	for key := range s.resources {
		enqueue(key)
	}

	return nil
}

func (s *memorySource) HasSynced() bool {
	return !s.unsynced.Load()
}

func (s *memorySource) setSynced(synced bool) {
	s.unsynced.Store(!synced)
}

func (s *memorySource) GetResourceQuery(_ context.Context, key controller.Key) (*controller.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.resources[key]
	if !ok {
		return nil, testNotFoundError{}
	}

	return &res, nil
}

func (s *memorySource) ListKeysQuery(_ context.Context) []controller.Key {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]controller.Key, 0, len(s.resources))
	for key := range s.resources {
		keys = append(keys, key)
	}

	return keys
}

func newTestResource(name, namespace string) controller.Resource {
	return controller.Resource{
		Name:      name,
		Namespace: namespace,
		UID:       "uid-" + name,
	}
}
