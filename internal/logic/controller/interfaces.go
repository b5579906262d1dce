package controller

import (
	"context"
	"time"

	appsv1 "k8s.io/api/apps/v1"
)

// Repository is the port interface for cluster operations.
// Implementations are provided by adapters in the outbound layer.
type Repository interface {
	GetDeploymentQuery(
		ctx context.Context,
		namespace,
		name string,
	) (*appsv1.Deployment, error)

	CreateDeploymentCommand(
		ctx context.Context,
		deployment *appsv1.Deployment,
	) error

	ApplyStatusCommand(
		ctx context.Context,
		kind Kind,
		namespace,
		name string,
		status Status,
	) error

	PublishEventCommand(
		ctx context.Context,
		kind Kind,
		resource Resource,
		event Event,
	)
}

// ResourceSource is the port interface for the watch feed of one kind.
type ResourceSource interface {
	// Watch starts delivering keys to enqueue and blocks until the cache is synced.
	Watch(ctx context.Context, enqueue func(Key)) error
	HasSynced() bool
	GetResourceQuery(ctx context.Context, key Key) (*Resource, error)
	ListKeysQuery(ctx context.Context) []Key
}

type stateRecorder interface {
	RecordEvent(at time.Time)
}

type metricsRecorder interface {
	ObserveReconcile(duration time.Duration, failed bool)
}

// notFound is a private interface for checking "not found" errors
// without importing the adapter package.
type notFound interface {
	IsNotFound()
}

// alreadyExists is a private interface for checking "already exists" errors.
type alreadyExists interface {
	IsAlreadyExists()
}

// transient is a private interface for errors that carry no usable answer
// (throttling, timeouts, broken transport).
type transient interface {
	IsTransient()
}
