package controller

import (
	"time"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
)

// Resource represents a Journal or Storage custom resource in the domain layer.
type Resource struct {
	Name              string
	Namespace         string
	UID               string
	DeletionTimestamp *time.Time
	Finalizers        []string
	Template          *corev1.PodTemplateSpec
}

// Key identifies a resource in the work queue.
type Key struct {
	Kind      string
	Namespace string
	Name      string
}

func (k Key) String() string {
	return k.Kind + "/" + k.Namespace + "/" + k.Name
}

// Result is the outcome of a successful reconciliation pass.
// A zero RequeueAfter means no further automatic requeue.
type Result struct {
	RequeueAfter time.Duration
}

// Status is the status sub-document written back to the custom resource.
type Status struct {
	DeploymentStatus *appsv1.DeploymentStatus
	LastReconciled   time.Time
}

// Event is a Kubernetes event published on a custom resource.
type Event struct {
	Type   string
	Reason string
	Note   string
}
