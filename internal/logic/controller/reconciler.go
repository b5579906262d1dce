package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

type lookupOutcome int

const (
	lookupFound lookupOutcome = iota
	lookupAbsent
	lookupAmbiguous
	lookupFailed
)

// Reconciler converges one custom resource kind toward its desired workload.
type Reconciler struct {
	logger  *slog.Logger
	repo    Repository
	kind    Kind
	state   stateRecorder
	metrics metricsRecorder
	now     func() time.Time
}

// NewReconciler creates a reconciler for kind.
func NewReconciler(
	logger *slog.Logger,
	repo Repository,
	kind Kind,
	state stateRecorder,
	metrics metricsRecorder,
) *Reconciler {
	return &Reconciler{
		logger:  logger,
		repo:    repo,
		kind:    kind,
		state:   state,
		metrics: metrics,
		now:     time.Now,
	}
}

// Kind returns the kind served by the reconciler.
func (r *Reconciler) Kind() Kind {
	return r.kind
}

// Reconcile runs one reconciliation pass for res. It is level-triggered:
// repeating it on an unchanged resource leaves the cluster unchanged apart
// from the status timestamp. The status is applied on every pass; a failed
// workload lookup leaves deployment_status null and fails only the create
// branch.
func (r *Reconciler) Reconcile(ctx context.Context, res Resource) (result Result, err error) {
	start := r.now()
	logger := r.logger.With(
		"kind", r.kind.Name,
		"name", res.Name,
		"namespace", res.Namespace,
		"traceID", uuid.NewString(),
	)

	r.state.RecordEvent(start)

	defer func() {
		r.metrics.ObserveReconcile(time.Since(start), err != nil)

		if err != nil {
			logger.ErrorContext(ctx, "reconcile failed", "reason", err)

			return
		}

		logger.InfoContext(ctx, "reconciled",
			"requeueAfter", result.RequeueAfter,
			"duration", time.Since(start),
		)
	}()

	if res.Namespace == "" {
		return Result{}, fmt.Errorf("%w: .metadata.namespace", ErrMissingObjectKey)
	}

	action := DetermineAction(res)
	logger = logger.With("action", action.String())

	current, outcome, lookupErr := r.lookupWorkload(ctx, logger, res)

	status := Status{LastReconciled: start}
	if current != nil {
		status.DeploymentStatus = current.Status.DeepCopy()
	}

	err = r.repo.ApplyStatusCommand(ctx, r.kind, res.Namespace, res.Name, status)
	if err != nil {
		return Result{}, fmt.Errorf("apply status: %w", err)
	}

	switch action {
	case ActionDelete:
		// Owned objects are removed by the cluster garbage collector through
		// their owner references.
		logger.DebugContext(ctx, "resource is being deleted")

		return Result{}, nil
	case ActionNoOp:
		return Result{RequeueAfter: RequeueSteadyState}, nil
	case ActionCreate:
	}

	switch outcome {
	case lookupFound:
		logger.DebugContext(ctx, "deployment exists, leaving it unchanged")

		return Result{RequeueAfter: RequeueSteadyState}, nil
	case lookupAbsent:
		return r.createWorkload(ctx, logger, res)
	case lookupFailed:
		return Result{}, lookupErr
	case lookupAmbiguous:
	}

	return Result{RequeueAfter: RequeueAmbiguous}, nil
}

// ErrorPolicy maps a failed pass to its requeue delay. The delay is fixed
// whatever the failure kind.
func ErrorPolicy(_ error) Result {
	return Result{RequeueAfter: RequeueOnError}
}

func (r *Reconciler) lookupWorkload(
	ctx context.Context,
	logger *slog.Logger,
	res Resource,
) (*appsv1.Deployment, lookupOutcome, error) {
	deployment, err := r.repo.GetDeploymentQuery(ctx, res.Namespace, res.Name)
	if err == nil {
		return deployment, lookupFound, nil
	}

	var notFoundTarget notFound
	if errors.As(err, &notFoundTarget) {
		return nil, lookupAbsent, nil
	}

	var transientTarget transient
	if errors.As(err, &transientTarget) {
		logger.WarnContext(ctx, "deployment lookup gave no answer, will retry shortly", "reason", err)

		return nil, lookupAmbiguous, nil
	}

	logger.WarnContext(ctx, "deployment lookup failed", "reason", err)

	return nil, lookupFailed, fmt.Errorf("get deployment: %w", err)
}

func (r *Reconciler) createWorkload(
	ctx context.Context,
	logger *slog.Logger,
	res Resource,
) (Result, error) {
	ownerRef, err := NewOwnerReference(r.kind, res)
	if err != nil {
		return Result{}, fmt.Errorf("build owner reference: %w", err)
	}

	deployment := SynthesizeWorkload(r.kind, res)
	deployment.OwnerReferences = []metav1.OwnerReference{ownerRef}

	err = r.repo.CreateDeploymentCommand(ctx, deployment)
	if err != nil {
		var alreadyExistsTarget alreadyExists
		if errors.As(err, &alreadyExistsTarget) {
			logger.DebugContext(ctx, "deployment created concurrently")

			return Result{RequeueAfter: RequeueSteadyState}, nil
		}

		return Result{}, fmt.Errorf("create deployment: %w", err)
	}

	r.repo.PublishEventCommand(ctx, r.kind, res, Event{
		Type:   corev1.EventTypeNormal,
		Reason: eventReasonDeploymentCreated,
		Note:   fmt.Sprintf("Created deployment %s/%s", res.Namespace, res.Name),
	})

	logger.InfoContext(ctx, "deployment created")

	return Result{RequeueAfter: RequeueSteadyState}, nil
}
