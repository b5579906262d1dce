package k8s

import (
	"context"
	"fmt"
	"log/slog"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/record"

	"github.com/engula/engula-operator/internal/logic/controller"
)

// Adapter talks to the cluster API on behalf of the controller.
type Adapter struct {
	logger    *slog.Logger
	clientset kubernetes.Interface
	dynamic   dynamic.Interface
	recorder  record.EventRecorder
}

// New creates a new K8s adapter.
func New(
	logger *slog.Logger,
	clientset kubernetes.Interface,
	dynamicClient dynamic.Interface,
	recorder record.EventRecorder,
) *Adapter {
	return &Adapter{
		logger:    logger,
		clientset: clientset,
		dynamic:   dynamicClient,
		recorder:  recorder,
	}
}

var _ controller.Repository = (*Adapter)(nil)

func (a *Adapter) GetDeploymentQuery(
	ctx context.Context,
	namespace,
	name string,
) (*appsv1.Deployment, error) {
	deployment, err := a.clientset.AppsV1().Deployments(namespace).Get(
		ctx,
		name,
		metav1.GetOptions{},
	)
	if err != nil {
		return nil, classify("get deployment", err)
	}

	return deployment, nil
}

func (a *Adapter) CreateDeploymentCommand(
	ctx context.Context,
	deployment *appsv1.Deployment,
) error {
	_, err := a.clientset.AppsV1().Deployments(deployment.Namespace).Create(
		ctx,
		deployment,
		metav1.CreateOptions{
			FieldManager: controller.FieldManager,
		},
	)
	if err != nil {
		return classify("create deployment", err)
	}

	return nil
}

func (a *Adapter) ApplyStatusCommand(
	ctx context.Context,
	kind controller.Kind,
	namespace,
	name string,
	status controller.Status,
) error {
	doc, err := toStatusDocument(kind, namespace, name, status)
	if err != nil {
		return err
	}

	_, err = a.dynamic.Resource(kindGVR(kind)).Namespace(namespace).ApplyStatus(
		ctx,
		name,
		doc,
		metav1.ApplyOptions{
			FieldManager: controller.FieldManager,
			Force:        true,
		},
	)
	if err != nil {
		return classify("apply "+kind.Resource+" status", err)
	}

	return nil
}

func (a *Adapter) PublishEventCommand(
	ctx context.Context,
	kind controller.Kind,
	resource controller.Resource,
	event controller.Event,
) {
	ref := &corev1.ObjectReference{
		APIVersion: kind.APIVersion,
		Kind:       kind.Name,
		Namespace:  resource.Namespace,
		Name:       resource.Name,
		UID:        types.UID(resource.UID),
	}

	a.recorder.Event(ref, event.Type, event.Reason, event.Note)

	a.logger.DebugContext(ctx, "event published",
		"kind", kind.Name,
		"name", resource.Name,
		"namespace", resource.Namespace,
		"reason", event.Reason,
	)
}

// CheckInstalledQuery lists at most one object of kind to verify its CRD is served.
func (a *Adapter) CheckInstalledQuery(
	ctx context.Context,
	kind controller.Kind,
) error {
	_, err := a.dynamic.Resource(kindGVR(kind)).List(ctx, metav1.ListOptions{Limit: 1})
	if err != nil {
		return fmt.Errorf("list %s, is the CRD installed?: %w", kind.Resource, err)
	}

	return nil
}
