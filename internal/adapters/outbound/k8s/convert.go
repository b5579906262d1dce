package k8s

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/engula/engula-operator/api/v1alpha1"
	"github.com/engula/engula-operator/internal/logic/controller"
)

func kindGVR(kind controller.Kind) schema.GroupVersionResource {
	gv, err := schema.ParseGroupVersion(kind.APIVersion)
	if err != nil {
		gv = v1alpha1.GroupVersion
	}

	return gv.WithResource(kind.Resource)
}

func decode[T any](u *unstructured.Unstructured) (*T, error) {
	var out T

	err := runtime.DefaultUnstructuredConverter.FromUnstructured(u.UnstructuredContent(), &out)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s %s/%s: %w",
			controller.ErrSerialization, u.GetKind(), u.GetNamespace(), u.GetName(), err)
	}

	return &out, nil
}

func toDomainResource(kind controller.Kind, u *unstructured.Unstructured) (*controller.Resource, error) {
	switch kind.Name {
	case v1alpha1.KindJournal:
		journal, err := decode[v1alpha1.Journal](u)
		if err != nil {
			return nil, err
		}

		return newDomainResource(&journal.ObjectMeta, journal.Spec.Template), nil
	case v1alpha1.KindStorage:
		storage, err := decode[v1alpha1.Storage](u)
		if err != nil {
			return nil, err
		}

		return newDomainResource(&storage.ObjectMeta, storage.Spec.Template), nil
	}

	return nil, fmt.Errorf("%w: unsupported kind %q", controller.ErrSerialization, kind.Name)
}

func newDomainResource(meta *metav1.ObjectMeta, template *corev1.PodTemplateSpec) *controller.Resource {
	out := &controller.Resource{
		Name:       meta.Name,
		Namespace:  meta.Namespace,
		UID:        string(meta.UID),
		Finalizers: meta.Finalizers,
		Template:   template,
	}

	if meta.DeletionTimestamp != nil {
		deletedAt := meta.DeletionTimestamp.Time
		out.DeletionTimestamp = &deletedAt
	}

	return out
}

// toStatusDocument builds the partial object applied to the status subresource.
func toStatusDocument(
	kind controller.Kind,
	namespace,
	name string,
	status controller.Status,
) (*unstructured.Unstructured, error) {
	lastReconciled := metav1.NewTime(status.LastReconciled)

	var typed any

	switch kind.Name {
	case v1alpha1.KindJournal:
		typed = &v1alpha1.JournalStatus{
			DeploymentStatus: status.DeploymentStatus,
			LastReconciled:   &lastReconciled,
		}
	case v1alpha1.KindStorage:
		typed = &v1alpha1.StorageStatus{
			DeploymentStatus: status.DeploymentStatus,
			LastReconciled:   &lastReconciled,
		}
	default:
		return nil, fmt.Errorf("%w: unsupported kind %q", controller.ErrSerialization, kind.Name)
	}

	statusObj, err := runtime.DefaultUnstructuredConverter.ToUnstructured(typed)
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s status: %w", controller.ErrSerialization, kind.Name, err)
	}

	return &unstructured.Unstructured{Object: map[string]any{
		"apiVersion": kind.APIVersion,
		"kind":       kind.Name,
		"metadata": map[string]any{
			"name":      name,
			"namespace": namespace,
		},
		"status": statusObj,
	}}, nil
}
