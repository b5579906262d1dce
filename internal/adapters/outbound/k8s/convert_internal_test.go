package k8s

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/engula/engula-operator/api/v1alpha1"
	"github.com/engula/engula-operator/internal/logic/controller"
)

func TestToDomainResource(t *testing.T) {
	t.Parallel()

	deletedAt := metav1.NewTime(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	storage := &v1alpha1.Storage{
		TypeMeta: metav1.TypeMeta{APIVersion: v1alpha1.GroupVersion.String(), Kind: v1alpha1.KindStorage},
		ObjectMeta: metav1.ObjectMeta{
			Name:              "s1",
			Namespace:         "ns1",
			UID:               "abc-123",
			DeletionTimestamp: &deletedAt,
			Finalizers:        []string{"engula.io/cleanup"},
		},
		Spec: v1alpha1.StorageSpec{
			Template: &corev1.PodTemplateSpec{
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{{Name: "main", Image: "engula/storage:v1"}},
				},
			},
		},
	}

	obj, err := runtime.DefaultUnstructuredConverter.ToUnstructured(storage)
	require.NoError(t, err)

	got, err := toDomainResource(controller.StorageKind, &unstructured.Unstructured{Object: obj})
	require.NoError(t, err)

	require.Equal(t, "s1", got.Name)
	require.Equal(t, "abc-123", got.UID)
	require.NotNil(t, got.DeletionTimestamp)
	require.True(t, deletedAt.Time.Equal(*got.DeletionTimestamp))
	require.Equal(t, []string{"engula.io/cleanup"}, got.Finalizers)
	require.NotNil(t, got.Template)
	require.Equal(t, "engula/storage:v1", got.Template.Spec.Containers[0].Image)
}

func TestToDomainResource_Malformed(t *testing.T) {
	t.Parallel()

	u := &unstructured.Unstructured{Object: map[string]any{
		"apiVersion": v1alpha1.GroupVersion.String(),
		"kind":       v1alpha1.KindJournal,
		"metadata":   map[string]any{"name": "j1", "namespace": "ns1"},
		"spec":       map[string]any{"template": "not-an-object"},
	}}

	_, err := toDomainResource(controller.JournalKind, u)
	require.ErrorIs(t, err, controller.ErrSerialization)
}

func TestKindGVR(t *testing.T) {
	t.Parallel()

	require.Equal(t, v1alpha1.JournalGVR, kindGVR(controller.JournalKind))
	require.Equal(t, v1alpha1.StorageGVR, kindGVR(controller.StorageKind))
}
