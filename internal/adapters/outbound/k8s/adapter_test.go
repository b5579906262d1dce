package k8s_test

import (
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/apimachinery/pkg/types"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
	"k8s.io/client-go/tools/record"
	"k8s.io/utils/ptr"

	"github.com/engula/engula-operator/api/v1alpha1"
	"github.com/engula/engula-operator/internal/adapters/outbound/k8s"
	"github.com/engula/engula-operator/internal/logic/controller"
)

func newFakeDynamic(objects ...runtime.Object) *dynamicfake.FakeDynamicClient {
	return dynamicfake.NewSimpleDynamicClientWithCustomListKinds(
		runtime.NewScheme(),
		map[schema.GroupVersionResource]string{
			v1alpha1.JournalGVR: "JournalList",
			v1alpha1.StorageGVR: "StorageList",
		},
		objects...,
	)
}

func newTestDeployment(namespace, name string) *appsv1.Deployment {
	return &appsv1.Deployment{
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
		Spec: appsv1.DeploymentSpec{
			Replicas: ptr.To(int32(1)),
		},
		Status: appsv1.DeploymentStatus{ReadyReplicas: 1},
	}
}

type errorMarkers struct {
	notFound      bool
	alreadyExists bool
	transient     bool
}

func markersOf(err error) errorMarkers {
	var notFoundTarget *k8s.NotFoundError
	var alreadyExistsTarget *k8s.AlreadyExistsError
	var transientTarget *k8s.TransientError

	return errorMarkers{
		notFound:      errors.As(err, &notFoundTarget),
		alreadyExists: errors.As(err, &alreadyExistsTarget),
		transient:     errors.As(err, &transientTarget),
	}
}

func TestAdapter_GetDeploymentQuery(t *testing.T) {
	t.Parallel()

	gr := schema.GroupResource{Group: "apps", Resource: "deployments"}

	tests := []struct {
		name         string
		give         error
		wantErr      bool
		wantMarkers  errorMarkers
		wantAPIErr   bool
		wantReplicas int32
	}{
		{
			name:         "found",
			wantReplicas: 1,
		},
		{
			name:        "not found",
			give:        apierrors.NewNotFound(gr, "j1"),
			wantErr:     true,
			wantMarkers: errorMarkers{notFound: true},
		},
		{
			name:        "throttled is transient",
			give:        apierrors.NewTooManyRequests("slow down", 1),
			wantErr:     true,
			wantMarkers: errorMarkers{transient: true},
			wantAPIErr:  true,
		},
		{
			name:        "server timeout is transient",
			give:        apierrors.NewServerTimeout(gr, "get", 1),
			wantErr:     true,
			wantMarkers: errorMarkers{transient: true},
			wantAPIErr:  true,
		},
		{
			name:        "broken transport is transient",
			give:        errors.New("connection refused"),
			wantErr:     true,
			wantMarkers: errorMarkers{transient: true},
			wantAPIErr:  true,
		},
		{
			name:       "forbidden propagates",
			give:       apierrors.NewForbidden(gr, "j1", errors.New("rbac")),
			wantErr:    true,
			wantAPIErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			clientset := fake.NewClientset(newTestDeployment("ns1", "j1"))
			if tt.give != nil {
				clientset.PrependReactor("get", "deployments",
					func(k8stesting.Action) (bool, runtime.Object, error) {
						return true, nil, tt.give
					})
			}

			adapter := k8s.New(slog.Default(), clientset, newFakeDynamic(), record.NewFakeRecorder(1))

			got, err := adapter.GetDeploymentQuery(t.Context(), "ns1", "j1")
			if !tt.wantErr {
				require.NoError(t, err)
				require.Equal(t, tt.wantReplicas, got.Status.ReadyReplicas)

				return
			}

			require.Error(t, err)
			require.Equal(t, tt.wantMarkers, markersOf(err))
			require.Equal(t, tt.wantAPIErr, errors.Is(err, controller.ErrClusterAPI))
		})
	}
}

func TestAdapter_CreateDeploymentCommand(t *testing.T) {
	t.Parallel()

	t.Run("creates the deployment", func(t *testing.T) {
		t.Parallel()

		clientset := fake.NewClientset()
		adapter := k8s.New(slog.Default(), clientset, newFakeDynamic(), record.NewFakeRecorder(1))

		err := adapter.CreateDeploymentCommand(t.Context(), newTestDeployment("ns1", "j1"))
		require.NoError(t, err)

		got, err := clientset.AppsV1().Deployments("ns1").Get(t.Context(), "j1", metav1.GetOptions{})
		require.NoError(t, err)
		require.Equal(t, "j1", got.Name)
	})

	t.Run("existing deployment is reported as already exists", func(t *testing.T) {
		t.Parallel()

		clientset := fake.NewClientset(newTestDeployment("ns1", "j1"))
		adapter := k8s.New(slog.Default(), clientset, newFakeDynamic(), record.NewFakeRecorder(1))

		err := adapter.CreateDeploymentCommand(t.Context(), newTestDeployment("ns1", "j1"))
		require.Error(t, err)
		require.Equal(t, errorMarkers{alreadyExists: true}, markersOf(err))
	})
}

func TestAdapter_ApplyStatusCommand(t *testing.T) {
	t.Parallel()

	dyn := newFakeDynamic()

	var got *k8stesting.PatchActionImpl

	dyn.PrependReactor("patch", "journals", func(action k8stesting.Action) (bool, runtime.Object, error) {
		patch, ok := action.(k8stesting.PatchActionImpl)
		require.True(t, ok)

		got = &patch

		return true, nil, nil
	})

	adapter := k8s.New(slog.Default(), fake.NewClientset(), dyn, record.NewFakeRecorder(1))

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	err := adapter.ApplyStatusCommand(t.Context(), controller.JournalKind, "ns1", "j1", controller.Status{
		DeploymentStatus: &appsv1.DeploymentStatus{ReadyReplicas: 1},
		LastReconciled:   at,
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	require.Equal(t, types.ApplyPatchType, got.GetPatchType())
	require.Equal(t, "status", got.GetSubresource())
	require.Equal(t, "ns1", got.GetNamespace())
	require.Equal(t, "j1", got.GetName())

	var body map[string]any
	require.NoError(t, json.Unmarshal(got.GetPatch(), &body))
	require.Equal(t, "engula.io/v1alpha1", body["apiVersion"])
	require.Equal(t, "Journal", body["kind"])

	status, ok := body["status"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "2026-01-02T03:04:05Z", status["last_reconciled"])

	deploymentStatus, ok := status["deployment_status"].(map[string]any)
	require.True(t, ok)
	require.InDelta(t, 1, deploymentStatus["readyReplicas"], 0)
}

func TestAdapter_ApplyStatusCommand_NoDeployment(t *testing.T) {
	t.Parallel()

	dyn := newFakeDynamic()

	var body map[string]any

	dyn.PrependReactor("patch", "storages", func(action k8stesting.Action) (bool, runtime.Object, error) {
		patch, ok := action.(k8stesting.PatchActionImpl)
		require.True(t, ok)
		require.NoError(t, json.Unmarshal(patch.GetPatch(), &body))

		return true, nil, nil
	})

	adapter := k8s.New(slog.Default(), fake.NewClientset(), dyn, record.NewFakeRecorder(1))

	err := adapter.ApplyStatusCommand(t.Context(), controller.StorageKind, "ns1", "s1", controller.Status{
		LastReconciled: time.Now(),
	})
	require.NoError(t, err)

	status, ok := body["status"].(map[string]any)
	require.True(t, ok)
	require.Contains(t, status, "deployment_status")
	require.Nil(t, status["deployment_status"])
}

func TestAdapter_ApplyStatusCommand_Error(t *testing.T) {
	t.Parallel()

	dyn := newFakeDynamic()
	dyn.PrependReactor("patch", "journals", func(k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, apierrors.NewConflict(
			schema.GroupResource{Group: v1alpha1.Group, Resource: v1alpha1.ResourceJournals},
			"j1",
			errors.New("conflict"),
		)
	})

	adapter := k8s.New(slog.Default(), fake.NewClientset(), dyn, record.NewFakeRecorder(1))

	err := adapter.ApplyStatusCommand(t.Context(), controller.JournalKind, "ns1", "j1", controller.Status{})
	require.ErrorIs(t, err, controller.ErrClusterAPI)
}

func TestAdapter_PublishEventCommand(t *testing.T) {
	t.Parallel()

	recorder := record.NewFakeRecorder(1)
	adapter := k8s.New(slog.Default(), fake.NewClientset(), newFakeDynamic(), recorder)

	adapter.PublishEventCommand(t.Context(), controller.JournalKind, controller.Resource{
		Name:      "j1",
		Namespace: "ns1",
		UID:       "uid-j1",
	}, controller.Event{
		Type:   corev1.EventTypeNormal,
		Reason: "DeploymentCreated",
		Note:   "Created deployment ns1/j1",
	})

	select {
	case got := <-recorder.Events:
		require.Equal(t, "Normal DeploymentCreated Created deployment ns1/j1", got)
	default:
		t.Fatal("no event recorded")
	}
}

func TestAdapter_CheckInstalledQuery(t *testing.T) {
	t.Parallel()

	t.Run("served", func(t *testing.T) {
		t.Parallel()

		adapter := k8s.New(slog.Default(), fake.NewClientset(), newFakeDynamic(), record.NewFakeRecorder(1))

		require.NoError(t, adapter.CheckInstalledQuery(t.Context(), controller.JournalKind))
	})

	t.Run("not served", func(t *testing.T) {
		t.Parallel()

		dyn := newFakeDynamic()
		dyn.PrependReactor("list", "storages", func(k8stesting.Action) (bool, runtime.Object, error) {
			return true, nil, apierrors.NewNotFound(
				schema.GroupResource{Group: v1alpha1.Group, Resource: v1alpha1.ResourceStorages}, "")
		})

		adapter := k8s.New(slog.Default(), fake.NewClientset(), dyn, record.NewFakeRecorder(1))

		err := adapter.CheckInstalledQuery(t.Context(), controller.StorageKind)
		require.ErrorContains(t, err, "is the CRD installed?")
	})
}

func newUnstructuredJournal(namespace, name string) *unstructured.Unstructured {
	u := &unstructured.Unstructured{}
	u.SetAPIVersion(v1alpha1.GroupVersion.String())
	u.SetKind(v1alpha1.KindJournal)
	u.SetNamespace(namespace)
	u.SetName(name)
	u.SetUID(types.UID("uid-" + name))

	return u
}
