package k8s

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

func newVersionedJournal(resourceVersion string, generation int64) *unstructured.Unstructured {
	u := &unstructured.Unstructured{}
	u.SetNamespace("ns1")
	u.SetName("j1")
	u.SetResourceVersion(resourceVersion)
	u.SetGeneration(generation)

	return u
}

func TestNeedsReconcile(t *testing.T) {
	t.Parallel()

	deletedAt := metav1.NewTime(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name       string
		giveOld    *unstructured.Unstructured
		giveMutate func(u *unstructured.Unstructured)
		want       bool
	}{
		{
			name:    "status only write is skipped",
			giveOld: newVersionedJournal("1", 1),
			giveMutate: func(u *unstructured.Unstructured) {
				u.SetResourceVersion("2")
				u.Object["status"] = map[string]any{"last_reconciled": "2026-03-01T00:00:00Z"}
			},
			want: false,
		},
		{
			name:       "informer resync passes",
			giveOld:    newVersionedJournal("1", 1),
			giveMutate: func(*unstructured.Unstructured) {},
			want:       true,
		},
		{
			name:    "generation bump passes",
			giveOld: newVersionedJournal("1", 1),
			giveMutate: func(u *unstructured.Unstructured) {
				u.SetResourceVersion("2")
				u.SetGeneration(2)
			},
			want: true,
		},
		{
			name:    "deletion mark passes",
			giveOld: newVersionedJournal("1", 1),
			giveMutate: func(u *unstructured.Unstructured) {
				u.SetResourceVersion("2")
				u.SetDeletionTimestamp(&deletedAt)
			},
			want: true,
		},
		{
			name:    "finalizer change passes",
			giveOld: newVersionedJournal("1", 1),
			giveMutate: func(u *unstructured.Unstructured) {
				u.SetResourceVersion("2")
				u.SetFinalizers([]string{"engula.io/cleanup"})
			},
			want: true,
		},
		{
			name:    "label change is skipped",
			giveOld: newVersionedJournal("1", 1),
			giveMutate: func(u *unstructured.Unstructured) {
				u.SetResourceVersion("2")
				u.SetLabels(map[string]string{"team": "storage"})
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			updated := tt.giveOld.DeepCopy()
			tt.giveMutate(updated)

			require.Equal(t, tt.want, needsReconcile(tt.giveOld, updated))
		})
	}
}

func TestNeedsReconcile_NonObjectPasses(t *testing.T) {
	t.Parallel()

	require.True(t, needsReconcile("not an object", newVersionedJournal("1", 1)))
}
