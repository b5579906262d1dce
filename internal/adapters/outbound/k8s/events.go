package k8s

import (
	"context"
	"log/slog"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/scheme"
	typedcorev1 "k8s.io/client-go/kubernetes/typed/core/v1"
	"k8s.io/client-go/tools/record"
)

// EventBroadcaster ships events recorded on custom resources to the cluster.
type EventBroadcaster struct {
	logger      *slog.Logger
	broadcaster record.EventBroadcaster
	recorder    record.EventRecorder
}

// NewEventBroadcaster creates a broadcaster that reports as reporter.
func NewEventBroadcaster(
	logger *slog.Logger,
	clientset kubernetes.Interface,
	reporter string,
) *EventBroadcaster {
	broadcaster := record.NewBroadcaster()
	broadcaster.StartRecordingToSink(&typedcorev1.EventSinkImpl{
		Interface: clientset.CoreV1().Events(""),
	})

	return &EventBroadcaster{
		logger:      logger,
		broadcaster: broadcaster,
		recorder: broadcaster.NewRecorder(scheme.Scheme, corev1.EventSource{
			Component: reporter,
		}),
	}
}

// Recorder returns the recorder used by the adapter.
func (b *EventBroadcaster) Recorder() record.EventRecorder {
	return b.recorder
}

// Name returns the name of the broadcaster component
func (b *EventBroadcaster) Name() string {
	return "event-broadcaster"
}

// Shutdown stops the broadcaster; events still buffered are dropped.
func (b *EventBroadcaster) Shutdown(ctx context.Context) error {
	b.broadcaster.Shutdown()
	b.logger.InfoContext(ctx, "event broadcaster shut downed")

	return nil
}
