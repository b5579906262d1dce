package k8s

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/dynamic/dynamicinformer"
	"k8s.io/client-go/tools/cache"

	"github.com/engula/engula-operator/internal/logic/controller"
)

// Source is the watch feed of one custom resource kind, backed by a shared
// informer over the dynamic client.
type Source struct {
	logger   *slog.Logger
	kind     controller.Kind
	informer cache.SharedIndexInformer
}

// NewSource creates a watch feed for kind. An empty namespace watches all
// namespaces; resync re-delivers every cached object periodically.
func NewSource(
	logger *slog.Logger,
	dynamicClient dynamic.Interface,
	kind controller.Kind,
	namespace string,
	resync time.Duration,
) *Source {
	informer := dynamicinformer.NewFilteredDynamicInformer(
		dynamicClient,
		kindGVR(kind),
		namespace,
		resync,
		cache.Indexers{cache.NamespaceIndex: cache.MetaNamespaceIndexFunc},
		nil,
	)

	return &Source{
		logger:   logger.With("source", kind.Resource),
		kind:     kind,
		informer: informer.Informer(),
	}
}

var _ controller.ResourceSource = (*Source)(nil)

func (s *Source) Watch(ctx context.Context, enqueue func(controller.Key)) error {
	_, err := s.informer.AddEventHandler(cache.ResourceEventHandlerFuncs{
		AddFunc: func(obj any) {
			s.enqueue(ctx, obj, enqueue)
		},
		UpdateFunc: func(oldObj, newObj any) {
			if !needsReconcile(oldObj, newObj) {
				return
			}

			s.enqueue(ctx, newObj, enqueue)
		},
	})
	if err != nil {
		return fmt.Errorf("add %s event handler: %w", s.kind.Resource, err)
	}

	go s.informer.Run(ctx.Done())

	if !cache.WaitForCacheSync(ctx.Done(), s.informer.HasSynced) {
		return fmt.Errorf("wait for %s: %w", s.kind.Resource, controller.ErrCacheNotSynced)
	}

	s.logger.InfoContext(ctx, "watch cache synced")

	return nil
}

func (s *Source) HasSynced() bool {
	return s.informer.HasSynced()
}

func (s *Source) GetResourceQuery(
	_ context.Context,
	key controller.Key,
) (*controller.Resource, error) {
	cacheKey := key.Name
	if key.Namespace != "" {
		cacheKey = key.Namespace + "/" + key.Name
	}

	obj, exists, err := s.informer.GetIndexer().GetByKey(cacheKey)
	if err != nil {
		return nil, fmt.Errorf("get %s from cache: %w", key, err)
	}

	if !exists {
		return nil, fmt.Errorf("get %s from cache: %w", key, &NotFoundError{})
	}

	u, ok := obj.(*unstructured.Unstructured)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected cached type %T", controller.ErrSerialization, obj)
	}

	return toDomainResource(s.kind, u)
}

func (s *Source) ListKeysQuery(ctx context.Context) []controller.Key {
	cacheKeys := s.informer.GetIndexer().ListKeys()
	keys := make([]controller.Key, 0, len(cacheKeys))

	for _, cacheKey := range cacheKeys {
		namespace, name, err := cache.SplitMetaNamespaceKey(cacheKey)
		if err != nil {
			s.logger.WarnContext(ctx, "skipping malformed cache key", "key", cacheKey, "reason", err)

			continue
		}

		keys = append(keys, controller.Key{Kind: s.kind.Name, Namespace: namespace, Name: name})
	}

	return keys
}

func (s *Source) enqueue(ctx context.Context, obj any, enqueue func(controller.Key)) {
	accessor, err := meta.Accessor(obj)
	if err != nil {
		s.logger.WarnContext(ctx, "skipping object without metadata", "reason", err)

		return
	}

	enqueue(controller.Key{
		Kind:      s.kind.Name,
		Namespace: accessor.GetNamespace(),
		Name:      accessor.GetName(),
	})
}

// needsReconcile reports whether an update can change the outcome of a pass.
// Status writes, including the controller's own, bump only the resource
// version. An informer resync redelivers the same version and always passes.
func needsReconcile(oldObj, newObj any) bool {
	oldMeta, err := meta.Accessor(oldObj)
	if err != nil {
		return true
	}

	newMeta, err := meta.Accessor(newObj)
	if err != nil {
		return true
	}

	switch {
	case oldMeta.GetResourceVersion() == newMeta.GetResourceVersion():
		return true
	case oldMeta.GetGeneration() != newMeta.GetGeneration():
		return true
	case !oldMeta.GetDeletionTimestamp().Equal(newMeta.GetDeletionTimestamp()):
		return true
	default:
		return !slices.Equal(oldMeta.GetFinalizers(), newMeta.GetFinalizers())
	}
}
