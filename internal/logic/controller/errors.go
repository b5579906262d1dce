package controller

import "errors"

var (
	// ErrClusterAPI wraps transport and API failures returned by the cluster.
	ErrClusterAPI = errors.New("cluster api")

	// ErrSerialization wraps malformed documents that cannot be decoded.
	ErrSerialization = errors.New("serialization")

	// ErrMissingObjectKey is returned when a required metadata field is absent.
	ErrMissingObjectKey = errors.New("missing object key")

	// ErrNotReady is returned by Ping before the workers are running.
	ErrNotReady = errors.New("controller service is not ready")

	// ErrQueueShuttingDown is returned by Ping once the work queue is draining.
	ErrQueueShuttingDown = errors.New("work queue is shutting down")

	// ErrCacheNotSynced is returned by Ping while the watch cache lags behind.
	ErrCacheNotSynced = errors.New("watch cache is not synced")
)
