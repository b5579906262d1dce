package config

import "time"

// Env key constants. All operator configuration env vars use ENGULA_ prefix;
// duration values support explicit units (e.g. 5m, 40s, 2h).

// Path to kubeconfig file. If unset, KUBECONFIG is used as fallback.
const envKeyKubeConfig = "ENGULA_KUBECONFIG"

// Kubernetes API server URL. If unset, KUBERNETES_MASTER is used as fallback.
const envKeyKubeMaster = "ENGULA_KUBE_MASTER"

// Log level: debug, info, warn, error.
const envKeyLogLevel = "ENGULA_LOG_LEVEL"

// Log format: json or text.
const envKeyLogFormat = "ENGULA_LOG_FORMAT"

// Port for health/readiness/status HTTP server.
const envKeyHTTPPort = "ENGULA_HTTP_PORT"

// Port for Prometheus metrics (GET /metrics).
const envKeyMetricsPort = "ENGULA_METRICS_PORT"

// Namespace to watch; empty watches all namespaces.
const envKeyNamespace = "ENGULA_NAMESPACE"

// Number of reconcile workers per kind.
const (
	envKeyWorkers = "ENGULA_WORKERS"
	envMinWorkers = 1
)

// Informer resync period. Units: s, m, h (e.g. 300s, 5m).
const (
	envKeyResyncPeriod = "ENGULA_RESYNC_PERIOD"
	envMinResyncPeriod = 30 * time.Second
)

// Optional cron expression (or @descriptor) for a full resync of every kind.
const envKeyResyncSchedule = "ENGULA_RESYNC_SCHEDULE"

// Pinger check interval. Units: s, m, h (e.g. 10s, 1m).
const (
	envKeyPingerInterval = "ENGULA_PINGER_INTERVAL"
	envMinPingerInterval = time.Second
)

// Reporter identity used as event source component.
const envKeyReporter = "ENGULA_REPORTER"

// Marker file written by the pod's preStop hook.
const envKeyTerminationFile = "ENGULA_TERMINATION_FILE"

// Standard k8s env keys used as fallback when ENGULA_* are unset.
const (
	envKeyKubeConfigFallback = "KUBECONFIG"
	envKeyKubeMasterFallback = "KUBERNETES_MASTER"
)
