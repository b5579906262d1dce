package controller

import "time"

const (
	// FieldManager owns the status fields written with server-side apply.
	FieldManager = "cntrlr"

	// DefaultReporter identifies the operator in events and on the status surface.
	DefaultReporter = "engula-operator"

	// AppLabelKey keys the workload selector on the owning resource name.
	AppLabelKey = "app"

	// RequeueSteadyState is the requeue delay after a successful create or no-op pass.
	RequeueSteadyState = 30 * time.Minute

	// RequeueAmbiguous is the requeue delay when the workload lookup gave no usable answer.
	RequeueAmbiguous = 5 * time.Second

	// RequeueOnError is the fixed requeue delay applied to every failed pass.
	RequeueOnError = 6 * time.Minute

	workloadReplicas int32 = 1

	eventReasonDeploymentCreated = "DeploymentCreated"
)
