package v1alpha1

import (
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// JournalSpec defines the desired state of Journal.
type JournalSpec struct {
	// Template seeds the pod template of the managed deployment.
	// +optional
	Template *corev1.PodTemplateSpec `json:"template,omitempty"`
}

// JournalStatus defines the observed state of Journal.
type JournalStatus struct {
	// +optional
	DeploymentStatus *appsv1.DeploymentStatus `json:"deployment_status"`

	// LastReconciled is stamped by the operator on every reconciliation pass.
	// +optional
	LastReconciled *metav1.Time `json:"last_reconciled,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status

// Journal is the Schema for the journals API
type Journal struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   JournalSpec    `json:"spec"`
	Status *JournalStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// JournalList contains a list of Journal
type JournalList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Journal `json:"items"`
}
