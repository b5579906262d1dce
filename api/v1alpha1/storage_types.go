package v1alpha1

import (
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// StorageSpec defines the desired state of Storage.
type StorageSpec struct {
	// Template seeds the pod template of the managed deployment.
	// +optional
	Template *corev1.PodTemplateSpec `json:"template,omitempty"`
}

// StorageStatus defines the observed state of Storage.
type StorageStatus struct {
	// +optional
	DeploymentStatus *appsv1.DeploymentStatus `json:"deployment_status"`

	// LastReconciled is stamped by the operator on every reconciliation pass.
	// +optional
	LastReconciled *metav1.Time `json:"last_reconciled,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status

// Storage is the Schema for the storages API
type Storage struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   StorageSpec    `json:"spec"`
	Status *StorageStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// StorageList contains a list of Storage
type StorageList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []Storage `json:"items"`
}
