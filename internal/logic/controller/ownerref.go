package controller

import (
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/utils/ptr"
)

// NewOwnerReference links a child object to res as its controller.
// A persisted resource always has a name and UID, so a missing one is
// reported as ErrMissingObjectKey.
func NewOwnerReference(kind Kind, res Resource) (metav1.OwnerReference, error) {
	if res.Name == "" {
		return metav1.OwnerReference{}, fmt.Errorf("%w: .metadata.name", ErrMissingObjectKey)
	}

	if res.UID == "" {
		return metav1.OwnerReference{}, fmt.Errorf("%w: .metadata.uid", ErrMissingObjectKey)
	}

	return metav1.OwnerReference{
		APIVersion: kind.APIVersion,
		Kind:       kind.Name,
		Name:       res.Name,
		UID:        types.UID(res.UID),
		Controller: ptr.To(true),
	}, nil
}
