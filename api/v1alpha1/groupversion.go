// Package v1alpha1 contains the engula.io/v1alpha1 custom resource types
// reconciled by the operator.
package v1alpha1

import (
	"k8s.io/apimachinery/pkg/runtime/schema"
)

const (
	Group   = "engula.io"
	Version = "v1alpha1"

	KindJournal = "Journal"
	KindStorage = "Storage"

	ResourceJournals = "journals"
	ResourceStorages = "storages"
)

var (
	// GroupVersion is the group version used to register these objects.
	GroupVersion = schema.GroupVersion{Group: Group, Version: Version}

	JournalGVR = GroupVersion.WithResource(ResourceJournals)
	StorageGVR = GroupVersion.WithResource(ResourceStorages)
)
