package controller

import (
	"strings"

	"github.com/engula/engula-operator/api/v1alpha1"
)

// Kind carries the per-kind conventions of a custom resource. One generic
// Reconciler serves every kind; only this record differs between them.
type Kind struct {
	// Name is the custom resource kind, e.g. Journal.
	Name string
	// Resource is the plural API resource, e.g. journals.
	Resource string
	// APIVersion is group/version of the custom resource.
	APIVersion string
	// DefaultImage is used when the resource template names no image.
	DefaultImage string
	// Command is the container entrypoint used when the template has none.
	Command string
	// EnvPrefix prefixes the identity env vars injected into the container.
	EnvPrefix string
}

var (
	JournalKind = Kind{
		Name:         v1alpha1.KindJournal,
		Resource:     v1alpha1.ResourceJournals,
		APIVersion:   v1alpha1.GroupVersion.String(),
		DefaultImage: "engula/journal:latest",
		Command:      "journal",
		EnvPrefix:    "JOURNAL",
	}

	StorageKind = Kind{
		Name:         v1alpha1.KindStorage,
		Resource:     v1alpha1.ResourceStorages,
		APIVersion:   v1alpha1.GroupVersion.String(),
		DefaultImage: "engula/storage:latest",
		Command:      "storage",
		EnvPrefix:    "STORAGE",
	}
)

// Kinds returns every kind served by the operator.
func Kinds() []Kind {
	return []Kind{JournalKind, StorageKind}
}

// MetricsPrefix returns the namespace used for the kind's prometheus collectors.
func (k Kind) MetricsPrefix() string {
	return strings.ToLower(k.Name) + "_controller"
}
