package controller

// Action to be taken upon a custom resource during reconciliation.
type Action int

const (
	// ActionNoOp means the resource is adopted and not being deleted.
	ActionNoOp Action = iota
	// ActionCreate means the resource has not been initialized yet.
	ActionCreate
	// ActionDelete means the resource is being torn down.
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionDelete:
		return "delete"
	default:
		return "noop"
	}
}

// DetermineAction classifies a resource by its lifecycle markers.
func DetermineAction(res Resource) Action {
	switch {
	case res.DeletionTimestamp != nil:
		return ActionDelete
	case len(res.Finalizers) == 0:
		return ActionCreate
	default:
		return ActionNoOp
	}
}
