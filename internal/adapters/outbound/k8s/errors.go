package k8s

import (
	"errors"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"

	"github.com/engula/engula-operator/internal/logic/controller"
)

// NotFoundError represents a "not found" answer, which the controller treats as a signal.
type NotFoundError struct {
	cause error
}

func (e *NotFoundError) Error() string {
	if e.cause == nil {
		return "not found"
	}

	return e.cause.Error()
}

func (e *NotFoundError) Unwrap() error { return e.cause }

func (e *NotFoundError) IsNotFound() {}

// AlreadyExistsError represents a create that lost a race with another writer.
type AlreadyExistsError struct {
	cause error
}

func (e *AlreadyExistsError) Error() string { return e.cause.Error() }

func (e *AlreadyExistsError) Unwrap() error { return e.cause }

func (e *AlreadyExistsError) IsAlreadyExists() {}

// TransientError represents a call that gave no usable answer: throttling,
// timeouts or a broken transport.
type TransientError struct {
	cause error
}

func (e *TransientError) Error() string { return e.cause.Error() }

func (e *TransientError) Unwrap() error { return e.cause }

func (e *TransientError) IsTransient() {}

// classify wraps err so the controller can tell its kind apart without
// importing this package.
func classify(op string, err error) error {
	switch {
	case apierrors.IsNotFound(err):
		return fmt.Errorf("%s: %w", op, &NotFoundError{cause: err})
	case apierrors.IsAlreadyExists(err):
		return fmt.Errorf("%s: %w", op, &AlreadyExistsError{cause: err})
	case apierrors.IsTooManyRequests(err),
		apierrors.IsServerTimeout(err),
		apierrors.IsTimeout(err):
		return fmt.Errorf("%s: %w: %w", op, controller.ErrClusterAPI, &TransientError{cause: err})
	}

	var status apierrors.APIStatus
	if errors.As(err, &status) {
		return fmt.Errorf("%s: %w: %w", op, controller.ErrClusterAPI, err)
	}

	return fmt.Errorf("%s: %w: %w", op, controller.ErrClusterAPI, &TransientError{cause: err})
}
