package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated means no principal was supplied.
	ErrUnauthenticated = errors.New("unauthenticated: login required")

	// ErrPermissionDenied means the principal lacks rights for the mutation.
	ErrPermissionDenied = errors.New("permission denied: only administrators or the task creator can delete this record")

	// ErrTaskNotFound means the task does not exist in the principal's workspace.
	ErrTaskNotFound = errors.New("task not found")

	// ErrStoreUnavailable means the underlying persistence call failed. The
	// registry performs no retry; state is unchanged and the caller decides.
	ErrStoreUnavailable = errors.New("store unavailable")
)

func storeError(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
