package errs

import (
	"errors"
	"fmt"
)

var (
	ErrConflict           = errors.New("conflict")
	ErrBlocked            = errors.New("blocked")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrInvalidState       = errors.New("invalid state")
)

// ConflictError reports a uniqueness rule violation on Resource.
type ConflictError struct {
	Resource string
	Reason   string
	Cause    error
}

func NewConflictError(resource, reason string) *ConflictError {
	return &ConflictError{Resource: resource, Reason: reason}
}

func NewConflictErrorWithCause(resource, reason string, cause error) *ConflictError {
	return &ConflictError{Resource: resource, Reason: reason, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s %s (cause: %v)", ErrConflict, e.Resource, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s %s", ErrConflict, e.Resource, e.Reason)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// BlockedError reports an action refused because of an unresolved blocking anomaly.
type BlockedError struct {
	Resource string
	ID       any
}

func NewBlockedError(resource string, id any) *BlockedError {
	return &BlockedError{Resource: resource, ID: id}
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("%s: %s %s has an unresolved blocking anomaly", ErrBlocked, e.Resource, e.ID)
}

func (e *BlockedError) Unwrap() error {
	return ErrBlocked
}

type PreconditionFailedError struct {
	Reason string
}

func NewPreconditionFailedError(reason string) *PreconditionFailedError {
	return &PreconditionFailedError{Reason: reason}
}

func (e *PreconditionFailedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrPreconditionFailed, e.Reason)
}

func (e *PreconditionFailedError) Unwrap() error {
	return ErrPreconditionFailed
}

type InvalidStateError struct {
	Reason string
	Cause  error
}

func NewInvalidStateError(reason string) *InvalidStateError {
	return &InvalidStateError{Reason: reason}
}

func NewInvalidStateErrorWithCause(reason string, cause error) *InvalidStateError {
	return &InvalidStateError{Reason: reason, Cause: cause}
}

func (e *InvalidStateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrInvalidState, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidState, e.Reason)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}
