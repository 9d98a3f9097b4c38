package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Reflection Errors.

	// ErrConsumerNotFound indicates the consumer no longer exists in the host corpus.
	ErrConsumerNotFound = errors.New("consumer not found")

	// ErrSlotNotFound indicates the consumer has no property slot with the given name.
	ErrSlotNotFound = errors.New("slot not found")

	// Planning Errors.

	// ErrMasterIsDuplicate indicates a group's master is also listed as a duplicate.
	ErrMasterIsDuplicate = errors.New("master is listed as a duplicate")

	// ErrOverlappingDuplicates indicates an asset is a duplicate in more than one group.
	ErrOverlappingDuplicates = errors.New("asset is a duplicate in more than one group")

	// ErrUnknownMaster indicates a master has no asset in the known corpus.
	ErrUnknownMaster = errors.New("master asset is unknown")

	// Deletion Errors.

	// ErrStillReferenced indicates an asset cannot be deleted because sites still point at it.
	ErrStillReferenced = errors.New("asset is still referenced")

	// ErrNotConfirmed indicates a destructive action was not confirmed by the user.
	ErrNotConfirmed = errors.New("action not confirmed")
)

// PlanError describes why a set of duplicate groups could not be planned.
// It wraps one of the planning sentinels so callers can use errors.Is.
type PlanError struct {
	// Kind is the sentinel describing the failure.
	Kind error

	// Asset is the offending asset identity.
	Asset AssetID

	// Group is the index of the group that triggered the failure.
	Group int
}

func (e *PlanError) Error() string {
	return fmt.Sprintf("group %d: %v: %s", e.Group, e.Kind, e.Asset)
}

func (e *PlanError) Unwrap() error {
	return e.Kind
}
