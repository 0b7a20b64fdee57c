package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrAssignmentNotFound is returned when removing a (user, role) pair
	// that is not assigned.
	ErrAssignmentNotFound = errors.New("role is not assigned to user")

	// ErrDeleteFailed is returned when an entity existed at the check but
	// the delete statement removed nothing.
	ErrDeleteFailed = errors.New("delete failed")

	// ErrUpdateFailed is returned when an entity existed at the check but
	// the update statement touched no row.
	ErrUpdateFailed = errors.New("update failed")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
