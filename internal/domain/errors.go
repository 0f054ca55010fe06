// Package domain holds shared domain types and sentinel errors.
package domain

import "errors"

var (
	// ErrPaperNotFound signals a missing paper record.
	ErrPaperNotFound = errors.New("paper not found")
	// ErrSnapshotUnavailable signals that no corpus snapshot could be fetched.
	ErrSnapshotUnavailable = errors.New("corpus snapshot unavailable")
	// ErrInvalidFilter signals a malformed filter parameter.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrInvalidSortMode signals an unrecognized sort mode.
	ErrInvalidSortMode = errors.New("invalid sort mode")
)
