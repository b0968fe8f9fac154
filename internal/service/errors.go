package service

import "errors"

var (
	// ErrInvalidInput is returned when a request fails validation
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidTransition is returned when an assignment is moved out of a terminal status
	ErrInvalidTransition = errors.New("invalid assignment transition")

	// ErrInvalidPage is returned for a negative page offset
	ErrInvalidPage = errors.New("page must not be negative")

	// ErrPositionNotOnShift is returned when an assignment names a position the shift does not offer
	ErrPositionNotOnShift = errors.New("position is not offered on this shift")

	// ErrNotShiftOwner is returned when a maker acts on another maker's shift
	ErrNotShiftOwner = errors.New("shift belongs to another maker")

	// ErrNotAssigned is returned when rating a werker who never worked the shift
	ErrNotAssigned = errors.New("werker has no accepted assignment on this shift")

	// ErrPartialAttachment is returned by best-effort bulk operations when
	// at least one item failed while the owner row was kept
	ErrPartialAttachment = errors.New("some attachments failed")

	// ErrRolledBack marks items of an atomic bulk operation that were undone
	// because another item failed
	ErrRolledBack = errors.New("rolled back with bulk operation")
)
