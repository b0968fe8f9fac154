package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Common repository errors
var (
	// ErrMakerNotFound is returned when a maker is not found
	ErrMakerNotFound = errors.New("maker not found")

	// ErrShiftNotFound is returned when a shift is not found
	ErrShiftNotFound = errors.New("shift not found")

	// ErrWerkerNotFound is returned when a werker is not found
	ErrWerkerNotFound = errors.New("werker not found")

	// ErrAlreadyExists is returned when a maker or werker with the id already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrDuplicateAttachment is returned when a junction row for the pair already exists
	ErrDuplicateAttachment = errors.New("duplicate attachment")

	// ErrDuplicateRating is returned when a werker was already rated for a shift
	ErrDuplicateRating = errors.New("werker already rated for this shift")

	// ErrMissingReference is returned when a row points at a parent that does not exist
	ErrMissingReference = errors.New("referenced row does not exist")

	// ErrStoreUnavailable wraps every failure of the underlying database
	ErrStoreUnavailable = errors.New("store unavailable")
)

// storeErr wraps a database failure so callers can match both
// ErrStoreUnavailable and the driver error.
func storeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %w", ErrMissingReference, err)
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
