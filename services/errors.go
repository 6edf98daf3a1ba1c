package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error taxonomy surfaced to handlers. Services wrap these sentinels with
// fmt.Errorf("%w: ...") so handlers can map them to HTTP statuses with
// errors.Is while keeping the message.
var (
	ErrValidation       = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrDuplicate        = errors.New("already exists")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// wrapStoreErr converts a database error into the taxonomy: missing rows
// become ErrNotFound, anything else surfaces as ErrStoreUnavailable. No
// retry is attempted.
func wrapStoreErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
