package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Common service errors
var (
	ErrNotFound     = errors.New("record not found")
	ErrValidation   = errors.New("validation failed")
	ErrInvalidState = errors.New("invalid state transition")
	ErrUnauthorized = errors.New("invalid credentials")
)

// wrapNotFound converts a gorm record-not-found into ErrNotFound so handlers
// can map it to a 404; any other repository error stays wrapped as an
// internal failure.
func wrapNotFound(err error, resource string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d", ErrNotFound, resource, id)
	}
	return fmt.Errorf("failed to load %s %d: %w", resource, id, err)
}
