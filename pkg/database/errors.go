package database

import (
	"errors"

	"gorm.io/gorm"
)

// Common database error types that abstract away gorm and driver details.
var (
	// ErrRecordNotFound is returned when a query doesn't find any matching records
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when an insert violates a unique constraint
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrInvalidData is returned when the data being saved doesn't meet validation rules
	ErrInvalidData = errors.New("invalid data")
)

// TranslateError maps gorm errors onto the package sentinels.
// Unknown errors are returned unchanged.
func TranslateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrInvalidData):
		return ErrInvalidData
	}
	return err
}

// IsRecordNotFoundError reports whether err is ErrRecordNotFound.
func IsRecordNotFoundError(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}
