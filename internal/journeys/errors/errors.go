package errors

import "errors"

var (
	ErrNotFound = errors.New("journey not found")

	ErrInvalidID = errors.New("invalid journey ID format")
)
