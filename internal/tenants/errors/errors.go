package errors

import "errors"

var (
	ErrNotFound = errors.New("tenant not found")

	ErrDuplicateCode = errors.New("tenant code already registered")
)
