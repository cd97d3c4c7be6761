package models

import "errors"

// Domain errors shared by every storage implementation. Handlers map these
// to HTTP status codes; anything else is surfaced as a storage failure (500)
// and never retried here.
var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidInput      = errors.New("invalid input")
	ErrConflict          = errors.New("already exists")
)
