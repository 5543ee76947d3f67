package domain

import "errors"

var (
	// ErrNotFound means no list item could be resolved for a name.
	ErrNotFound = errors.New("not found")
	// ErrInvalidQuery means a search term was empty after normalization.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrInvalidInput means a request failed boundary validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrExternalService wraps translator, extractor and audit sink failures.
	ErrExternalService = errors.New("external service error")
)
