package domain

import "errors"

var (
	ErrNotFound = errors.New("resource not found")
	// ErrUpstream marks failures originating from the store or the payment
	// provider rather than from this system's own logic.
	ErrUpstream = errors.New("upstream dependency failure")
)
