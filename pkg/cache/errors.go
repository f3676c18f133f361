package cache

import "errors"

// Sentinel errors for caching operations.
var (
	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown cache backend")

	// ErrMissingOption is returned by Open when a backend lacks a required setting.
	ErrMissingOption = errors.New("missing cache option")
)
