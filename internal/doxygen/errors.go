package doxygen

import "errors"

var (
	// ErrIndex is returned when index.xml is missing or structurally broken.
	ErrIndex = errors.New("doxygen: invalid index")
	// ErrMalformed marks a per-entity document missing a required element or attribute.
	ErrMalformed = errors.New("doxygen: malformed index entry")
	// ErrNotFound is returned by lookups of a refid absent from the cache.
	ErrNotFound = errors.New("doxygen: node not found")
	// ErrNotLoaded is returned when finalization is attempted before a successful load.
	ErrNotLoaded = errors.New("doxygen: index not loaded")
)
