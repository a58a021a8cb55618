package dnlib

import "errors"

var (
	// ErrNilAccessor is returned by New when no table accessor is given.
	ErrNilAccessor = errors.New("table accessor must not be nil")

	// ErrNilStrings is returned by New when no string lookup is given.
	ErrNilStrings = errors.New("string lookup must not be nil")
)
