package entry

import "errors"

// Sentinel errors used across all layers. Anything that does not wrap one
// of these is treated as an internal failure.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict") // a write lost a race with another writer
)
