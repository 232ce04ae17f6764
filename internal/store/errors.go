package store

import "errors"

// ErrNotFound is returned when a requested day is not stored.
var ErrNotFound = errors.New("day not found")
