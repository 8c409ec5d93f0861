package storage

import "errors"

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("storage: not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint,
// such as registering an email that is already taken.
var ErrDuplicate = errors.New("storage: duplicate")
