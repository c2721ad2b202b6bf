package repos

import "errors"

// ErrNotFound is returned when an update or delete touched no row the
// caller owns.
var ErrNotFound = errors.New("record not found")
