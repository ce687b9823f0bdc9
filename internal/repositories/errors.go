package repositories

import "errors"

// ErrNotFound is returned when the requested document or row does not exist
var ErrNotFound = errors.New("not found")
