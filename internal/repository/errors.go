package repository

import "errors"

// ErrNotFound is returned when a document id matches nothing. Callers must
// distinguish it from permission failures; an absent resource is a 404, not
// a 403.
var ErrNotFound = errors.New("repository: not found")
