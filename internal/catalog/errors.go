package catalog

import "errors"

// ErrNotFound reports a lookup for a file the catalog does not know. It is
// deliberately distinct from storage failures so callers can treat "unknown
// name" as a user-visible condition rather than an I/O problem.
var ErrNotFound = errors.New("file not found")
