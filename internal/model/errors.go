package model

import "errors"

// ErrNotFound marks a 404 from the upstream API. An empty window is
// indistinguishable from an inaccessible resource, so callers skip these
// without a warning.
var ErrNotFound = errors.New("resource not found")
