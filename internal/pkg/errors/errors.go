package errors

import "errors"

// ErrStoreUnavailable marks a graph/relational store failure or timeout.
// Expected negative outcomes (unknown concept, no route) are structured
// results, not errors, so this is the only sentinel the engine wraps.
var ErrStoreUnavailable = errors.New("store unavailable")
