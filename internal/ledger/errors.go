// Package ledger implements the charge and reconciliation engine of the
// household ledger: it turns an expense and a split method into balanced
// signed transactions and later converges provisionally charged groups
// to their fair allocation.
package ledger

import (
	"errors"
)

// The error taxonomy of the engine. Every error returned by an engine
// operation wraps exactly one of these, callers map them to a response
// with errors.Is.
var (
	// ErrValidation marks input problems the operator can fix, e.g. a
	// missing amount or ownership percentages that do not sum to 100.
	ErrValidation = errors.New("cannot process the request")

	// ErrNotFound marks missing reference data, e.g. no applicable
	// ownership set or no overnight stays in the requested window.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks operations that would contradict the current
	// ledger state, e.g. charging an expense twice.
	ErrConflict = errors.New("the operation conflicts with the ledger state")
)
