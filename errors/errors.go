// Package errors defines the error taxonomy of the post notification
// pipeline. Sentinels are matched with errors.Is by the HTTP layer to pick
// status codes; delivery errors stay internal to the dispatch path.
package errors

import (
	"fmt"
	"strings"
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	// ErrPersistence wraps storage failures surfaced to the caller.
	ErrPersistence = fmt.Errorf("persistence failure")

	ErrNotFound = fmt.Errorf("post not found")

	// ErrNotDispatched guards the seen postback: a record can only be
	// acknowledged after a notification attempt completed.
	ErrNotDispatched = fmt.Errorf("post not dispatched yet")

	// ErrSeenRegression rejects timestamps that would move seenAt backward.
	ErrSeenRegression = fmt.Errorf("seen timestamp regression")

	// ErrAlreadyDispatched rejects a second dispatch outcome on a record
	// that is already sent or terminally failed.
	ErrAlreadyDispatched = fmt.Errorf("post already dispatched")

	// ErrQueueFull is recorded against a post when the dispatch buffer is
	// saturated. It never reaches the create caller.
	ErrQueueFull = fmt.Errorf("dispatch queue full")

	// ErrNoEndpoint marks a page without a configured webhook destination.
	ErrNoEndpoint = fmt.Errorf("no endpoint configured for page")
)

// ValidationError carries every invalid field of a create payload, in
// canonical field order. No short-circuiting happens upstream.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid fields: %s", strings.Join(e.Fields, ", "))
}
