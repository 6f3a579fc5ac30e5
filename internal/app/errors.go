package app

import "errors"

// Sentinel errors for the operation failure modes callers act on.
// Referenced-entity lookups surface secondary.ErrNotFound wrapped with the
// entity ID; everything here is detectable with errors.Is.
var (
	// ErrTimerActive means a start was attempted while the worker
	// already has an open timer.
	ErrTimerActive = errors.New("timer already active")

	// ErrEntryClosed means a stop was requested on an entry that has
	// no open state to close.
	ErrEntryClosed = errors.New("time entry already closed")

	// ErrInvalidInput means the request was rejected before any write.
	ErrInvalidInput = errors.New("invalid input")
)
