// File: api/session.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Session contract for one client's request/reply loop over one transport.

package api

// Session is one client's execution of the fixed request/reply loop.
// A session exclusively owns its socket for its whole lifetime and is
// bound to a single pool worker while it runs.
type Session interface {
	// Name returns the client name carried in every request payload.
	Name() string

	// Run executes the full round loop. It returns nil on normal
	// completion, ErrSessionCanceled when interrupted by Cancel, or
	// the first I/O error otherwise. Errors are session-local.
	Run() error

	// Cancel interrupts the session: it closes the owned socket to
	// unblock pending I/O and aborts the remaining rounds. Idempotent.
	Cancel()

	// Done returns a channel closed once Cancel has been called.
	Done() <-chan struct{}
}
