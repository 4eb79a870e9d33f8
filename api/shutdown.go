// File: api/shutdown.go
// Package api defines unified graceful shutdown contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// GracefulShutdown unifies best-effort teardown of harness components.
type GracefulShutdown interface {
	// Shutdown stops internal services and releases resources.
	// It is bounded: it returns after the configured grace and
	// forced-cancellation windows elapse even if work remains.
	Shutdown() error
}
