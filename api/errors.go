// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error values shared across the logload harness.

package api

import "fmt"

// Common errors used across the harness.
var (
	ErrExecutorClosed  = fmt.Errorf("executor is closed")
	ErrSessionCanceled = fmt.Errorf("session canceled")
	ErrTransportClosed = fmt.Errorf("transport is closed")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrDrainTimeout    = fmt.Errorf("drain timed out")
)
