// Package api
// Author: momentics
//
// Executor contract for parallel session dispatch on a fixed worker pool.

package api

import "time"

// Executor abstracts parallel task execution on a bounded set of workers.
type Executor interface {
	// Submit schedules task for execution.
	Submit(task func()) error

	// NumWorkers returns the number of worker routines.
	NumWorkers() int

	// Drain waits up to d for all accepted tasks to finish.
	// Returns true if the pool fully drained within the bound.
	Drain(d time.Duration) bool

	// Close stops accepting new work.
	Close()
}
