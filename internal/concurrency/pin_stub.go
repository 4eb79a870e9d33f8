// File: internal/concurrency/pin_stub.go
//go:build !linux

// Package concurrency
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// No-op pinning fallback for platforms without sched_setaffinity.

package concurrency

import "runtime"

// PinCurrentThread locks the OS thread only; no affinity is applied.
func PinCurrentThread(slot int) {
	runtime.LockOSThread()
}
