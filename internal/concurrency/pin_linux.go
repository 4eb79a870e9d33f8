// File: internal/concurrency/pin_linux.go
//go:build linux

// Package concurrency
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pure-Go Linux CPU pinning via sched_setaffinity. The worker slot
// index is mapped onto the CPU set modulo the number of online CPUs.

package concurrency

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// PinCurrentThread locks the calling goroutine to its OS thread and
// binds that thread to the CPU matching the worker slot index.
func PinCurrentThread(slot int) {
	runtime.LockOSThread()
	cpu := slot % runtime.NumCPU()
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	// Pinning is best-effort; a failure leaves default scheduling.
	_ = unix.SchedSetaffinity(0, &set)
}
