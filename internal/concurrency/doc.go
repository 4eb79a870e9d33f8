// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package concurrency provides the fixed-size worker pool that runs
// client sessions, plus optional CPU pinning of worker threads.
package concurrency
