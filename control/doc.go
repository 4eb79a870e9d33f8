// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics for the logload harness: concurrent-safe counters
// tracking requests sent, replies read, empty-reply notices, and
// session outcomes. Consumed by tests and shutdown reporting.
package control
