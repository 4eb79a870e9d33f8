// Package concurrency tests the fixed worker pool.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package concurrency

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/momentics/logload/api"
)

// TestExecutor_RunsSubmittedTasks verifies every accepted task executes.
func TestExecutor_RunsSubmittedTasks(t *testing.T) {
	e := NewExecutor(4, false)
	defer e.Close()

	var ran int64
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		err := e.Submit(func() {
			atomic.AddInt64(&ran, 1)
			wg.Done()
		})
		if err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}
	wg.Wait()

	if got := atomic.LoadInt64(&ran); got != 16 {
		t.Errorf("expected 16 tasks run, got %d", got)
	}
}

// TestExecutor_ConcurrencyBound verifies four tasks on four workers all
// run at the same time, none queued behind another.
func TestExecutor_ConcurrencyBound(t *testing.T) {
	e := NewExecutor(4, false)
	defer e.Close()

	var wg sync.WaitGroup
	barrier := make(chan struct{})
	arrived := make(chan struct{}, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		if err := e.Submit(func() {
			defer wg.Done()
			arrived <- struct{}{}
			<-barrier
		}); err != nil {
			t.Fatalf("Submit failed: %v", err)
		}
	}

	// All four must arrive while all four are still blocked.
	for i := 0; i < 4; i++ {
		select {
		case <-arrived:
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d of 4 tasks running concurrently", i)
		}
	}
	if got := e.Running(); got != 4 {
		t.Errorf("expected 4 running tasks, got %d", got)
	}
	close(barrier)
	wg.Wait()
}

// TestExecutor_SubmitAfterClose verifies closed pools refuse work.
func TestExecutor_SubmitAfterClose(t *testing.T) {
	e := NewExecutor(2, false)
	e.Close()

	if err := e.Submit(func() {}); !errors.Is(err, api.ErrExecutorClosed) {
		t.Errorf("expected ErrExecutorClosed, got %v", err)
	}
}

// TestExecutor_DrainBounded verifies Drain returns within its bound even
// when a task never finishes.
func TestExecutor_DrainBounded(t *testing.T) {
	e := NewExecutor(1, false)
	defer e.Close()

	stuck := make(chan struct{})
	defer close(stuck)
	if err := e.Submit(func() { <-stuck }); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	start := time.Now()
	if e.Drain(50 * time.Millisecond) {
		t.Error("expected Drain to time out with a stuck task")
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Drain exceeded its bound: %v", elapsed)
	}
}

// TestExecutor_PanicKeepsWorkerAlive verifies a panicking task does not
// consume a worker slot.
func TestExecutor_PanicKeepsWorkerAlive(t *testing.T) {
	e := NewExecutor(1, false)
	defer e.Close()

	if err := e.Submit(func() { panic("boom") }); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	done := make(chan struct{})
	if err := e.Submit(func() { close(done) }); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not survive the panicking task")
	}
}
