// File: internal/concurrency/executor.go
// Package concurrency implements the fixed-size session executor.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Executor dispatches tasks across a fixed set of worker goroutines.
// Tasks beyond the number of idle workers wait in a FIFO pending queue
// drained by whichever worker frees up first.

package concurrency

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/logload/api"
)

// TaskFunc is a unit of work to execute.
type TaskFunc func()

// Executor manages a fixed pool of worker goroutines.
type Executor struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending *queue.Queue // FIFO of TaskFunc
	closed  bool

	workers    int
	pinWorkers bool

	tasks sync.WaitGroup // accepted tasks not yet finished

	// statistics
	submittedTasks int64
	completedTasks int64
	runningTasks   int32
}

// NewExecutor creates an Executor with numWorkers worker goroutines.
// If pinWorkers is set, each worker locks its OS thread and binds it to
// the CPU matching its slot index (Linux only, no-op elsewhere).
func NewExecutor(numWorkers int, pinWorkers bool) *Executor {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	e := &Executor{
		pending:    queue.New(),
		workers:    numWorkers,
		pinWorkers: pinWorkers,
	}
	e.cond = sync.NewCond(&e.mu)
	for i := 0; i < numWorkers; i++ {
		w := &worker{id: i, executor: e}
		go w.run()
	}
	return e
}

// Ensure compile-time API compliance.
var _ api.Executor = (*Executor)(nil)

// Submit enqueues a task for execution, returning api.ErrExecutorClosed
// once the executor has been closed.
func (e *Executor) Submit(task func()) error {
	if task == nil {
		return api.ErrInvalidArgument
	}
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return api.ErrExecutorClosed
	}
	e.tasks.Add(1)
	atomic.AddInt64(&e.submittedTasks, 1)
	e.pending.Add(TaskFunc(task))
	e.cond.Signal()
	e.mu.Unlock()
	return nil
}

// NumWorkers returns the fixed number of workers.
func (e *Executor) NumWorkers() int {
	return e.workers
}

// Close stops accepting new work. Tasks already accepted still run to
// completion; workers exit once the pending queue is empty. Idempotent.
func (e *Executor) Close() {
	e.mu.Lock()
	e.closed = true
	e.cond.Broadcast()
	e.mu.Unlock()
}

// Drain waits up to d for every accepted task to finish. It reports
// whether the executor fully drained within the bound.
func (e *Executor) Drain(d time.Duration) bool {
	done := make(chan struct{})
	go func() {
		e.tasks.Wait()
		close(done)
	}()
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}

// Running returns the number of tasks currently executing.
func (e *Executor) Running() int {
	return int(atomic.LoadInt32(&e.runningTasks))
}

// Stats returns basic executor metrics.
func (e *Executor) Stats() map[string]int64 {
	return map[string]int64{
		"submitted_tasks": atomic.LoadInt64(&e.submittedTasks),
		"completed_tasks": atomic.LoadInt64(&e.completedTasks),
		"running_tasks":   int64(atomic.LoadInt32(&e.runningTasks)),
		"num_workers":     int64(e.workers),
	}
}

// worker represents a single executor goroutine.
type worker struct {
	id       int
	executor *Executor
}

// run is the worker main loop: take the next pending task or block on
// the condition variable until one arrives or the executor closes.
func (w *worker) run() {
	if w.executor.pinWorkers {
		PinCurrentThread(w.id)
	}
	e := w.executor
	for {
		e.mu.Lock()
		for e.pending.Length() == 0 && !e.closed {
			e.cond.Wait()
		}
		if e.pending.Length() == 0 && e.closed {
			e.mu.Unlock()
			return
		}
		task := e.pending.Remove().(TaskFunc)
		e.mu.Unlock()
		w.executeTask(task)
	}
}

// executeTask runs the task, updates statistics, and recovers panics so
// one bad task cannot take a worker slot down with it.
func (w *worker) executeTask(task TaskFunc) {
	atomic.AddInt32(&w.executor.runningTasks, 1)
	defer func() {
		if r := recover(); r != nil {
			// swallow panic to keep the worker slot alive
		}
		atomic.AddInt32(&w.executor.runningTasks, -1)
		atomic.AddInt64(&w.executor.completedTasks, 1)
		w.executor.tasks.Done()
	}()
	task()
}
