// File: facade/harness.go
// Unified facade layer for the logload harness.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// This file defines the Harness struct, which aggregates the worker
// pool, buffer pool, metrics, and the four canonical client sessions
// behind a single facade. Start submits the sessions; Stop performs
// the two-phase bounded shutdown: a cooperative grace wait, then
// forced cancellation of whatever still runs, then a second bounded
// wait for the cancellation to settle.

package facade

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/momentics/logload/api"
	"github.com/momentics/logload/client"
	"github.com/momentics/logload/control"
	"github.com/momentics/logload/internal/concurrency"
	"github.com/momentics/logload/pool"
)

// Config holds parameters immutable per run.
type Config struct {
	Host            string        // Target host for all sessions
	TCPPorts        [2]int        // Distinct ports for the two stream sessions
	UDPPort         int           // Shared port for the two datagram sessions
	PoolSize        int           // Number of worker pool slots
	ReplyBufferSize int           // Size of the single-read reply buffers
	GracePeriod     time.Duration // Cooperative shutdown wait bound
	ForceWindow     time.Duration // Post-cancellation settle bound
	PinWorkers      bool          // Pin worker threads to CPUs (Linux)
}

// DefaultConfig returns the canonical harness configuration: four
// workers, two TCP sessions on 6666/6667, two UDP sessions on 6668.
func DefaultConfig() *Config {
	return &Config{
		Host:            "localhost",
		TCPPorts:        [2]int{6666, 6667},
		UDPPort:         6668,
		PoolSize:        4,
		ReplyBufferSize: 1024,
		GracePeriod:     10 * time.Second,
		ForceWindow:     5 * time.Second,
		PinWorkers:      false,
	}
}

// Harness owns the session pool and coordinates its shutdown.
// It implements api.GracefulShutdown.
type Harness struct {
	cfg      *Config
	logger   *zap.Logger
	executor *concurrency.Executor
	bufs     *pool.BytePool
	stats    *control.MetricsRegistry

	mu       sync.Mutex
	started  bool
	sessions []api.Session
	results  map[string]error
}

// Ensure compliance with api.GracefulShutdown.
var _ api.GracefulShutdown = (*Harness)(nil)

// New constructs a Harness with the given configuration and logger.
func New(cfg *Config, logger *zap.Logger) (*Harness, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.PoolSize <= 0 || cfg.ReplyBufferSize <= 0 {
		return nil, api.ErrInvalidArgument
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Harness{
		cfg:      cfg,
		logger:   logger.With(zap.String("run_id", uuid.New().String())),
		executor: concurrency.NewExecutor(cfg.PoolSize, cfg.PinWorkers),
		bufs:     pool.NewBytePool(cfg.ReplyBufferSize),
		stats:    control.NewMetricsRegistry(),
		results:  make(map[string]error),
	}, nil
}

// Start submits the four canonical sessions to the pool: two stream
// sessions on distinct ports, two datagram sessions sharing one port.
// All run concurrently and independently. A session whose construction
// fails (address resolution) is recorded and logged; the others still
// run.
func (h *Harness) Start() error {
	h.mu.Lock()
	if h.started {
		h.mu.Unlock()
		return nil
	}
	h.started = true
	h.mu.Unlock()

	h.submit(client.NewTCPSession("Client 1", h.cfg.Host, h.cfg.TCPPorts[0], h.bufs, h.logger, h.stats))
	h.submit(client.NewTCPSession("Client 2", h.cfg.Host, h.cfg.TCPPorts[1], h.bufs, h.logger, h.stats))

	for _, name := range []string{"Client 3", "Client 4"} {
		s, err := client.NewUDPSession(name, h.cfg.Host, h.cfg.UDPPort, h.bufs, h.logger, h.stats)
		if err != nil {
			h.record(name, err)
			continue
		}
		h.submit(s)
	}
	h.logger.Info("sessions submitted",
		zap.Int("count", h.sessionCount()),
		zap.Int("pool_size", h.executor.NumWorkers()))
	return nil
}

// submit hands a session to the pool and wires result recording.
func (h *Harness) submit(s api.Session) {
	h.mu.Lock()
	h.sessions = append(h.sessions, s)
	h.mu.Unlock()
	name := s.Name()
	if err := h.executor.Submit(func() {
		h.record(name, s.Run())
	}); err != nil {
		// Pool already closed; treat like any other session failure.
		h.record(name, err)
	}
}

func (h *Harness) sessionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// record stores and logs a session's terminal result. Results feed
// logging and tests only, never control flow of other sessions.
func (h *Harness) record(name string, err error) {
	h.mu.Lock()
	h.results[name] = err
	h.mu.Unlock()

	switch {
	case err == nil:
		h.stats.Add(control.MetricSessionsCompleted, 1)
		h.logger.Info("session completed", zap.String("client", name))
	case errors.Is(err, api.ErrSessionCanceled):
		h.stats.Add(control.MetricSessionsCanceled, 1)
		h.logger.Warn("session canceled", zap.String("client", name))
	default:
		h.stats.Add(control.MetricSessionsFailed, 1)
		h.logger.Error("session failed", zap.String("client", name), zap.Error(err))
	}
}

// Stop shuts the pool down in two bounded phases: wait GracePeriod for
// in-flight sessions to finish, then force-cancel stragglers (closing
// their sockets to interrupt blocked I/O) and wait ForceWindow for the
// cancellation to take effect. Stop always returns; the error carries
// the aggregated session failures for the caller's log only.
func (h *Harness) Stop() error {
	h.mu.Lock()
	if !h.started {
		h.mu.Unlock()
		return nil
	}
	h.started = false
	sessions := make([]api.Session, len(h.sessions))
	copy(sessions, h.sessions)
	h.mu.Unlock()

	h.executor.Close()

	if h.executor.Drain(h.cfg.GracePeriod) {
		h.logger.Info("all sessions finished within grace period")
		return h.aggregate(nil)
	}

	h.logger.Warn("grace period elapsed, force-canceling sessions",
		zap.Duration("grace_period", h.cfg.GracePeriod))
	for _, s := range sessions {
		s.Cancel()
	}

	if !h.executor.Drain(h.cfg.ForceWindow) {
		h.logger.Error("sessions still blocked after forced cancellation",
			zap.Duration("force_window", h.cfg.ForceWindow))
		return h.aggregate(api.ErrDrainTimeout)
	}
	return h.aggregate(nil)
}

// Shutdown implements api.GracefulShutdown by delegating to Stop.
func (h *Harness) Shutdown() error {
	return h.Stop()
}

// aggregate combines the session failures with an optional shutdown
// error into one best-effort report.
func (h *Harness) aggregate(shutdownErr error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	var errs error
	for _, err := range h.results {
		errs = multierr.Append(errs, err)
	}
	return multierr.Append(errs, shutdownErr)
}

// Results returns a copy of the per-session terminal results; nil
// values mark sessions that completed normally.
func (h *Harness) Results() map[string]error {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[string]error, len(h.results))
	for k, v := range h.results {
		out[k] = v
	}
	return out
}

// Stats returns the shared metrics registry.
func (h *Harness) Stats() *control.MetricsRegistry {
	return h.stats
}
