// File: client/session.go
// Package client implements the TCP and UDP logging client sessions.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Each session runs a fixed number of strictly alternating
// request/reply rounds over one exclusively owned socket:
// request 0 -> reply 0 -> request 1 -> ... -> close.
// Failures are session-local and never retried.

package client

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/momentics/logload/api"
	"github.com/momentics/logload/control"
)

const (
	// DefaultRounds is the fixed number of request/reply rounds.
	DefaultRounds = 4

	// PacingDelay keeps the per-session send rate observable and
	// bounded; applied after each reply.
	PacingDelay = 100 * time.Millisecond
)

// RequestPayload builds the canonical request for a client and round.
// The sequence is fully determined by the client name and round index.
func RequestPayload(name string, round int) string {
	return fmt.Sprintf("%s - Log request: %d", name, round)
}

// session carries the state shared by both transport kinds: identity,
// logging, counters, and done-channel cancellation that closes the
// armed socket to interrupt blocked I/O.
type session struct {
	name   string
	logger *zap.Logger
	stats  *control.MetricsRegistry
	rounds int
	pacing time.Duration

	mu   sync.Mutex
	tr   api.Transport // socket armed for cancellation while running
	done chan struct{}
	once sync.Once
}

func newSession(name string, logger *zap.Logger, stats *control.MetricsRegistry) *session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if stats == nil {
		stats = control.NewMetricsRegistry()
	}
	return &session{
		name: name,
		logger: logger.With(
			zap.String("client", name),
			zap.String("session_id", uuid.New().String()),
		),
		stats:  stats,
		rounds: DefaultRounds,
		pacing: PacingDelay,
		done:   make(chan struct{}),
	}
}

// Name returns the client name carried in every request payload.
func (s *session) Name() string {
	return s.name
}

// Done returns a channel closed once Cancel has been called.
func (s *session) Done() <-chan struct{} {
	return s.done
}

// Cancel interrupts the session; idempotent. Closing the armed socket
// unblocks any in-flight read or write with an error.
func (s *session) Cancel() {
	s.once.Do(func() {
		close(s.done)
		s.mu.Lock()
		tr := s.tr
		s.mu.Unlock()
		if tr != nil {
			_ = tr.Close()
		}
	})
}

// arm registers the running socket for cancellation. A session
// canceled before arming closes the socket right away.
func (s *session) arm(tr api.Transport) {
	s.mu.Lock()
	s.tr = tr
	s.mu.Unlock()
	if s.canceled() {
		_ = tr.Close()
	}
}

func (s *session) disarm() {
	s.mu.Lock()
	s.tr = nil
	s.mu.Unlock()
}

func (s *session) canceled() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// runRounds drives the strict request/reply alternation over tr.
// frame converts the canonical payload into wire bytes (the stream
// session appends the newline terminator, the datagram session sends
// the bare payload).
func (s *session) runRounds(tr api.Transport, frame func(string) []byte) error {
	for i := 0; i < s.rounds; i++ {
		payload := RequestPayload(s.name, i)
		if err := tr.Send(frame(payload)); err != nil {
			return s.abort(i, err)
		}
		s.stats.Add(control.MetricRequestsSent, 1)

		reply, err := tr.Recv()
		if err != nil {
			return s.abort(i, err)
		}
		if len(reply) == 0 {
			// Valid empty reply, logged as a notice.
			s.stats.Add(control.MetricEmptyReplies, 1)
			s.logger.Info("read zero bytes", zap.Int("round", i))
		} else {
			s.stats.Add(control.MetricRepliesRead, 1)
			s.logger.Info("reply",
				zap.Int("round", i),
				zap.Int("bytes", len(reply)),
				zap.String("text", string(reply)))
		}
		tr.Release(reply)

		select {
		case <-time.After(s.pacing):
		case <-s.done:
			return api.ErrSessionCanceled
		}
	}
	return nil
}

// abort maps an I/O failure to the session result: interruption by
// Cancel surfaces as ErrSessionCanceled, anything else is wrapped with
// the round it killed. The remaining rounds are abandoned either way.
func (s *session) abort(round int, err error) error {
	if s.canceled() {
		return api.ErrSessionCanceled
	}
	return fmt.Errorf("round %d: %w", round, err)
}
