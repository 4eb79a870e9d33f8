// File: client/tcp_session.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stream session: CONNECTING -> {SEND -> AWAIT_REPLY -> DELAY}x4 -> CLOSED.

package client

import (
	"fmt"
	"net"
	"strconv"

	"go.uber.org/zap"

	"github.com/momentics/logload/api"
	"github.com/momentics/logload/control"
	"github.com/momentics/logload/transport"
)

// TCPSession sends newline-terminated log requests over one TCP
// connection and reads one reply per request.
type TCPSession struct {
	*session
	addr string
	bufs api.BytePool
}

var _ api.Session = (*TCPSession)(nil)

// NewTCPSession creates a stream session targeting host:port.
func NewTCPSession(name, host string, port int, bufs api.BytePool, logger *zap.Logger, stats *control.MetricsRegistry) *TCPSession {
	return &TCPSession{
		session: newSession(name, logger, stats),
		addr:    net.JoinHostPort(host, strconv.Itoa(port)),
		bufs:    bufs,
	}
}

// Run executes the full round loop. The connection is closed on every
// exit path, including failures and cancellation.
func (s *TCPSession) Run() error {
	if s.canceled() {
		return api.ErrSessionCanceled
	}
	conn, err := net.Dial("tcp", s.addr)
	if err != nil {
		return s.abort(0, fmt.Errorf("connect %s: %w", s.addr, err))
	}
	tr := transport.NewStream(conn, s.bufs)
	s.arm(tr)
	defer func() {
		s.disarm()
		_ = tr.Close()
	}()

	// Each write carries the full line and hits the socket
	// immediately; there is no client-side buffering to flush.
	return s.runRounds(tr, func(payload string) []byte {
		return append([]byte(payload), '\n')
	})
}
