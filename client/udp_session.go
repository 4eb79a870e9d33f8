// File: client/udp_session.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Datagram session: same round pattern as the stream session, one
// datagram socket for the whole loop, target resolved once at
// construction. Several sessions may share one destination port;
// demultiplexing replies is the server's responsibility.

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

// UDPSession sends bare-payload log requests as datagrams and blocks
// for exactly one reply datagram per request.
type UDPSession struct {
	*session
	remote *net.UDPAddr
	bufs   api.BytePool
}

var _ api.Session = (*UDPSession)(nil)

// NewUDPSession resolves the target address once and creates a
// datagram session. Resolution failure is fatal to this session only.
func NewUDPSession(name, host string, port int, bufs api.BytePool, logger *zap.Logger, stats *control.MetricsRegistry) (*UDPSession, error) {
	raddr, err := net.ResolveUDPAddr("udp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, fmt.Errorf("resolve %s:%d: %w", host, port, err)
	}
	return &UDPSession{
		session: newSession(name, logger, stats),
		remote:  raddr,
		bufs:    bufs,
	}, nil
}

// Run opens the socket, executes the round loop, and releases the
// socket on every exit path.
func (s *UDPSession) Run() error {
	if s.canceled() {
		return api.ErrSessionCanceled
	}
	tr, err := transport.NewDatagram(s.remote, s.bufs)
	if err != nil {
		return s.abort(0, err)
	}
	s.arm(tr)
	defer func() {
		s.disarm()
		_ = tr.Close()
	}()

	return s.runRounds(tr, func(payload string) []byte {
		return []byte(payload)
	})
}
