// File: transport/datagram.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Datagram transport: one unconnected UDP socket per session, sending
// to a target address resolved once by the caller. No retransmission,
// no deduplication, no ordering across sockets.

package transport

import (
	"fmt"
	"net"

	"github.com/momentics/logload/api"
)

// Datagram implements api.Transport over an unconnected UDP socket.
type Datagram struct {
	conn   *net.UDPConn
	remote *net.UDPAddr
	bufs   api.BytePool
}

var _ api.Transport = (*Datagram)(nil)

// NewDatagram opens a UDP socket on an ephemeral local port targeting
// the given remote address.
func NewDatagram(remote *net.UDPAddr, bufs api.BytePool) (*Datagram, error) {
	conn, err := net.ListenUDP("udp", nil)
	if err != nil {
		return nil, fmt.Errorf("udp socket open: %w", err)
	}
	return &Datagram{conn: conn, remote: remote, bufs: bufs}, nil
}

// Send transmits one datagram to the fixed target.
func (t *Datagram) Send(p []byte) error {
	if _, err := t.conn.WriteToUDP(p, t.remote); err != nil {
		return fmt.Errorf("send error: %w", err)
	}
	return nil
}

// Recv blocks for exactly one reply datagram. An empty datagram is a
// valid zero-length reply.
func (t *Datagram) Recv() ([]byte, error) {
	buf := t.bufs.GetBuffer()
	n, _, err := t.conn.ReadFromUDP(buf)
	if err != nil {
		t.bufs.PutBuffer(buf)
		return nil, fmt.Errorf("receive error: %w", err)
	}
	return buf[:n], nil
}

// Release returns a Recv buffer to the pool.
func (t *Datagram) Release(buf []byte) {
	t.bufs.PutBuffer(buf)
}

// Close releases the socket, unblocking pending I/O.
func (t *Datagram) Close() error {
	return t.conn.Close()
}
