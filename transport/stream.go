// File: transport/stream.go
// Package transport wraps client-owned sockets as round-trip transports.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package transport

import (
	"fmt"
	"net"

	"github.com/momentics/logload/api"
)

// Stream implements api.Transport over a connected net.Conn, reading
// replies into pooled buffers. Reply framing is undefined by the wire
// protocol: Recv performs exactly one read and a reply longer than the
// pool's buffer size is only partially consumed.
type Stream struct {
	conn net.Conn
	bufs api.BytePool
}

// Ensure compile-time API compliance.
var _ api.Transport = (*Stream)(nil)

// NewStream wraps an established connection.
func NewStream(conn net.Conn, bufs api.BytePool) *Stream {
	return &Stream{conn: conn, bufs: bufs}
}

// Send writes one request to the peer.
func (t *Stream) Send(p []byte) error {
	if _, err := t.conn.Write(p); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}

// Recv performs a single blocking read and returns the reply bytes.
// A zero-length result is a valid empty reply.
func (t *Stream) Recv() ([]byte, error) {
	buf := t.bufs.GetBuffer()
	n, err := t.conn.Read(buf)
	if err != nil {
		t.bufs.PutBuffer(buf)
		return nil, fmt.Errorf("read error: %w", err)
	}
	return buf[:n], nil
}

// Release returns a Recv buffer to the pool.
func (t *Stream) Release(buf []byte) {
	t.bufs.PutBuffer(buf)
}

// Close shuts the connection down, unblocking pending I/O.
func (t *Stream) Close() error {
	return t.conn.Close()
}
