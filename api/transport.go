// File: api/transport.go
// Author: momentics <momentics@gmail.com>
//
// Defines the round-trip transport abstraction shared by the stream
// and datagram client sessions.

package api

// Transport abstracts one client-owned socket used for a strict
// send-then-receive round trip. Implementations read replies into
// pooled buffers; callers hand buffers back via Release.
type Transport interface {
	// Send writes one request to the peer.
	Send(p []byte) error

	// Recv performs a single blocking read and returns the reply bytes.
	// A zero-length slice is a valid empty reply, not an error.
	Recv() ([]byte, error)

	// Release returns a buffer obtained from Recv to the pool.
	Release(buf []byte)

	// Close shuts down the underlying socket. Closing unblocks any
	// in-flight Send or Recv.
	Close() error
}
