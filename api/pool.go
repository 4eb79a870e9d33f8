// File: api/pool.go
// Author: momentics <momentics@gmail.com>
//
// Defines the pooling API for reusable reply buffers.

package api

// BytePool provides reusable []byte buffers for reply reads.
type BytePool interface {
	// GetBuffer returns a buffer of the pool's fixed size.
	GetBuffer() []byte

	// PutBuffer returns a buffer to the pool.
	PutBuffer(buf []byte)
}
