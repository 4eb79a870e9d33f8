// Package pool
// Author: momentics <momentics@gmail.com>
//
// Reply buffer pooling for the logload harness. Every session reads
// replies into fixed-size buffers drawn from a shared BytePool, so the
// steady-state round loop allocates nothing per read.
package pool
