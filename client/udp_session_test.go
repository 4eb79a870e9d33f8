// Package client: datagram session tests against a local echo server.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package client

import (
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/momentics/logload/control"
	"github.com/momentics/logload/pool"
)

// udpEcho records every datagram it receives and replies per reply().
type udpEcho struct {
	conn *net.UDPConn

	mu       sync.Mutex
	received []string
}

// startUDPEcho serves datagrams on an ephemeral port. reply maps a
// request payload to the reply datagram (possibly empty).
func startUDPEcho(t *testing.T, reply func(string) []byte) *udpEcho {
	t.Helper()
	conn, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	if err != nil {
		t.Fatalf("udp listen: %v", err)
	}
	srv := &udpEcho{conn: conn}
	t.Cleanup(func() { conn.Close() })

	go func() {
		buf := make([]byte, 2048)
		for {
			n, addr, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}
			req := string(buf[:n])
			srv.mu.Lock()
			srv.received = append(srv.received, req)
			srv.mu.Unlock()
			if _, err := conn.WriteToUDP(reply(req), addr); err != nil {
				return
			}
		}
	}()
	return srv
}

func (s *udpEcho) port() int {
	return s.conn.LocalAddr().(*net.UDPAddr).Port
}

func (s *udpEcho) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.received))
	copy(out, s.received)
	return out
}

// TestUDPSession_EchoRoundTrip verifies the four-round datagram loop.
func TestUDPSession_EchoRoundTrip(t *testing.T) {
	srv := startUDPEcho(t, func(req string) []byte { return []byte("ECHO:" + req) })

	core, logs := observer.New(zapcore.InfoLevel)
	s, err := NewUDPSession("Client 3", "127.0.0.1", srv.port(), pool.NewBytePool(1024), zap.New(core), nil)
	if err != nil {
		t.Fatalf("NewUDPSession: %v", err)
	}
	if err := s.Run(); err != nil {
		t.Fatalf("session failed: %v", err)
	}

	if got := logs.FilterMessage("reply").Len(); got != 4 {
		t.Errorf("expected 4 replies, got %d", got)
	}
	reqs := srv.snapshot()
	if len(reqs) != 4 {
		t.Fatalf("server observed %d datagrams, want 4", len(reqs))
	}
	for i, req := range reqs {
		if want := RequestPayload("Client 3", i); req != want {
			t.Errorf("datagram %d: got %q, want %q", i, req, want)
		}
	}
}

// TestUDPSession_SharedPortConcurrent runs "Client 3" and "Client 4"
// against one port; the server must observe exactly 8 datagrams, four
// per session, in any interleaving.
func TestUDPSession_SharedPortConcurrent(t *testing.T) {
	srv := startUDPEcho(t, func(req string) []byte { return []byte(req) })
	bufs := pool.NewBytePool(1024)

	var wg sync.WaitGroup
	for _, name := range []string{"Client 3", "Client 4"} {
		s, err := NewUDPSession(name, "127.0.0.1", srv.port(), bufs, zap.NewNop(), nil)
		if err != nil {
			t.Fatalf("NewUDPSession(%s): %v", name, err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.Run(); err != nil {
				t.Errorf("%s failed: %v", s.Name(), err)
			}
		}()
	}
	wg.Wait()

	reqs := srv.snapshot()
	if len(reqs) != 8 {
		t.Fatalf("server observed %d datagrams, want exactly 8", len(reqs))
	}
	perClient := map[string]int{}
	for _, req := range reqs {
		name, _, ok := strings.Cut(req, " - ")
		if !ok {
			t.Fatalf("malformed datagram %q", req)
		}
		perClient[name]++
	}
	if perClient["Client 3"] != 4 || perClient["Client 4"] != 4 {
		t.Errorf("expected 4 datagrams per client, got %v", perClient)
	}
}

// TestUDPSession_ZeroLengthReply verifies an empty reply datagram is a
// notice, not an error.
func TestUDPSession_ZeroLengthReply(t *testing.T) {
	srv := startUDPEcho(t, func(string) []byte { return nil })

	core, logs := observer.New(zapcore.InfoLevel)
	stats := control.NewMetricsRegistry()
	s, err := NewUDPSession("Client 4", "127.0.0.1", srv.port(), pool.NewBytePool(1024), zap.New(core), stats)
	if err != nil {
		t.Fatalf("NewUDPSession: %v", err)
	}

	start := time.Now()
	if err := s.Run(); err != nil {
		t.Fatalf("zero-length replies must not fail the session: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 4*PacingDelay {
		t.Errorf("session finished before pacing all rounds: %v", elapsed)
	}

	if got := logs.FilterMessage("read zero bytes").Len(); got != 4 {
		t.Errorf("expected 4 zero-byte notices, got %d", got)
	}
	if got := logs.FilterMessage("reply").Len(); got != 0 {
		t.Errorf("expected no non-empty reply logs, got %d", got)
	}
	if got := stats.Get(control.MetricEmptyReplies); got != 4 {
		t.Errorf("expected empty_replies=4, got %d", got)
	}
}
