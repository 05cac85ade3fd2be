package main

import (
	"bytes"
	"net"
	"testing"
	"time"
)

func expectEqual(t *testing.T, expect, actual string) {
	t.Helper()
	if expect != actual {
		t.Errorf("Got %q, want %q", actual, expect)
	}
}

type mockAddr struct {
	str string
}

func (m mockAddr) Network() string { return "tcp" }
func (m mockAddr) String() string  { return m.str }

// mockConn reads the request out of its buffer and writes the response back
// into it, so after a handler returns the buffer holds only the response.
type mockConn struct {
	*bytes.Buffer
	addr   mockAddr
	closed bool
}

func newMockConn(request string) *mockConn {
	return &mockConn{
		Buffer: bytes.NewBufferString(request),
		addr:   mockAddr{"(client)"},
	}
}

func (m *mockConn) Close() error {
	m.closed = true
	return nil
}

func (m *mockConn) LocalAddr() net.Addr {
	return nil
}

func (m *mockConn) RemoteAddr() net.Addr {
	return m.addr
}

func (m *mockConn) SetDeadline(t time.Time) error {
	return nil
}

func (m *mockConn) SetReadDeadline(t time.Time) error {
	return nil
}

func (m *mockConn) SetWriteDeadline(t time.Time) error {
	return nil
}
