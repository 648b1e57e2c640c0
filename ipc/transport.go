package ipc

import (
	"net"
	"sync"
)

// Transport moves envelopes between the agent and one host connection.
type Transport interface {
	Receive() (Envelope, error)
	Send(env Envelope) error
	Close() error
	RemoteAddr() string
}

// FramedTransport speaks length-prefixed JSON over a stream connection,
// typically a unix domain socket.
type FramedTransport struct {
	conn net.Conn
	mu   sync.Mutex
}

func NewFramedTransport(conn net.Conn) *FramedTransport {
	return &FramedTransport{conn: conn}
}

func (t *FramedTransport) Receive() (Envelope, error) {
	return ReadFrame(t.conn)
}

func (t *FramedTransport) Send(env Envelope) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return WriteFrame(t.conn, env)
}

func (t *FramedTransport) Close() error { return t.conn.Close() }

func (t *FramedTransport) RemoteAddr() string {
	if addr := t.conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}
