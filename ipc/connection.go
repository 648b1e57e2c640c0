package ipc

import (
	"log/slog"
)

// Handler processes a received envelope. Return nil to send no reply.
type Handler func(env Envelope) (*Envelope, error)

// Connection is one game host talking to the agent. Each connection plays
// one match at a time and is identified after the hello handshake.
type Connection struct {
	transport Transport
	handlers  map[string]Handler
	Player    string
}

func NewConnection(t Transport, handlers map[string]Handler) *Connection {
	if handlers == nil {
		handlers = make(map[string]Handler)
	}
	return &Connection{
		transport: t,
		handlers:  handlers,
	}
}

func (c *Connection) RegisterHandler(msgType string, handler Handler) {
	c.handlers[msgType] = handler
}

func (c *Connection) Send(msgType string, data any) error {
	env, err := NewEnvelope(msgType, data)
	if err != nil {
		return err
	}
	return c.transport.Send(env)
}

// ReadLoop dispatches envelopes until the transport closes or errors, then
// closes it. Handler errors are logged and the loop keeps reading.
func (c *Connection) ReadLoop() {
	defer c.transport.Close()

	for {
		env, err := c.transport.Receive()
		if err != nil {
			slog.Info("connection read ended", "player", c.Player, "remote", c.transport.RemoteAddr(), "error", err)
			return
		}

		handler, ok := c.handlers[env.Type]
		if !ok {
			slog.Warn("no handler for message type", "type", env.Type)
			continue
		}

		resp, err := handler(env)
		if err != nil {
			slog.Error("handler error", "type", env.Type, "player", c.Player, "error", err)
			continue
		}
		if resp == nil {
			continue
		}
		if err := c.transport.Send(*resp); err != nil {
			slog.Error("failed to send response", "type", resp.Type, "error", err)
			return
		}
		slog.Debug("sent response", "type", resp.Type, "player", c.Player)
	}
}
