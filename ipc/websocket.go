package ipc

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	wsReadTimeout  = 60 * time.Second
	wsWriteTimeout = 5 * time.Second
)

// WebSocketTransport carries one envelope per text message.
type WebSocketTransport struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewWebSocketTransport(conn *websocket.Conn) *WebSocketTransport {
	conn.SetReadLimit(maxFrame)
	return &WebSocketTransport{conn: conn}
}

func (t *WebSocketTransport) Receive() (Envelope, error) {
	_ = t.conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	kind, msg, err := t.conn.ReadMessage()
	if err != nil {
		return Envelope{}, fmt.Errorf("read message: %w", err)
	}
	if kind != websocket.TextMessage {
		return Envelope{}, fmt.Errorf("unexpected message kind %d", kind)
	}
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		return Envelope{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	return env, nil
}

func (t *WebSocketTransport) Send(env Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_ = t.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := t.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

func (t *WebSocketTransport) Close() error {
	t.mu.Lock()
	_ = t.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
	t.mu.Unlock()
	return t.conn.Close()
}

func (t *WebSocketTransport) RemoteAddr() string { return t.conn.RemoteAddr().String() }

// WebSocketHandler upgrades host connections and hands each one to serve.
// serve runs on the request goroutine and owns the transport.
func WebSocketHandler(serve func(Transport)) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  64 * 1024,
		WriteBufferSize: 64 * 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		serve(NewWebSocketTransport(conn))
	}
}

// DialWebSocket connects to a host that serves the protocol over websocket.
func DialWebSocket(url string) (*WebSocketTransport, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	return NewWebSocketTransport(conn), nil
}
