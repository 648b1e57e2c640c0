package ipc

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
)

// maxFrame bounds a single envelope. Late-game snapshots with a few hundred
// units stay well under it.
const maxFrame = 4 << 20

// Envelope is the wire format shared with the game host.
// Data stays raw so handlers decode it into their own concrete type.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func NewEnvelope(msgType string, data any) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s: %w", msgType, err)
	}
	return Envelope{Type: msgType, Data: raw}, nil
}

// Decode unmarshals the payload into v.
func (e Envelope) Decode(v any) error {
	if err := json.Unmarshal(e.Data, v); err != nil {
		return fmt.Errorf("decode %s: %w", e.Type, err)
	}
	return nil
}

// ReadFrame reads one envelope prefixed by its 4-byte little-endian length.
func ReadFrame(r io.Reader) (Envelope, error) {
	var length uint32
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return Envelope{}, fmt.Errorf("read length: %w", err)
	}
	if length == 0 || length > maxFrame {
		return Envelope{}, fmt.Errorf("invalid frame length: %d", length)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Envelope{}, fmt.Errorf("read payload: %w", err)
	}

	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return Envelope{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	return env, nil
}

// WriteFrame writes env and its length prefix in one Write call.
func WriteFrame(w io.Writer, env Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	if len(payload) > maxFrame {
		return fmt.Errorf("envelope too large: %d bytes", len(payload))
	}

	buf := make([]byte, 4+len(payload))
	binary.LittleEndian.PutUint32(buf, uint32(len(payload)))
	copy(buf[4:], payload)
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}
