package telemetry

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/nstehr/brood/model"
)

// Entry is one journaled tick.
type Entry struct {
	Iteration int             `json:"iteration"`
	Time      float64         `json:"time"`
	Phases    []string        `json:"phases,omitempty"`
	Events    []string        `json:"events,omitempty"`
	Commands  []model.Command `json:"commands"`
}

// Journal writes zstd-compressed JSON lines, one file per match.
type Journal struct {
	path string

	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// OpenJournal creates <dir>/<matchID>.jsonl.zst.
func OpenJournal(dir, matchID string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	path := filepath.Join(dir, matchID+".jsonl.zst")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("zstd writer: %w", err)
	}
	return &Journal{path: path, f: f, enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}, nil
}

func (j *Journal) Path() string { return j.path }

func (j *Journal) Write(e Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.w == nil {
		return errors.New("journal closed")
	}
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	if _, err := j.w.Write(b); err != nil {
		return err
	}
	return j.w.WriteByte('\n')
}

func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.w == nil {
		return nil
	}
	var errs []error
	errs = append(errs, j.w.Flush(), j.enc.Close(), j.f.Close())
	j.w, j.enc, j.f = nil, nil, nil
	return errors.Join(errs...)
}

// ReadJournal decodes every entry of a journal file.
func ReadJournal(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	var out []Entry
	jd := json.NewDecoder(dec)
	for {
		var e Entry
		err := jd.Decode(&e)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("decode entry %d: %w", len(out), err)
		}
		out = append(out, e)
	}
}
