// Package log persists per-tick records as zstd-compressed JSONL. One file
// per run; each line is a world.TickLogEntry.
package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"unlimitedworlds.ai/internal/sim/world"
)

// TickLogWriter implements world.TickLogger over a single .jsonl.zst file.
type TickLogWriter struct {
	path string

	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

func NewTickLogWriter(path string) *TickLogWriter {
	return &TickLogWriter{path: path}
}

func (l *TickLogWriter) WriteTick(entry world.TickLogEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.f == nil {
		if err := l.openLocked(); err != nil {
			return err
		}
	}

	b, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if _, err := l.w.Write(b); err != nil {
		return err
	}
	return l.w.WriteByte('\n')
}

func (l *TickLogWriter) openLocked() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(l.path)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return err
	}
	l.f = f
	l.enc = enc
	l.w = bufio.NewWriter(enc)
	return nil
}

func (l *TickLogWriter) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}
	var firstErr error
	if err := l.w.Flush(); err != nil {
		firstErr = err
	}
	if err := l.enc.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := l.f.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	l.f, l.enc, l.w = nil, nil, nil
	return firstErr
}

// ReadTickLog decodes every entry of a tick log file in order.
func ReadTickLog(path string) ([]world.TickLogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []world.TickLogEntry
	r := bufio.NewReader(dec)
	for {
		line, err := r.ReadBytes('\n')
		if len(line) > 0 {
			var entry world.TickLogEntry
			if jerr := json.Unmarshal(line, &entry); jerr != nil {
				return nil, jerr
			}
			out = append(out, entry)
		}
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
	}
}
