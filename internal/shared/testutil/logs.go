// Package testutil holds log capture and dataset fixtures shared by the
// service, transport and application tests.
package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// LogRecord is a captured log record with its attributes flattened
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// LogRecorder is a slog.Handler that keeps every record in memory
type LogRecorder struct {
	store *recordStore
	attrs []slog.Attr
	t     *testing.T
}

type recordStore struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewLogRecorder returns a logger whose records can be inspected through
// the returned recorder. Records are echoed to t.Log when t is not nil.
func NewLogRecorder(t *testing.T) (*slog.Logger, *LogRecorder) {
	rec := &LogRecorder{store: &recordStore{}, t: t}
	return slog.New(rec), rec
}

// Enabled implements slog.Handler
func (h *LogRecorder) Enabled(context.Context, slog.Level) bool {
	return true
}

// Handle implements slog.Handler
func (h *LogRecorder) Handle(_ context.Context, r slog.Record) error {
	attrs := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.store.mu.Lock()
	h.store.records = append(h.store.records, LogRecord{Level: r.Level, Message: r.Message, Attrs: attrs})
	h.store.mu.Unlock()

	if h.t != nil {
		h.t.Logf("[%s] %s %v", r.Level, r.Message, attrs)
	}
	return nil
}

// WithAttrs implements slog.Handler. Derived loggers share the record store.
func (h *LogRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &LogRecorder{store: h.store, attrs: merged, t: h.t}
}

// WithGroup implements slog.Handler. Groups are flattened.
func (h *LogRecorder) WithGroup(string) slog.Handler {
	return h
}

// Records returns a copy of everything captured so far
func (h *LogRecorder) Records() []LogRecord {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()

	out := make([]LogRecord, len(h.store.records))
	copy(out, h.store.records)
	return out
}

// Find returns the first record whose message contains msg
func (h *LogRecorder) Find(msg string) (LogRecord, bool) {
	for _, r := range h.Records() {
		if strings.Contains(r.Message, msg) {
			return r, true
		}
	}
	return LogRecord{}, false
}

// AtLevel returns the records logged at level
func (h *LogRecorder) AtLevel(level slog.Level) []LogRecord {
	var out []LogRecord
	for _, r := range h.Records() {
		if r.Level == level {
			out = append(out, r)
		}
	}
	return out
}

// Reset drops all captured records
func (h *LogRecorder) Reset() {
	h.store.mu.Lock()
	h.store.records = nil
	h.store.mu.Unlock()
}
