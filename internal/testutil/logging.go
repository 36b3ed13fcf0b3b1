package testutil

import (
	"context"
	"log/slog"
	"sync"
)

// TestLogHandler records every log record, including attributes bound with With, so tests
// can assert on what a component logged.
type TestLogHandler struct {
	mu      *sync.Mutex
	records *[]TestLogRecord
	bound   []slog.Attr
}

type TestLogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

func NewTestLogHandler() *TestLogHandler {
	return &TestLogHandler{
		mu:      &sync.Mutex{},
		records: &[]TestLogRecord{},
	}
}

func (h *TestLogHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *TestLogHandler) Handle(_ context.Context, record slog.Record) error {
	attrs := make(map[string]any, len(h.bound)+record.NumAttrs())
	for _, a := range h.bound {
		attrs[a.Key] = a.Value.Any()
	}
	record.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	*h.records = append(*h.records, TestLogRecord{Level: record.Level, Message: record.Message, Attrs: attrs})
	return nil
}

// WithAttrs returns a handler sharing this one's record list.
func (h *TestLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	bound := append(append([]slog.Attr{}, h.bound...), attrs...)
	return &TestLogHandler{mu: h.mu, records: h.records, bound: bound}
}

func (h *TestLogHandler) WithGroup(string) slog.Handler {
	return h
}

func (h *TestLogHandler) Records() []TestLogRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]TestLogRecord(nil), *h.records...)
}

func (h *TestLogHandler) Messages() []string {
	records := h.Records()
	msgs := make([]string, len(records))
	for i, r := range records {
		msgs[i] = r.Level.String() + " " + r.Message
	}
	return msgs
}

func (h *TestLogHandler) ContainsMessage(level slog.Level, message string) bool {
	_, ok := h.Find(level, message)
	return ok
}

// Find returns the first record with the level and message.
func (h *TestLogHandler) Find(level slog.Level, message string) (TestLogRecord, bool) {
	for _, r := range h.Records() {
		if r.Level == level && r.Message == message {
			return r, true
		}
	}
	return TestLogRecord{}, false
}
