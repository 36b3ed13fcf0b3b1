package server

import (
	"certportal/internal/config"
	"context"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"
)

// redactedKeys never reach the log output, whatever group they appear in.
var redactedKeys = map[string]struct{}{
	"password":      {},
	"client_secret": {},
	"id_token":      {},
	"access_token":  {},
}

func SetupLogger(cfg *config.Config) *slog.Logger {
	return NewLogger(os.Stderr, cfg.Log)
}

// NewLogger builds the process logger. At debug level, error records also carry the
// goroutine stack.
func NewLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	level := parseLevel(cfg.Level)
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: redactAttr,
	}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	if level == slog.LevelDebug {
		handler = &stackTraceHandler{next: handler}
	}

	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func redactAttr(_ []string, a slog.Attr) slog.Attr {
	if _, ok := redactedKeys[strings.ToLower(a.Key)]; ok && a.Value.String() != "" {
		return slog.String(a.Key, "[redacted]")
	}
	return a
}

type stackTraceHandler struct {
	next slog.Handler
}

func (h *stackTraceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *stackTraceHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		r = r.Clone()
		r.AddAttrs(slog.String("stack", string(debug.Stack())))
	}
	return h.next.Handle(ctx, r)
}

func (h *stackTraceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &stackTraceHandler{next: h.next.WithAttrs(attrs)}
}

func (h *stackTraceHandler) WithGroup(name string) slog.Handler {
	return &stackTraceHandler{next: h.next.WithGroup(name)}
}
