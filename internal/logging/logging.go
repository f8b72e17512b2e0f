// Package logging configures structured logging for the TUI.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
)

type ctxKey string

const (
	slogFields ctxKey = "slog_fields"

	// ComponentKey is the attribute naming the emitting component.
	ComponentKey = "component"
)

// ContextHandler adds attributes stored in the context to every record.
type ContextHandler struct {
	slog.Handler
}

// Handle adds contextual attributes to the Record before calling the underlying handler.
func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		for _, v := range attrs {
			r.AddAttrs(v)
		}
	}
	if err := h.Handler.Handle(ctx, r); err != nil {
		return fmt.Errorf("error handling record for a log: %+v: %w", r, err)
	}
	return nil
}

// WithAttrs keeps the context handler wrapping when attributes are bound.
func (h ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

// WithGroup keeps the context handler wrapping when a group is opened.
func (h ContextHandler) WithGroup(name string) slog.Handler {
	return ContextHandler{Handler: h.Handler.WithGroup(name)}
}

// AppendCtx adds an slog attribute to the provided context so that it will be
// included in any Record created with such context.
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if v, ok := parent.Value(slogFields).([]slog.Attr); ok {
		v = append(v[:len(v):len(v)], attr)
		return context.WithValue(parent, slogFields, v)
	}
	return context.WithValue(parent, slogFields, []slog.Attr{attr})
}

// For returns a logger tagged with the component name. It resolves the
// default logger at call time, so call it after Setup.
func For(component string) *slog.Logger {
	return slog.Default().With(slog.String(ComponentKey, component))
}

// Setup installs the default logger. With debug enabled, records are written
// to path through tea.LogToFile; otherwise they are dropped so the alternate
// screen stays intact. The returned closer must be called on exit.
func Setup(path string, debug bool) (io.Closer, error) {
	if !debug {
		slog.SetDefault(slog.New(ContextHandler{Handler: slog.NewTextHandler(io.Discard, nil)}))
		return nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := tea.LogToFile(path, "")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(ContextHandler{Handler: handler}))
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
