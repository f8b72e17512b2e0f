package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHandlerAddsContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(ContextHandler{Handler: slog.NewTextHandler(&buf, nil)})

	ctx := AppendCtx(context.Background(), slog.String("route", "/ring"))
	ctx = AppendCtx(ctx, slog.Int("round", 3))
	logger.InfoContext(ctx, "round finished")

	out := buf.String()
	assert.Contains(t, out, "route=/ring")
	assert.Contains(t, out, "round=3")
}

func TestContextHandlerKeepsWrappingWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(ContextHandler{Handler: slog.NewTextHandler(&buf, nil)}).
		With(slog.String(ComponentKey, "stream"))

	logger.InfoContext(AppendCtx(context.Background(), slog.Bool("over", true)), "render")

	out := buf.String()
	assert.Contains(t, out, "component=stream")
	assert.Contains(t, out, "over=true")
}

func TestSetupDebugWritesFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "logs", "keytrainer.log")
	closer, err := Setup(path, true)
	require.NoError(t, err)

	For("app").Debug("hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "component=app")
	assert.Contains(t, string(data), "hello")
}

func TestSetupWithoutDebugDiscards(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	closer, err := Setup("", false)
	require.NoError(t, err)
	require.NoError(t, closer.Close())
	assert.False(t, slog.Default().Enabled(context.Background(), slog.LevelDebug))
}
