package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrom_FallsBackToDefault(t *testing.T) {
	t.Parallel()

	require.Same(t, slog.Default(), From(context.Background()))
}

func TestInto_From_RoundTrip(t *testing.T) {
	t.Parallel()

	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := Into(context.Background(), l)

	require.Same(t, l, From(ctx))
}

func TestFrom_NilLoggerInContext(t *testing.T) {
	t.Parallel()

	ctx := Into(context.Background(), nil)

	require.Same(t, slog.Default(), From(ctx))
}

func TestWith_AddsAttrsToContextLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	ctx := Into(context.Background(), base)
	require.Equal(t, ctx, With(ctx))

	ctx = With(ctx, slog.String("source", "rss"), slog.String("request_id", "rid-1"))
	From(ctx).Info("source_fetch_failed")

	out := buf.String()
	require.Contains(t, out, `"source":"rss"`)
	require.Contains(t, out, `"request_id":"rid-1"`)
	require.NotSame(t, base, From(ctx))
}
