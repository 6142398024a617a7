package interceptors

import (
	"context"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/pribylovaa/trending-curator/pkg/log"
)

const healthCheck = "/grpc.health.v1.Health/Check"

// capHandler запоминает последнюю запись и считает сообщения по тексту.
type capHandler struct {
	base    []slog.Attr
	lastMsg string
	lastLvl slog.Level
	attrs   map[string]any
	count   map[string]int
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	out := make(map[string]any, len(h.base)+8)
	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})
	if h.count == nil {
		h.count = make(map[string]int)
	}
	h.count[r.Message]++
	h.lastMsg = r.Message
	h.lastLvl = r.Level
	h.attrs = out
	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.base = append(h.base, attrs...)
	return h
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

func okHandler(context.Context, any) (any, error) { return "ok", nil }

func TestUnaryLoggingInterceptor(t *testing.T) {
	t.Parallel()

	withRID := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-request-id", "rid-123"))
	withPeer := peer.NewContext(withRID, &peer.Peer{Addr: &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 50060}})

	tests := []struct {
		name     string
		ctx      context.Context
		handler  grpc.UnaryHandler
		wantCode string
		wantPeer string
		wantRID  string
	}{
		{
			name:     "request id and peer from context",
			ctx:      withPeer,
			handler:  okHandler,
			wantCode: "OK",
			wantPeer: "127.0.0.1:50060",
			wantRID:  "rid-123",
		},
		{
			name:     "no peer",
			ctx:      withRID,
			handler:  okHandler,
			wantCode: "OK",
			wantPeer: "-",
			wantRID:  "rid-123",
		},
		{
			name: "error code logged and id generated",
			ctx:  context.Background(),
			handler: func(context.Context, any) (any, error) {
				return nil, status.Error(codes.NotFound, "unknown service")
			},
			wantCode: "NotFound",
			wantPeer: "-",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := &capHandler{}
			inter := UnaryLoggingInterceptor(slog.New(h))

			_, _ = inter(tt.ctx, "req", &grpc.UnaryServerInfo{FullMethod: healthCheck}, tt.handler)

			require.Equal(t, "grpc", h.lastMsg)
			require.Equal(t, slog.LevelInfo, h.lastLvl)
			require.Equal(t, healthCheck, h.attrs["method"])
			require.Equal(t, tt.wantCode, h.attrs["code"])
			require.Equal(t, tt.wantPeer, h.attrs["peer"])
			require.IsType(t, time.Duration(0), h.attrs["dur"])

			rid, _ := h.attrs["request_id"].(string)
			if tt.wantRID != "" {
				require.Equal(t, tt.wantRID, rid)
			} else {
				_, err := uuid.Parse(rid)
				require.NoError(t, err)
			}
		})
	}
}

func TestUnaryLoggingInterceptor_LoggerAvailableInHandler(t *testing.T) {
	t.Parallel()

	h := &capHandler{}
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-request-id", "abc"))
	inter := UnaryLoggingInterceptor(slog.New(h))

	_, err := inter(ctx, "req", &grpc.UnaryServerInfo{FullMethod: healthCheck}, func(ctx context.Context, _ any) (any, error) {
		log.From(ctx).Info("probe")
		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, h.count["probe"])
	require.Equal(t, "abc", h.attrs["request_id"])
}

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("panic becomes internal", func(t *testing.T) {
		t.Parallel()

		h := &capHandler{}
		inter := Recover(slog.New(h))

		resp, err := inter(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: healthCheck}, func(context.Context, any) (any, error) {
			panic("boom")
		})

		require.Nil(t, resp)
		require.Equal(t, codes.Internal, status.Code(err))
		require.Equal(t, "panic_recovered", h.lastMsg)
		require.Equal(t, slog.LevelError, h.lastLvl)
		require.Equal(t, healthCheck, h.attrs["method"])
		require.NotEmpty(t, h.attrs["panic"])
		require.NotEmpty(t, h.attrs["stack"])
	})

	t.Run("no panic passes through", func(t *testing.T) {
		t.Parallel()

		h := &capHandler{}
		inter := Recover(slog.New(h))

		resp, err := inter(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: healthCheck}, okHandler)
		require.NoError(t, err)
		require.Equal(t, "ok", resp)
		require.Empty(t, h.lastMsg)
	})
}

func TestWithTimeout(t *testing.T) {
	t.Parallel()

	info := &grpc.UnaryServerInfo{FullMethod: healthCheck}

	t.Run("sets deadline", func(t *testing.T) {
		t.Parallel()

		const d = 40 * time.Millisecond
		start := time.Now()
		_, err := WithTimeout(d)(context.Background(), "req", info, func(ctx context.Context, _ any) (any, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})

		require.ErrorIs(t, err, context.DeadlineExceeded)
		require.GreaterOrEqual(t, time.Since(start), d)
	})

	t.Run("keeps existing deadline", func(t *testing.T) {
		t.Parallel()

		parent, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
		defer cancel()
		want, _ := parent.Deadline()

		var got time.Time
		_, err := WithTimeout(time.Second)(parent, "req", info, func(ctx context.Context, _ any) (any, error) {
			got, _ = ctx.Deadline()
			return "ok", nil
		})

		require.NoError(t, err)
		require.WithinDuration(t, want, got, time.Millisecond)
	})

	t.Run("zero is a no-op", func(t *testing.T) {
		t.Parallel()

		var has bool
		_, err := WithTimeout(0)(context.Background(), "req", info, func(ctx context.Context, _ any) (any, error) {
			_, has = ctx.Deadline()
			return "ok", nil
		})

		require.NoError(t, err)
		require.False(t, has)
	})
}
