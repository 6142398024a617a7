package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	apierrors "github.com/pribylovaa/trending-curator/internal/transport/http/errors"
	"github.com/pribylovaa/trending-curator/pkg/log"
)

// capHandler собирает атрибуты последней записи вместе с базовыми из With.
type capHandler struct {
	base      []slog.Attr
	lastMsg   string
	lastLevel slog.Level
	attrs     map[string]any
	count     int
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
	h.count++
	h.lastMsg = r.Message
	h.lastLevel = r.Level
	h.attrs = out
	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.base = append(h.base, attrs...)
	return h
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

func TestChain_Order(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name+"-in")
				next.ServeHTTP(w, r)
				order = append(order, name+"-out")
			})
		}
	}

	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
		w.WriteHeader(http.StatusAccepted)
	})

	rr := httptest.NewRecorder()
	Chain(final, mark("outer"), mark("inner")).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"outer-in", "inner-in", "handler", "inner-out", "outer-out"}, order)
	require.Equal(t, http.StatusAccepted, rr.Code)
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		given string
	}{
		{name: "generated"},
		{name: "propagated", given: "rid-existing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var fromCtx, fromHeader string
			h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fromCtx = RequestIDFrom(r.Context())
				fromHeader = r.Header.Get(HeaderRequestID)
			})

			req := httptest.NewRequest(http.MethodGet, "/sources", nil)
			if tt.given != "" {
				req.Header.Set(HeaderRequestID, tt.given)
			}
			rr := httptest.NewRecorder()
			Chain(h, RequestID()).ServeHTTP(rr, req)

			got := rr.Header().Get(HeaderRequestID)
			if tt.given != "" {
				require.Equal(t, tt.given, got)
			} else {
				_, err := uuid.Parse(got)
				require.NoError(t, err)
			}
			require.Equal(t, got, fromCtx)
			require.Equal(t, got, fromHeader)
		})
	}
}

func TestRequestIDFrom_Empty(t *testing.T) {
	t.Parallel()

	require.Empty(t, RequestIDFrom(context.Background()))
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	t.Run("sets deadline", func(t *testing.T) {
		t.Parallel()

		var left time.Duration
		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			dl, ok := r.Context().Deadline()
			require.True(t, ok)
			left = time.Until(dl)
		})

		Chain(h, Timeout(50*time.Millisecond)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.Greater(t, left, time.Duration(0))
	})

	t.Run("keeps existing deadline", func(t *testing.T) {
		t.Parallel()

		parent, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		want, _ := parent.Deadline()

		var got time.Time
		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = r.Context().Deadline()
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(parent)
		Chain(h, Timeout(time.Second)).ServeHTTP(httptest.NewRecorder(), req)
		require.WithinDuration(t, want, got, time.Millisecond)
	})

	t.Run("tightens later parent deadline", func(t *testing.T) {
		t.Parallel()

		parent, cancel := context.WithTimeout(context.Background(), time.Hour)
		defer cancel()

		var left time.Duration
		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			dl, _ := r.Context().Deadline()
			left = time.Until(dl)
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(parent)
		Chain(h, Timeout(50*time.Millisecond)).ServeHTTP(httptest.NewRecorder(), req)
		require.LessOrEqual(t, left, 50*time.Millisecond)
	})

	t.Run("zero is a no-op", func(t *testing.T) {
		t.Parallel()

		var has bool
		h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, has = r.Context().Deadline()
		})

		Chain(h, Timeout(0)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.False(t, has)
	})
}

func TestRecover_PanicBecomes500(t *testing.T) {
	t.Parallel()

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/trending-articles", nil)
	rr := httptest.NewRecorder()
	Chain(h, Recover(), RequestID()).ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var env apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	require.Equal(t, "internal", env.Error.Code)
	require.NotContains(t, rr.Body.String(), "boom")
}

func TestLogging_WritesRecord(t *testing.T) {
	t.Parallel()

	h := &capHandler{}
	const rid = "rid-456"

	var ctxLogger *slog.Logger
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLogger = log.From(r.Context())
		_, _ = w.Write([]byte("0123456789"))
	})

	req := httptest.NewRequest(http.MethodGet, "/sources", nil)
	req.Header.Set(HeaderRequestID, rid)
	rr := httptest.NewRecorder()
	Chain(final, RequestID(), Logging(slog.New(h))).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, ctxLogger)
	require.Equal(t, 1, h.count)
	require.Equal(t, "http_request", h.lastMsg)
	require.Equal(t, slog.LevelInfo, h.lastLevel)
	require.Equal(t, http.MethodGet, h.attrs["method"])
	require.Equal(t, "/sources", h.attrs["path"])
	require.EqualValues(t, http.StatusOK, h.attrs["status"])
	require.EqualValues(t, 10, h.attrs["bytes"])
	require.Equal(t, rid, h.attrs["request_id"])
	require.Equal(t, "/sources", h.attrs["route"])
	require.Contains(t, h.attrs, "dur_ms")
}

func TestLogging_RoutePatternAndLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		status    int
		wantLevel slog.Level
	}{
		{name: "ok", status: http.StatusOK, wantLevel: slog.LevelInfo},
		{name: "not_found", status: http.StatusNotFound, wantLevel: slog.LevelWarn},
		{name: "unavailable", status: http.StatusServiceUnavailable, wantLevel: slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := &capHandler{}
			r := chi.NewRouter()
			r.Use(Logging(slog.New(h)))
			r.Post("/sources/{id}/enable", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/sources/rss/enable", nil))

			require.Equal(t, tt.status, rr.Code)
			require.Equal(t, tt.wantLevel, h.lastLevel)
			require.Equal(t, "/sources/{id}/enable", h.attrs["route"])
			require.Equal(t, "/sources/rss/enable", h.attrs["path"])
			require.EqualValues(t, tt.status, h.attrs["status"])
		})
	}
}

func TestStatusWriter(t *testing.T) {
	t.Parallel()

	sw := newStatusWriter(httptest.NewRecorder())
	_, _ = sw.Write([]byte("abcd"))

	require.Equal(t, http.StatusOK, sw.status)
	require.Equal(t, 4, sw.count)
}
