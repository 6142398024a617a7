package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/trending-curator/internal/service"
)

func TestToHTTP_Mapping(t *testing.T) {
	t.Parallel()

	tcs := []struct {
		name       string
		in         error
		wantStatus int
		wantCode   string
	}{
		{"invalid_argument", fmt.Errorf("op: %w", service.ErrInvalidArgument), http.StatusBadRequest, "invalid_argument"},
		{"not_found", fmt.Errorf("op: %w", service.ErrNotFound), http.StatusNotFound, "not_found"},
		{"disabled", fmt.Errorf("op: %w", service.ErrDisabled), http.StatusConflict, "source_disabled"},
		{"unavailable", fmt.Errorf("op: %w", service.ErrUnavailable), http.StatusServiceUnavailable, "unavailable"},
		{"deadline", fmt.Errorf("op: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, "deadline_exceeded"},
		{"canceled", context.Canceled, StatusClientClosedRequest, "canceled"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal"},
		{"nil", nil, http.StatusInternalServerError, "internal"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			gotStatus, resp := ToHTTP(tc.in)
			require.Equal(t, tc.wantStatus, gotStatus)
			require.Equal(t, tc.wantCode, resp.Error.Code)
			require.NotEmpty(t, resp.Error.Message)
		})
	}
}

func TestWriteError_IncludesRequestID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/sources", nil)
	req.Header.Set("X-Request-Id", "rid-1")
	rr := httptest.NewRecorder()

	WriteError(rr, req, fmt.Errorf("op: %w: secret detail", service.ErrNotFound))

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "not_found", resp.Error.Code)
	require.Equal(t, "rid-1", resp.Error.RequestID)
	require.NotContains(t, rr.Body.String(), "secret")
}
