// errors стандартизирует ответы об ошибках HTTP-слоя.
// На вход принимает ошибку сервиса, на выход даёт HTTP-статус и
// короткое безопасное сообщение без внутренних деталей.
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/trending-curator/internal/service"
)

// StatusClientClosedRequest — нестандартный код "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// APIError — единый формат ошибки для клиента.
// Code — стабильный машиночитаемый код, Message — безопасное описание,
// RequestID — из X-Request-Id, если есть.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект ответа.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP переводит ошибку сервиса в HTTP-статус и тело ответа.
//
// Таблица:
//   - service.ErrInvalidArgument -> 400
//   - service.ErrNotFound -> 404
//   - service.ErrDisabled -> 409
//   - service.ErrUnavailable -> 503
//   - context.DeadlineExceeded -> 504
//   - context.Canceled -> 499
//   - nil и прочее -> 500/internal
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := classify(err)

	return status, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError пишет статус и тело ошибки, добавляя request_id из заголовка.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func classify(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal", "internal error"
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found", "source not found"
	case errors.Is(err, service.ErrDisabled):
		return http.StatusConflict, "source_disabled", "source disabled"
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable", "source unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "canceled"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
