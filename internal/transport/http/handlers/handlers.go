// handlers реализует REST-эндпойнты curator поверх service.Service.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/trending-curator/internal/models"
	"github.com/pribylovaa/trending-curator/internal/service"
)

// Curator — то, что хендлерам нужно от сервисного слоя.
type Curator interface {
	TrendingArticles(ctx context.Context, req service.TrendingRequest) (*models.TrendingResult, error)
	Sources() []models.SourceDescriptor
	CheckAvailability(ctx context.Context) map[string]bool
	EnableSource(ctx context.Context, id string) error
	DisableSource(ctx context.Context, id string) error
	Settings() models.CurationSettings
	UpdateSettings(ctx context.Context, st models.CurationSettings) (models.CurationSettings, error)
}

// Handlers агрегирует зависимости хендлеров.
type Handlers struct {
	svc Curator
}

func New(svc Curator) *Handlers {
	return &Handlers{svc: svc}
}

// writeJSON пишет JSON-ответ с нужным Content-Type.
// Ошибки выводятся через apierrors.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict запрещает неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// invalidArgument превращает локальную ошибку разбора во входную ошибку сервиса.
func invalidArgument(err error) error {
	return errors.Join(service.ErrInvalidArgument, err)
}
