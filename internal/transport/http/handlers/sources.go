package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/trending-curator/internal/models"
	apierrors "github.com/pribylovaa/trending-curator/internal/transport/http/errors"
)

type sourcesResponse struct {
	Sources []models.SourceDescriptor `json:"sources"`
}

type availabilityResponse struct {
	Availability map[string]bool `json:"availability"`
}

type toggleResponse struct {
	ID      string `json:"id"`
	Enabled bool   `json:"enabled"`
}

// ListSources — GET /sources.
func (h *Handlers) ListSources(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sourcesResponse{Sources: h.svc.Sources()})
}

// SourcesAvailability — GET /sources/availability.
func (h *Handlers) SourcesAvailability(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, availabilityResponse{Availability: h.svc.CheckAvailability(r.Context())})
}

// EnableSource — POST /sources/{id}/enable.
func (h *Handlers) EnableSource(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.EnableSource(r.Context(), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toggleResponse{ID: id, Enabled: true})
}

// DisableSource — POST /sources/{id}/disable.
func (h *Handlers) DisableSource(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.DisableSource(r.Context(), id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toggleResponse{ID: id, Enabled: false})
}
