package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/trending-curator/internal/transport/http/errors"
)

// GetSettings — GET /curation/settings.
func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Settings())
}

// UpdateSettings — PUT /curation/settings.
// Тело декодируется поверх текущего снимка: отсутствующие поля сохраняют значения.
func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	st := h.svc.Settings()
	if err := decodeStrict(r, &st); err != nil {
		apierrors.WriteError(w, r, invalidArgument(err))
		return
	}

	updated, err := h.svc.UpdateSettings(r.Context(), st)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
