package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pribylovaa/trending-curator/internal/models"
	"github.com/pribylovaa/trending-curator/internal/service"
	apierrors "github.com/pribylovaa/trending-curator/internal/transport/http/errors"
)

// TrendingArticles — GET /trending-articles.
func (h *Handlers) TrendingArticles(w http.ResponseWriter, r *http.Request) {
	h.trending(w, r, false)
}

// RefreshTrendingArticles — POST /trending-articles/refresh: то же, но мимо кэша результатов.
func (h *Handlers) RefreshTrendingArticles(w http.ResponseWriter, r *http.Request) {
	h.trending(w, r, true)
}

func (h *Handlers) trending(w http.ResponseWriter, r *http.Request, refresh bool) {
	q := r.URL.Query()

	st, err := settingsFromQuery(q, h.svc.Settings())
	if err != nil {
		apierrors.WriteError(w, r, invalidArgument(err))
		return
	}

	res, err := h.svc.TrendingArticles(r.Context(), service.TrendingRequest{
		SourceID: q.Get("source"),
		Refresh:  refresh,
		Settings: &st,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// settingsFromQuery накладывает параметры запроса на снимок настроек.
// Диапазоны проверяет сервис.
func settingsFromQuery(q url.Values, base models.CurationSettings) (models.CurationSettings, error) {
	st := base

	if v := q.Get("max_articles"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return st, fmt.Errorf("max_articles: %w", err)
		}
		st.MaxArticles = n
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"tech_bias", &st.TechBias},
		{"diversity_level", &st.DiversityLevel},
		{"trending_weight", &st.TrendingWeight},
	}
	for _, f := range floats {
		v := q.Get(f.key)
		if v == "" {
			continue
		}

		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return st, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = x
	}

	if v := q.Get("include_niche"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return st, fmt.Errorf("include_niche: %w", err)
		}
		st.IncludeNiche = b
	}

	return st, nil
}
