package service

import (
	"strings"
	"time"

	"github.com/pribylovaa/trending-curator/internal/models"
)

// finalizeArticle доводит статью до инвариантов домена:
//   - Title/URL обязательны (после TrimSpace) — иначе статья отбрасывается;
//   - PublishedAt := PublishedAt || nowUTC (UTC);
//   - неизвестная категория → other;
//   - пустой ID пересчитывается из (source, url, publishedAt);
//   - оценки зажимаются в [0,100], Tags не nil.
//
// Возвращает (статья, ok=false если её следует отбросить).
func finalizeArticle(a models.Article, nowUTC time.Time) (models.Article, bool) {
	a.Title = strings.TrimSpace(a.Title)
	a.URL = strings.TrimSpace(a.URL)

	if a.Title == "" || a.URL == "" {
		return models.Article{}, false
	}

	a.Description = strings.TrimSpace(a.Description)

	if a.PublishedAt.IsZero() {
		a.PublishedAt = nowUTC
	} else {
		a.PublishedAt = a.PublishedAt.UTC()
	}

	if !a.Category.Valid() {
		a.Category = models.CategoryOther
	}

	if a.ID == "" {
		a.ID = models.ArticleID(a.Source, a.URL, a.PublishedAt)
	}

	if a.Tags == nil {
		a.Tags = []string{}
	}

	a.RelevanceScore = models.ClampScore(a.RelevanceScore)
	a.TrendingScore = models.ClampScore(a.TrendingScore)
	a.TechScore = models.ClampScore(a.TechScore)
	a.EntertainmentValue = models.ClampScore(a.EntertainmentValue)

	return a, true
}
