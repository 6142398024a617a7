// models содержит доменные сущности trending-curator.
// Эти типы используются источниками, реестром, движком курирования и транспортом.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// articleNamespace — пространство имён для name-based UUID статей.
var articleNamespace = uuid.MustParse("6f1c2d3e-8a4b-4c5d-9e6f-7a8b9c0d1e2f")

// Article — нормализованная статья, полученная из любого источника.
//
// Особенности:
//   - значение неизменяемое: движок курирования возвращает копии с пересчитанным
//     RelevanceScore, исходные записи не трогаются;
//   - все оценки лежат в диапазоне [0,100];
//   - PublishedAt — в UTC.
type Article struct {
	// ID — детерминированный идентификатор, см. ArticleID.
	ID string `json:"id"`
	// Title — заголовок.
	Title string `json:"title"`
	// URL — каноническая ссылка.
	URL string `json:"url"`
	// Description — описание/текст, может быть пустым.
	Description string `json:"description,omitempty"`
	// Source — логический идентификатор источника ("social", "rss", ...).
	Source string `json:"source"`
	// SourceName — отображаемое имя источника.
	SourceName string `json:"sourceName"`
	// PublishedAt — время публикации у источника.
	PublishedAt time.Time `json:"publishedAt"`
	// Author — автор, если известен.
	Author string `json:"author,omitempty"`
	// Tags — упорядоченный список тегов, может быть пустым.
	Tags []string `json:"tags"`
	// Category — тематическая категория.
	Category Category `json:"category"`

	// RelevanceScore — итоговая оценка, вычисляется движком курирования.
	RelevanceScore float64 `json:"relevanceScore"`
	// TrendingScore — сигнал вовлечённости/вирусности от источника.
	TrendingScore float64 `json:"trendingScore"`
	// TechScore — близость к технологической тематике.
	TechScore float64 `json:"techScore"`
	// EntertainmentValue — привлекательность вне техно-тематики.
	EntertainmentValue float64 `json:"entertainmentValue"`
}

// ArticleID возвращает идентификатор статьи, детерминированно выведенный
// из (source, url, publishedAt): повторная загрузка той же записи даёт тот же id.
func ArticleID(source, url string, publishedAt time.Time) string {
	name := strings.Join([]string{
		source,
		url,
		publishedAt.UTC().Format(time.RFC3339Nano),
	}, "|")

	return uuid.NewSHA1(articleNamespace, []byte(name)).String()
}

// Clone возвращает глубокую копию статьи (срез тегов не разделяется).
func (a Article) Clone() Article {
	if a.Tags != nil {
		a.Tags = append(make([]string, 0, len(a.Tags)), a.Tags...)
	}

	return a
}

// CloneArticles копирует срез статей вместе с тегами.
func CloneArticles(items []Article) []Article {
	if items == nil {
		return nil
	}

	out := make([]Article, len(items))
	for i, a := range items {
		out[i] = a.Clone()
	}

	return out
}

// ClampScore ограничивает оценку диапазоном [0,100].
func ClampScore(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
