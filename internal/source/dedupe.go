package source

import (
	"sort"
	"strings"

	"github.com/pribylovaa/trending-curator/internal/models"
)

// DedupeByURL убирает статьи с повторяющимся URL. Побеждает первая встреченная,
// поля не сливаются. Порядок сохраняется.
func DedupeByURL(items []models.Article) []models.Article {
	if len(items) == 0 {
		return items
	}

	seen := make(map[string]struct{}, len(items))
	result := make([]models.Article, 0, len(items))

	for _, a := range items {
		key := strings.TrimSpace(a.URL)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, a)
	}

	return result
}

// SortByTrending упорядочивает статьи по TrendingScore по убыванию (стабильно).
func SortByTrending(items []models.Article) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].TrendingScore > items[j].TrendingScore
	})
}
