package curation

import (
	"math"
	"sort"
	"time"

	"github.com/pribylovaa/trending-curator/internal/models"
)

// decayFactor линейно падает от 1 (только что) до 0 (DecayHorizon и старше).
// Статьи «из будущего» получают 1.
func decayFactor(published, now time.Time) float64 {
	age := now.Sub(published)
	if age <= 0 {
		return 1
	}

	return math.Max(0, 1-float64(age)/float64(DecayHorizon))
}

// compositeScore — этап 1. Заменяет relevance, пришедший от источника.
func compositeScore(a models.Article, s models.CurationSettings, now time.Time) float64 {
	tw := s.TrendingWeight / 100
	tb := s.TechBias / 100

	score := a.TrendingScore*tw*trendingShare +
		a.TechScore*tb*techShare +
		a.EntertainmentValue*(1-tb)*entertainmentShare +
		decayFactor(a.PublishedAt, now)*100*decayShare

	return models.ClampScore(score)
}

// adjustForBias — этап 2.
func adjustForBias(a models.Article, s models.CurationSettings) float64 {
	score := a.RelevanceScore

	switch {
	case a.Category.IsTechAdjacent():
		score += TechBonusMax * s.TechBias / 100
	case s.DiversityLevel <= diversityMidpoint:
		score -= DiversityPenaltyMax * (100 - s.DiversityLevel) / 100
	}

	return models.ClampScore(score)
}

// better — строгий порядок для этапов 3–4: relevance, trending, свежесть, id.
func better(a, b models.Article) bool {
	if a.RelevanceScore != b.RelevanceScore {
		return a.RelevanceScore > b.RelevanceScore
	}
	if a.TrendingScore != b.TrendingScore {
		return a.TrendingScore > b.TrendingScore
	}
	if !a.PublishedAt.Equal(b.PublishedAt) {
		return a.PublishedAt.After(b.PublishedAt)
	}

	return a.ID < b.ID
}

func sortBest(items []models.Article) {
	sort.SliceStable(items, func(i, j int) bool { return better(items[i], items[j]) })
}

// groupByCategory — этап 3. Неизвестные категории попадают в other.
func groupByCategory(items []models.Article) map[models.Category][]models.Article {
	groups := make(map[models.Category][]models.Article)
	for _, a := range items {
		c := a.Category
		if !c.Valid() {
			c = models.CategoryOther
		}
		groups[c] = append(groups[c], a)
	}

	for _, g := range groups {
		sortBest(g)
	}

	return groups
}

// selectionOrder — категории по убыванию доли; равные доли — в каноническом порядке.
func selectionOrder(dist models.CategoryDistribution) []models.Category {
	order := models.Categories()
	sort.SliceStable(order, func(i, j int) bool { return dist[order[i]] > dist[order[j]] })
	return order
}

// targetCount — round(pct/100 × limit), половина округляется вверх.
func targetCount(pct, limit int) int {
	return (2*pct*limit + 100) / 200
}

// targets — целевые количества по категориям. Если после округления сумма
// превышает limit, излишек снимается по одной статье с категорий, получивших
// от округления больше всего (метод наибольших остатков).
func targets(dist models.CategoryDistribution, order []models.Category, limit int) map[models.Category]int {
	out := make(map[models.Category]int, len(order))
	// surplus в сотых долях статьи: target×100 − pct×limit.
	surplus := make(map[models.Category]int, len(order))
	total := 0
	for _, c := range order {
		n := targetCount(dist[c], limit)
		out[c] = n
		surplus[c] = n*100 - dist[c]*limit
		total += n
	}

	for ; total > limit; total-- {
		var (
			pick  models.Category
			found bool
		)
		for _, c := range order {
			if out[c] == 0 {
				continue
			}
			if !found || surplus[c] > surplus[pick] {
				pick, found = c, true
			}
		}
		if !found {
			break
		}
		out[pick]--
		surplus[pick] -= 100
	}

	return out
}

// selectByDistribution — этап 4. Каждая категория получает min(цель, доступно);
// недобор закрывается лучшими из оставшихся.
func selectByDistribution(groups map[models.Category][]models.Article, dist models.CategoryDistribution, order []models.Category, limit int) []models.Article {
	selected := make([]models.Article, 0, limit)
	var rest []models.Article

	want := targets(dist, order, limit)
	for _, c := range order {
		g := groups[c]
		n := want[c]
		if n > len(g) {
			n = len(g)
		}

		selected = append(selected, g[:n]...)
		rest = append(rest, g[n:]...)
	}

	if len(selected) < limit && len(rest) > 0 {
		sortBest(rest)
		need := limit - len(selected)
		if need > len(rest) {
			need = len(rest)
		}
		selected = append(selected, rest[:need]...)
	}

	return selected
}

// rankLess — этап 5. Разница в пределах допуска считается ничьей
// и передаётся следующему ключу.
func rankLess(a, b models.Article) bool {
	if d := a.RelevanceScore - b.RelevanceScore; math.Abs(d) > RelevanceTolerance {
		return d > 0
	}
	if d := a.TrendingScore - b.TrendingScore; math.Abs(d) > TrendingTolerance {
		return d > 0
	}
	if !a.PublishedAt.Equal(b.PublishedAt) {
		return a.PublishedAt.After(b.PublishedAt)
	}

	return a.ID < b.ID
}

func rankFinal(items []models.Article) {
	sort.SliceStable(items, func(i, j int) bool { return rankLess(items[i], items[j]) })
}
