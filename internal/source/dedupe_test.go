package source

import (
	"testing"

	"github.com/pribylovaa/trending-curator/internal/models"
	"github.com/stretchr/testify/require"
)

func TestDedupeByURL_FirstSeenWins(t *testing.T) {
	t.Parallel()

	in := []models.Article{
		{ID: "1", URL: "https://a", Source: "social"},
		{ID: "2", URL: "https://b", Source: "social"},
		{ID: "3", URL: "https://a", Source: "rss"},
		{ID: "4", URL: " https://b ", Source: "rss"},
	}

	got := DedupeByURL(in)
	require.Len(t, got, 2)
	require.Equal(t, "1", got[0].ID)
	require.Equal(t, "2", got[1].ID)

	require.Empty(t, DedupeByURL(nil))
}

func TestSortByTrending_Stable(t *testing.T) {
	t.Parallel()

	in := []models.Article{
		{ID: "low", TrendingScore: 10},
		{ID: "tie-1", TrendingScore: 50},
		{ID: "high", TrendingScore: 90},
		{ID: "tie-2", TrendingScore: 50},
	}
	SortByTrending(in)

	ids := make([]string, 0, len(in))
	for _, a := range in {
		ids = append(ids, a.ID)
	}
	require.Equal(t, []string{"high", "tie-1", "tie-2", "low"}, ids)
}
