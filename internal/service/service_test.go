package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/trending-curator/internal/curation"
	"github.com/pribylovaa/trending-curator/internal/models"
	"github.com/pribylovaa/trending-curator/internal/registry"
	"github.com/pribylovaa/trending-curator/internal/source"
	"github.com/pribylovaa/trending-curator/mocks"
)

var fixedNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

type countingObserver struct{ sizes []int }

func (o *countingObserver) ObserveCurated(n int) { o.sizes = append(o.sizes, n) }

func newEngine(t *testing.T) *curation.Engine {
	t.Helper()
	e, err := curation.NewEngine(models.DefaultCurationSettings(), curation.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return e
}

func articles(n int, prefix string) []models.Article {
	out := make([]models.Article, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Article{
			ID:            fmt.Sprintf("%s-%d", prefix, i),
			Title:         fmt.Sprintf("title %d", i),
			URL:           fmt.Sprintf("https://example.com/%s/%d", prefix, i),
			Source:        prefix,
			Category:      models.Categories()[i%len(models.Categories())],
			PublishedAt:   fixedNow.Add(-time.Duration(i) * time.Hour),
			TrendingScore: float64(i * 3),
		})
	}
	return out
}

var descriptors = []models.SourceDescriptor{{ID: "social", Name: "Social", Kind: models.SourceKindSynthetic, Enabled: true}}

func TestTrendingArticles_AllSources_NoCache(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	agg := mocks.NewMockAggregator(ctrl)

	raw := append(articles(12, "a"), models.Article{Title: "", URL: "https://dropped"})
	raw = append(raw, raw[0]) // дубликат по URL
	agg.EXPECT().FetchAllArticles(gomock.Any()).Return(raw)
	agg.EXPECT().Descriptors().Return(descriptors)

	obs := &countingObserver{}
	svc := New(agg, newEngine(t), Options{Observer: obs, Now: func() time.Time { return fixedNow }})

	const limit = 5
	st := models.DefaultCurationSettings()
	st.MaxArticles = limit

	res, err := svc.TrendingArticles(context.Background(), TrendingRequest{Settings: &st})
	require.NoError(t, err)
	require.Len(t, res.Articles, limit)
	require.Equal(t, descriptors, res.Sources)
	require.Equal(t, limit, res.Stats.Total())
	require.Equal(t, fixedNow, res.Timestamp)
	require.Equal(t, []int{limit}, obs.sizes)

	seen := map[string]bool{}
	for _, a := range res.Articles {
		require.False(t, seen[a.URL], "duplicate url %s", a.URL)
		seen[a.URL] = true
	}
}

func TestTrendingArticles_EmptyUpstream(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	agg := mocks.NewMockAggregator(ctrl)
	agg.EXPECT().FetchAllArticles(gomock.Any()).Return(nil)
	agg.EXPECT().Descriptors().Return(descriptors)

	svc := New(agg, newEngine(t), Options{})

	res, err := svc.TrendingArticles(context.Background(), TrendingRequest{SourceID: AllSources})
	require.NoError(t, err)
	require.NotNil(t, res.Articles)
	require.Empty(t, res.Articles)
	require.Len(t, res.Stats, len(models.Categories()))
	require.Zero(t, res.Stats.Total())
}

func TestTrendingArticles_SingleSourceErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"not found", fmt.Errorf("x: %w", registry.ErrSourceNotFound), ErrNotFound},
		{"disabled", fmt.Errorf("x: %w", registry.ErrSourceDisabled), ErrDisabled},
		{"fetch failed", source.NewFetchError("social", source.ErrAllQueriesFailed), ErrUnavailable},
		{"context deadline", context.DeadlineExceeded, context.DeadlineExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			agg := mocks.NewMockAggregator(ctrl)
			agg.EXPECT().FetchArticlesFromSource(gomock.Any(), "social").Return(nil, tt.err)

			svc := New(agg, newEngine(t), Options{})
			_, err := svc.TrendingArticles(context.Background(), TrendingRequest{SourceID: "social"})
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTrendingArticles_InvalidSettings(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	agg := mocks.NewMockAggregator(ctrl)

	svc := New(agg, newEngine(t), Options{})
	st := models.DefaultCurationSettings()
	st.TrendingWeight = 300

	_, err := svc.TrendingArticles(context.Background(), TrendingRequest{Settings: &st})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestTrendingArticles_CacheHitSkipsSources(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	agg := mocks.NewMockAggregator(ctrl)
	rc := mocks.NewMockResultCache(ctrl)

	cached := &models.TrendingResult{Articles: []models.Article{{ID: "cached"}}}
	rc.EXPECT().Get(gomock.Any(), cacheKey(AllSources, models.DefaultCurationSettings())).Return(cached, true, nil)

	svc := New(agg, newEngine(t), Options{Cache: rc})
	res, err := svc.TrendingArticles(context.Background(), TrendingRequest{})
	require.NoError(t, err)
	require.Same(t, cached, res)
}

func TestTrendingArticles_RefreshBypassesCacheAndStores(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	agg := mocks.NewMockAggregator(ctrl)
	rc := mocks.NewMockResultCache(ctrl)

	agg.EXPECT().FetchArticlesFromSource(gomock.Any(), "social").Return(articles(3, "s"), nil)
	agg.EXPECT().Descriptors().Return(descriptors)
	rc.EXPECT().Set(gomock.Any(), cacheKey("social", models.DefaultCurationSettings()), gomock.Any(), 30*time.Second).Return(nil)

	svc := New(agg, newEngine(t), Options{Cache: rc, CacheTTL: 30 * time.Second})
	res, err := svc.TrendingArticles(context.Background(), TrendingRequest{SourceID: "social", Refresh: true})
	require.NoError(t, err)
	require.Len(t, res.Articles, 3)
}

func TestTrendingArticles_CacheErrorsAreNotFatal(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	agg := mocks.NewMockAggregator(ctrl)
	rc := mocks.NewMockResultCache(ctrl)

	rc.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("redis down"))
	agg.EXPECT().FetchAllArticles(gomock.Any()).Return(articles(2, "a"))
	agg.EXPECT().Descriptors().Return(descriptors)
	rc.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	svc := New(agg, newEngine(t), Options{Cache: rc})
	res, err := svc.TrendingArticles(context.Background(), TrendingRequest{})
	require.NoError(t, err)
	require.Len(t, res.Articles, 2)
}

func TestCacheKey_DependsOnSettings(t *testing.T) {
	t.Parallel()

	a := models.DefaultCurationSettings()
	b := a
	b.TechBias = 10

	require.NotEqual(t, cacheKey("all", a), cacheKey("all", b))
	require.NotEqual(t, cacheKey("all", a), cacheKey("social", a))
}

func TestToggleSource(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	agg := mocks.NewMockAggregator(ctrl)
	rc := mocks.NewMockResultCache(ctrl)

	agg.EXPECT().DisableSource("social").Return(nil)
	agg.EXPECT().EnableSource("ghost").Return(fmt.Errorf("x: %w", registry.ErrSourceNotFound))
	rc.EXPECT().Invalidate(gomock.Any()).Return(errors.New("ignored"))

	svc := New(agg, newEngine(t), Options{Cache: rc})

	require.NoError(t, svc.DisableSource(context.Background(), "social"))
	require.ErrorIs(t, svc.EnableSource(context.Background(), "ghost"), ErrNotFound)
	require.ErrorIs(t, svc.EnableSource(context.Background(), ""), ErrInvalidArgument)
}

func TestSettingsRoundTrip(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	svc := New(mocks.NewMockAggregator(ctrl), newEngine(t), Options{})

	next := models.DefaultCurationSettings()
	next.TechBias = 90
	got, err := svc.UpdateSettings(context.Background(), next)
	require.NoError(t, err)
	require.Equal(t, 90.0, got.TechBias)
	require.Equal(t, next, svc.Settings())

	next.MaxArticles = -1
	_, err = svc.UpdateSettings(context.Background(), next)
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.Equal(t, 20, svc.Settings().MaxArticles)
}

func TestSourcesAndAvailability(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	agg := mocks.NewMockAggregator(ctrl)
	agg.EXPECT().Descriptors().Return(descriptors)
	agg.EXPECT().CheckSourceAvailability(gomock.Any()).Return(map[string]bool{"social": true})

	svc := New(agg, newEngine(t), Options{})
	require.Equal(t, descriptors, svc.Sources())
	require.Equal(t, map[string]bool{"social": true}, svc.CheckAvailability(context.Background()))
}
