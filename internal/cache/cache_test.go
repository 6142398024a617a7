package cache

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pribylovaa/trending-curator/internal/models"
)

// Интеграционные тесты redisCache на реальном Redis (redis:7-alpine).
//
// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/cache -v -race -count=1

func startRedis(t *testing.T) string {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "6379/tcp")
	return fmt.Sprintf("redis://%s:%s/0", host, port.Port())
}

func TestNewRedisCache_BadURL(t *testing.T) {
	t.Parallel()

	_, err := NewRedisCache("://not-a-url", "")
	require.Error(t, err)
}

func TestIntegration_SetGetInvalidate(t *testing.T) {
	url := startRedis(t)

	c, err := NewRedisCache(url, "test:")
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()

	_, ok, err := c.Get(ctx, "all")
	require.NoError(t, err)
	require.False(t, ok)

	ts := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	in := &models.TrendingResult{
		Articles:  []models.Article{{ID: "a", Title: "t", URL: "https://example.com/a", Category: models.CategoryAI, PublishedAt: ts}},
		Stats:     models.NewCategoryDistribution(),
		Timestamp: ts,
	}
	in.Stats[models.CategoryAI] = 1

	require.NoError(t, c.Set(ctx, "all", in, time.Minute))
	require.NoError(t, c.Set(ctx, "social", in, time.Minute))

	got, ok, err := c.Get(ctx, "all")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, in.Articles[0].URL, got.Articles[0].URL)
	require.Equal(t, 1, got.Stats[models.CategoryAI])
	require.True(t, ts.Equal(got.Timestamp))

	require.NoError(t, c.Invalidate(ctx))

	_, ok, err = c.Get(ctx, "all")
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = c.Get(ctx, "social")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestIntegration_Expires(t *testing.T) {
	url := startRedis(t)

	c, err := NewRedisCache(url, "")
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", &models.TrendingResult{}, 100*time.Millisecond))

	require.Eventually(t, func() bool {
		_, ok, err := c.Get(ctx, "k")
		return err == nil && !ok
	}, 5*time.Second, 50*time.Millisecond)
}
