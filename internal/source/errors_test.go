package source

import (
	"context"
	"errors"
	"testing"

	"github.com/pribylovaa/trending-curator/internal/models"
	"github.com/stretchr/testify/require"
)

func TestFetchError_IsAndUnwrap(t *testing.T) {
	t.Parallel()

	err := NewFetchError("social", ErrAllQueriesFailed)

	require.True(t, errors.Is(err, ErrFetch))
	require.True(t, errors.Is(err, ErrAllQueriesFailed))
	require.False(t, errors.Is(err, ErrMissingCredentials))
	require.Contains(t, err.Error(), "social")

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	require.Equal(t, "social", fe.SourceID)

	require.Equal(t, "source rss: source fetch failed", NewFetchError("rss", nil).Error())
}

// panicSource — источник, который паникует при загрузке.
type panicSource struct{}

func (panicSource) ID() string { return "panic" }
func (panicSource) Name() string { return "Panic" }
func (panicSource) Kind() models.SourceKind { return models.SourceKindLive }
func (panicSource) IsAvailable(context.Context) bool { return false }
func (panicSource) RateLimitInfo() *models.RateLimitInfo { return nil }
func (panicSource) FetchArticles(context.Context) ([]models.Article, error) {
	panic("boom")
}

func TestProbe_RecoversPanic(t *testing.T) {
	t.Parallel()

	require.False(t, Probe(context.Background(), panicSource{}))
}
