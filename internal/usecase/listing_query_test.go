package usecase

import (
	"context"
	"testing"
	"time"

	"PropSight/internal/domain/models"
	"PropSight/internal/service/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredListing(id string, total float64) *models.ScoredListing {
	l := testListing(id)
	return &models.ScoredListing{
		Listing:  *l,
		Score:    models.ScoreResult{Total: total, Confidence: models.ConfidenceMedium},
		Flag:     models.FlagBuy,
		ScoredAt: time.Now().UTC(),
	}
}

func TestListCachesResults(t *testing.T) {
	store := &fakeStore{queried: []*models.ScoredListing{scoredListing("L1", 80), scoredListing("L2", 60)}}
	q := NewListingQuery(store, cache.NewTTLCache(), time.Minute, newFakeMetrics())

	req := models.ListListingsRequest{City: "Dallas", Page: 1, PageSize: 25}

	first, err := q.List(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, first, 2)
	assert.Equal(t, 1, store.queries)

	second, err := q.List(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, second, 2)
	assert.Equal(t, 1, store.queries, "second read must come from cache")
}

func TestListDistinctFiltersMissCache(t *testing.T) {
	store := &fakeStore{queried: []*models.ScoredListing{scoredListing("L1", 80)}}
	q := NewListingQuery(store, cache.NewTTLCache(), time.Minute, newFakeMetrics())

	_, err := q.List(context.Background(), models.ListListingsRequest{City: "Dallas", Page: 1, PageSize: 25})
	require.NoError(t, err)
	_, err = q.List(context.Background(), models.ListListingsRequest{City: "Plano", Page: 1, PageSize: 25})
	require.NoError(t, err)
	assert.Equal(t, 2, store.queries)
}

func TestGetRequiresID(t *testing.T) {
	q := NewListingQuery(&fakeStore{}, nil, time.Minute, newFakeMetrics())
	_, err := q.Get(context.Background(), "")
	require.Error(t, err)
}

func TestGetUnknownListingNotCached(t *testing.T) {
	store := &fakeStore{latest: nil}
	q := NewListingQuery(store, cache.NewTTLCache(), time.Minute, newFakeMetrics())

	got, err := q.Get(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Nil(t, got)

	// a miss is not cached; the store is asked again
	_, err = q.Get(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Equal(t, 2, store.queries)
}

func TestGetCachesHit(t *testing.T) {
	store := &fakeStore{latest: scoredListing("L9", 91)}
	q := NewListingQuery(store, cache.NewTTLCache(), time.Minute, newFakeMetrics())

	got, err := q.Get(context.Background(), "L9")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 91.0, got.Score.Total)

	_, err = q.Get(context.Background(), "L9")
	require.NoError(t, err)
	assert.Equal(t, 1, store.queries)
}

func TestSummaryNormalizesWindow(t *testing.T) {
	store := &fakeStore{summary: &models.MarketSummary{TotalListings: 3, AvgScore: 72}}
	q := NewListingQuery(store, nil, time.Minute, newFakeMetrics())

	s, err := q.Summary(context.Background(), models.MarketSummaryRequest{City: "Dallas", Window: "bogus"})
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 3, s.TotalListings)
}

func TestQueryWorksWithoutCache(t *testing.T) {
	store := &fakeStore{queried: []*models.ScoredListing{scoredListing("L1", 80)}}
	q := NewListingQuery(store, nil, 0, newFakeMetrics())

	out, err := q.List(context.Background(), models.ListListingsRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}
