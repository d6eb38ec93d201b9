package usecase

import (
	"context"
	"testing"

	"PropSight/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testListing(id string) *models.Listing {
	return &models.Listing{
		ID:           id,
		Address:      "100 Main St",
		City:         "Dallas",
		ZipCode:      "75201",
		ListingType:  models.TypeMultiFamily,
		ListingPrice: 1000000,
		Sqft:         10000,
	}
}

func TestProcessRoutesToKafka(t *testing.T) {
	pub := &fakePublisher{}
	store := &fakeStore{}
	m := newFakeMetrics()
	p := NewListingProcessor(fakeScorer{}, pub, store, m, "kafka", 100, 0)

	err := p.Process(context.Background(), testListing("L1"))
	require.NoError(t, err)

	require.Len(t, pub.published, 1)
	assert.Empty(t, store.stored)
	assert.Equal(t, "L1", pub.published[0].Listing.ID)
	assert.Equal(t, 75.0, pub.published[0].Score.Total)
	assert.Equal(t, models.FlagBuy, pub.published[0].Flag)
	assert.False(t, pub.published[0].ScoredAt.IsZero())
	assert.Equal(t, 1, m.scored["kafka:Dallas"])
}

func TestProcessRoutesToClickHouse(t *testing.T) {
	pub := &fakePublisher{}
	store := &fakeStore{}
	m := newFakeMetrics()
	p := NewListingProcessor(fakeScorer{}, pub, store, m, "clickhouse", 100, 0)

	err := p.Process(context.Background(), testListing("L2"))
	require.NoError(t, err)

	require.Len(t, store.stored, 1)
	assert.Empty(t, pub.published)
	assert.Equal(t, 1, m.scored["clickhouse:Dallas"])
}

func TestProcessUnknownBackend(t *testing.T) {
	m := newFakeMetrics()
	p := NewListingProcessor(fakeScorer{}, &fakePublisher{}, &fakeStore{}, m, "postgres", 100, 0)

	err := p.Process(context.Background(), testListing("L3"))
	require.Error(t, err)
	assert.Equal(t, 1, m.errors["process"])
}

func TestProcessNilListing(t *testing.T) {
	p := NewListingProcessor(fakeScorer{}, &fakePublisher{}, &fakeStore{}, newFakeMetrics(), "kafka", 100, 0)
	require.Error(t, p.Process(context.Background(), nil))
}

func TestProcessPublishFailure(t *testing.T) {
	pub := &fakePublisher{failNext: true}
	m := newFakeMetrics()
	p := NewListingProcessor(fakeScorer{}, pub, &fakeStore{}, m, "kafka", 100, 0)

	err := p.Process(context.Background(), testListing("L4"))
	require.Error(t, err)
	assert.Equal(t, 1, m.errors["process"])
	assert.Empty(t, m.scored)
}

func TestProcessBatchSkipsNils(t *testing.T) {
	store := &fakeStore{}
	m := newFakeMetrics()
	p := NewListingProcessor(fakeScorer{}, &fakePublisher{}, store, m, "clickhouse", 100, 0)

	batch := []*models.Listing{testListing("B1"), nil, testListing("B2")}
	require.NoError(t, p.ProcessBatch(context.Background(), batch))
	assert.Len(t, store.stored, 2)
	assert.Equal(t, 2, m.scored["clickhouse:Dallas"])
}

func TestProcessBatchEmpty(t *testing.T) {
	p := NewListingProcessor(fakeScorer{}, &fakePublisher{}, &fakeStore{}, newFakeMetrics(), "kafka", 100, 0)
	require.NoError(t, p.ProcessBatch(context.Background(), nil))
}
