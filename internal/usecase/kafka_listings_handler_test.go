package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleStoresScoredListing(t *testing.T) {
	store := &fakeStore{}
	m := newFakeMetrics()
	h := NewKafkaListingsHandler("propsight.listings.scored", store, m)

	assert.Equal(t, "propsight.listings.scored", h.Topic())

	b, err := json.Marshal(scoredListing("K1", 88))
	require.NoError(t, err)

	require.NoError(t, h.Handle(context.Background(), b))
	require.Len(t, store.stored, 1)
	assert.Equal(t, "K1", store.stored[0].Listing.ID)
	assert.Equal(t, 1, m.scored["clickhouse:Dallas"])
}

func TestHandleRejectsMalformedPayload(t *testing.T) {
	store := &fakeStore{}
	m := newFakeMetrics()
	h := NewKafkaListingsHandler("t", store, m)

	err := h.Handle(context.Background(), []byte("{not json"))
	require.Error(t, err)
	assert.Empty(t, store.stored)
	assert.Equal(t, 1, m.errors["consumer_unmarshal"])
}

func TestHandleStoreFailure(t *testing.T) {
	store := &fakeStore{failNext: true}
	m := newFakeMetrics()
	h := NewKafkaListingsHandler("t", store, m)

	b, err := json.Marshal(scoredListing("K2", 50))
	require.NoError(t, err)

	require.Error(t, h.Handle(context.Background(), b))
	assert.Equal(t, 1, m.errors["consumer_store"])
}
