package provider

import (
	"context"
	"testing"
	"time"

	"PropSight/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drainInitialPass(t *testing.T, feed *MockFeed, want int) []*models.Listing {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	lCh, _ := feed.Read(ctx)
	out := make([]*models.Listing, 0, want)
	for len(out) < want {
		select {
		case l := <-lCh:
			require.NotNil(t, l)
			out = append(out, l)
		case <-ctx.Done():
			t.Fatalf("timed out after %d listings", len(out))
		}
	}
	return out
}

func TestMockFeedInitialCatalogPass(t *testing.T) {
	feed := NewMockFeed(nil, time.Hour, 42).(*MockFeed)
	require.NoError(t, feed.Connect(context.Background()))
	require.NoError(t, feed.Subscribe(context.Background()))

	got := drainInitialPass(t, feed, len(mockCatalog))
	require.NoError(t, feed.Close())

	seen := make(map[string]bool, len(got))
	for _, l := range got {
		assert.NotEmpty(t, l.ID)
		assert.NotEmpty(t, l.City)
		assert.Greater(t, l.ListingPrice, 0.0)
		seen[l.ID] = true
	}
	assert.Len(t, seen, len(mockCatalog), "ids must be unique")
}

func TestMockFeedFiltersByMarket(t *testing.T) {
	feed := NewMockFeed([]string{"Plano"}, time.Hour, 42).(*MockFeed)
	require.NoError(t, feed.Connect(context.Background()))

	catalog := feed.filteredCatalog()
	require.NotEmpty(t, catalog)
	got := drainInitialPass(t, feed, len(catalog))
	require.NoError(t, feed.Close())

	for _, l := range got {
		assert.Equal(t, "Plano", l.City)
	}
}

func TestMockFeedSubscribeRequiresConnect(t *testing.T) {
	feed := NewMockFeed(nil, time.Hour, 42)
	require.Error(t, feed.Subscribe(context.Background()))
}

func TestMockFeedDeterministicComps(t *testing.T) {
	a := NewMockFeed(nil, time.Hour, 7).(*MockFeed)
	b := NewMockFeed(nil, time.Hour, 7).(*MockFeed)

	ca := a.generateComps(&mockCatalog[0])
	cb := b.generateComps(&mockCatalog[0])
	require.Len(t, ca, mockCatalog[0].compsCount)
	require.Equal(t, len(ca), len(cb))
	for i := range ca {
		assert.Equal(t, ca[i].SoldPrice, cb[i].SoldPrice)
		assert.Equal(t, ca[i].PricePerSqft, cb[i].PricePerSqft)
	}
}

func TestMockFeedCompsRespectCatalogShape(t *testing.T) {
	feed := NewMockFeed(nil, time.Hour, 3).(*MockFeed)

	for i := range mockCatalog {
		def := &mockCatalog[i]
		comps := feed.generateComps(def)
		if def.compsCount <= 0 || def.compAvgPpsf <= 0 {
			assert.Nil(t, comps)
			continue
		}
		require.Len(t, comps, def.compsCount)
		for _, c := range comps {
			assert.Greater(t, c.SoldPrice, 0.0)
			assert.NotEmpty(t, c.SoldDate)
			assert.GreaterOrEqual(t, c.DistanceMiles, 0.2)
			assert.LessOrEqual(t, c.DistanceMiles, 5.0)
		}
	}
}

func TestMockFeedReconnect(t *testing.T) {
	feed := NewMockFeed(nil, time.Hour, 42)
	require.NoError(t, feed.Connect(context.Background()))
	assert.True(t, feed.IsConnected())
	require.NoError(t, feed.Reconnect(context.Background()))
	assert.True(t, feed.IsConnected())
	require.NoError(t, feed.Close())
	assert.False(t, feed.IsConnected())
}

func TestMockFeedPricePerSqftDerived(t *testing.T) {
	feed := NewMockFeed(nil, time.Hour, 42).(*MockFeed)
	l := feed.buildListing(&mockCatalog[0], 0, 0)
	require.Greater(t, l.Sqft, 0.0)
	assert.InDelta(t, l.ListingPrice/l.Sqft, l.PricePerSqft, 0.01)
}
