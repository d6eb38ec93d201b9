package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"PropSight/internal/domain/models"
	domrepo "PropSight/internal/domain/repository"
	"PropSight/internal/service/cache"
)

// ListingQuery serves read access to scored listing snapshots, with a short
// TTL cache in front of the snapshot store.
type ListingQuery struct {
	store    domrepo.SnapshotStore
	cache    cache.BytesCache
	cacheTTL time.Duration
	metrics  domrepo.Metrics
}

func NewListingQuery(store domrepo.SnapshotStore, c cache.BytesCache, ttl time.Duration, metrics domrepo.Metrics) *ListingQuery {
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	return &ListingQuery{store: store, cache: c, cacheTTL: ttl, metrics: metrics}
}

// List returns the latest snapshot per listing matching the request filters,
// ordered by score descending.
func (q *ListingQuery) List(ctx context.Context, req models.ListListingsRequest) ([]*models.ScoredListing, error) {
	sq := domrepo.SnapshotQuery{
		City:     req.City,
		ZipCode:  req.ZipCode,
		Type:     models.ListingType(req.Type),
		Flag:     models.InvestmentFlag(req.Flag),
		MinScore: req.MinScore,
		Limit:    req.PageSize,
		Offset:   (req.Page - 1) * req.PageSize,
	}

	key := fmt.Sprintf("listings:%s:%s:%s:%s:%.1f:%d:%d",
		sq.City, sq.ZipCode, sq.Type, sq.Flag, sq.MinScore, sq.Limit, sq.Offset)
	if q.cache != nil {
		if b, ok, err := q.cache.GetBytes(key); err == nil && ok {
			var out []*models.ScoredListing
			if err := json.Unmarshal(b, &out); err == nil {
				return out, nil
			}
		}
	}

	start := time.Now()
	out, err := q.store.Query(ctx, sq)
	if err != nil {
		q.metrics.RecordError("listing_query")
		return nil, err
	}
	q.metrics.RecordLatency("listing_query", time.Since(start).Seconds())

	if q.cache != nil {
		if b, err := json.Marshal(out); err == nil {
			_ = q.cache.SetBytes(key, b, q.cacheTTL)
		}
	}
	return out, nil
}

// Get returns the latest snapshot for a single listing, or nil if the
// listing has never been scored.
func (q *ListingQuery) Get(ctx context.Context, listingID string) (*models.ScoredListing, error) {
	if listingID == "" {
		return nil, fmt.Errorf("listing id required")
	}

	key := "listing:" + listingID
	if q.cache != nil {
		if b, ok, err := q.cache.GetBytes(key); err == nil && ok {
			var s models.ScoredListing
			if err := json.Unmarshal(b, &s); err == nil {
				return &s, nil
			}
		}
	}

	s, err := q.store.Latest(ctx, listingID)
	if err != nil {
		q.metrics.RecordError("listing_get")
		return nil, err
	}
	if s != nil && q.cache != nil {
		if b, err := json.Marshal(s); err == nil {
			_ = q.cache.SetBytes(key, b, q.cacheTTL)
		}
	}
	return s, nil
}

// Summary aggregates the latest snapshots over the requested window.
func (q *ListingQuery) Summary(ctx context.Context, req models.MarketSummaryRequest) (*models.MarketSummary, error) {
	window := domrepo.NormalizeWindow(req.Window)

	key := fmt.Sprintf("summary:%s:%s", req.City, window)
	if q.cache != nil {
		if b, ok, err := q.cache.GetBytes(key); err == nil && ok {
			var s models.MarketSummary
			if err := json.Unmarshal(b, &s); err == nil {
				return &s, nil
			}
		}
	}

	start := time.Now()
	s, err := q.store.Summary(ctx, req.City, window.Duration())
	if err != nil {
		q.metrics.RecordError("market_summary")
		return nil, err
	}
	q.metrics.RecordLatency("market_summary", time.Since(start).Seconds())

	if q.cache != nil {
		if b, err := json.Marshal(s); err == nil {
			_ = q.cache.SetBytes(key, b, q.cacheTTL)
		}
	}
	return s, nil
}
