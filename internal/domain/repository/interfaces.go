package repository

import (
	"context"
	"time"

	"PropSight/internal/domain/models"
)

type ListingFeed interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.Listing, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

type Publisher interface {
	Publish(ctx context.Context, s *models.ScoredListing) error
	PublishBatch(ctx context.Context, batch []*models.ScoredListing) error
	Close() error
}

type SnapshotStore interface {
	Init(ctx context.Context) error // ensure tables, health checks
	Store(ctx context.Context, s *models.ScoredListing) error
	StoreBatch(ctx context.Context, batch []*models.ScoredListing) error
	Query(ctx context.Context, q SnapshotQuery) ([]*models.ScoredListing, error)
	Latest(ctx context.Context, listingID string) (*models.ScoredListing, error)
	Summary(ctx context.Context, city string, window time.Duration) (*models.MarketSummary, error)
	Health(ctx context.Context) error // ping
	Close() error
}

// SnapshotQuery filters the latest scored snapshots.
type SnapshotQuery struct {
	City     string
	ZipCode  string
	Type     models.ListingType
	Flag     models.InvestmentFlag
	MinScore float64
	Limit    int
	Offset   int
}

type Metrics interface {
	RecordListingScored(backend, market string)
	RecordReportGenerated()
	RecordError(kind string)
	RecordLastScore(market string, score float64)
	RecordLatency(op string, seconds float64)
}
