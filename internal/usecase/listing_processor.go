package usecase

import (
	"context"
	"fmt"
	"time"

	"PropSight/internal/domain/models"
	drepo "PropSight/internal/domain/repository"
	domsvc "PropSight/internal/domain/service"
)

// ListingProcessor scores incoming listings and routes the snapshots to the
// configured backend.
type ListingProcessor struct {
	scorer  domsvc.ListingScorer
	pub     drepo.Publisher
	store   drepo.SnapshotStore
	metrics drepo.Metrics
	backend string
	batchSz int
	batchTO time.Duration
}

// NewListingProcessor creates a new ListingProcessor instance.
func NewListingProcessor(
	scorer domsvc.ListingScorer,
	pub drepo.Publisher,
	store drepo.SnapshotStore,
	metrics drepo.Metrics,
	backend string,
	batchSz int,
	batchTO time.Duration,
) *ListingProcessor {
	return &ListingProcessor{
		scorer:  scorer,
		pub:     pub,
		store:   store,
		metrics: metrics,
		backend: backend,
		batchSz: batchSz,
		batchTO: batchTO,
	}
}

// Process scores a single listing and routes the snapshot to the configured
// backend.
func (p *ListingProcessor) Process(ctx context.Context, l *models.Listing) error {
	if l == nil {
		return fmt.Errorf("listing is nil")
	}

	start := time.Now()
	scored := p.score(l)

	var err error
	switch p.backend {
	case "kafka":
		err = p.pub.Publish(ctx, scored)
	case "clickhouse":
		err = p.store.Store(ctx, scored)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process")
		return fmt.Errorf("process listing: %w", err)
	}

	p.metrics.RecordListingScored(p.backend, l.City)
	p.metrics.RecordLastScore(l.City, scored.Score.Total)
	p.metrics.RecordLatency("process", time.Since(start).Seconds())

	return nil
}

// ProcessBatch scores and routes multiple listings in a batch.
func (p *ListingProcessor) ProcessBatch(ctx context.Context, batch []*models.Listing) error {
	if len(batch) == 0 {
		return nil
	}

	start := time.Now()
	scored := make([]*models.ScoredListing, 0, len(batch))
	for _, l := range batch {
		if l == nil {
			continue
		}
		scored = append(scored, p.score(l))
	}

	var err error
	switch p.backend {
	case "kafka":
		err = p.pub.PublishBatch(ctx, scored)
	case "clickhouse":
		err = p.store.StoreBatch(ctx, scored)
	default:
		err = fmt.Errorf("unknown backend: %s", p.backend)
	}

	if err != nil {
		p.metrics.RecordError("process_batch")
		return fmt.Errorf("process batch: %w", err)
	}

	for _, s := range scored {
		p.metrics.RecordListingScored(p.backend, s.Listing.City)
	}
	p.metrics.RecordLatency("process_batch", time.Since(start).Seconds())

	return nil
}

func (p *ListingProcessor) score(l *models.Listing) *models.ScoredListing {
	score := p.scorer.Score(*l)
	return &models.ScoredListing{
		Listing:  *l,
		Score:    score,
		Flag:     p.scorer.Flag(score),
		ScoredAt: time.Now().UTC(),
	}
}

// Close closes underlying resources if available.
func (p *ListingProcessor) Close() {
	if p.pub != nil {
		_ = p.pub.Close()
	}
	if p.store != nil {
		_ = p.store.Close()
	}
}
