package usecase

import (
	"context"

	"PropSight/internal/domain/models"
	drepo "PropSight/internal/domain/repository"
	mid "PropSight/internal/middleware"
)

// ListingCollector collects listings from the provider feed and pushes them
// through the scoring pipeline.
type ListingCollector struct {
	feed    drepo.ListingFeed
	proc    *ListingProcessor
	metrics drepo.Metrics
	pipe    *mid.ScorePipeline
}

// NewListingCollector creates a new ListingCollector instance.
func NewListingCollector(feed drepo.ListingFeed, proc *ListingProcessor, metrics drepo.Metrics, pipe *mid.ScorePipeline) *ListingCollector {
	return &ListingCollector{feed: feed, proc: proc, metrics: metrics, pipe: pipe}
}

// IsConnected returns true if the provider feed is connected.
func (c *ListingCollector) IsConnected() bool {
	return c.feed.IsConnected()
}

func (c *ListingCollector) Start(ctx context.Context) error {
	if err := c.feed.Connect(ctx); err != nil {
		return err
	}
	if err := c.feed.Subscribe(ctx); err != nil {
		return err
	}
	if c.pipe != nil {
		c.pipe.Start(ctx)
	}
	lCh, errCh := c.feed.Read(ctx)
	go c.consume(ctx, lCh, errCh)
	return nil
}

func (c *ListingCollector) consume(ctx context.Context, lCh <-chan *models.Listing, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errCh:
			if err != nil {
				c.metrics.RecordError("feed")
				_ = c.feed.Reconnect(ctx)
			}
		case l := <-lCh:
			if l == nil {
				continue
			}
			if c.pipe != nil {
				_ = c.pipe.Process(ctx, l)
			} else {
				_ = c.proc.Process(ctx, l)
			}
		}
	}
}

func (c *ListingCollector) Stop() error { return c.feed.Close() }

// Processor returns the underlying ListingProcessor for lifecycle management.
func (c *ListingCollector) Processor() *ListingProcessor { return c.proc }

// Shutdown stops pipeline and closes the feed.
func (c *ListingCollector) Shutdown(ctx context.Context) error {
	if c.pipe != nil {
		c.pipe.Stop()
	}
	return c.feed.Close()
}
