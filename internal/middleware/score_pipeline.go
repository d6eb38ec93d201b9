package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"PropSight/internal/domain/models"
	domrepo "PropSight/internal/domain/repository"
	"PropSight/internal/service/ratelimit"
)

// Proc is the minimal processor interface the pipeline needs.
type Proc interface {
	Process(ctx context.Context, l *models.Listing) error
}

// ScorePipeline sits between the listing feed and the processor. It validates
// incoming listings, throttles per-listing update bursts, and buffers when the
// downstream backend is unavailable.
type ScorePipeline struct {
	proc    Proc
	metrics domrepo.Metrics
	limiter *ratelimit.Limiter
	maxRPS  int
	bufSize int
	bufCh   chan *models.Listing
	stopCh  chan struct{}
	started bool
	mu      sync.Mutex
}

type PipelineOption func(*ScorePipeline)

// WithMaxRPS sets the max updates per second per listing.
func WithMaxRPS(n int) PipelineOption {
	return func(p *ScorePipeline) {
		if n > 0 {
			p.maxRPS = n
		}
	}
}

// WithBufferSize sets the temporary buffer size when downstream is unavailable.
func WithBufferSize(n int) PipelineOption {
	return func(p *ScorePipeline) {
		if n > 0 {
			p.bufSize = n
		}
	}
}

// NewScorePipeline creates a new pipeline.
func NewScorePipeline(proc Proc, metrics domrepo.Metrics, opts ...PipelineOption) *ScorePipeline {
	p := &ScorePipeline{
		proc:    proc,
		metrics: metrics,
		limiter: ratelimit.New(),
		maxRPS:  5, // listings re-score far less often than ticks
		bufSize: 1000,
		stopCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.bufCh = make(chan *models.Listing, p.bufSize)
	return p
}

// Start launches background flushing of buffered listings.
func (p *ScorePipeline) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		backoff := 50 * time.Millisecond
		for {
			select {
			case <-p.stopCh:
				return
			case l := <-p.bufCh:
				if l == nil {
					continue
				}
				if err := p.proc.Process(ctx, l); err != nil {
					// exponential backoff with cap
					if backoff < 2*time.Second {
						backoff *= 2
					}
					p.metrics.RecordError("pipeline_flush")
					time.Sleep(backoff)
					// requeue if space; drop otherwise
					select {
					case p.bufCh <- l:
					default:
						p.metrics.RecordError("pipeline_buffer_drop")
					}
				} else {
					backoff = 50 * time.Millisecond
				}
			}
		}
	}()
}

// Stop stops the background flushing.
func (p *ScorePipeline) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	p.mu.Unlock()
	close(p.stopCh)
}

// Process validates, throttles, and forwards a listing downstream, buffering
// on errors.
func (p *ScorePipeline) Process(ctx context.Context, l *models.Listing) error {
	start := time.Now()
	if err := validateListing(l); err != nil {
		p.metrics.RecordError("pipeline_validate")
		return err
	}
	if p.maxRPS > 0 && !p.limiter.Allow(l.ID, float64(p.maxRPS), float64(p.maxRPS)) {
		// throttled; record and drop silently
		p.metrics.RecordError("pipeline_throttle")
		return nil
	}

	if err := p.proc.Process(ctx, l); err != nil {
		p.metrics.RecordError("pipeline_process")
		// buffer non-blocking
		select {
		case p.bufCh <- l:
			p.metrics.RecordLatency("pipeline_buffer_depth", float64(len(p.bufCh)))
		default:
			p.metrics.RecordError("pipeline_buffer_full")
		}
		return fmt.Errorf("pipeline downstream: %w", err)
	}
	p.metrics.RecordLatency("pipeline_process", time.Since(start).Seconds())
	return nil
}

func validateListing(l *models.Listing) error {
	if l == nil {
		return fmt.Errorf("listing nil")
	}
	if l.ID == "" {
		return fmt.Errorf("listing id empty")
	}
	if l.ListingPrice < 0 || l.Sqft < 0 {
		return fmt.Errorf("negative price/sqft")
	}
	return nil
}
