package middleware

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"PropSight/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProc struct {
	mu   sync.Mutex
	seen []string
	fail bool
}

func (p *recordingProc) Process(ctx context.Context, l *models.Listing) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return fmt.Errorf("backend down")
	}
	p.seen = append(p.seen, l.ID)
	return nil
}

type countingMetrics struct {
	mu     sync.Mutex
	errors map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{errors: map[string]int{}}
}

func (m *countingMetrics) RecordListingScored(backend, market string) {}
func (m *countingMetrics) RecordReportGenerated()                    {}
func (m *countingMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[kind]++
}
func (m *countingMetrics) RecordLastScore(market string, score float64) {}
func (m *countingMetrics) RecordLatency(op string, seconds float64)     {}

func (m *countingMetrics) errs(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[kind]
}

func validTestListing(id string) *models.Listing {
	return &models.Listing{ID: id, City: "Dallas", ListingPrice: 500000, Sqft: 5000}
}

func TestPipelineForwardsValidListing(t *testing.T) {
	proc := &recordingProc{}
	p := NewScorePipeline(proc, newCountingMetrics())

	require.NoError(t, p.Process(context.Background(), validTestListing("A")))
	assert.Equal(t, []string{"A"}, proc.seen)
}

func TestPipelineRejectsInvalid(t *testing.T) {
	proc := &recordingProc{}
	m := newCountingMetrics()
	p := NewScorePipeline(proc, m)

	require.Error(t, p.Process(context.Background(), nil))
	require.Error(t, p.Process(context.Background(), &models.Listing{ID: ""}))
	require.Error(t, p.Process(context.Background(), &models.Listing{ID: "X", ListingPrice: -1}))
	assert.Empty(t, proc.seen)
	assert.Equal(t, 3, m.errs("pipeline_validate"))
}

func TestPipelineThrottlesBursts(t *testing.T) {
	proc := &recordingProc{}
	m := newCountingMetrics()
	p := NewScorePipeline(proc, m, WithMaxRPS(2))

	for i := 0; i < 10; i++ {
		require.NoError(t, p.Process(context.Background(), validTestListing("HOT")))
	}
	// the bucket admits the initial burst, the rest are dropped silently
	assert.LessOrEqual(t, len(proc.seen), 3)
	assert.Greater(t, m.errs("pipeline_throttle"), 0)
}

func TestPipelineThrottleIsPerListing(t *testing.T) {
	proc := &recordingProc{}
	p := NewScorePipeline(proc, newCountingMetrics(), WithMaxRPS(1))

	require.NoError(t, p.Process(context.Background(), validTestListing("A")))
	require.NoError(t, p.Process(context.Background(), validTestListing("B")))
	assert.Equal(t, []string{"A", "B"}, proc.seen)
}

func TestPipelineBuffersOnDownstreamFailure(t *testing.T) {
	proc := &recordingProc{fail: true}
	m := newCountingMetrics()
	p := NewScorePipeline(proc, m, WithBufferSize(4))

	err := p.Process(context.Background(), validTestListing("F"))
	require.Error(t, err)
	assert.Equal(t, 1, m.errs("pipeline_process"))
	assert.Equal(t, 1, len(p.bufCh))
}

func TestPipelineBufferFullDrops(t *testing.T) {
	proc := &recordingProc{fail: true}
	m := newCountingMetrics()
	p := NewScorePipeline(proc, m, WithBufferSize(1))

	_ = p.Process(context.Background(), validTestListing("F1"))
	_ = p.Process(context.Background(), validTestListing("F2"))
	assert.Equal(t, 1, m.errs("pipeline_buffer_full"))
}

func TestPipelineStartStopIdempotent(t *testing.T) {
	p := NewScorePipeline(&recordingProc{}, newCountingMetrics())
	ctx := context.Background()
	p.Start(ctx)
	p.Start(ctx)
	p.Stop()
	p.Stop()
}
