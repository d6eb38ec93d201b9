package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"PropSight/internal/domain/models"
	domrepo "PropSight/internal/domain/repository"
)

type fakeScorer struct{}

func (fakeScorer) Score(l models.Listing) models.ScoreResult {
	return models.ScoreResult{Total: 75, Confidence: models.ConfidenceMedium}
}

func (fakeScorer) Flag(s models.ScoreResult) models.InvestmentFlag {
	if s.Total >= 70 {
		return models.FlagBuy
	}
	return models.FlagWatch
}

type fakePublisher struct {
	mu        sync.Mutex
	published []*models.ScoredListing
	failNext  bool
	closed    bool
}

func (p *fakePublisher) Publish(ctx context.Context, s *models.ScoredListing) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failNext {
		p.failNext = false
		return fmt.Errorf("broker down")
	}
	p.published = append(p.published, s)
	return nil
}

func (p *fakePublisher) PublishBatch(ctx context.Context, batch []*models.ScoredListing) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, batch...)
	return nil
}

func (p *fakePublisher) Close() error {
	p.closed = true
	return nil
}

type fakeStore struct {
	mu       sync.Mutex
	stored   []*models.ScoredListing
	failNext bool
	latest   *models.ScoredListing
	queried  []*models.ScoredListing
	summary  *models.MarketSummary
	queries  int
}

func (s *fakeStore) Init(ctx context.Context) error { return nil }

func (s *fakeStore) Store(ctx context.Context, sl *models.ScoredListing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNext {
		s.failNext = false
		return fmt.Errorf("insert failed")
	}
	s.stored = append(s.stored, sl)
	return nil
}

func (s *fakeStore) StoreBatch(ctx context.Context, batch []*models.ScoredListing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stored = append(s.stored, batch...)
	return nil
}

func (s *fakeStore) Query(ctx context.Context, q domrepo.SnapshotQuery) ([]*models.ScoredListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries++
	return s.queried, nil
}

func (s *fakeStore) Latest(ctx context.Context, listingID string) (*models.ScoredListing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries++
	return s.latest, nil
}

func (s *fakeStore) Summary(ctx context.Context, city string, window time.Duration) (*models.MarketSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries++
	return s.summary, nil
}

func (s *fakeStore) Health(ctx context.Context) error { return nil }
func (s *fakeStore) Close() error                     { return nil }

type fakeMetrics struct {
	mu      sync.Mutex
	scored  map[string]int // backend:market
	reports int
	errors  map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{scored: map[string]int{}, errors: map[string]int{}}
}

func (m *fakeMetrics) RecordListingScored(backend, market string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scored[backend+":"+market]++
}

func (m *fakeMetrics) RecordReportGenerated() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports++
}

func (m *fakeMetrics) RecordError(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[kind]++
}

func (m *fakeMetrics) RecordLastScore(market string, score float64) {}
func (m *fakeMetrics) RecordLatency(op string, seconds float64)     {}

type fakeReportStore struct {
	mu         sync.Mutex
	properties map[string]*models.PropertyRecord
	reports    map[string]*models.Report
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{
		properties: map[string]*models.PropertyRecord{},
		reports:    map[string]*models.Report{},
	}
}

func (s *fakeReportStore) Init(ctx context.Context) error { return nil }

func (s *fakeReportStore) SaveProperty(ctx context.Context, p *models.PropertyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties[p.ID] = p
	return nil
}

func (s *fakeReportStore) GetProperty(ctx context.Context, id string) (*models.PropertyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.properties[id], nil
}

func (s *fakeReportStore) ListProperties(ctx context.Context, limit, offset int) ([]*models.PropertyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.PropertyRecord, 0, len(s.properties))
	for _, p := range s.properties {
		out = append(out, p)
	}
	return out, nil
}

func (s *fakeReportStore) SaveReport(ctx context.Context, r *models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.ID] = r
	return nil
}

func (s *fakeReportStore) ListReports(ctx context.Context, limit, offset int) ([]*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*models.Report, 0, len(s.reports))
	for _, r := range s.reports {
		out = append(out, r)
	}
	return out, nil
}

func (s *fakeReportStore) GetReport(ctx context.Context, id string) (*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reports[id], nil
}

func (s *fakeReportStore) ListReportsByProperty(ctx context.Context, propertyID string) ([]*models.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Report
	for _, r := range s.reports {
		if r.PropertyID == propertyID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeReportStore) Close() error { return nil }
