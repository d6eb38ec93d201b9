package scoring

import (
	"PropSight/internal/domain/models"
	"PropSight/internal/domain/service"
)

// Service adapts the scoring functions to the domain ListingScorer interface.
type Service struct{}

func NewService() *Service { return &Service{} }

func (s *Service) Score(l models.Listing) models.ScoreResult {
	return ComputeScore(l)
}

func (s *Service) Flag(score models.ScoreResult) models.InvestmentFlag {
	return AssignFlag(score)
}

var _ service.ListingScorer = (*Service)(nil)
