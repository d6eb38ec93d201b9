package costseg

import (
	"PropSight/internal/domain/models"
	"PropSight/internal/domain/service"
)

// Service adapts the engine functions to the domain CostSegregator interface.
type Service struct{}

func NewService() *Service { return &Service{} }

func (s *Service) Classify(input models.PropertyInput) models.ClassificationResult {
	return ClassifyProperty(input)
}

func (s *Service) Depreciate(classification models.ClassificationResult, taxRate, discountRate float64) models.TaxSavingsResult {
	return CalculateDepreciation(classification, taxRate, discountRate)
}

var _ service.CostSegregator = (*Service)(nil)
