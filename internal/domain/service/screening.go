package service

import (
	"PropSight/internal/domain/models"
)

// ListingScorer computes an investment score and flag for a listing.
type ListingScorer interface {
	Score(l models.Listing) models.ScoreResult
	Flag(score models.ScoreResult) models.InvestmentFlag
}

// CostSegregator classifies a property into depreciation components and
// projects the resulting tax savings schedule.
type CostSegregator interface {
	Classify(input models.PropertyInput) models.ClassificationResult
	Depreciate(classification models.ClassificationResult, taxRate, discountRate float64) models.TaxSavingsResult
}
