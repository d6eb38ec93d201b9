// Package scoring computes the underpricing composite score and investment
// flag for screened listings. Both functions are pure and total: missing
// valuation signals contribute zero to their sub-score instead of failing.
package scoring

import (
	"math"

	"PropSight/internal/domain/models"
)

// Sub-score weights. They sum to 1 so the composite stays in [0, 100].
const (
	weightCompGap      = 0.40
	weightZestimateGap = 0.35
	weightRentYield    = 0.25
)

// A cap rate of 8% scores rentYield at the ceiling.
const capRateCeiling = 0.08

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ComputeScore derives three bounded sub-scores and their weighted composite:
// compGap (cheaper per sqft than comps), zestimateGap (below the appraisal
// estimate), and rentYield (annualized cap rate against the 8% ceiling).
// Negative gaps clamp to zero — a listing priced above its reference is never
// penalized below the floor.
func ComputeScore(listing models.Listing) models.ScoreResult {
	listingPrice := listing.ListingPrice
	listingPpsf := listing.PricePerSqft
	if listingPpsf == 0 && listing.Sqft > 0 {
		listingPpsf = listingPrice / listing.Sqft
	}

	var compGap float64
	if listing.CompAvgPpsf > 0 && listingPpsf > 0 {
		compGap = clamp((listing.CompAvgPpsf-listingPpsf)/listing.CompAvgPpsf, 0, 1) * 100
	}

	var zestimateGap float64
	if listing.AppraisalEstimate > 0 && listingPrice > 0 {
		zestimateGap = clamp((listing.AppraisalEstimate-listingPrice)/listing.AppraisalEstimate, 0, 1) * 100
	}

	var rentYield float64
	if listing.RentEstimate > 0 && listingPrice > 0 {
		capRate := listing.RentEstimate * 12 / listingPrice
		rentYield = clamp(capRate/capRateCeiling, 0, 1) * 100
	}

	total := round1(compGap*weightCompGap + zestimateGap*weightZestimateGap + rentYield*weightRentYield)

	compsCount := len(listing.Comps)
	hasAppraisal := listing.AppraisalEstimate > 0
	confidence := models.ConfidenceLow
	switch {
	case compsCount >= 5 && hasAppraisal:
		confidence = models.ConfidenceHigh
	case compsCount >= 3 || hasAppraisal:
		confidence = models.ConfidenceMedium
	}

	return models.ScoreResult{
		Total:        total,
		CompGap:      round1(compGap),
		ZestimateGap: round1(zestimateGap),
		RentYield:    round1(rentYield),
		Confidence:   confidence,
	}
}

// AssignFlag maps a score to a recommendation, first match wins. STRONG_BUY
// is gated on confidence: a high score with LOW confidence downgrades to BUY.
func AssignFlag(score models.ScoreResult) models.InvestmentFlag {
	switch {
	case score.Total >= 75 && score.Confidence != models.ConfidenceLow:
		return models.FlagStrongBuy
	case score.Total >= 55:
		return models.FlagBuy
	case score.Total >= 35:
		return models.FlagWatch
	default:
		return models.FlagPass
	}
}
