package scoring

import (
	"testing"

	"PropSight/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func compsOf(n int) []models.Comp {
	comps := make([]models.Comp, n)
	for i := range comps {
		comps[i] = models.Comp{Address: "comp", SoldPrice: 1000000}
	}
	return comps
}

func TestComputeScoreAllSignals(t *testing.T) {
	listing := models.Listing{
		ListingPrice:      1200000,
		Sqft:              15000, // ppsf = 80
		CompAvgPpsf:       100,   // compGap raw 0.20
		AppraisalEstimate: 1500000,
		RentEstimate:      8000, // cap rate 8% -> ceiling
		Comps:             compsOf(6),
	}

	score := ComputeScore(listing)
	assert.Equal(t, 20.0, score.CompGap)
	assert.Equal(t, 20.0, score.ZestimateGap)
	assert.Equal(t, 100.0, score.RentYield)
	// 20*0.40 + 20*0.35 + 100*0.25 = 40.0
	assert.Equal(t, 40.0, score.Total)
	assert.Equal(t, models.ConfidenceHigh, score.Confidence)
}

func TestComputeScoreMissingSignals(t *testing.T) {
	listing := models.Listing{
		ListingPrice: 100000,
		RentEstimate: 600, // cap rate 7.2% -> 90.0 sub-score
	}

	score := ComputeScore(listing)
	assert.Equal(t, 0.0, score.CompGap)
	assert.Equal(t, 0.0, score.ZestimateGap)
	assert.Equal(t, 90.0, score.RentYield)
	assert.Equal(t, 22.5, score.Total, "rent yield alone is capped by its 25% weight")
	assert.Equal(t, models.ConfidenceLow, score.Confidence)
}

func TestComputeScoreNegativeGapsClampToZero(t *testing.T) {
	listing := models.Listing{
		ListingPrice:      2000000,
		PricePerSqft:      250,
		CompAvgPpsf:       200,     // listing more expensive than comps
		AppraisalEstimate: 1500000, // listed above appraisal
	}

	score := ComputeScore(listing)
	assert.Equal(t, 0.0, score.CompGap)
	assert.Equal(t, 0.0, score.ZestimateGap)
	assert.Equal(t, 0.0, score.Total)
}

func TestComputeScoreBounded(t *testing.T) {
	listings := []models.Listing{
		{},
		{ListingPrice: 1, AppraisalEstimate: 1e12, RentEstimate: 1e9, CompAvgPpsf: 1e6, PricePerSqft: 0.0001, Sqft: 1},
		{ListingPrice: 1e12, AppraisalEstimate: 1, RentEstimate: 0.01, CompAvgPpsf: 0.01, PricePerSqft: 1e9},
	}
	for _, listing := range listings {
		score := ComputeScore(listing)
		for name, v := range map[string]float64{
			"compGap": score.CompGap, "zestimateGap": score.ZestimateGap,
			"rentYield": score.RentYield, "total": score.Total,
		} {
			assert.GreaterOrEqual(t, v, 0.0, name)
			assert.LessOrEqual(t, v, 100.0, name)
		}
	}
}

func TestComputeScoreConfidenceTiers(t *testing.T) {
	tests := []struct {
		name      string
		comps     int
		appraisal float64
		want      models.Confidence
	}{
		{"five comps with appraisal", 5, 900000, models.ConfidenceHigh},
		{"five comps without appraisal", 5, 0, models.ConfidenceMedium},
		{"three comps only", 3, 0, models.ConfidenceMedium},
		{"appraisal only", 0, 900000, models.ConfidenceMedium},
		{"nothing", 0, 0, models.ConfidenceLow},
		{"two comps", 2, 0, models.ConfidenceLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ComputeScore(models.Listing{
				ListingPrice:      1000000,
				AppraisalEstimate: tt.appraisal,
				Comps:             compsOf(tt.comps),
			})
			assert.Equal(t, tt.want, score.Confidence)
		})
	}
}

func TestAssignFlagThresholds(t *testing.T) {
	tests := []struct {
		name       string
		total      float64
		confidence models.Confidence
		want       models.InvestmentFlag
	}{
		{"pass below watch", 34.9, models.ConfidenceHigh, models.FlagPass},
		{"watch at boundary", 35, models.ConfidenceHigh, models.FlagWatch},
		{"buy at boundary", 55, models.ConfidenceHigh, models.FlagBuy},
		{"still buy below strong", 74.9, models.ConfidenceHigh, models.FlagBuy},
		{"strong buy with medium confidence", 75, models.ConfidenceMedium, models.FlagStrongBuy},
		{"high score low confidence downgrades", 92, models.ConfidenceLow, models.FlagBuy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := AssignFlag(models.ScoreResult{Total: tt.total, Confidence: tt.confidence})
			assert.Equal(t, tt.want, flag)
		})
	}
}

func TestAssignFlagMonotonicity(t *testing.T) {
	rank := map[models.InvestmentFlag]int{
		models.FlagPass: 0, models.FlagWatch: 1, models.FlagBuy: 2, models.FlagStrongBuy: 3,
	}
	prev := -1
	for total := 0.0; total <= 100; total += 5 {
		flag := AssignFlag(models.ScoreResult{Total: total, Confidence: models.ConfidenceHigh})
		assert.GreaterOrEqual(t, rank[flag], prev, "flag desirability must not decrease with score")
		prev = rank[flag]
	}
}
