package models

import "time"

// ListingType enumerates commercial property categories in the screener feed.
type ListingType string

const (
	TypeMultiFamily ListingType = "MULTI_FAMILY"
	TypeRetail      ListingType = "RETAIL"
	TypeOffice      ListingType = "OFFICE"
	TypeIndustrial  ListingType = "INDUSTRIAL"
	TypeLand        ListingType = "LAND"
	TypeMixedUse    ListingType = "MIXED_USE"
	TypeOther       ListingType = "OTHER"
)

// Confidence tiers how many independent valuation signals backed a score.
type Confidence string

const (
	ConfidenceLow    Confidence = "LOW"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceHigh   Confidence = "HIGH"
)

// InvestmentFlag is the four-level recommendation derived from a score.
type InvestmentFlag string

const (
	FlagStrongBuy InvestmentFlag = "STRONG_BUY"
	FlagBuy       InvestmentFlag = "BUY"
	FlagWatch     InvestmentFlag = "WATCH"
	FlagPass      InvestmentFlag = "PASS"
)

// Comp is a recently sold similar property used as a pricing reference.
type Comp struct {
	Address       string  `json:"address"`
	SoldPrice     float64 `json:"soldPrice"`
	SoldDate      string  `json:"soldDate"`
	Sqft          float64 `json:"sqft,omitempty"`
	PricePerSqft  float64 `json:"pricePerSqft,omitempty"`
	DistanceMiles float64 `json:"distanceMiles,omitempty"`
}

// Listing is a commercial listing with whatever valuation signals the
// provider managed to supply. Zero-valued optional fields mean "missing" and
// simply contribute nothing to the score.
type Listing struct {
	ID                string      `json:"id"`
	Address           string      `json:"address"`
	City              string      `json:"city"`
	ZipCode           string      `json:"zipCode"`
	ListingType       ListingType `json:"listingType"`
	ListingPrice      float64     `json:"listingPrice"`
	Sqft              float64     `json:"sqft,omitempty"`
	YearBuilt         int         `json:"yearBuilt,omitempty"`
	PricePerSqft      float64     `json:"pricePerSqft,omitempty"`
	AppraisalEstimate float64     `json:"appraisalEstimate,omitempty"`
	RentEstimate      float64     `json:"rentEstimate,omitempty"` // monthly
	CompAvgPpsf       float64     `json:"compAvgPpsf,omitempty"`
	Comps             []Comp      `json:"comps,omitempty"`
	WalkScore         int         `json:"walkScore,omitempty"`
	TransitScore      int         `json:"transitScore,omitempty"`
	DaysOnMarket      int         `json:"daysOnMarket,omitempty"`
}

// ScoreResult holds the bounded sub-scores and the weighted composite.
// Every field is in [0, 100].
type ScoreResult struct {
	Total        float64    `json:"total"`
	CompGap      float64    `json:"compGap"`
	ZestimateGap float64    `json:"zestimateGap"`
	RentYield    float64    `json:"rentYield"`
	Confidence   Confidence `json:"confidence"`
}

// ScoredListing is the unit streamed through the pipeline: a listing snapshot
// with its score and flag attached, timestamped at scoring time.
type ScoredListing struct {
	Listing  Listing        `json:"listing"`
	Score    ScoreResult    `json:"score"`
	Flag     InvestmentFlag `json:"flag"`
	ScoredAt time.Time      `json:"scoredAt"`
}

// MarketSummary aggregates the latest snapshots for the summary endpoint.
type MarketSummary struct {
	TotalListings   int                    `json:"totalListings"`
	AvgListingPrice float64                `json:"avgListingPrice"`
	AvgPricePerSqft float64                `json:"avgPricePerSqft"`
	AvgScore        float64                `json:"avgScore"`
	FlagCounts      map[InvestmentFlag]int `json:"flagCounts"`
	TypeCounts      map[ListingType]int    `json:"typeCounts"`
}
