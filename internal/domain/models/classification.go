package models

// DepreciationCategory is the recovery class a component lands in.
type DepreciationCategory string

const (
	CategoryFiveYear        DepreciationCategory = "5-year"
	CategorySevenYear       DepreciationCategory = "7-year"
	CategoryFifteenYear     DepreciationCategory = "15-year"
	CategoryTwentySevenYear DepreciationCategory = "27.5-year"
	CategoryLand            DepreciationCategory = "land"
)

// ClassifiedComponent is one line item of the cost-segregation report.
// Components are append-only: the ordered list is the audit trail of how the
// purchase price was decomposed and must never be merged or reordered.
type ClassifiedComponent struct {
	Name           string               `json:"name"`
	Category       DepreciationCategory `json:"category"`
	RecoveryPeriod float64              `json:"recoveryPeriod"` // years; 0 for land
	Cost           float64              `json:"cost"`
	IRSClass       string               `json:"irsClass"`
	Description    string               `json:"description"`
}

// ClassificationSummary aggregates component costs by recovery class.
type ClassificationSummary struct {
	FiveYear        float64 `json:"fiveYear"`
	SevenYear       float64 `json:"sevenYear"`
	FifteenYear     float64 `json:"fifteenYear"`
	TwentySevenYear float64 `json:"twentySevenYear"`
	Land            float64 `json:"land"`
	Total           float64 `json:"total"`
	// AcceleratedPercent is the 5/7/15-year share of building value, 0..100.
	AcceleratedPercent float64 `json:"acceleratedPercent"`
}

// ClassificationResult wraps the input, the ordered component list, and the
// category summary produced by a single ClassifyProperty call.
type ClassificationResult struct {
	Property   PropertyInput         `json:"property"`
	Components []ClassifiedComponent `json:"components"`
	Summary    ClassificationSummary `json:"summary"`
}
