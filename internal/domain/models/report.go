package models

import "time"

// PropertyRecord is a stored property with its submitted inputs.
type PropertyRecord struct {
	ID        string        `json:"id"`
	Input     PropertyInput `json:"input"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Report is an immutable cost segregation report snapshot. Once generated it
// is never recomputed: re-reading a report returns the stored figures even if
// the engine tables change later.
type Report struct {
	ID             string               `json:"id"`
	PropertyID     string               `json:"propertyId"`
	TaxRate        float64              `json:"taxRate"`
	DiscountRate   float64              `json:"discountRate"`
	Classification ClassificationResult `json:"classification"`
	Depreciation   TaxSavingsResult     `json:"depreciation"`
	CreatedAt      time.Time            `json:"createdAt"`
}
