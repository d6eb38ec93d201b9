package models

// Requests for the HTTP endpoints. Presence/type validation lives here at the
// boundary; the cores trust their inputs (see internal/services).

type CreatePropertyRequest struct {
	Address         string           `json:"address"`
	PurchasePrice   float64          `json:"purchasePrice" validate:"required,gt=0"`
	LandValue       *float64         `json:"landValue" validate:"omitempty,gte=0"`
	BuildingType    string           `json:"buildingType" validate:"required,oneof=single_family multi_family_2_4 multi_family_5_plus condo townhouse"`
	YearBuilt       int              `json:"yearBuilt" validate:"omitempty,gte=1800,lte=2100"`
	AcquisitionDate string           `json:"acquisitionDate" validate:"required"`
	SquareFootage   float64          `json:"squareFootage" validate:"omitempty,gte=0"`
	NumberOfUnits   int              `json:"numberOfUnits" default:"1" validate:"gte=1"`
	Features        PropertyFeatures `json:"features"`
	Renovations     []Renovation     `json:"renovations" validate:"dive"`
}

type CreateReportRequest struct {
	PropertyID   string  `json:"propertyId" validate:"required,uuid4"`
	TaxRate      float64 `json:"taxRate" default:"0.37" validate:"gt=0,lte=1"`
	DiscountRate float64 `json:"discountRate" default:"0.06" validate:"gte=0,lt=1"`
}

type ListListingsRequest struct {
	City     string  `query:"city" json:"city"`
	ZipCode  string  `query:"zipCode" json:"zipCode"`
	Type     string  `query:"type" json:"type" validate:"omitempty,oneof=MULTI_FAMILY RETAIL OFFICE INDUSTRIAL LAND MIXED_USE OTHER"`
	Flag     string  `query:"flag" json:"flag" validate:"omitempty,oneof=STRONG_BUY BUY WATCH PASS"`
	MinScore float64 `query:"minScore" json:"minScore" validate:"gte=0,lte=100"`
	Page     int     `query:"page" json:"page" default:"1" validate:"gte=1"`
	PageSize int     `query:"pageSize" json:"pageSize" default:"25" validate:"gte=1,lte=500"`
}

type MarketSummaryRequest struct {
	City   string `query:"city" json:"city"`
	Window string `query:"window" json:"window" validate:"omitempty,oneof=1h 24h 7d"`
}
