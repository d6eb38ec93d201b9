package models

// BuildingType enumerates the residential categories the classifier knows.
type BuildingType string

const (
	SingleFamily    BuildingType = "single_family"
	MultiFamily2To4 BuildingType = "multi_family_2_4"
	MultiFamily5Up  BuildingType = "multi_family_5_plus"
	Condo           BuildingType = "condo"
	Townhouse       BuildingType = "townhouse"
)

// GarageType describes how a garage is attached to the property.
type GarageType string

const (
	GarageNone     GarageType = "none"
	GarageAttached GarageType = "attached"
	GarageDetached GarageType = "detached"
)

// RenovationCategory enumerates renovation kinds for depreciation-class mapping.
type RenovationCategory string

const (
	RenoKitchen     RenovationCategory = "kitchen"
	RenoBathroom    RenovationCategory = "bathroom"
	RenoFlooring    RenovationCategory = "flooring"
	RenoExterior    RenovationCategory = "exterior"
	RenoLandscaping RenovationCategory = "landscaping"
	RenoElectrical  RenovationCategory = "electrical"
	RenoPlumbing    RenovationCategory = "plumbing"
	RenoGeneral     RenovationCategory = "general"
)

// PropertyFeatures carries the amenity flags and counts that drive
// feature-based component adjustments.
type PropertyFeatures struct {
	HasPool                bool       `json:"hasPool"`
	HasFencing             bool       `json:"hasFencing"`
	HasLandscaping         bool       `json:"hasLandscaping"`
	HasDriveway            bool       `json:"hasDriveway"`
	HasSidewalk            bool       `json:"hasSidewalk"`
	HasOutdoorLighting     bool       `json:"hasOutdoorLighting"`
	HasSecuritySystem      bool       `json:"hasSecuritySystem"`
	HasCarpeting           bool       `json:"hasCarpeting"`
	HasAppliancesIncluded  bool       `json:"hasAppliancesIncluded"`
	HasWindowTreatments    bool       `json:"hasWindowTreatments"`
	HasCabinetry           bool       `json:"hasCabinetry"`
	HasDecorative          bool       `json:"hasDecorative"`
	HasDedicatedElectrical bool       `json:"hasDedicatedElectrical"`
	HasSpecialPlumbing     bool       `json:"hasSpecialPlumbing"`
	NumberOfBathrooms      float64    `json:"numberOfBathrooms"`
	NumberOfBedrooms       int        `json:"numberOfBedrooms"`
	GarageType             GarageType `json:"garageType"`
}

// Renovation is a single capital improvement recorded against the property.
// Cost is in whole dollars and is classified verbatim, never rescaled.
type Renovation struct {
	Description string             `json:"description"`
	Cost        float64            `json:"cost"`
	Date        string             `json:"date"`
	Category    RenovationCategory `json:"category"`
}

// PropertyInput is the classification pipeline input. The core treats every
// field as trusted; boundary validation happens in the HTTP layer.
type PropertyInput struct {
	PurchasePrice   float64          `json:"purchasePrice"`
	LandValue       *float64         `json:"landValue"` // nil: estimate at 20% of purchase price
	BuildingType    BuildingType     `json:"buildingType"`
	YearBuilt       int              `json:"yearBuilt"`
	AcquisitionDate string           `json:"acquisitionDate"` // ISO date
	SquareFootage   float64          `json:"squareFootage"`
	NumberOfUnits   int              `json:"numberOfUnits"`
	Features        PropertyFeatures `json:"features"`
	Renovations     []Renovation     `json:"renovations"`
}
