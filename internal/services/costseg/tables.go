// Package costseg implements the cost-segregation classification and MACRS
// depreciation engine. Allocation percentages follow the IRS Audit Technique
// Guide for Cost Segregation, Rev. Proc. 87-56, and MACRS asset class lives.
// All tables here are data, not logic: tax-law updates are edits to this file.
package costseg

import "PropSight/internal/domain/models"

type baseAllocation struct {
	FiveYear    float64
	SevenYear   float64
	FifteenYear float64
}

// Base allocation percentages by building type, as a share of building value
// (excluding land). Industry benchmarks for residential rentals.
var baseAllocations = map[models.BuildingType]baseAllocation{
	models.SingleFamily:    {FiveYear: 0.12, SevenYear: 0.02, FifteenYear: 0.08},
	models.MultiFamily2To4: {FiveYear: 0.14, SevenYear: 0.02, FifteenYear: 0.09},
	models.MultiFamily5Up:  {FiveYear: 0.16, SevenYear: 0.03, FifteenYear: 0.10},
	models.Condo:           {FiveYear: 0.10, SevenYear: 0.01, FifteenYear: 0.04},
	models.Townhouse:       {FiveYear: 0.11, SevenYear: 0.02, FifteenYear: 0.06},
}

type featureAdjustment struct {
	Set      func(models.PropertyFeatures) bool
	Category models.DepreciationCategory
	Percent  float64
	Name     string
	IRSClass string
}

// Feature-based adjustments, additional % of building value. Slice order is
// the canonical report order for feature components.
var featureAdjustments = []featureAdjustment{
	{func(f models.PropertyFeatures) bool { return f.HasPool }, models.CategoryFifteenYear, 0.04, "Swimming Pool", "00.3 Land Improvements"},
	{func(f models.PropertyFeatures) bool { return f.HasFencing }, models.CategoryFifteenYear, 0.015, "Fencing", "00.3 Land Improvements"},
	{func(f models.PropertyFeatures) bool { return f.HasLandscaping }, models.CategoryFifteenYear, 0.02, "Landscaping & Irrigation", "00.3 Land Improvements"},
	{func(f models.PropertyFeatures) bool { return f.HasDriveway }, models.CategoryFifteenYear, 0.02, "Driveway & Parking", "00.3 Land Improvements"},
	{func(f models.PropertyFeatures) bool { return f.HasSidewalk }, models.CategoryFifteenYear, 0.01, "Sidewalks & Paths", "00.3 Land Improvements"},
	{func(f models.PropertyFeatures) bool { return f.HasOutdoorLighting }, models.CategoryFifteenYear, 0.008, "Outdoor Lighting", "00.3 Land Improvements"},
	{func(f models.PropertyFeatures) bool { return f.HasSecuritySystem }, models.CategoryFiveYear, 0.01, "Security System", "57.0 Distributive Trades"},
	{func(f models.PropertyFeatures) bool { return f.HasCarpeting }, models.CategoryFiveYear, 0.03, "Carpeting & Padding", "57.0 Distributive Trades"},
	{func(f models.PropertyFeatures) bool { return f.HasAppliancesIncluded }, models.CategoryFiveYear, 0.025, "Appliances (Fridge, Stove, Dishwasher, Washer/Dryer)", "57.0 Distributive Trades"},
	{func(f models.PropertyFeatures) bool { return f.HasWindowTreatments }, models.CategoryFiveYear, 0.01, "Window Treatments (Blinds, Curtain Rods)", "57.0 Distributive Trades"},
	{func(f models.PropertyFeatures) bool { return f.HasCabinetry }, models.CategoryFiveYear, 0.02, "Removable Cabinetry & Countertops", "57.0 Distributive Trades"},
	{func(f models.PropertyFeatures) bool { return f.HasDecorative }, models.CategoryFiveYear, 0.012, "Decorative Lighting & Moldings", "57.0 Distributive Trades"},
	{func(f models.PropertyFeatures) bool { return f.HasDedicatedElectrical }, models.CategoryFiveYear, 0.015, "Dedicated Electrical Circuits", "57.0 Distributive Trades"},
	{func(f models.PropertyFeatures) bool { return f.HasSpecialPlumbing }, models.CategoryFiveYear, 0.008, "Special-Purpose Plumbing", "57.0 Distributive Trades"},
}

type renovationClass struct {
	Category models.DepreciationCategory
	IRSClass string
}

// Renovation category to depreciation class mapping. Unknown categories fall
// back to general (27.5-year structural).
var renovationClasses = map[models.RenovationCategory]renovationClass{
	models.RenoKitchen:     {models.CategoryFiveYear, "57.0 — Appliances, cabinetry, countertops"},
	models.RenoBathroom:    {models.CategoryTwentySevenYear, "00.11 — Structural improvements"},
	models.RenoFlooring:    {models.CategoryFiveYear, "57.0 — Floor coverings"},
	models.RenoExterior:    {models.CategoryTwentySevenYear, "00.11 — Structural"},
	models.RenoLandscaping: {models.CategoryFifteenYear, "00.3 — Land improvements"},
	models.RenoElectrical:  {models.CategoryFiveYear, "57.0 — Dedicated electrical"},
	models.RenoPlumbing:    {models.CategoryTwentySevenYear, "00.11 — Structural plumbing"},
	models.RenoGeneral:     {models.CategoryTwentySevenYear, "00.11 — General building"},
}

// MACRS half-year convention percentage tables.
var (
	macrs5Year  = []float64{0.2000, 0.3200, 0.1920, 0.1152, 0.1152, 0.0576}
	macrs7Year  = []float64{0.1429, 0.2449, 0.1749, 0.1249, 0.0893, 0.0892, 0.0893, 0.0446}
	macrs15Year = []float64{0.0500, 0.0950, 0.0855, 0.0770, 0.0693, 0.0623, 0.0590, 0.0590, 0.0591, 0.0590, 0.0591, 0.0590, 0.0591, 0.0590, 0.0591, 0.0295}
)

// Straight-line rate for 27.5-year residential rental property.
const slRate27_5 = 1.0 / 27.5

// Bonus depreciation phase-down (TCJA): 100% through 2022, then 20 points per
// year until 0% in 2027. Point-in-time tax law; update here when it changes.
var bonusPhaseDown = map[int]float64{
	2023: 0.80,
	2024: 0.60,
	2025: 0.40,
	2026: 0.20,
}

const bonusFullThrough = 2022

// Default rates applied when a report request does not override them.
const (
	DefaultTaxRate      = 0.37 // top marginal rate
	DefaultDiscountRate = 0.06
)
