package costseg

import (
	"reflect"
	"testing"

	"PropSight/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baselineInput() models.PropertyInput {
	return models.PropertyInput{
		PurchasePrice:   500000,
		LandValue:       nil,
		BuildingType:    models.SingleFamily,
		YearBuilt:       1995,
		AcquisitionDate: "2024-03-15",
		SquareFootage:   2200,
		NumberOfUnits:   1,
	}
}

func TestClassifySingleFamilyNoFeatures(t *testing.T) {
	result := ClassifyProperty(baselineInput())

	sum := result.Summary
	assert.Equal(t, 100000.0, sum.Land, "land defaults to 20% of purchase price")
	assert.Equal(t, 48000.0, sum.FiveYear)
	assert.Equal(t, 8000.0, sum.SevenYear, "7-year base is emitted whenever non-zero")
	assert.Equal(t, 32000.0, sum.FifteenYear)
	assert.Equal(t, 312000.0, sum.TwentySevenYear)
	assert.Equal(t, 500000.0, sum.Total)
	assert.Equal(t, 22.0, sum.AcceleratedPercent)

	require.Len(t, result.Components, 5)
	assert.Equal(t, models.CategoryFiveYear, result.Components[0].Category)
	assert.Equal(t, models.CategorySevenYear, result.Components[1].Category)
	assert.Equal(t, models.CategoryFifteenYear, result.Components[2].Category)
	assert.Equal(t, models.CategoryTwentySevenYear, result.Components[3].Category)
	assert.Equal(t, models.CategoryLand, result.Components[4].Category)
	assert.Equal(t, 0.0, result.Components[4].RecoveryPeriod)
}

func TestClassifyExplicitLandValue(t *testing.T) {
	input := baselineInput()
	land := 150000.0
	input.LandValue = &land

	result := ClassifyProperty(input)
	assert.Equal(t, 150000.0, result.Summary.Land)
	// Building value shrinks to 350000.
	assert.Equal(t, 42000.0, result.Summary.FiveYear)
}

func TestClassifyUnknownBuildingTypeFallsBack(t *testing.T) {
	input := baselineInput()
	input.BuildingType = models.BuildingType("castle")

	got := ClassifyProperty(input)
	want := ClassifyProperty(baselineInput())
	assert.Equal(t, want.Summary, got.Summary, "unknown type uses single_family allocations")
}

func TestClassifyFeatureAdjustments(t *testing.T) {
	input := baselineInput()
	input.Features.HasPool = true
	input.Features.HasCarpeting = true

	result := ClassifyProperty(input)

	// Pool: 4% of 400000 into 15-year; carpeting: 3% into 5-year.
	assert.Equal(t, 32000.0+16000.0, result.Summary.FifteenYear)
	assert.Equal(t, 48000.0+12000.0, result.Summary.FiveYear)

	// Feature components appear after the three base allocations, in table order.
	require.GreaterOrEqual(t, len(result.Components), 5)
	assert.Equal(t, "Swimming Pool", result.Components[3].Name)
	assert.Equal(t, "Carpeting & Padding", result.Components[4].Name)
}

func TestClassifyMultiUnitCap(t *testing.T) {
	tests := []struct {
		name  string
		units int
		want  float64 // 5-year multi-unit component cost on 400000 building value
	}{
		{"two units", 2, 4000},
		{"four units", 4, 12000},
		{"eleven units hits cap", 11, 40000},
		{"fifty units still capped", 50, 40000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := baselineInput()
			input.NumberOfUnits = tt.units
			result := ClassifyProperty(input)

			var comp *models.ClassifiedComponent
			for i := range result.Components {
				if result.Components[i].IRSClass == "57.0 Distributive Trades" {
					comp = &result.Components[i]
				}
			}
			require.NotNil(t, comp)
			assert.Equal(t, tt.want, comp.Cost)
		})
	}
}

func TestClassifyBathroomAdjustment(t *testing.T) {
	input := baselineInput()
	input.Features.NumberOfBathrooms = 3.5

	result := ClassifyProperty(input)
	// 0.5% per bathroom beyond the first: 400000 * 0.005 * 2.5 = 5000.
	assert.Equal(t, 48000.0+5000.0, result.Summary.FiveYear)
}

func TestClassifyRenovations(t *testing.T) {
	input := baselineInput()
	input.Renovations = []models.Renovation{
		{Description: "Kitchen remodel", Cost: 25000, Date: "2023-06-01", Category: models.RenoKitchen},
		{Description: "New sod and beds", Cost: 8000, Date: "2023-07-01", Category: models.RenoLandscaping},
		{Description: "Roof replacement", Cost: 15000, Date: "2023-08-01", Category: models.RenoExterior},
	}

	result := ClassifyProperty(input)
	sum := result.Summary

	assert.Equal(t, 48000.0+25000.0, sum.FiveYear, "kitchen renovation lands in 5-year verbatim")
	assert.Equal(t, 32000.0+8000.0, sum.FifteenYear)
	assert.Equal(t, 548000.0, sum.Total, "total includes all renovation costs")

	// Structural residual subtracts the accelerated renovation totals; the
	// 27.5-year roof renovation stays its own component on top of it.
	assert.Equal(t, 400000.0-73000.0-8000.0-40000.0, sum.TwentySevenYear)

	var renoComponents []models.ClassifiedComponent
	for _, c := range result.Components {
		if len(c.Name) > 11 && c.Name[:11] == "Renovation:" {
			renoComponents = append(renoComponents, c)
		}
	}
	require.Len(t, renoComponents, 3)
	assert.Equal(t, models.CategoryTwentySevenYear, renoComponents[2].Category)
	assert.Equal(t, 15000.0, renoComponents[2].Cost)
}

func TestClassifyUnknownRenovationCategoryFallsBackToGeneral(t *testing.T) {
	input := baselineInput()
	input.Renovations = []models.Renovation{
		{Description: "Mystery work", Cost: 5000, Date: "2024-01-01", Category: models.RenovationCategory("solarium")},
	}

	result := ClassifyProperty(input)
	last := result.Components[len(result.Components)-3] // before structural and land
	assert.Equal(t, models.CategoryTwentySevenYear, last.Category)
	assert.Equal(t, 5000.0, last.Cost)
}

func TestClassifyConservation(t *testing.T) {
	inputs := []models.PropertyInput{
		baselineInput(),
		{
			PurchasePrice:   1234567,
			BuildingType:    models.MultiFamily5Up,
			AcquisitionDate: "2023-01-10",
			NumberOfUnits:   8,
			Features: models.PropertyFeatures{
				HasPool: true, HasFencing: true, HasLandscaping: true,
				HasDriveway: true, HasSecuritySystem: true, HasCarpeting: true,
				HasAppliancesIncluded: true, NumberOfBathrooms: 9,
			},
		},
		{
			PurchasePrice:   315000,
			BuildingType:    models.Condo,
			AcquisitionDate: "2025-05-20",
			NumberOfUnits:   1,
			Features:        models.PropertyFeatures{HasWindowTreatments: true, HasCabinetry: true},
		},
	}

	for _, input := range inputs {
		result := ClassifyProperty(input)
		sum := result.Summary
		got := sum.FiveYear + sum.SevenYear + sum.FifteenYear + sum.TwentySevenYear + sum.Land
		// Each component rounds independently, so allow drift up to one
		// dollar per component.
		assert.InDelta(t, input.PurchasePrice, got, float64(len(result.Components)),
			"category totals must reassemble the purchase price")
	}
}

func TestClassifyZeroBuildingValue(t *testing.T) {
	input := baselineInput()
	land := 500000.0
	input.LandValue = &land // entire price is land

	result := ClassifyProperty(input)
	assert.Equal(t, 0.0, result.Summary.AcceleratedPercent)
	assert.Equal(t, 0.0, result.Summary.TwentySevenYear)
}

func TestClassifyIdempotent(t *testing.T) {
	input := baselineInput()
	input.Features.HasPool = true
	input.Renovations = []models.Renovation{
		{Description: "Flooring", Cost: 9000, Date: "2024-02-02", Category: models.RenoFlooring},
	}

	first := ClassifyProperty(input)
	second := ClassifyProperty(input)
	require.True(t, reflect.DeepEqual(first, second), "identical input must yield identical output")
}
