package costseg

import (
	"fmt"
	"testing"

	"PropSight/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classificationFor(acquisitionDate string) models.ClassificationResult {
	input := baselineInput()
	input.AcquisitionDate = acquisitionDate
	return ClassifyProperty(input)
}

func TestBonusRatePhaseDown(t *testing.T) {
	tests := []struct {
		year int
		want float64
	}{
		{2019, 1.00},
		{2022, 1.00},
		{2023, 0.80},
		{2024, 0.60},
		{2025, 0.40},
		{2026, 0.20},
		{2027, 0.00},
		{2030, 0.00},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BonusRate(tt.year), "year %d", tt.year)
	}
}

func TestCalculateDepreciationScheduleLength(t *testing.T) {
	for _, date := range []string{"2020-01-01", "2024-03-15", "2030-12-31", "not-a-date"} {
		result := CalculateDepreciation(classificationFor(date), DefaultTaxRate, DefaultDiscountRate)
		require.Len(t, result.Schedule, 28, "date %q", date)
		for i, row := range result.Schedule {
			assert.Equal(t, i+1, row.Year, "rows are 1-indexed and strictly increasing")
		}
	}
}

func TestCalculateDepreciationKnownValues(t *testing.T) {
	// Baseline 500k single-family acquired in 2024: 60% bonus on
	// 48000+8000+32000 of bonus-eligible basis.
	result := CalculateDepreciation(classificationFor("2024-03-15"), 0.37, 0.06)

	assert.Equal(t, 0.60, result.BonusDepreciationRate)
	assert.Equal(t, 52800.0, result.FirstYearBonus)

	year1 := result.Schedule[0]
	assert.Equal(t, 32640.0, year1.FiveYear, "60% bonus layered on the 5-year MACRS of the 19200 remainder")
	assert.Equal(t, 11345.0, year1.TwentySevenYear)
	assert.Equal(t, 69082.0, year1.TotalAccelerated)
	assert.Equal(t, 14545.0, year1.TotalStraightLine)
	assert.Equal(t, 20179.0, year1.AnnualSavings)

	// Year 28 carries only the half-year straight-line stubs; savings go
	// negative once straight-line has caught up.
	year28 := result.Schedule[27]
	assert.Equal(t, 5673.0, year28.TwentySevenYear)
	assert.Equal(t, 7273.0, year28.TotalStraightLine)
	assert.Equal(t, -592.0, year28.AnnualSavings)
}

func TestCalculateDepreciationBonusLayering(t *testing.T) {
	// Bonus is added on top of the MACRS table applied to the post-bonus
	// remainder, so the year-1 category column exceeds the table amount.
	result := CalculateDepreciation(classificationFor("2022-06-01"), 0.37, 0.06)

	assert.Equal(t, 1.00, result.BonusDepreciationRate)
	assert.Equal(t, 88000.0, result.FirstYearBonus)
	year1 := result.Schedule[0]
	// 100% bonus consumes the whole 5-year basis; the table contributes 0.
	assert.Equal(t, 48000.0, year1.FiveYear)
	assert.Equal(t, 8000.0, year1.SevenYear)
	assert.Equal(t, 32000.0, year1.FifteenYear)
}

func TestCalculateDepreciationBonusMonotonicity(t *testing.T) {
	prev := -1.0
	for year := 2022; year <= 2027; year++ {
		date := fmt.Sprintf("%d-07-01", year)
		result := CalculateDepreciation(classificationFor(date), DefaultTaxRate, DefaultDiscountRate)
		if prev >= 0 {
			assert.LessOrEqual(t, result.FirstYearBonus, prev, "bonus must not grow as acquisition year advances")
		}
		prev = result.FirstYearBonus
	}
}

func TestCalculateDepreciationPhaseDownScenario(t *testing.T) {
	r2022 := CalculateDepreciation(classificationFor("2022-01-15"), 0.37, 0.06)
	r2025 := CalculateDepreciation(classificationFor("2025-01-15"), 0.37, 0.06)

	assert.Equal(t, 88000.0, r2022.FirstYearBonus)
	assert.Equal(t, 35200.0, r2025.FirstYearBonus, "40% of the same bonus-eligible base")

	// The 27.5-year column is untouched by bonus in every row.
	for i := range r2022.Schedule {
		assert.Equal(t, r2022.Schedule[i].TwentySevenYear, r2025.Schedule[i].TwentySevenYear)
		assert.Equal(t, r2022.Schedule[i].TotalStraightLine, r2025.Schedule[i].TotalStraightLine)
	}
}

func TestCalculateDepreciationRollups(t *testing.T) {
	result := CalculateDepreciation(classificationFor("2024-03-15"), 0.37, 0.06)

	var five, ten, total, accel, straight float64
	for _, row := range result.Schedule {
		total += row.AnnualSavings
		accel += row.TotalAccelerated
		straight += row.TotalStraightLine
		if row.Year <= 5 {
			five += row.AnnualSavings
		}
		if row.Year <= 10 {
			ten += row.AnnualSavings
		}
	}
	assert.Equal(t, five, result.FiveYearSavings)
	assert.Equal(t, ten, result.TenYearSavings)
	assert.Equal(t, total, result.TotalSavings)
	assert.Equal(t, accel, result.TotalAcceleratedDeduction)
	assert.Equal(t, straight, result.TotalStraightLineDeduction)

	// Discounting shrinks the late negative years more than the early
	// positive ones, so NPV sits above the undiscounted total.
	assert.Greater(t, result.NPVSavings, 0.0)
	assert.Greater(t, result.NPVSavings, result.TotalSavings)
}

func TestCalculateDepreciationZeroBasis(t *testing.T) {
	input := baselineInput()
	land := 500000.0
	input.LandValue = &land

	result := CalculateDepreciation(ClassifyProperty(input), 0.37, 0.06)
	require.Len(t, result.Schedule, 28)
	assert.Equal(t, 0.0, result.FirstYearBonus)
	assert.Equal(t, 0.0, result.TotalSavings)
}
