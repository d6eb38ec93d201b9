package costseg

import (
	"math"

	"PropSight/internal/domain/models"
	"PropSight/pkg/util"
)

const scheduleYears = 28 // covers the full 27.5-year straight line plus the half-year stub

// BonusRate returns the bonus depreciation rate for an acquisition year per
// the phase-down table.
func BonusRate(acquisitionYear int) float64 {
	if acquisitionYear <= bonusFullThrough {
		return 1.00
	}
	return bonusPhaseDown[acquisitionYear] // zero for 2027+
}

// acquisitionYear extracts the calendar year from an ISO date string. An
// unparseable date reports ok=false, which disqualifies bonus depreciation.
func acquisitionYear(date string) (int, bool) {
	t, ok := util.ParseTime(date)
	if !ok {
		return 0, false
	}
	return t.Year(), true
}

// CalculateDepreciation builds the 28-year schedule and savings rollups for a
// classification. Bonus depreciation applies to 5-, 7-, and 15-year property
// only and is taken entirely in year 1, on top of the MACRS table applied to
// the post-bonus remainder. The straight-line comparison depreciates the
// whole building value over 27.5 years, as if the property had never been
// segregated. Never fails on valid numeric input.
func CalculateDepreciation(classification models.ClassificationResult, taxRate, discountRate float64) models.TaxSavingsResult {
	var bonusRate float64
	if year, ok := acquisitionYear(classification.Property.AcquisitionDate); ok {
		bonusRate = BonusRate(year)
	}

	sum := classification.Summary
	totalBuilding := sum.FiveYear + sum.SevenYear + sum.FifteenYear + sum.TwentySevenYear

	bonusEligible := sum.FiveYear + sum.SevenYear + sum.FifteenYear
	firstYearBonus := round(bonusEligible * bonusRate)
	remaining5 := sum.FiveYear - round(sum.FiveYear*bonusRate)
	remaining7 := sum.SevenYear - round(sum.SevenYear*bonusRate)
	remaining15 := sum.FifteenYear - round(sum.FifteenYear*bonusRate)

	straightLineAnnual := round(totalBuilding * slRate27_5)

	schedule := make([]models.ScheduleRow, 0, scheduleYears)
	for year := 1; year <= scheduleYears; year++ {
		yr5 := tableDeduction(remaining5, macrs5Year, year)
		yr7 := tableDeduction(remaining7, macrs7Year, year)
		yr15 := tableDeduction(remaining15, macrs15Year, year)

		var yr27 float64
		switch {
		case year <= 27:
			yr27 = round(sum.TwentySevenYear * slRate27_5)
		case year == scheduleYears:
			yr27 = round(sum.TwentySevenYear * slRate27_5 * 0.5) // half-year stub
		}

		var bonus float64
		if year == 1 {
			bonus = firstYearBonus
		}
		totalAccelerated := yr5 + yr7 + yr15 + yr27 + bonus

		var totalStraightLine float64
		switch {
		case year <= 27:
			totalStraightLine = straightLineAnnual
		case year == scheduleYears:
			totalStraightLine = round(straightLineAnnual * 0.5)
		}

		row := models.ScheduleRow{
			Year:              year,
			FiveYear:          yr5,
			SevenYear:         yr7,
			FifteenYear:       yr15,
			TwentySevenYear:   yr27,
			TotalAccelerated:  totalAccelerated,
			TotalStraightLine: totalStraightLine,
			AnnualSavings:     round((totalAccelerated - totalStraightLine) * taxRate),
		}
		if year == 1 {
			// Per-category columns show bonus layered on that category.
			row.FiveYear += round(sum.FiveYear * bonusRate)
			row.SevenYear += round(sum.SevenYear * bonusRate)
			row.FifteenYear += round(sum.FifteenYear * bonusRate)
		}
		schedule = append(schedule, row)
	}

	var totalAccelerated, totalStraightLine, totalSavings, npv float64
	var fiveYearSavings, tenYearSavings float64
	for _, row := range schedule {
		totalAccelerated += row.TotalAccelerated
		totalStraightLine += row.TotalStraightLine
		totalSavings += row.AnnualSavings
		npv += row.AnnualSavings / math.Pow(1+discountRate, float64(row.Year))
		if row.Year <= 5 {
			fiveYearSavings += row.AnnualSavings
		}
		if row.Year <= 10 {
			tenYearSavings += row.AnnualSavings
		}
	}

	return models.TaxSavingsResult{
		Schedule:                   schedule,
		FirstYearBonus:             firstYearBonus,
		TotalAcceleratedDeduction:  totalAccelerated,
		TotalStraightLineDeduction: totalStraightLine,
		FiveYearSavings:            fiveYearSavings,
		TenYearSavings:             tenYearSavings,
		TotalSavings:               totalSavings,
		NPVSavings:                 round(npv),
		BonusDepreciationRate:      bonusRate,
	}
}

func tableDeduction(basis float64, table []float64, year int) float64 {
	if year > len(table) {
		return 0
	}
	return round(basis * table[year-1])
}
