package costseg

import (
	"fmt"
	"math"

	"PropSight/internal/domain/models"
)

func round(v float64) float64 { return math.Round(v) }

// ClassifyProperty allocates a property's purchase price across depreciation
// categories. It is a total function: missing land value is estimated at 20%
// of the purchase price and an unrecognized building type falls back to
// single_family rather than failing. Components are appended in a fixed
// sequence (base allocations, features, multi-unit, bathroom, renovations,
// structural, land); that order is the report contract.
func ClassifyProperty(input models.PropertyInput) models.ClassificationResult {
	landValue := round(input.PurchasePrice * 0.20)
	if input.LandValue != nil {
		landValue = *input.LandValue
	}
	buildingValue := input.PurchasePrice - landValue

	base, ok := baseAllocations[input.BuildingType]
	if !ok {
		base = baseAllocations[models.SingleFamily]
	}

	components := make([]models.ClassifiedComponent, 0, len(featureAdjustments)+len(input.Renovations)+7)
	var fiveYearTotal, sevenYearTotal, fifteenYearTotal float64

	// Base allocations.
	baseFive := round(buildingValue * base.FiveYear)
	baseSeven := round(buildingValue * base.SevenYear)
	baseFifteen := round(buildingValue * base.FifteenYear)

	components = append(components, models.ClassifiedComponent{
		Name:           "Personal Property — Base Allocation",
		Category:       models.CategoryFiveYear,
		RecoveryPeriod: 5,
		Cost:           baseFive,
		IRSClass:       "57.0 Distributive Trades & Services",
		Description:    "Standard personal property components: electrical fixtures, plumbing fixtures, floor coverings, built-in appliances",
	})
	fiveYearTotal += baseFive

	if baseSeven > 0 {
		components = append(components, models.ClassifiedComponent{
			Name:           "Furniture & Equipment — Base Allocation",
			Category:       models.CategorySevenYear,
			RecoveryPeriod: 7,
			Cost:           baseSeven,
			IRSClass:       "00.11 Office Furniture & Equipment",
			Description:    "Movable furnishings, office equipment, specialized fixtures",
		})
		sevenYearTotal += baseSeven
	}

	components = append(components, models.ClassifiedComponent{
		Name:           "Land Improvements — Base Allocation",
		Category:       models.CategoryFifteenYear,
		RecoveryPeriod: 15,
		Cost:           baseFifteen,
		IRSClass:       "00.3 Land Improvements",
		Description:    "Paving, curbing, basic landscaping, utility connections, drainage",
	})
	fifteenYearTotal += baseFifteen

	// Feature-based adjustments, in table order.
	for _, adj := range featureAdjustments {
		if !adj.Set(input.Features) {
			continue
		}
		cost := round(buildingValue * adj.Percent)
		components = append(components, models.ClassifiedComponent{
			Name:           adj.Name,
			Category:       adj.Category,
			RecoveryPeriod: recoveryPeriodFor(adj.Category),
			Cost:           cost,
			IRSClass:       adj.IRSClass,
			Description:    fmt.Sprintf("%s — identified as %s property per IRS guidelines", adj.Name, adj.Category),
		})
		switch adj.Category {
		case models.CategoryFiveYear:
			fiveYearTotal += cost
		case models.CategorySevenYear:
			sevenYearTotal += cost
		default:
			fifteenYearTotal += cost
		}
	}

	// Multi-unit adjustment: more units mean more personal property. The
	// per-unit bonus is capped at 10 incremental units.
	if input.NumberOfUnits > 1 {
		incr := input.NumberOfUnits - 1
		if incr > 10 {
			incr = 10
		}
		bonus := round(buildingValue * 0.01 * float64(incr))
		components = append(components, models.ClassifiedComponent{
			Name:           fmt.Sprintf("Multi-Unit Adjustment (%d units)", input.NumberOfUnits),
			Category:       models.CategoryFiveYear,
			RecoveryPeriod: 5,
			Cost:           bonus,
			IRSClass:       "57.0 Distributive Trades",
			Description:    "Additional personal property per unit (fixtures, appliances, coverings)",
		})
		fiveYearTotal += bonus
	}

	// Bathroom fixtures beyond the first.
	if input.Features.NumberOfBathrooms > 1 {
		extra := round(buildingValue * 0.005 * (input.Features.NumberOfBathrooms - 1))
		components = append(components, models.ClassifiedComponent{
			Name:           fmt.Sprintf("Bathroom Fixtures (%v bathrooms)", input.Features.NumberOfBathrooms),
			Category:       models.CategoryFiveYear,
			RecoveryPeriod: 5,
			Cost:           extra,
			IRSClass:       "57.0 — Plumbing fixtures, vanities, mirrors",
			Description:    "Non-structural bathroom components: vanities, mirrors, faucets, towel bars",
		})
		fiveYearTotal += extra
	}

	// Renovations: costs are carried verbatim, not scaled against building
	// value. 27.5-year renovation costs are reported as components but are
	// not accumulated into the running totals, matching how the residual is
	// computed below.
	var renovationTotal float64
	for _, reno := range input.Renovations {
		cls, ok := renovationClasses[reno.Category]
		if !ok {
			cls = renovationClasses[models.RenoGeneral]
		}
		components = append(components, models.ClassifiedComponent{
			Name:           "Renovation: " + reno.Description,
			Category:       cls.Category,
			RecoveryPeriod: recoveryPeriodFor(cls.Category),
			Cost:           reno.Cost,
			IRSClass:       cls.IRSClass,
			Description:    fmt.Sprintf("%s (%s)", reno.Description, reno.Date),
		})
		switch cls.Category {
		case models.CategoryFiveYear:
			fiveYearTotal += reno.Cost
		case models.CategoryFifteenYear:
			fifteenYearTotal += reno.Cost
		}
		renovationTotal += reno.Cost
	}

	// Remaining building value is 27.5-year structural, floored at zero.
	structural := buildingValue - fiveYearTotal - sevenYearTotal - fifteenYearTotal
	if structural < 0 {
		structural = 0
	}
	components = append(components, models.ClassifiedComponent{
		Name:           "Building / Structural Components",
		Category:       models.CategoryTwentySevenYear,
		RecoveryPeriod: 27.5,
		Cost:           structural,
		IRSClass:       "00.11 Residential Rental Property",
		Description:    "Structural components: foundation, framing, roof, HVAC (central), main plumbing, main electrical, walls, windows, doors",
	})

	components = append(components, models.ClassifiedComponent{
		Name:           "Land",
		Category:       models.CategoryLand,
		RecoveryPeriod: 0,
		Cost:           landValue,
		IRSClass:       "N/A — Non-depreciable",
		Description:    "Land value — not subject to depreciation",
	})

	accelerated := fiveYearTotal + sevenYearTotal + fifteenYearTotal
	var acceleratedPercent float64
	if buildingValue > 0 {
		acceleratedPercent = round(accelerated / buildingValue * 100)
	}

	return models.ClassificationResult{
		Property:   input,
		Components: components,
		Summary: models.ClassificationSummary{
			FiveYear:           fiveYearTotal,
			SevenYear:          sevenYearTotal,
			FifteenYear:        fifteenYearTotal,
			TwentySevenYear:    structural,
			Land:               landValue,
			Total:              input.PurchasePrice + renovationTotal,
			AcceleratedPercent: acceleratedPercent,
		},
	}
}

func recoveryPeriodFor(c models.DepreciationCategory) float64 {
	switch c {
	case models.CategoryFiveYear:
		return 5
	case models.CategorySevenYear:
		return 7
	case models.CategoryFifteenYear:
		return 15
	case models.CategoryTwentySevenYear:
		return 27.5
	default:
		return 0
	}
}
