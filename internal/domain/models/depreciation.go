package models

// ScheduleRow is one calendar year of the 28-year depreciation horizon.
// Year is 1-indexed. AnnualSavings can go negative once straight-line
// catches up with the accelerated schedule.
type ScheduleRow struct {
	Year             int     `json:"year"`
	FiveYear         float64 `json:"fiveYear"`
	SevenYear        float64 `json:"sevenYear"`
	FifteenYear      float64 `json:"fifteenYear"`
	TwentySevenYear  float64 `json:"twentySevenYear"`
	TotalAccelerated float64 `json:"totalAccelerated"`
	TotalStraightLine float64 `json:"totalStraightLine"`
	AnnualSavings    float64 `json:"annualSavings"`
}

// TaxSavingsResult is the full schedule plus scalar rollups. Persisted as an
// immutable snapshot; a new report row is the unit of versioning.
type TaxSavingsResult struct {
	Schedule                  []ScheduleRow `json:"schedule"`
	FirstYearBonus            float64       `json:"firstYearBonus"`
	TotalAcceleratedDeduction float64       `json:"totalAcceleratedDeduction"`
	TotalStraightLineDeduction float64      `json:"totalStraightLineDeduction"`
	FiveYearSavings           float64       `json:"fiveYearSavings"`
	TenYearSavings            float64       `json:"tenYearSavings"`
	TotalSavings              float64       `json:"totalSavings"`
	NPVSavings                float64       `json:"npvSavings"`
	BonusDepreciationRate     float64       `json:"bonusDepreciationRate"`
}
