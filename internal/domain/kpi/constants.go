package kpi

const (
	// AnnualPeriods is the number of target periods in a reporting year.
	AnnualPeriods = 13

	DefaultUnit = "count"

	GradeGood     = "Good"
	GradeTarget   = "Target"
	GradeBad      = "Bad"
	GradeCritical = "Critical"

	ThresholdGood   = 120
	ThresholdTarget = 84
	ThresholdBad    = 67
)
