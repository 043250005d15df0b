package kpi

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Achievement is actual as a rounded percentage of target, 0 when target is not positive.
func Achievement(actual, target float64) int {
	if target <= 0 {
		return 0
	}
	return int(math.Round(actual / target * 100))
}

// Aggregate sums each target's KPI over records and scores it against the
// monthly target scaled to the number of records.
func Aggregate(targets []Target, records []PerformanceRecord, definitions []Definition) []Datum {
	byName := make(map[string]Definition, len(definitions))
	for _, def := range definitions {
		byName[def.Name] = def
	}

	data := make([]Datum, 0, len(targets))
	for _, target := range targets {
		var actual float64
		for _, record := range records {
			actual += record.Values.Value(target.KPIName)
		}
		periodTarget := target.MonthlyTarget * float64(len(records))

		name := TitleCase(target.KPIName)
		unit := DefaultUnit
		if def, ok := byName[target.KPIName]; ok {
			if def.DisplayName != "" {
				name = def.DisplayName
			}
			if def.Unit != "" {
				unit = def.Unit
			}
		}

		data = append(data, Datum{
			Key:         target.KPIName,
			Name:        name,
			Actual:      actual,
			Target:      periodTarget,
			Unit:        unit,
			Achievement: Achievement(actual, periodTarget),
		})
	}
	return data
}

// OverallPerformance averages the achievements of data and grades the result.
func OverallPerformance(data []Datum) Overall {
	if len(data) == 0 {
		return Overall{Grade: GradeFor(0)}
	}
	var total float64
	for _, d := range data {
		total += float64(d.Achievement)
	}
	mean := total / float64(len(data))
	percent := int(math.Round(mean))
	return Overall{Mean: mean, Percent: percent, Grade: GradeFor(percent)}
}

func GradeFor(percent int) string {
	switch {
	case percent >= ThresholdGood:
		return GradeGood
	case percent >= ThresholdTarget:
		return GradeTarget
	case percent >= ThresholdBad:
		return GradeBad
	default:
		return GradeCritical
	}
}

// TitleCase turns a snake_case KPI key into a label: "calls_made" -> "Calls Made".
func TitleCase(name string) string {
	words := strings.Split(name, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		first, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(first)) + word[size:]
	}
	return strings.Join(words, " ")
}
