package kpi

import (
	"testing"
	"unicode/utf8"
)

func TestAchievement(t *testing.T) {
	tests := []struct {
		name   string
		actual float64
		target float64
		want   int
	}{
		{name: "under target", actual: 150, target: 200, want: 75},
		{name: "over target", actual: 300, target: 200, want: 150},
		{name: "rounds half up", actual: 1, target: 8, want: 13},
		{name: "zero target", actual: 50, target: 0, want: 0},
		{name: "negative target", actual: 50, target: -10, want: 0},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := Achievement(tc.actual, tc.target); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestGradeFor(t *testing.T) {
	tests := map[int]string{
		150: GradeGood,
		120: GradeGood,
		119: GradeTarget,
		84:  GradeTarget,
		83:  GradeBad,
		67:  GradeBad,
		66:  GradeCritical,
		0:   GradeCritical,
	}
	for percent, want := range tests {
		if got := GradeFor(percent); got != want {
			t.Fatalf("grade for %d: expected %s, got %s", percent, want, got)
		}
	}
}

func TestAggregateSumsRecordsAndScalesTarget(t *testing.T) {
	targets := []Target{
		{KPIName: "calls_made", MonthlyTarget: 100},
		{KPIName: "deals_closed", MonthlyTarget: 0},
	}
	records := []PerformanceRecord{
		{Month: 1, Year: 2024, Values: Metrics{"calls_made": 90, "deals_closed": 2}},
		{Month: 2, Year: 2024, Values: Metrics{"calls_made": 60}},
		{Month: 3, Year: 2024},
	}
	defs := []Definition{{Name: "calls_made", DisplayName: "Outbound Calls", Unit: "calls"}}

	data := Aggregate(targets, records, defs)
	if len(data) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(data))
	}
	calls := data[0]
	if calls.Actual != 150 || calls.Target != 300 || calls.Achievement != 50 {
		t.Fatalf("unexpected calls datum: %+v", calls)
	}
	if calls.Name != "Outbound Calls" || calls.Unit != "calls" {
		t.Fatalf("expected definition labels, got %+v", calls)
	}
	deals := data[1]
	if deals.Name != "Deals Closed" || deals.Unit != DefaultUnit {
		t.Fatalf("expected fallback labels, got %+v", deals)
	}
	if deals.Achievement != 0 {
		t.Fatalf("expected zero achievement for zero target, got %d", deals.Achievement)
	}
}

func TestAggregateWithoutRecords(t *testing.T) {
	data := Aggregate([]Target{{KPIName: "tickets", MonthlyTarget: 10}}, nil, nil)
	if data[0].Target != 0 || data[0].Achievement != 0 {
		t.Fatalf("expected zero target and achievement, got %+v", data[0])
	}
}

func TestOverallPerformance(t *testing.T) {
	overall := OverallPerformance([]Datum{{Achievement: 100}, {Achievement: 139}})
	if overall.Percent != 120 || overall.Grade != GradeGood {
		t.Fatalf("unexpected overall: %+v", overall)
	}
	if overall.Mean != 119.5 {
		t.Fatalf("expected unrounded mean 119.5, got %v", overall.Mean)
	}

	empty := OverallPerformance(nil)
	if empty.Percent != 0 || empty.Grade != GradeCritical {
		t.Fatalf("unexpected empty overall: %+v", empty)
	}
}

func TestTitleCase(t *testing.T) {
	if got := TitleCase("customer_satisfaction_score"); got != "Customer Satisfaction Score" {
		t.Fatalf("unexpected title: %q", got)
	}
	if got := TitleCase("nps"); got != "Nps" {
		t.Fatalf("unexpected title: %q", got)
	}
	for key, want := range map[string]string{"élan_score": "Élan Score", "über_calls": "Über Calls"} {
		got := TitleCase(key)
		if got != want || !utf8.ValidString(got) {
			t.Fatalf("TitleCase(%q) = %q, want %q", key, got, want)
		}
	}
}
