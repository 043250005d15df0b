package goals

import (
	"testing"
	"time"
)

func day(value string) *time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &parsed
}

func TestNormalizeFlatAssignment(t *testing.T) {
	goal := Normalize(Assignment{
		ID:            "a1",
		GoalName:      "Launch onboarding flow",
		Priority:      "High",
		Status:        StatusCompleted,
		AssignedDate:  day("2024-01-01"),
		Deadline:      day("2024-03-31"),
		CompletedDate: day("2024-03-10"),
		UpdatedAt:     day("2024-03-15"),
		Notes:         "shipped",
		Goal:          &CatalogGoal{GoalName: "Catalog name", Priority: "Low", Deadline: day("2024-12-31")},
	})

	if goal.GoalName != "Launch onboarding flow" || goal.Priority != "High" {
		t.Fatalf("expected direct fields to win, got %+v", goal)
	}
	if !goal.Deadline.Equal(*day("2024-03-31")) {
		t.Fatalf("expected direct deadline, got %v", goal.Deadline)
	}
	if !goal.CompletedDate.Equal(*day("2024-03-10")) {
		t.Fatalf("expected explicit completion date, got %v", goal.CompletedDate)
	}
	if goal.Notes != "shipped" {
		t.Fatalf("unexpected notes %q", goal.Notes)
	}
}

func TestNormalizeNestedAssignment(t *testing.T) {
	goal := Normalize(Assignment{
		ID:        "a2",
		Status:    StatusCompleted,
		CreatedAt: day("2024-02-01"),
		UpdatedAt: day("2024-04-01"),
		Goal:      &CatalogGoal{GoalName: "Reduce churn", Deadline: day("2024-05-01")},
	})

	if goal.GoalName != "Reduce churn" {
		t.Fatalf("expected nested name, got %q", goal.GoalName)
	}
	if goal.Priority != DefaultPriority {
		t.Fatalf("expected default priority, got %q", goal.Priority)
	}
	if !goal.Deadline.Equal(*day("2024-05-01")) {
		t.Fatalf("expected nested deadline, got %v", goal.Deadline)
	}
	if !goal.AssignedDate.Equal(*day("2024-02-01")) {
		t.Fatalf("expected created_at as assigned date, got %v", goal.AssignedDate)
	}
	if !goal.CompletedDate.Equal(*day("2024-04-01")) {
		t.Fatalf("expected updated_at as completion date, got %v", goal.CompletedDate)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	goal := Normalize(Assignment{ID: "a3", UpdatedAt: day("2024-04-01")})
	if goal.GoalName != UnknownGoalName || goal.Priority != DefaultPriority || goal.Status != StatusAssigned {
		t.Fatalf("unexpected defaults: %+v", goal)
	}
	if goal.CompletedDate != nil {
		t.Fatalf("expected no completion date for open goal, got %v", goal.CompletedDate)
	}
	if goal.Deadline != nil || goal.AssignedDate != nil {
		t.Fatalf("expected missing dates to stay missing, got %+v", goal)
	}
}
