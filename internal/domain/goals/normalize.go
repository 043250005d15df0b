package goals

import "strings"

// Normalize flattens an assignment into a Goal. Direct fields win over the
// nested catalog goal; defaults fill whatever is still missing.
func Normalize(a Assignment) Goal {
	goal := Goal{
		ID:           a.ID,
		GoalName:     strings.TrimSpace(a.GoalName),
		Priority:     strings.TrimSpace(a.Priority),
		Status:       strings.TrimSpace(a.Status),
		AssignedDate: a.AssignedDate,
		Deadline:     a.Deadline,
		Notes:        a.Notes,
	}
	if a.Goal != nil {
		if goal.GoalName == "" {
			goal.GoalName = strings.TrimSpace(a.Goal.GoalName)
		}
		if goal.Priority == "" {
			goal.Priority = strings.TrimSpace(a.Goal.Priority)
		}
		if goal.Deadline == nil {
			goal.Deadline = a.Goal.Deadline
		}
	}
	if goal.GoalName == "" {
		goal.GoalName = UnknownGoalName
	}
	if goal.Priority == "" {
		goal.Priority = DefaultPriority
	}
	if goal.Status == "" {
		goal.Status = StatusAssigned
	}
	if goal.AssignedDate == nil {
		goal.AssignedDate = a.CreatedAt
	}
	if goal.Status == StatusCompleted {
		goal.CompletedDate = a.CompletedDate
		if goal.CompletedDate == nil {
			goal.CompletedDate = a.UpdatedAt
		}
	}
	return goal
}

func NormalizeAll(assignments []Assignment) []Goal {
	out := make([]Goal, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, Normalize(a))
	}
	return out
}
