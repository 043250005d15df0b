package goals

import "time"

// Assignment is a goal assignment as read from storage. Ad hoc assignments carry
// their own name and deadline; catalog assignments reference a goal row whose
// fields arrive nested under Goal.
type Assignment struct {
	ID            string       `json:"id"`
	TeamMemberID  string       `json:"team_member_id"`
	GoalName      string       `json:"goal_name,omitempty"`
	Priority      string       `json:"priority,omitempty"`
	Status        string       `json:"status,omitempty"`
	AssignedDate  *time.Time   `json:"assigned_date,omitempty"`
	CreatedAt     *time.Time   `json:"created_at,omitempty"`
	Deadline      *time.Time   `json:"deadline,omitempty"`
	CompletedDate *time.Time   `json:"completed_date,omitempty"`
	UpdatedAt     *time.Time   `json:"updated_at,omitempty"`
	Notes         string       `json:"notes,omitempty"`
	Goal          *CatalogGoal `json:"goals,omitempty"`
}

type CatalogGoal struct {
	GoalName string     `json:"goal_name,omitempty"`
	Priority string     `json:"priority,omitempty"`
	Deadline *time.Time `json:"deadline,omitempty"`
}

type Goal struct {
	ID            string     `json:"id"`
	GoalName      string     `json:"goalName"`
	Priority      string     `json:"priority"`
	Status        string     `json:"status"`
	AssignedDate  *time.Time `json:"assignedDate,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

type Summary struct {
	Total             int     `json:"totalGoals"`
	Completed         int     `json:"completedGoals"`
	InProgress        int     `json:"inProgressGoals"`
	OnTime            int     `json:"onTimeGoals"`
	Overdue           int     `json:"overdueGoals"`
	CompletionRate    float64 `json:"-"`
	OnTimeRate        float64 `json:"-"`
	OverdueRate       float64 `json:"-"`
	CompletionPercent int     `json:"completionRate"`
	OnTimePercent     int     `json:"onTimeRate"`
	OverduePercent    int     `json:"overdueRate"`
	AvgCompletionDays int     `json:"avgCompletionDays"`
}
