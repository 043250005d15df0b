package goals

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListAssignments(ctx context.Context, memberID string) ([]Assignment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT a.id, a.team_member_id, COALESCE(a.goal_name, ''), COALESCE(a.priority, ''), COALESCE(a.status, ''),
           a.assigned_date, a.created_at, a.deadline, a.completed_date, a.updated_at, COALESCE(a.notes, ''),
           g.id, COALESCE(g.goal_name, ''), COALESCE(g.priority, ''), g.deadline
    FROM goal_assignments a
    LEFT JOIN goals g ON a.goal_id = g.id
    WHERE a.team_member_id = $1
    ORDER BY a.created_at
  `, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Assignment
	for rows.Next() {
		var a Assignment
		var catalogID *string
		var catalog CatalogGoal
		if err := rows.Scan(&a.ID, &a.TeamMemberID, &a.GoalName, &a.Priority, &a.Status,
			&a.AssignedDate, &a.CreatedAt, &a.Deadline, &a.CompletedDate, &a.UpdatedAt, &a.Notes,
			&catalogID, &catalog.GoalName, &catalog.Priority, &catalog.Deadline); err != nil {
			return nil, err
		}
		if catalogID != nil {
			a.Goal = &catalog
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
