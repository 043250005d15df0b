package kpi

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

func (s *Store) GetMember(ctx context.Context, memberID string) (TeamMember, error) {
	var member TeamMember
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, designation, email
    FROM team_members
    WHERE id = $1
  `, memberID).Scan(&member.ID, &member.Name, &member.Designation, &member.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return TeamMember{}, ErrMemberNotFound
	}
	if err != nil {
		return TeamMember{}, err
	}
	return member, nil
}

func (s *Store) ListMembers(ctx context.Context) ([]TeamMember, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name, designation, email FROM team_members ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []TeamMember
	for rows.Next() {
		var member TeamMember
		if err := rows.Scan(&member.ID, &member.Name, &member.Designation, &member.Email); err != nil {
			return nil, err
		}
		members = append(members, member)
	}
	return members, rows.Err()
}

func (s *Store) ListRoles(ctx context.Context) ([]Role, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name FROM roles ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (s *Store) ListTargets(ctx context.Context) ([]Target, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, COALESCE(designation, ''), COALESCE(role, ''), kpi_name, monthly_target, annual_target
    FROM kpi_targets
    ORDER BY created_at, kpi_name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var targets []Target
	for rows.Next() {
		var target Target
		if err := rows.Scan(&target.ID, &target.Designation, &target.Role, &target.KPIName, &target.MonthlyTarget, &target.AnnualTarget); err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return targets, rows.Err()
}

func (s *Store) ListUserMappings(ctx context.Context, memberID string) ([]UserMapping, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, team_member_id, kpi_name, monthly_target, annual_target, is_active
    FROM user_kpi_mappings
    WHERE team_member_id = $1
    ORDER BY created_at
  `, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mappings []UserMapping
	for rows.Next() {
		var mapping UserMapping
		if err := rows.Scan(&mapping.ID, &mapping.TeamMemberID, &mapping.KPIName, &mapping.MonthlyTarget, &mapping.AnnualTarget, &mapping.IsActive); err != nil {
			return nil, err
		}
		mappings = append(mappings, mapping)
	}
	return mappings, rows.Err()
}

func (s *Store) ListDefinitions(ctx context.Context) ([]Definition, error) {
	rows, err := s.DB.Query(ctx, "SELECT name, COALESCE(display_name, ''), COALESCE(unit, '') FROM kpi_definitions ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var defs []Definition
	for rows.Next() {
		var def Definition
		if err := rows.Scan(&def.Name, &def.DisplayName, &def.Unit); err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

func (s *Store) ListRecords(ctx context.Context, memberID string, year int) ([]PerformanceRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, team_member_id, month, year, metrics
    FROM performance_records
    WHERE team_member_id = $1 AND year = $2
    ORDER BY year, month
  `, memberID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []PerformanceRecord
	for rows.Next() {
		var record PerformanceRecord
		if err := rows.Scan(&record.ID, &record.TeamMemberID, &record.Month, &record.Year, &record.Values); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *Store) TargetExists(ctx context.Context, role, kpiName, excludeID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM kpi_targets
    WHERE COALESCE(NULLIF(designation, ''), role) = $1 AND kpi_name = $2 AND ($3 = '' OR id::text <> $3)
  `, role, kpiName, excludeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CreateTarget(ctx context.Context, details TargetDetails) (string, error) {
	var id string
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO kpi_targets (designation, kpi_name, monthly_target, annual_target)
    VALUES ($1,$2,$3,$4)
    RETURNING id
  `, details.Role, details.KPIName, details.MonthlyTarget, details.AnnualTarget).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) UpdateTarget(ctx context.Context, targetID string, details TargetDetails) (bool, error) {
	tag, err := s.DB.Exec(ctx, `
    UPDATE kpi_targets
    SET designation = $1, kpi_name = $2, monthly_target = $3, annual_target = $4, updated_at = now()
    WHERE id = $5
  `, details.Role, details.KPIName, details.MonthlyTarget, details.AnnualTarget, targetID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *Store) DeleteTarget(ctx context.Context, targetID string) (bool, error) {
	tag, err := s.DB.Exec(ctx, "DELETE FROM kpi_targets WHERE id = $1", targetID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
