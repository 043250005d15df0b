package kpi

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) GetMember(ctx context.Context, memberID string) (TeamMember, error) {
	return s.store.GetMember(ctx, memberID)
}

func (s *Service) ListMembers(ctx context.Context) ([]TeamMember, error) {
	return s.store.ListMembers(ctx)
}

func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	return s.store.ListRoles(ctx)
}

func (s *Service) ListTargets(ctx context.Context) ([]Target, error) {
	return s.store.ListTargets(ctx)
}

func (s *Service) ListUserMappings(ctx context.Context, memberID string) ([]UserMapping, error) {
	return s.store.ListUserMappings(ctx, memberID)
}

func (s *Service) ListDefinitions(ctx context.Context) ([]Definition, error) {
	return s.store.ListDefinitions(ctx)
}

func (s *Service) ListRecords(ctx context.Context, memberID string, year int) ([]PerformanceRecord, error) {
	return s.store.ListRecords(ctx, memberID, year)
}

// CreateTarget stores a role default target. A second target for the same role
// and KPI is rejected before anything is written.
func (s *Service) CreateTarget(ctx context.Context, details TargetDetails) (Target, error) {
	details = normalizeDetails(details)
	if details.Role == "" || details.KPIName == "" {
		return Target{}, ErrInvalidTarget
	}
	exists, err := s.store.TargetExists(ctx, details.Role, details.KPIName, "")
	if err != nil {
		return Target{}, fmt.Errorf("check duplicate target: %w", err)
	}
	if exists {
		return Target{}, ErrDuplicateTarget
	}
	id, err := s.store.CreateTarget(ctx, details)
	if err != nil {
		return Target{}, fmt.Errorf("create target: %w", err)
	}
	return details.Target(id), nil
}

// UpdateTarget overwrites the target with id targetID. Concurrent writers are
// not detected; the last write wins.
func (s *Service) UpdateTarget(ctx context.Context, targetID string, details TargetDetails) (Target, error) {
	details = normalizeDetails(details)
	if details.Role == "" || details.KPIName == "" {
		return Target{}, ErrInvalidTarget
	}
	exists, err := s.store.TargetExists(ctx, details.Role, details.KPIName, targetID)
	if err != nil {
		return Target{}, fmt.Errorf("check duplicate target: %w", err)
	}
	if exists {
		return Target{}, ErrDuplicateTarget
	}
	updated, err := s.store.UpdateTarget(ctx, targetID, details)
	if err != nil {
		return Target{}, fmt.Errorf("update target: %w", err)
	}
	if !updated {
		return Target{}, ErrTargetNotFound
	}
	return details.Target(targetID), nil
}

func (s *Service) DeleteTarget(ctx context.Context, targetID string) error {
	deleted, err := s.store.DeleteTarget(ctx, targetID)
	if err != nil {
		return fmt.Errorf("delete target: %w", err)
	}
	if !deleted {
		return ErrTargetNotFound
	}
	return nil
}

func normalizeDetails(details TargetDetails) TargetDetails {
	details.Role = strings.TrimSpace(details.Role)
	details.KPIName = strings.TrimSpace(details.KPIName)
	if details.AnnualTarget == 0 {
		details.AnnualTarget = details.MonthlyTarget * AnnualPeriods
	}
	return details
}
