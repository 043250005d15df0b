package kpi

import "context"

type StoreAPI interface {
	GetMember(ctx context.Context, memberID string) (TeamMember, error)
	ListMembers(ctx context.Context) ([]TeamMember, error)
	ListRoles(ctx context.Context) ([]Role, error)
	ListTargets(ctx context.Context) ([]Target, error)
	ListUserMappings(ctx context.Context, memberID string) ([]UserMapping, error)
	ListDefinitions(ctx context.Context) ([]Definition, error)
	ListRecords(ctx context.Context, memberID string, year int) ([]PerformanceRecord, error)
	TargetExists(ctx context.Context, role, kpiName, excludeID string) (bool, error)
	CreateTarget(ctx context.Context, details TargetDetails) (string, error)
	UpdateTarget(ctx context.Context, targetID string, details TargetDetails) (bool, error)
	DeleteTarget(ctx context.Context, targetID string) (bool, error)
}
