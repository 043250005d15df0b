package kpi

import "errors"

var (
	ErrTargetNotFound  = errors.New("kpi target not found")
	ErrDuplicateTarget = errors.New("kpi target already exists for this role")
	ErrInvalidTarget   = errors.New("kpi target requires a role and a kpi name")
	ErrMemberNotFound  = errors.New("team member not found")
)
