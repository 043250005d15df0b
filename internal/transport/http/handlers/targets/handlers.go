package targetshandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"kpidash/internal/domain/audit"
	"kpidash/internal/domain/auth"
	"kpidash/internal/domain/kpi"
	"kpidash/internal/transport/http/api"
	"kpidash/internal/transport/http/middleware"
	"kpidash/internal/transport/http/shared"
)

type Service interface {
	ListMembers(ctx context.Context) ([]kpi.TeamMember, error)
	ListRoles(ctx context.Context) ([]kpi.Role, error)
	ListDefinitions(ctx context.Context) ([]kpi.Definition, error)
	ListTargets(ctx context.Context) ([]kpi.Target, error)
	CreateTarget(ctx context.Context, details kpi.TargetDetails) (kpi.Target, error)
	UpdateTarget(ctx context.Context, targetID string, details kpi.TargetDetails) (kpi.Target, error)
	DeleteTarget(ctx context.Context, targetID string) error
}

type AuditRecorder interface {
	Record(ctx context.Context, entry audit.Entry) error
}

type Handler struct {
	Service Service
	Audit   AuditRecorder
}

// NewHandler builds the target routes. auditor may be nil, in which case
// writes are not recorded.
func NewHandler(service Service, auditor AuditRecorder) *Handler {
	return &Handler{Service: service, Audit: auditor}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequirePermission(auth.PermReportsRead)).Get("/members", h.handleListMembers)
	r.With(middleware.RequirePermission(auth.PermTargetsRead)).Get("/roles", h.handleListRoles)
	r.With(middleware.RequirePermission(auth.PermTargetsRead)).Get("/kpi-definitions", h.handleListDefinitions)
	r.Route("/targets", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermTargetsRead)).Get("/", h.handleListTargets)
		r.With(middleware.RequirePermission(auth.PermTargetsWrite)).Post("/", h.handleCreateTarget)
		r.With(middleware.RequirePermission(auth.PermTargetsWrite)).Put("/{targetID}", h.handleUpdateTarget)
		r.With(middleware.RequirePermission(auth.PermTargetsWrite)).Delete("/{targetID}", h.handleDeleteTarget)
	})
}

type targetRequest struct {
	Role          string  `json:"role"`
	KPIName       string  `json:"kpiName"`
	MonthlyTarget float64 `json:"monthlyTarget"`
	AnnualTarget  float64 `json:"annualTarget"`
}

func (p targetRequest) details() kpi.TargetDetails {
	return kpi.TargetDetails{
		Role:          p.Role,
		KPIName:       p.KPIName,
		MonthlyTarget: p.MonthlyTarget,
		AnnualTarget:  p.AnnualTarget,
	}
}

func (h *Handler) handleListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.Service.ListMembers(r.Context())
	if err != nil {
		slog.Warn("list members failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "members_failed", "failed to list team members", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, members, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Service.ListRoles(r.Context())
	if err != nil {
		slog.Warn("list roles failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "roles_failed", "failed to list roles", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, roles, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListDefinitions(w http.ResponseWriter, r *http.Request) {
	defs, err := h.Service.ListDefinitions(r.Context())
	if err != nil {
		slog.Warn("list kpi definitions failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "definitions_failed", "failed to list kpi definitions", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, defs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListTargets(w http.ResponseWriter, r *http.Request) {
	targets, err := h.Service.ListTargets(r.Context())
	if err != nil {
		slog.Warn("list targets failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "targets_failed", "failed to list kpi targets", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, targets, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateTarget(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeTarget(w, r)
	if !ok {
		return
	}
	target, err := h.Service.CreateTarget(r.Context(), payload.details())
	if err != nil {
		h.failWrite(w, r, "create", err)
		return
	}
	h.record(r, audit.ActionTargetCreate, target.ID, target)
	api.Created(w, target, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateTarget(w http.ResponseWriter, r *http.Request) {
	targetID, ok := targetIDParam(w, r)
	if !ok {
		return
	}
	payload, ok := decodeTarget(w, r)
	if !ok {
		return
	}
	target, err := h.Service.UpdateTarget(r.Context(), targetID, payload.details())
	if err != nil {
		h.failWrite(w, r, "update", err)
		return
	}
	h.record(r, audit.ActionTargetUpdate, target.ID, target)
	api.Success(w, target, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteTarget(w http.ResponseWriter, r *http.Request) {
	targetID, ok := targetIDParam(w, r)
	if !ok {
		return
	}
	if err := h.Service.DeleteTarget(r.Context(), targetID); err != nil {
		h.failWrite(w, r, "delete", err)
		return
	}
	h.record(r, audit.ActionTargetDelete, targetID, nil)
	api.Success(w, map[string]string{"status": "deleted", "id": targetID}, middleware.GetRequestID(r.Context()))
}

// targetIDParam answers 404 for ids that cannot name a stored target.
func targetIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	targetID := strings.TrimSpace(chi.URLParam(r, "targetID"))
	if _, err := uuid.Parse(targetID); err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "kpi target not found", middleware.GetRequestID(r.Context()))
		return "", false
	}
	return targetID, true
}

func decodeTarget(w http.ResponseWriter, r *http.Request) (targetRequest, bool) {
	reqID := middleware.GetRequestID(r.Context())
	var payload targetRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return targetRequest{}, false
	}
	v := shared.NewValidator()
	v.Required("role", payload.Role, "is required")
	v.Required("kpiName", payload.KPIName, "is required")
	v.NonNegative("monthlyTarget", payload.MonthlyTarget)
	v.NonNegative("annualTarget", payload.AnnualTarget)
	if v.Reject(w, reqID) {
		return targetRequest{}, false
	}
	return payload, true
}

func (h *Handler) failWrite(w http.ResponseWriter, r *http.Request, op string, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, kpi.ErrDuplicateTarget):
		api.Fail(w, http.StatusConflict, "duplicate_target", "a target for this role and kpi already exists", reqID)
	case errors.Is(err, kpi.ErrTargetNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "kpi target not found", reqID)
	case errors.Is(err, kpi.ErrInvalidTarget):
		shared.FailValidation(w, reqID, []shared.ValidationIssue{{Field: "role", Reason: "role and kpiName are required"}})
	default:
		slog.Warn(op+" target failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "target_"+op+"_failed", "failed to "+op+" kpi target", reqID)
	}
}

func (h *Handler) record(r *http.Request, action, targetID string, after any) {
	if h.Audit == nil {
		return
	}
	entry := audit.Entry{
		Action:     action,
		EntityType: audit.EntityTarget,
		EntityID:   targetID,
		RequestID:  middleware.GetRequestID(r.Context()),
		IP:         middleware.ClientIPKey(r),
		After:      after,
	}
	if user, ok := middleware.GetUser(r.Context()); ok {
		entry.ActorID = user.UserID
	}
	if err := h.Audit.Record(r.Context(), entry); err != nil {
		slog.Warn("audit "+action+" failed", "err", err)
	}
}
