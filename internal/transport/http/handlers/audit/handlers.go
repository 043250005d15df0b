package audithandler

import (
	"context"
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"kpidash/internal/domain/audit"
	"kpidash/internal/domain/auth"
	"kpidash/internal/transport/http/api"
	"kpidash/internal/transport/http/middleware"
	"kpidash/internal/transport/http/shared"
)

type Service interface {
	Count(ctx context.Context, filter audit.Filter) (int, error)
	List(ctx context.Context, filter audit.Filter, includeDetails bool, limit, offset int) ([]audit.Event, error)
	ListExport(ctx context.Context, filter audit.Filter) ([]audit.Event, error)
}

type Handler struct {
	Service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/audit", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermAuditRead)).Get("/events", h.handleListEvents)
		r.With(middleware.RequirePermission(auth.PermAuditRead)).Get("/events/export", h.handleExportEvents)
	})
}

var (
	knownActions  = []string{audit.ActionTargetCreate, audit.ActionTargetUpdate, audit.ActionTargetDelete}
	knownEntities = []string{audit.EntityTarget}
)

func parseFilter(r *http.Request, v *shared.Validator) audit.Filter {
	q := r.URL.Query()
	filter := audit.Filter{
		Action:     strings.ToLower(strings.TrimSpace(q.Get("action"))),
		EntityType: strings.ToLower(strings.TrimSpace(q.Get("entityType"))),
		ActorID:    strings.TrimSpace(q.Get("actorId")),
	}
	v.Enum("action", filter.Action, knownActions, "must be a known audit action")
	v.Enum("entityType", filter.EntityType, knownEntities, "must be a known entity type")
	return filter
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	limit := shared.QueryInt(r, v, "limit", 100, 1, 500)
	offset := shared.QueryInt(r, v, "offset", 0, 0, 1000000)
	includeDetails := shared.QueryBool(r, v, "includeDetails", false)
	filter := parseFilter(r, v)
	if v.Reject(w, reqID) {
		return
	}

	total, err := h.Service.Count(r.Context(), filter)
	if err != nil {
		slog.Warn("audit count failed", "err", err)
	}

	events, err := h.Service.List(r.Context(), filter, includeDetails, limit, offset)
	if err != nil {
		slog.Warn("audit list failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "audit_list_failed", "failed to list audit events", reqID)
		return
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, events, reqID)
}

func (h *Handler) handleExportEvents(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	v := shared.NewValidator()
	filter := parseFilter(r, v)
	if v.Reject(w, reqID) {
		return
	}

	events, err := h.Service.ListExport(r.Context(), filter)
	if err != nil {
		slog.Warn("audit export failed", "err", err)
		api.Fail(w, http.StatusInternalServerError, "audit_export_failed", "failed to export audit events", reqID)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=audit-events.csv")
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"id", "actor_id", "action", "entity_type", "entity_id", "request_id", "ip", "created_at"}); err != nil {
		slog.Warn("audit export header failed", "err", err)
	}
	for _, evt := range events {
		row := []string{evt.ID, evt.ActorID, evt.Action, evt.EntityType, evt.EntityID, evt.RequestID, evt.IP, evt.CreatedAt.UTC().Format(time.RFC3339)}
		if err := writer.Write(row); err != nil {
			slog.Warn("audit export row failed", "err", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		slog.Warn("audit export flush failed", "err", err)
	}
}
