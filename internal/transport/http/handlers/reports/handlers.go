package reportshandler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"kpidash/internal/domain/auth"
	"kpidash/internal/domain/kpi"
	"kpidash/internal/domain/report"
	"kpidash/internal/platform/export"
	"kpidash/internal/transport/http/api"
	"kpidash/internal/transport/http/middleware"
	"kpidash/internal/transport/http/shared"
)

type Service interface {
	Build(ctx context.Context, memberID string, cfg report.Config) (report.Document, error)
}

type Handler struct {
	Service     Service
	DefaultYear func(now time.Time) int
	Timeout     time.Duration
	Now         func() time.Time
}

// NewHandler takes defaultYear to pick the report year when the query has
// none; nil means the current year.
func NewHandler(service Service, defaultYear func(now time.Time) int, timeout time.Duration) *Handler {
	return &Handler{Service: service, DefaultYear: defaultYear, Timeout: timeout, Now: time.Now}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports/{memberID}", func(r chi.Router) {
		r.Use(middleware.RequirePermission(auth.PermReportsRead))
		r.Get("/", h.handleReport)
		r.Get("/pdf", h.handlePDF)
		r.Get("/trends.xlsx", h.handleTrendsWorkbook)
	})
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	memberID, cfg, ok := h.parseRequest(w, r)
	if !ok {
		return
	}
	doc, ok := h.build(w, r, memberID, cfg)
	if !ok {
		return
	}
	api.Success(w, doc, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePDF(w http.ResponseWriter, r *http.Request) {
	memberID, cfg, ok := h.parseRequest(w, r)
	if !ok {
		return
	}
	doc, ok := h.build(w, r, memberID, cfg)
	if !ok {
		return
	}
	h.writeFile(w, r, "application/pdf", fmt.Sprintf("performance-report-%s-%d.pdf", memberID, cfg.Year), func(out io.Writer) error {
		return export.WritePDF(out, doc)
	})
}

// handleTrendsWorkbook always renders the comprehensive layout so the trend
// table is present regardless of the requested format.
func (h *Handler) handleTrendsWorkbook(w http.ResponseWriter, r *http.Request) {
	memberID, cfg, ok := h.parseRequest(w, r)
	if !ok {
		return
	}
	cfg.Format = report.FormatComprehensive
	cfg.Print = false
	doc, ok := h.build(w, r, memberID, cfg)
	if !ok {
		return
	}
	h.writeFile(w, r, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", fmt.Sprintf("kpi-trends-%s-%d.xlsx", memberID, cfg.Year), func(out io.Writer) error {
		return export.WriteTrendsWorkbook(out, doc)
	})
}

func (h *Handler) parseRequest(w http.ResponseWriter, r *http.Request) (string, report.Config, bool) {
	reqID := middleware.GetRequestID(r.Context())
	memberID := strings.TrimSpace(chi.URLParam(r, "memberID"))
	if _, err := uuid.Parse(memberID); err != nil {
		api.Fail(w, http.StatusNotFound, "not_found", "team member not found", reqID)
		return "", report.Config{}, false
	}
	now := h.Now()

	defaultYear := now.Year()
	if h.DefaultYear != nil {
		defaultYear = h.DefaultYear(now)
	}

	v := shared.NewValidator()
	rawFormat := strings.TrimSpace(r.URL.Query().Get("format"))
	format, ok := report.ParseFormat(rawFormat)
	if !ok {
		v.Add("format", "must be one of comprehensive, summary, kpi-only")
	}
	cfg := report.Config{
		Format:             format,
		IncludeGoals:       shared.QueryBool(r, v, "includeGoals", true),
		IncludeActionItems: shared.QueryBool(r, v, "includeActionItems", false),
		Print:              shared.QueryBool(r, v, "print", false),
		Year:               shared.QueryInt(r, v, "year", defaultYear, 1970, 9999),
		GeneratedAt:        now,
	}
	if v.Reject(w, reqID) {
		return "", report.Config{}, false
	}
	return memberID, cfg, true
}

func (h *Handler) build(w http.ResponseWriter, r *http.Request, memberID string, cfg report.Config) (report.Document, bool) {
	reqID := middleware.GetRequestID(r.Context())
	ctx := r.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	doc, err := h.Service.Build(ctx, memberID, cfg)
	switch {
	case errors.Is(err, kpi.ErrMemberNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "team member not found", reqID)
		return report.Document{}, false
	case err != nil:
		slog.Warn("build report failed", "memberId", memberID, "year", cfg.Year, "err", err)
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build report", reqID)
		return report.Document{}, false
	}
	return doc, true
}

// writeFile renders into memory first so a failed export still gets a JSON error.
func (h *Handler) writeFile(w http.ResponseWriter, r *http.Request, contentType, filename string, render func(io.Writer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		slog.Warn("export report failed", "file", filename, "err", err)
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to export report", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("write export failed", "file", filename, "err", err)
	}
}
