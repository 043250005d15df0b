package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"kpidash/internal/platform/config"
	"kpidash/internal/platform/metrics"
	"kpidash/internal/transport/http/api"
	audithandler "kpidash/internal/transport/http/handlers/audit"
	authhandler "kpidash/internal/transport/http/handlers/auth"
	reportshandler "kpidash/internal/transport/http/handlers/reports"
	targetshandler "kpidash/internal/transport/http/handlers/targets"
	"kpidash/internal/transport/http/middleware"
)

// Deps are the services behind the router. Targets, Reports, Audit and Ready
// are nil when no database is configured.
type Deps struct {
	Config  config.Config
	Metrics *metrics.Collector
	Auth    authhandler.Service
	Targets targetshandler.Service
	Reports reportshandler.Service
	Audit   AuditService
	Ready   func(ctx context.Context) error
}

type AuditService interface {
	audithandler.Service
	targetshandler.AuditRecorder
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Auth(cfg.JWTSecret))
	var recorder middleware.RequestRecorder
	if deps.Metrics != nil {
		recorder = deps.Metrics
	}
	router.Use(middleware.Logger(recorder))
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if deps.Ready == nil {
			http.Error(w, "backend not configured", http.StatusServiceUnavailable)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := deps.Ready(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled && deps.Metrics != nil {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, deps.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(deps.Auth, cfg.JWTSecret, cfg.TokenTTL, middleware.LoginRateLimit(cfg.LoginRateLimitPerMinute))
		authHandler.RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			if deps.Targets == nil || deps.Reports == nil {
				r.Use(backendUnavailable)
			}
			var recorder targetshandler.AuditRecorder
			if deps.Audit != nil {
				recorder = deps.Audit
				audithandler.NewHandler(deps.Audit).RegisterRoutes(r)
			}
			targetshandler.NewHandler(deps.Targets, recorder).RegisterRoutes(r)
			reportshandler.NewHandler(deps.Reports, cfg.ReportYear, cfg.ReportTimeout).RegisterRoutes(r)
		})
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})
	return router
}

func backendUnavailable(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusServiceUnavailable, "backend_unconfigured", "data backend is not configured", middleware.GetRequestID(r.Context()))
	})
}
