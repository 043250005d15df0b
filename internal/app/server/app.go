package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"kpidash/internal/domain/audit"
	"kpidash/internal/domain/auth"
	"kpidash/internal/domain/goals"
	"kpidash/internal/domain/kpi"
	"kpidash/internal/domain/report"
	"kpidash/internal/platform/config"
	"kpidash/internal/platform/db"
	"kpidash/internal/platform/jobs"
	"kpidash/internal/platform/metrics"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Metrics *metrics.Collector
	Jobs    *jobs.Service
	Router  http.Handler
}

// New connects to the database when DATABASE_URL is set, applies migrations
// and seed data, and builds the router. Without a database the API still
// starts; data endpoints and login answer 503.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Metrics: metrics.New()}
	deps := Deps{Config: cfg, Metrics: app.Metrics}

	if cfg.DatabaseURL == "" {
		slog.Warn("DATABASE_URL not set; starting without a backend")
		deps.Auth = auth.NewService(nil)
		app.Router = NewRouter(deps)
		return app, nil
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	app.DB = pool

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, os.DirFS(cfg.MigrationsDir)); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	kpiService := kpi.NewService(kpi.NewStore(pool))
	goalService := goals.NewService(goals.NewStore(pool))

	deps.Auth = auth.NewService(auth.NewStore(pool))
	deps.Targets = kpiService
	deps.Reports = report.NewService(kpiService, goalService, app.Metrics)
	auditService := audit.New(pool)
	deps.Audit = auditService
	app.Jobs = jobs.New(jobs.NewStore(pool), auditService, jobs.Options{
		RetentionDays: cfg.AuditRetentionDays,
		Interval:      cfg.RetentionInterval,
	})
	deps.Ready = pool.Ping
	app.Router = NewRouter(deps)
	return app, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

func Run() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()
	if app.Jobs != nil {
		app.Jobs.Start(ctx)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("server shutdown failed", "err", err)
		}
	}()

	log.Printf("KPI dashboard listening on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
}
