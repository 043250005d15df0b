package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

const JobAuditRetention = "audit_retention"

const (
	statusRunning   = "running"
	statusCompleted = "completed"
	statusFailed    = "failed"
)

// RunStore persists one row per job execution. Bookkeeping failures are
// logged and never fail the job itself.
type RunStore interface {
	Start(ctx context.Context, jobType string) (string, error)
	Finish(ctx context.Context, runID, status string, details []byte) error
}

type AuditPurger interface {
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type Options struct {
	// RetentionDays of zero keeps audit events forever.
	RetentionDays int
	// Interval of zero disables the retention schedule.
	Interval time.Duration
}

type Service struct {
	Runs  RunStore
	Audit AuditPurger
	Opts  Options
	now   func() time.Time
	queue chan job
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(runs RunStore, purger AuditPurger, opts Options) *Service {
	return &Service{
		Runs:  runs,
		Audit: purger,
		Opts:  opts,
		now:   time.Now,
		queue: make(chan job, 32),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Opts.Interval > 0 && s.Opts.RetentionDays > 0 && s.Audit != nil {
		go s.scheduleRetention(ctx, s.Opts.Interval)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) bool {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
		return true
	default:
		slog.Warn("job queue full", "jobType", jobType)
		return false
	}
}

// PurgeAuditEvents deletes audit events older than the retention window.
func (s *Service) PurgeAuditEvents(ctx context.Context) (any, error) {
	cutoff := s.now().AddDate(0, 0, -s.Opts.RetentionDays)
	deleted, err := s.Audit.PurgeBefore(ctx, cutoff)
	return map[string]any{
		"cutoff":  cutoff.UTC().Format(time.RFC3339),
		"deleted": deleted,
	}, err
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if s.Runs != nil {
		id, err := s.Runs.Start(ctx, j.Type)
		if err != nil {
			slog.Warn("job run insert failed", "jobType", j.Type, "err", err)
		}
		runID = id
	}

	details, err := j.Run(ctx)
	status := statusCompleted
	if err != nil {
		status = statusFailed
	}

	if runID != "" {
		detailsJSON, marshalErr := json.Marshal(details)
		if marshalErr != nil {
			slog.Warn("job details marshal failed", "err", marshalErr)
			detailsJSON = []byte("{}")
		}
		if finishErr := s.Runs.Finish(ctx, runID, status, detailsJSON); finishErr != nil {
			slog.Warn("job run update failed", "jobType", j.Type, "err", finishErr)
		}
	}
	return details, err
}

func (s *Service) scheduleRetention(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Enqueue(JobAuditRetention, s.PurgeAuditEvents)
		}
	}
}
