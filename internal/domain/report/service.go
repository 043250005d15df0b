package report

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"kpidash/internal/domain/goals"
	"kpidash/internal/domain/kpi"
)

type KPISource interface {
	GetMember(ctx context.Context, memberID string) (kpi.TeamMember, error)
	ListTargets(ctx context.Context) ([]kpi.Target, error)
	ListUserMappings(ctx context.Context, memberID string) ([]kpi.UserMapping, error)
	ListDefinitions(ctx context.Context) ([]kpi.Definition, error)
	ListRecords(ctx context.Context, memberID string, year int) ([]kpi.PerformanceRecord, error)
}

type GoalSource interface {
	ListForMember(ctx context.Context, memberID string) ([]goals.Goal, error)
}

type RenderObserver interface {
	RecordRender(duration time.Duration, err error)
}

type Service struct {
	KPI      KPISource
	Goals    GoalSource
	Observer RenderObserver
	now      func() time.Time
}

func NewService(kpiSource KPISource, goalSource GoalSource, observer RenderObserver) *Service {
	return &Service{KPI: kpiSource, Goals: goalSource, Observer: observer, now: time.Now}
}

// Load issues every read for one render concurrently and waits for all of them.
// A single failed read fails the render.
func (s *Service) Load(ctx context.Context, memberID string, year int) (Input, error) {
	var in Input
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		member, err := s.KPI.GetMember(ctx, memberID)
		if err != nil {
			return fmt.Errorf("load member: %w", err)
		}
		in.Member = member
		return nil
	})
	g.Go(func() error {
		targets, err := s.KPI.ListTargets(ctx)
		if err != nil {
			return fmt.Errorf("load targets: %w", err)
		}
		in.Targets = targets
		return nil
	})
	g.Go(func() error {
		mappings, err := s.KPI.ListUserMappings(ctx, memberID)
		if err != nil {
			return fmt.Errorf("load user mappings: %w", err)
		}
		in.Mappings = mappings
		return nil
	})
	g.Go(func() error {
		defs, err := s.KPI.ListDefinitions(ctx)
		if err != nil {
			return fmt.Errorf("load kpi definitions: %w", err)
		}
		in.Definitions = defs
		return nil
	})
	g.Go(func() error {
		records, err := s.KPI.ListRecords(ctx, memberID, year)
		if err != nil {
			return fmt.Errorf("load performance records: %w", err)
		}
		in.Records = records
		return nil
	})
	g.Go(func() error {
		list, err := s.Goals.ListForMember(ctx, memberID)
		if err != nil {
			return fmt.Errorf("load goals: %w", err)
		}
		in.Goals = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return Input{}, err
	}
	return in, nil
}

// Build loads and assembles one report. The observer sees the duration of
// both steps.
func (s *Service) Build(ctx context.Context, memberID string, cfg Config) (Document, error) {
	start := s.clock()
	in, err := s.Load(ctx, memberID, cfg.Year)
	if err != nil {
		s.observe(start, err)
		return Document{}, err
	}
	doc := Assemble(in, cfg)
	s.observe(start, nil)
	return doc, nil
}

func (s *Service) observe(start time.Time, err error) {
	if s.Observer != nil {
		s.Observer.RecordRender(s.clock().Sub(start), err)
	}
}

func (s *Service) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}
