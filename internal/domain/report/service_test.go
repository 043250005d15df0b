package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"kpidash/internal/domain/goals"
	"kpidash/internal/domain/kpi"
)

type fakeKPISource struct {
	in         Input
	recordsErr error
	year       int
}

func (f *fakeKPISource) GetMember(_ context.Context, memberID string) (kpi.TeamMember, error) {
	if memberID != f.in.Member.ID {
		return kpi.TeamMember{}, kpi.ErrMemberNotFound
	}
	return f.in.Member, nil
}

func (f *fakeKPISource) ListTargets(context.Context) ([]kpi.Target, error) {
	return f.in.Targets, nil
}

func (f *fakeKPISource) ListUserMappings(context.Context, string) ([]kpi.UserMapping, error) {
	return f.in.Mappings, nil
}

func (f *fakeKPISource) ListDefinitions(context.Context) ([]kpi.Definition, error) {
	return f.in.Definitions, nil
}

func (f *fakeKPISource) ListRecords(_ context.Context, _ string, year int) ([]kpi.PerformanceRecord, error) {
	f.year = year
	if f.recordsErr != nil {
		return nil, f.recordsErr
	}
	return f.in.Records, nil
}

type fakeGoalSource struct {
	list []goals.Goal
}

func (f fakeGoalSource) ListForMember(context.Context, string) ([]goals.Goal, error) {
	return f.list, nil
}

type observerStub struct {
	calls    int
	err      error
	duration time.Duration
}

func (o *observerStub) RecordRender(duration time.Duration, err error) {
	o.calls++
	o.err = err
	o.duration = duration
}

type stepClock struct {
	at   time.Time
	step time.Duration
}

func (c *stepClock) now() time.Time {
	current := c.at
	c.at = c.at.Add(c.step)
	return current
}

func TestServiceBuild(t *testing.T) {
	in := sampleInput()
	source := &fakeKPISource{in: in}
	observer := &observerStub{}
	svc := NewService(source, fakeGoalSource{list: in.Goals}, observer)

	cfg := Config{Format: FormatComprehensive, IncludeGoals: true, Year: 2024, GeneratedAt: generatedAt}
	doc, err := svc.Build(context.Background(), "m1", cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source.year != 2024 {
		t.Fatalf("expected records for 2024, got %d", source.year)
	}
	if observer.calls != 1 || observer.err != nil {
		t.Fatalf("unexpected observer state: %+v", observer)
	}
	header, ok := doc.Section(SectionHeader)
	if !ok || header.Header.MemberName != "Jordan Lee" {
		t.Fatalf("unexpected header: %+v", header)
	}
}

func TestServiceBuildFailsOnAnyRead(t *testing.T) {
	in := sampleInput()
	backendErr := errors.New("read timeout")
	observer := &observerStub{}
	svc := NewService(&fakeKPISource{in: in, recordsErr: backendErr}, fakeGoalSource{}, observer)

	_, err := svc.Build(context.Background(), "m1", Config{Year: 2024})
	if !errors.Is(err, backendErr) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if observer.err == nil {
		t.Fatal("expected observer to see the failure")
	}
}

func TestServiceBuildUnknownMember(t *testing.T) {
	svc := NewService(&fakeKPISource{in: sampleInput()}, fakeGoalSource{}, nil)
	_, err := svc.Build(context.Background(), "missing", Config{Year: 2024})
	if !errors.Is(err, kpi.ErrMemberNotFound) {
		t.Fatalf("expected member not found, got %v", err)
	}
}

func TestServiceBuildTimesWholeRender(t *testing.T) {
	in := sampleInput()
	observer := &observerStub{}
	svc := NewService(&fakeKPISource{in: in}, fakeGoalSource{list: in.Goals}, observer)
	clock := &stepClock{at: generatedAt, step: 3 * time.Millisecond}
	svc.now = clock.now

	doc, err := svc.Build(context.Background(), "m1", Config{Format: FormatComprehensive, IncludeGoals: true, Year: 2024, GeneratedAt: generatedAt})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Sections) == 0 {
		t.Fatal("expected assembled document")
	}
	if observer.calls != 1 || observer.duration != 3*time.Millisecond {
		t.Fatalf("expected one render of 3ms, got %+v", observer)
	}
	if !clock.at.Equal(generatedAt.Add(6 * time.Millisecond)) {
		t.Fatalf("expected start and end readings only, clock at %s", clock.at)
	}
}
