package reportshandler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/xuri/excelize/v2"

	"kpidash/internal/domain/auth"
	"kpidash/internal/domain/goals"
	"kpidash/internal/domain/kpi"
	"kpidash/internal/domain/report"
	"kpidash/internal/transport/http/middleware"
)

const (
	testSecret      = "test-secret"
	testMemberID    = "4b6f1f4e-8a0b-4c55-9a59-1f0c8f2d6b11"
	unknownMemberID = "9d3c2a10-5e7f-4b1a-8c2d-6f0e1a2b3c4d"
)

var fixedNow = time.Date(2024, 12, 31, 9, 0, 0, 0, time.UTC)

type fakeService struct {
	err     error
	lastCfg report.Config
	lastID  string
}

func (f *fakeService) Build(_ context.Context, memberID string, cfg report.Config) (report.Document, error) {
	f.lastID = memberID
	f.lastCfg = cfg
	if f.err != nil {
		return report.Document{}, f.err
	}
	deadline := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	in := report.Input{
		Member:  kpi.TeamMember{ID: memberID, Name: "Jordan Lee", Designation: "Sales Analyst"},
		Targets: []kpi.Target{{ID: "t1", Designation: "Sales Analyst", KPIName: "calls_made", MonthlyTarget: 100}},
		Records: []kpi.PerformanceRecord{
			{Month: 1, Year: cfg.Year, Values: kpi.Metrics{"calls_made": 120}},
			{Month: 2, Year: cfg.Year, Values: kpi.Metrics{"calls_made": 90}},
		},
		Goals: []goals.Goal{{ID: "g1", GoalName: "Pipeline review", Priority: "High", Status: goals.StatusAssigned, Deadline: &deadline}},
	}
	return report.Assemble(in, cfg), nil
}

func newRouter(svc Service) http.Handler {
	h := NewHandler(svc, nil, time.Second)
	h.Now = func() time.Time { return fixedNow }
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Auth(testSecret))
	h.RegisterRoutes(r)
	return r
}

func get(t *testing.T, h http.Handler, path string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authed {
		token, err := auth.GenerateToken(testSecret, auth.Claims{UserID: "u1", Role: auth.RoleViewer}, time.Hour)
		if err != nil {
			t.Fatalf("token error: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type sectionKind struct {
	Kind string `json:"kind"`
}

type documentBody struct {
	Sections []sectionKind `json:"sections"`
}

type responseError struct {
	Code string `json:"code"`
}

type sectionKinds struct {
	Data  documentBody   `json:"data"`
	Error *responseError `json:"error"`
}

func decodeKinds(t *testing.T, rec *httptest.ResponseRecorder) ([]string, string) {
	t.Helper()
	var body sectionKinds
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	kinds := make([]string, 0, len(body.Data.Sections))
	for _, s := range body.Data.Sections {
		kinds = append(kinds, s.Kind)
	}
	code := ""
	if body.Error != nil {
		code = body.Error.Code
	}
	return kinds, code
}

func TestHandleReportDefaults(t *testing.T) {
	svc := &fakeService{}
	rec := get(t, newRouter(svc), "/reports/"+testMemberID, true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastID != testMemberID || svc.lastCfg.Year != 2024 || svc.lastCfg.Format != report.FormatComprehensive {
		t.Fatalf("unexpected config: %s %+v", svc.lastID, svc.lastCfg)
	}
	if !svc.lastCfg.IncludeGoals || svc.lastCfg.IncludeActionItems || svc.lastCfg.Print {
		t.Fatalf("unexpected toggles: %+v", svc.lastCfg)
	}
	if !svc.lastCfg.GeneratedAt.Equal(fixedNow) {
		t.Fatalf("expected handler clock, got %s", svc.lastCfg.GeneratedAt)
	}

	kinds, _ := decodeKinds(t, rec)
	if len(kinds) == 0 || kinds[0] != report.SectionHeader || kinds[len(kinds)-1] != report.SectionFooter {
		t.Fatalf("unexpected sections: %v", kinds)
	}
}

func TestHandleReportQueryOptions(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "print emits header only",
			query: "?print=true",
			want:  []string{report.SectionHeader},
		},
		{
			name:  "kpi only without goals",
			query: "?format=kpi-only&includeGoals=false",
			want:  []string{report.SectionHeader, report.SectionExecutiveSummary, report.SectionKPISummary, report.SectionMonthlyTrends, report.SectionFooter},
		},
		{
			name:  "summary with action items",
			query: "?format=summary&includeActionItems=true&year=2023",
			want: []string{
				report.SectionHeader, report.SectionExecutiveSummary, report.SectionKPISummary, report.SectionGoalsSummary,
				report.SectionStrengths, report.SectionDevelopment, report.SectionActionItems, report.SectionFooter,
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := get(t, newRouter(&fakeService{}), "/reports/"+testMemberID+tc.query, true)
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}
			kinds, _ := decodeKinds(t, rec)
			if len(kinds) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, kinds)
			}
			for i := range kinds {
				if kinds[i] != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, kinds)
				}
			}
		})
	}
}

func TestHandleReportErrors(t *testing.T) {
	tests := []struct {
		name     string
		svc      *fakeService
		path     string
		authed   bool
		want     int
		wantCode string
	}{
		{name: "requires auth", svc: &fakeService{}, path: "/reports/"+testMemberID, want: http.StatusUnauthorized, wantCode: "unauthorized"},
		{name: "bad format", svc: &fakeService{}, path: "/reports/"+testMemberID+"?format=pdf", authed: true, want: http.StatusBadRequest, wantCode: "validation_error"},
		{name: "bad year", svc: &fakeService{}, path: "/reports/"+testMemberID+"?year=abc", authed: true, want: http.StatusBadRequest, wantCode: "validation_error"},
		{name: "unknown member", svc: &fakeService{err: kpi.ErrMemberNotFound}, path: "/reports/"+unknownMemberID, authed: true, want: http.StatusNotFound, wantCode: "not_found"},
		{name: "malformed member id", svc: &fakeService{}, path: "/reports/not-a-uuid", authed: true, want: http.StatusNotFound, wantCode: "not_found"},
		{name: "backend failure", svc: &fakeService{err: errors.New("db down")}, path: "/reports/"+testMemberID, authed: true, want: http.StatusInternalServerError, wantCode: "report_failed"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			rec := get(t, newRouter(tc.svc), tc.path, tc.authed)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, rec.Code)
			}
			_, code := decodeKinds(t, rec)
			if code != tc.wantCode {
				t.Fatalf("expected code %q, got %q", tc.wantCode, code)
			}
			if tc.name == "malformed member id" && tc.svc.lastID != "" {
				t.Fatalf("malformed id must not reach the service, got %q", tc.svc.lastID)
			}
		})
	}
}

func TestHandlePDF(t *testing.T) {
	rec := get(t, newRouter(&fakeService{}), "/reports/"+testMemberID+"/pdf", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Fatal("expected pdf body")
	}
}

func TestHandleTrendsWorkbook(t *testing.T) {
	svc := &fakeService{}
	rec := get(t, newRouter(svc), "/reports/"+testMemberID+"/trends.xlsx?format=summary&print=true", true)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastCfg.Format != report.FormatComprehensive || svc.lastCfg.Print {
		t.Fatalf("expected comprehensive render, got %+v", svc.lastCfg)
	}

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Monthly Trends")
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if len(rows) != 3 || rows[1][0] != "January" || rows[1][2] != "120" {
		t.Fatalf("unexpected trend rows: %v", rows)
	}
}
