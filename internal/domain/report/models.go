package report

import (
	"time"

	"kpidash/internal/domain/goals"
	"kpidash/internal/domain/kpi"
)

type Config struct {
	Format             Format
	IncludeGoals       bool
	IncludeActionItems bool
	// Print renders the header only, for single page export.
	Print       bool
	Year        int
	GeneratedAt time.Time
}

// Input is everything one render needs, fetched fresh per request.
type Input struct {
	Member      kpi.TeamMember
	Targets     []kpi.Target
	Mappings    []kpi.UserMapping
	Definitions []kpi.Definition
	Records     []kpi.PerformanceRecord
	Goals       []goals.Goal
}

type Document struct {
	Sections []Section `json:"sections"`
}

// Section returns the first section of the given kind.
func (d Document) Section(kind string) (Section, bool) {
	for _, section := range d.Sections {
		if section.Kind == kind {
			return section, true
		}
	}
	return Section{}, false
}

type Section struct {
	Kind    string            `json:"kind"`
	Title   string            `json:"title"`
	Header  *Header           `json:"header,omitempty"`
	Summary *ExecutiveSummary `json:"summary,omitempty"`
	KPIs    []KPIRow          `json:"kpis,omitempty"`
	Goals   *GoalsBlock       `json:"goals,omitempty"`
	Bullets []Bullet          `json:"bullets,omitempty"`
	Items   []string          `json:"items,omitempty"`
	Trends  *kpi.TrendTable   `json:"trends,omitempty"`
	Footer  *Footer           `json:"footer,omitempty"`
}

type Header struct {
	Title       string `json:"title"`
	MemberName  string `json:"memberName"`
	Designation string `json:"designation"`
	Email       string `json:"email"`
	Year        int    `json:"year"`
	GeneratedAt string `json:"generatedAt"`
}

type ExecutiveSummary struct {
	OverallPerformance int    `json:"overallPerformance"`
	Grade              string `json:"grade"`
	KPICount           int    `json:"kpiCount"`
	KPIsOnTarget       int    `json:"kpisOnTarget"`
	MonthsTracked      int    `json:"monthsTracked"`
	GoalCompletion     *int   `json:"goalCompletion,omitempty"`
	TotalGoals         *int   `json:"totalGoals,omitempty"`
}

type KPIRow struct {
	kpi.Datum
	Status string `json:"status"`
}

type GoalsBlock struct {
	Summary goals.Summary `json:"summary"`
	Goals   []GoalRow     `json:"goals"`
}

type GoalRow struct {
	goals.Goal
	Complexity   string `json:"complexity"`
	OnTime       *bool  `json:"onTime,omitempty"`
	DurationDays *int   `json:"durationDays,omitempty"`
}

type Bullet struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

type Footer struct {
	GeneratedAt string `json:"generatedAt"`
	Note        string `json:"note"`
}
