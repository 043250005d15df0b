package report

import (
	"fmt"
	"sort"
	"time"

	"kpidash/internal/domain/goals"
	"kpidash/internal/domain/kpi"
)

const timestampLayout = "2006-01-02 15:04 MST"

// Assemble runs the derivation pipeline over in and lays the result out as an
// ordered document. It performs no I/O; cfg.GeneratedAt is the only clock.
func Assemble(in Input, cfg Config) Document {
	header := headerSection(in.Member, cfg)
	if cfg.Print {
		return Document{Sections: []Section{header}}
	}

	targets := kpi.ResolveTargets(in.Member, in.Targets, in.Mappings)
	data := kpi.Aggregate(targets, in.Records, in.Definitions)
	overall := kpi.OverallPerformance(data)
	summary := goals.Summarize(in.Goals)

	sections := []Section{
		header,
		executiveSection(data, overall, summary, len(in.Records), cfg),
		kpiSection(data),
	}
	if cfg.IncludeGoals {
		sections = append(sections, goalsSection(in.Goals, summary))
	}
	if cfg.Format != FormatKPIOnly {
		sections = append(sections, Section{Kind: SectionStrengths, Title: "Key Strengths", Bullets: Strengths(data, summary)})
	}
	if cfg.Format == FormatComprehensive || cfg.Format == FormatSummary {
		sections = append(sections, Section{Kind: SectionDevelopment, Title: "Development Opportunities", Bullets: Development(data, summary)})
	}
	if cfg.Format == FormatComprehensive {
		sections = append(sections, Section{Kind: SectionRecommendations, Title: "Strategic Recommendations", Items: Recommendations(in.Member, data, overall, summary)})
	}
	if cfg.IncludeActionItems && cfg.IncludeGoals && cfg.Format != FormatKPIOnly {
		if items := ActionItems(in.Goals); len(items) > 0 {
			sections = append(sections, Section{Kind: SectionActionItems, Title: "Action Items", Items: items})
		}
	}
	if cfg.Format == FormatComprehensive || cfg.Format == FormatKPIOnly {
		trends := kpi.MonthlyTrends(in.Records, targets, in.Definitions, maxTrendColumns)
		sections = append(sections, Section{Kind: SectionMonthlyTrends, Title: "Monthly Performance Trends", Trends: &trends})
	}
	sections = append(sections, Section{
		Kind:  SectionFooter,
		Title: "Report Information",
		Footer: &Footer{
			GeneratedAt: formatTimestamp(cfg.GeneratedAt),
			Note:        "Confidential. Generated from recorded KPI data and goal assignments.",
		},
	})
	return Document{Sections: sections}
}

func headerSection(member kpi.TeamMember, cfg Config) Section {
	return Section{
		Kind:  SectionHeader,
		Title: "Annual Performance Report",
		Header: &Header{
			Title:       fmt.Sprintf("Annual Performance Report %d", cfg.Year),
			MemberName:  member.Name,
			Designation: member.Designation,
			Email:       member.Email,
			Year:        cfg.Year,
			GeneratedAt: formatTimestamp(cfg.GeneratedAt),
		},
	}
}

func executiveSection(data []kpi.Datum, overall kpi.Overall, summary goals.Summary, months int, cfg Config) Section {
	exec := &ExecutiveSummary{
		OverallPerformance: overall.Percent,
		Grade:              overall.Grade,
		KPICount:           len(data),
		MonthsTracked:      months,
	}
	for _, d := range data {
		if d.Achievement >= kpi.ThresholdTarget {
			exec.KPIsOnTarget++
		}
	}
	if cfg.IncludeGoals && summary.Total > 0 {
		completion := summary.CompletionPercent
		total := summary.Total
		exec.GoalCompletion = &completion
		exec.TotalGoals = &total
	}
	return Section{Kind: SectionExecutiveSummary, Title: "Executive Summary", Summary: exec}
}

func kpiSection(data []kpi.Datum) Section {
	rows := make([]KPIRow, 0, len(data))
	for _, d := range data {
		rows = append(rows, KPIRow{Datum: d, Status: kpi.GradeFor(d.Achievement)})
	}
	return Section{Kind: SectionKPISummary, Title: "KPI Performance Summary", KPIs: rows}
}

func goalsSection(list []goals.Goal, summary goals.Summary) Section {
	rows := make([]GoalRow, 0, len(list))
	for _, goal := range list {
		row := GoalRow{Goal: goal, Complexity: goal.Complexity()}
		if onTime, ok := goal.OnTime(); ok {
			row.OnTime = &onTime
		}
		if days, ok := goal.CompletionDays(); ok {
			row.DurationDays = &days
		}
		rows = append(rows, row)
	}
	return Section{
		Kind:  SectionGoalsSummary,
		Title: "Goals Achievement Summary",
		Goals: &GoalsBlock{Summary: summary, Goals: rows},
	}
}

// ActionItems lists open goals by deadline; goals without a deadline go last.
func ActionItems(list []goals.Goal) []string {
	var open []goals.Goal
	for _, goal := range list {
		if goal.Status == goals.StatusAssigned || goal.Status == goals.StatusInProgress {
			open = append(open, goal)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		a, b := open[i].Deadline, open[j].Deadline
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return a.Before(*b)
	})

	items := make([]string, 0, len(open))
	for _, goal := range open {
		due := "no deadline"
		if goal.Deadline != nil {
			due = "due " + goal.Deadline.Format("2006-01-02")
		}
		items = append(items, fmt.Sprintf("%s (%s priority, %s)", goal.GoalName, goal.Priority, due))
	}
	return items
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.UTC().Format(timestampLayout)
}
