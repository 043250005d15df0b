package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"kpidash/internal/domain/goals"
	"kpidash/internal/domain/kpi"
)

func intensity(achievement int) string {
	switch {
	case achievement >= exceptionalThreshold:
		return "exceptional"
	case achievement >= outstandingThreshold:
		return "outstanding"
	default:
		return "strong"
	}
}

// Strengths lists the best KPIs at or above the Good threshold, followed by goal
// delivery strengths.
func Strengths(data []kpi.Datum, summary goals.Summary) []Bullet {
	var top []kpi.Datum
	for _, d := range data {
		if d.Achievement >= kpi.ThresholdGood {
			top = append(top, d)
		}
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Achievement > top[j].Achievement })
	if len(top) > maxStrengths {
		top = top[:maxStrengths]
	}

	bullets := make([]Bullet, 0, len(top)+2)
	for _, d := range top {
		bullets = append(bullets, Bullet{
			Title: d.Name,
			Detail: fmt.Sprintf("Delivered %s results at %d%% of target (%s of %s %s).",
				intensity(d.Achievement), d.Achievement, formatNumber(d.Actual), formatNumber(d.Target), d.Unit),
		})
	}

	if summary.HasStrengths() {
		if summary.CompletionRate >= 80 {
			bullets = append(bullets, Bullet{
				Title:  "Goal Completion",
				Detail: fmt.Sprintf("Completed %d of %d assigned goals (%d%% completion rate).", summary.Completed, summary.Total, summary.CompletionPercent),
			})
		}
		if summary.OnTimeRate >= 80 {
			bullets = append(bullets, Bullet{
				Title:  "Timely Delivery",
				Detail: fmt.Sprintf("%d%% of completed goals were delivered on or before their deadline.", summary.OnTimePercent),
			})
		}
	}

	if len(bullets) == 0 {
		bullets = append(bullets, Bullet{
			Title:  "Consistent Performance",
			Detail: "Maintained steady engagement across tracked KPIs throughout the review period.",
		})
	}
	return bullets
}

// Development lists the weakest KPIs below the Target threshold, followed by goal
// delivery challenges.
func Development(data []kpi.Datum, summary goals.Summary) []Bullet {
	var bottom []kpi.Datum
	for _, d := range data {
		if d.Achievement < kpi.ThresholdTarget {
			bottom = append(bottom, d)
		}
	}
	sort.SliceStable(bottom, func(i, j int) bool { return bottom[i].Achievement < bottom[j].Achievement })
	if len(bottom) > maxDevelopment {
		bottom = bottom[:maxDevelopment]
	}

	bullets := make([]Bullet, 0, len(bottom)+2)
	for _, d := range bottom {
		detail := fmt.Sprintf("Reached %d%% of target; process optimization can close the remaining gap.", d.Achievement)
		if d.Achievement < weakThreshold {
			detail = fmt.Sprintf("Reached %d%% of target; fundamental improvements in approach and execution are needed.", d.Achievement)
		}
		bullets = append(bullets, Bullet{Title: d.Name, Detail: detail})
	}

	if summary.HasChallenges() {
		if summary.CompletionRate < 60 {
			bullets = append(bullets, Bullet{
				Title:  "Goal Completion",
				Detail: fmt.Sprintf("Completed %d of %d goals (%d%%); narrow the focus and track progress more closely.", summary.Completed, summary.Total, summary.CompletionPercent),
			})
		}
		if summary.OverdueRate > 30 {
			bullets = append(bullets, Bullet{
				Title:  "Deadline Adherence",
				Detail: fmt.Sprintf("%d%% of completed goals finished after their deadline.", summary.OverduePercent),
			})
		}
	}

	if len(bullets) == 0 {
		bullets = append(bullets, Bullet{
			Title:  "Continuous Improvement",
			Detail: "Keep refining workflows and raising targets to sustain growth.",
		})
	}
	return bullets
}

var (
	topTier = []string{
		"Take on stretch targets next cycle to build on consistently above-target results.",
		"Mentor peers by sharing the practices behind this year's KPI performance.",
		"Lead a cross-functional initiative that draws on proven goal delivery.",
	}
	middleTier = []string{
		"Sustain current performance while lifting the KPIs closest to the next grade.",
		"Review goal plans monthly with your manager to push completion above 80%.",
		"Document the repeatable workflows that produced on-target results.",
	}
	bottomTier = []string{
		"Agree a structured improvement plan with clear monthly checkpoints.",
		"Concentrate effort on the highest-impact KPIs before adding new commitments.",
		"Hold bi-weekly progress reviews to surface blockers early.",
	}
)

// Recommendations picks a tier from the unrounded KPI mean and goal completion
// rate, then appends situational advice. Tier advice always comes first.
func Recommendations(member kpi.TeamMember, data []kpi.Datum, overall kpi.Overall, summary goals.Summary) []string {
	var items []string
	switch {
	case overall.Mean >= 100 && summary.CompletionRate >= 80:
		items = append(items, topTier...)
	case overall.Mean >= kpi.ThresholdTarget && summary.CompletionRate >= 60:
		items = append(items, middleTier...)
	default:
		items = append(items, bottomTier...)
	}

	if worst, ok := worstUnderperformer(data); ok {
		items = append(items, fmt.Sprintf("Prioritise %s, currently at %d%% of target.", worst.Name, worst.Achievement))
	}
	if summary.InProgress > 0 {
		items = append(items, fmt.Sprintf("Bring the %d in-progress goal(s) to completion before the next review.", summary.InProgress))
	}
	if summary.Total == 0 {
		items = append(items, "Set measurable goals for the coming period to complement KPI tracking.")
	}
	switch {
	case strings.Contains(member.Designation, "Analyst"):
		items = append(items, "Deepen analytical tooling skills to turn data into faster recommendations.")
	case strings.Contains(member.Designation, "Specialist"):
		items = append(items, "Pursue advanced certification in your specialist area to broaden impact.")
	}

	if len(items) > maxRecommendations {
		items = items[:maxRecommendations]
	}
	return items
}

func worstUnderperformer(data []kpi.Datum) (kpi.Datum, bool) {
	var worst kpi.Datum
	found := false
	for _, d := range data {
		if d.Achievement >= kpi.ThresholdTarget {
			continue
		}
		if !found || d.Achievement < worst.Achievement {
			worst = d
			found = true
		}
	}
	return worst, found
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
