package goals

import (
	"math"
	"time"
)

func daysBetween(from, to time.Time) int {
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}

// OnTime reports whether a completed goal finished by its deadline. ok is false
// when the question does not apply.
func (g Goal) OnTime() (onTime bool, ok bool) {
	if g.Status != StatusCompleted || g.CompletedDate == nil || g.Deadline == nil {
		return false, false
	}
	return !g.CompletedDate.After(*g.Deadline), true
}

// CompletionDays is the number of days from assignment to completion.
func (g Goal) CompletionDays() (int, bool) {
	if g.CompletedDate == nil || g.AssignedDate == nil {
		return 0, false
	}
	return daysBetween(*g.AssignedDate, *g.CompletedDate), true
}

// PlannedDays is the number of days from assignment to deadline.
func (g Goal) PlannedDays() (int, bool) {
	if g.Deadline == nil || g.AssignedDate == nil {
		return 0, false
	}
	return daysBetween(*g.AssignedDate, *g.Deadline), true
}

func (g Goal) Complexity() string {
	days, ok := g.PlannedDays()
	if !ok {
		return ComplexityUnknown
	}
	return ComplexityOf(days)
}

func ComplexityOf(plannedDays int) string {
	switch {
	case plannedDays <= simpleMaxDays:
		return ComplexitySimple
	case plannedDays <= mediumMaxDays:
		return ComplexityMedium
	default:
		return ComplexityComplex
	}
}

func Summarize(goals []Goal) Summary {
	summary := Summary{Total: len(goals)}
	var durationTotal, durationCount int
	for _, goal := range goals {
		switch goal.Status {
		case StatusCompleted:
			summary.Completed++
		case StatusInProgress:
			summary.InProgress++
		}
		if onTime, ok := goal.OnTime(); ok {
			if onTime {
				summary.OnTime++
			} else {
				summary.Overdue++
			}
		}
		if days, ok := goal.CompletionDays(); ok {
			durationTotal += days
			durationCount++
		}
	}

	summary.CompletionRate = rate(summary.Completed, summary.Total)
	summary.OnTimeRate = rate(summary.OnTime, summary.Completed)
	summary.OverdueRate = rate(summary.Overdue, summary.Completed)
	summary.CompletionPercent = int(math.Round(summary.CompletionRate))
	summary.OnTimePercent = int(math.Round(summary.OnTimeRate))
	summary.OverduePercent = int(math.Round(summary.OverdueRate))
	if durationCount > 0 {
		summary.AvgCompletionDays = int(math.Round(float64(durationTotal) / float64(durationCount)))
	}
	return summary
}

func rate(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func (s Summary) HasStrengths() bool {
	return s.Total > 0 && (s.CompletionRate >= 80 || s.OnTimeRate >= 80)
}

func (s Summary) HasChallenges() bool {
	return s.Total > 0 && (s.CompletionRate < 60 || s.OverdueRate > 30)
}
