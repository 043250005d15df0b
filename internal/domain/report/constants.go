package report

type Format string

const (
	FormatComprehensive Format = "comprehensive"
	FormatSummary       Format = "summary"
	FormatKPIOnly       Format = "kpi-only"
)

const (
	SectionHeader           = "header"
	SectionExecutiveSummary = "executive_summary"
	SectionKPISummary       = "kpi_summary"
	SectionGoalsSummary     = "goals_summary"
	SectionStrengths        = "strengths"
	SectionDevelopment      = "development"
	SectionRecommendations  = "recommendations"
	SectionActionItems      = "action_items"
	SectionMonthlyTrends    = "monthly_trends"
	SectionFooter           = "footer"
)

const (
	maxStrengths       = 5
	maxDevelopment     = 3
	maxRecommendations = 5
	maxTrendColumns    = 5

	exceptionalThreshold = 150
	outstandingThreshold = 130
	weakThreshold        = 50
)

func ParseFormat(value string) (Format, bool) {
	switch Format(value) {
	case FormatComprehensive, FormatSummary, FormatKPIOnly:
		return Format(value), true
	case "":
		return FormatComprehensive, true
	}
	return "", false
}
