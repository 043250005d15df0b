package goals

const (
	StatusAssigned   = "assigned"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"

	DefaultPriority = "Medium"
	UnknownGoalName = "Unknown Goal"

	ComplexitySimple  = "Simple"
	ComplexityMedium  = "Medium"
	ComplexityComplex = "Complex"
	ComplexityUnknown = "N/A"

	simpleMaxDays = 60
	mediumMaxDays = 120
)
