package kpi

type TeamMember struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Email       string `json:"email"`
}

type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Metrics maps a KPI name to the actual value recorded for one month.
type Metrics map[string]float64

// Value returns the recorded value for name, or 0 when the KPI was not tracked.
func (m Metrics) Value(name string) float64 {
	if m == nil {
		return 0
	}
	return m[name]
}

type PerformanceRecord struct {
	ID           string  `json:"id"`
	TeamMemberID string  `json:"teamMemberId"`
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	Values       Metrics `json:"values"`
}

type Target struct {
	ID            string  `json:"id"`
	Designation   string  `json:"designation,omitempty"`
	Role          string  `json:"role,omitempty"`
	KPIName       string  `json:"kpiName"`
	MonthlyTarget float64 `json:"monthlyTarget"`
	AnnualTarget  float64 `json:"annualTarget"`
}

// RoleName prefers the designation column and falls back to the legacy role column.
func (t Target) RoleName() string {
	if t.Designation != "" {
		return t.Designation
	}
	return t.Role
}

type UserMapping struct {
	ID            string  `json:"id"`
	TeamMemberID  string  `json:"teamMemberId"`
	KPIName       string  `json:"kpiName"`
	MonthlyTarget float64 `json:"monthlyTarget"`
	AnnualTarget  float64 `json:"annualTarget"`
	IsActive      bool    `json:"isActive"`
}

type Definition struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Unit        string `json:"unit"`
}

// Datum is one aggregated KPI row of a report.
type Datum struct {
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Actual      float64 `json:"actual"`
	Target      float64 `json:"target"`
	Unit        string  `json:"unit"`
	Achievement int     `json:"achievement"`
}

type Overall struct {
	Mean    float64 `json:"-"`
	Percent int     `json:"percent"`
	Grade   string  `json:"grade"`
}

type TargetDetails struct {
	Role          string
	KPIName       string
	MonthlyTarget float64
	AnnualTarget  float64
}

func (d TargetDetails) Target(id string) Target {
	return Target{
		ID:            id,
		Designation:   d.Role,
		KPIName:       d.KPIName,
		MonthlyTarget: d.MonthlyTarget,
		AnnualTarget:  d.AnnualTarget,
	}
}
