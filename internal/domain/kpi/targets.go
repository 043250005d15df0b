package kpi

// ResolveTargets returns the targets that apply to member. Active user mappings
// replace the role defaults entirely; role defaults without a positive monthly
// target are skipped.
func ResolveTargets(member TeamMember, targets []Target, mappings []UserMapping) []Target {
	var overrides []Target
	for _, mapping := range mappings {
		if mapping.TeamMemberID != member.ID || !mapping.IsActive {
			continue
		}
		overrides = append(overrides, Target{
			ID:            mapping.ID,
			Designation:   member.Designation,
			KPIName:       mapping.KPIName,
			MonthlyTarget: mapping.MonthlyTarget,
			AnnualTarget:  mapping.AnnualTarget,
		})
	}
	if len(overrides) > 0 {
		return overrides
	}

	var defaults []Target
	for _, target := range targets {
		if target.Designation != member.Designation && target.Role != member.Designation {
			continue
		}
		if target.MonthlyTarget <= 0 {
			continue
		}
		defaults = append(defaults, target)
	}
	return defaults
}
