package infrastructure

import "timeline-ai/backend/internal/features/rules/domain"

// DefaultProfileID is the profile every unknown id resolves to.
const DefaultProfileID = "default"

// DefaultRules are the generic UK baseline rules.
var DefaultRules = domain.BusinessRulesConfig{
	PhaseDefaults: domain.PhaseDefaults{
		{Name: domain.PhaseDemolition, Min: 2, Max: 5},
		{Name: domain.PhaseFirstFix, Min: 3, Max: 7},
		{Name: domain.PhaseSecondFix, Min: 4, Max: 8},
		{Name: domain.PhasePlastering, Min: 2, Max: 5},
		{Name: domain.PhaseFlooring, Min: 1, Max: 3},
		{Name: domain.PhasePainting, Min: 2, Max: 4},
		{Name: domain.PhaseFinalChecks, Min: 1, Max: 2},
	},
	MappingLogic: "Match rooms and structural elements to relevant phases. Increase duration for larger areas, complex layouts, or additional floors.",
	Terminology:  "Use UK building terms.",
}

// SilverfernRules are calibrated on Silverfern Construction's completed projects.
var SilverfernRules = domain.BusinessRulesConfig{
	PhaseDefaults: domain.PhaseDefaults{
		{Name: domain.PhaseDemolition, Min: 2, Max: 4},
		{Name: domain.PhaseFirstFix, Min: 3, Max: 6},
		{Name: domain.PhaseSecondFix, Min: 4, Max: 7},
		{Name: domain.PhasePlastering, Min: 2, Max: 4},
		{Name: domain.PhaseFlooring, Min: 1, Max: 3},
		{Name: domain.PhasePainting, Min: 2, Max: 3},
		{Name: domain.PhaseFinalChecks, Min: 1, Max: 2},
	},
	MappingLogic: `
SILVERFERN CONSTRUCTION - COMPANY PROFILE:
- Team: 2 full-time crews of 3 people each
- Specialization: Residential refurbishments (flats and houses)
- Coverage: London and surrounding areas
- Average projects: 2-4 bed properties, 15-35 day turnaround

SCALING RULES (Based on Silverfern historical data):
- Small projects (1-2 rooms, <50m²): 10-14 days total
  Example: Studio flat refurb = 12 days average
- Medium projects (3-4 rooms, 50-90m²): 16-25 days total
  Example: 2-bed flat refurb = 20 days average
- Large projects (5-6 rooms, 90-150m²): 26-40 days total
  Example: 3-bed house refurb = 32 days average
- Very large (7+ rooms, >150m²): 40-60 days total
  Example: 4-bed house full renovation = 48 days average

SILVERFERN-SPECIFIC ADJUSTMENTS:
- Additional floors: +25% per floor
- Extra bathrooms: +1.5 days first fix, +1.5 days second fix per bathroom
- Full kitchen refit: +2 days
- Structural work (load-bearing walls): +35% to demolition and first fix
- Listed buildings: +40% overall
- Upper floors without lift: +15% to demolition phase only
- Period property features (cornicing, original flooring): +3-5 days to second fix and finishing

TEAM CAPACITY:
- 2 crews available: Can run demolition and first fix in parallel on larger projects
- For projects >100m²: Consider overlap between phases (start plastering while finishing second fix)
- Single crew projects (<60m²): Sequential phases, faster turnaround
- Multi-crew projects (>100m²): +20% efficiency due to parallel work

SILVERFERN BENCHMARKS (Actual completed projects):
- 35m² studio flat, ground floor: 11 days
- 65m² 2-bed flat, 3rd floor no lift: 22 days
- 95m² 3-bed house, structural wall removal: 29 days
- 140m² 4-bed house, loft conversion: 47 days
- 180m² period property, full renovation: 68 days

SEASONAL FACTORS:
- December-January: +10% (holiday period, material delays)
- July-August: Standard (good weather, reliable supply chain)
`,
	Terminology: "Use UK building terms. Silverfern clients expect professional UK terminology.",
}

// BuiltinProfiles returns the profiles compiled into the binary. Onboarding a
// company is a new entry here or a YAML file in the profiles directory.
func BuiltinProfiles() []domain.RuleProfile {
	return []domain.RuleProfile{
		{ID: DefaultProfileID, DisplayName: "Default UK Standards", Config: DefaultRules},
		{ID: "silverfern", DisplayName: "Silverfern Construction", Config: SilverfernRules},
	}
}
