package domain

import rulesdomain "timeline-ai/backend/internal/features/rules/domain"

// Phase is one stage of construction work with an estimated day range.
type Phase struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	DurationDaysMin int    `json:"duration_days_min"`
	DurationDaysMax int    `json:"duration_days_max"`
}

// ProjectTimeline is the validated estimate returned to callers.
type ProjectTimeline struct {
	ProjectSummary       string   `json:"project_summary"`
	Phases               []Phase  `json:"phases"`
	TotalDurationDaysMin int      `json:"total_duration_days_min"`
	TotalDurationDaysMax int      `json:"total_duration_days_max"`
	Assumptions          []string `json:"assumptions"`
	RiskFactors          []string `json:"risk_factors"`
}

// CompiledPrompt is the final instruction text sent to the backend.
type CompiledPrompt string

// AnalyseRequest is the body of POST /api/analyse.
type AnalyseRequest struct {
	FileURL       string                           `json:"fileUrl"`
	ProfileID     string                           `json:"profileId,omitempty"`
	BusinessRules *rulesdomain.BusinessRulesConfig `json:"businessRules,omitempty"`
}

// AnalyseResponse is the success body of POST /api/analyse.
type AnalyseResponse struct {
	Timeline *ProjectTimeline `json:"timeline"`
	Warnings []string         `json:"warnings,omitempty"`
}

// Estimate is a validated timeline plus any non-fatal consistency warnings.
type Estimate struct {
	Timeline *ProjectTimeline
	Warnings []*EstimationError
}

// WarningMessages flattens the warnings for the wire.
func (e *Estimate) WarningMessages() []string {
	if len(e.Warnings) == 0 {
		return nil
	}
	out := make([]string, 0, len(e.Warnings))
	for _, w := range e.Warnings {
		out = append(out, w.Message)
	}
	return out
}
