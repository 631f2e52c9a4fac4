package application

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/kaptinlin/jsonrepair"
	"github.com/rs/zerolog/log"

	"timeline-ai/backend/internal/features/estimation/domain"
)

// fencedBlock matches a ``` block with an optional language tag.
var fencedBlock = regexp.MustCompile("(?s)```[\\w-]*[ \\t]*\\r?\\n?(.*?)```")

// NormalizerOptions tune the response normalizer.
type NormalizerOptions struct {
	// RepairJSON runs object-looking text that fails to parse through jsonrepair.
	RepairJSON bool
	// TotalToleranceDays is how far the phase sums may drift from the totals
	// before an InconsistentTimeline warning is raised.
	TotalToleranceDays int
}

// Normalizer turns raw backend text into a validated ProjectTimeline.
type Normalizer struct {
	opts NormalizerOptions
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(opts NormalizerOptions) *Normalizer {
	if opts.TotalToleranceDays < 0 {
		opts.TotalToleranceDays = 0
	}
	return &Normalizer{opts: opts}
}

// StripFormatting removes code fences and surrounding whitespace. Text before
// or after a fenced block is dropped; an unpaired opening or closing fence is
// removed.
func StripFormatting(raw string) string {
	s := strings.TrimSpace(raw)
	if m := fencedBlock.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimLeftFunc(s, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_'
		})
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// Normalize strips, parses and validates raw. It returns either a full
// timeline or an error, never a partial result. Consistency problems are
// returned as warnings on the Estimate.
func (n *Normalizer) Normalize(raw string) (*domain.Estimate, error) {
	cleaned := StripFormatting(raw)

	var doc any
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		repaired, ok := n.repair(cleaned)
		if !ok {
			log.Error().Err(err).Str("raw", raw).Msg("Failed to parse backend response")
			return nil, &domain.EstimationError{
				Kind:    domain.KindMalformedResponse,
				Stage:   domain.StageNormalize,
				Message: "Invalid JSON response from AI",
				Raw:     raw,
				Err:     err,
			}
		}
		if err := json.Unmarshal([]byte(repaired), &doc); err != nil {
			return nil, &domain.EstimationError{
				Kind:    domain.KindMalformedResponse,
				Stage:   domain.StageNormalize,
				Message: "Invalid JSON response from AI",
				Raw:     raw,
				Err:     err,
			}
		}
	}

	timeline, err := validateShape(doc)
	if err != nil {
		log.Error().Err(err).Str("raw", raw).Msg("Backend response has an invalid timeline structure")
		return nil, &domain.EstimationError{
			Kind:    domain.KindInvalidTimelineShape,
			Stage:   domain.StageNormalize,
			Message: "Invalid timeline structure: " + err.Error(),
			Raw:     raw,
			Err:     err,
		}
	}

	estimate := &domain.Estimate{Timeline: timeline, Warnings: n.checkConsistency(timeline)}
	for _, w := range estimate.Warnings {
		log.Warn().Str("kind", string(w.Kind)).Msg(w.Message)
	}
	return estimate, nil
}

// repair only touches text that already looks like an object, so plain prose
// is never turned into a JSON string.
func (n *Normalizer) repair(cleaned string) (string, bool) {
	if !n.opts.RepairJSON || !strings.HasPrefix(cleaned, "{") {
		return "", false
	}
	repaired, err := jsonrepair.JSONRepair(cleaned)
	if err != nil || !json.Valid([]byte(repaired)) {
		return "", false
	}
	log.Warn().Int("original_bytes", len(cleaned)).Int("repaired_bytes", len(repaired)).Msg("Repaired malformed backend JSON")
	return repaired, true
}

func validateShape(doc any) (*domain.ProjectTimeline, error) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %s", kindName(doc))
	}

	summary, ok := obj["project_summary"].(string)
	if !ok || strings.TrimSpace(summary) == "" {
		return nil, fmt.Errorf("project_summary must be a non-empty string")
	}

	rawPhases, ok := obj["phases"].([]any)
	if !ok {
		return nil, fmt.Errorf("phases must be an array, got %s", kindName(obj["phases"]))
	}
	phases := make([]domain.Phase, 0, len(rawPhases))
	for i, rp := range rawPhases {
		p, err := validatePhase(rp)
		if err != nil {
			return nil, fmt.Errorf("phases[%d]: %w", i, err)
		}
		phases = append(phases, p)
	}

	totalMin, err := dayCount(obj, "total_duration_days_min")
	if err != nil {
		return nil, err
	}
	totalMax, err := dayCount(obj, "total_duration_days_max")
	if err != nil {
		return nil, err
	}
	assumptions, err := stringList(obj, "assumptions")
	if err != nil {
		return nil, err
	}
	risks, err := stringList(obj, "risk_factors")
	if err != nil {
		return nil, err
	}

	return &domain.ProjectTimeline{
		ProjectSummary:       summary,
		Phases:               phases,
		TotalDurationDaysMin: totalMin,
		TotalDurationDaysMax: totalMax,
		Assumptions:          assumptions,
		RiskFactors:          risks,
	}, nil
}

func validatePhase(v any) (domain.Phase, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return domain.Phase{}, fmt.Errorf("expected an object, got %s", kindName(v))
	}
	name, ok := obj["name"].(string)
	if !ok || strings.TrimSpace(name) == "" {
		return domain.Phase{}, fmt.Errorf("name must be a non-empty string")
	}
	var description string
	if d, present := obj["description"]; present && d != nil {
		if description, ok = d.(string); !ok {
			return domain.Phase{}, fmt.Errorf("description must be a string, got %s", kindName(d))
		}
	}
	minDays, err := dayCount(obj, "duration_days_min")
	if err != nil {
		return domain.Phase{}, err
	}
	maxDays, err := dayCount(obj, "duration_days_max")
	if err != nil {
		return domain.Phase{}, err
	}
	return domain.Phase{Name: name, Description: description, DurationDaysMin: minDays, DurationDaysMax: maxDays}, nil
}

// dayCount reads a required whole, non-negative number. Zero is valid.
func dayCount(obj map[string]any, key string) (int, error) {
	v, present := obj[key]
	if !present || v == nil {
		return 0, fmt.Errorf("%s is required", key)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("%s must be a number, got %s", key, kindName(v))
	}
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, fmt.Errorf("%s must be a whole number of days, got %v", key, f)
	}
	return int(f), nil
}

// stringList reads an optional array of strings; absent or null becomes empty.
func stringList(obj map[string]any, key string) ([]string, error) {
	v, present := obj[key]
	if !present || v == nil {
		return []string{}, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an array, got %s", key, kindName(v))
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s[%d] must be a string, got %s", key, i, kindName(item))
		}
		out = append(out, s)
	}
	return out, nil
}

func (n *Normalizer) checkConsistency(t *domain.ProjectTimeline) []*domain.EstimationError {
	var warnings []*domain.EstimationError
	warn := func(format string, args ...any) {
		warnings = append(warnings, domain.NewError(domain.KindInconsistentTimeline, domain.StageNormalize,
			fmt.Sprintf(format, args...), nil))
	}

	if t.TotalDurationDaysMin > t.TotalDurationDaysMax {
		warn("total_duration_days_min %d exceeds total_duration_days_max %d", t.TotalDurationDaysMin, t.TotalDurationDaysMax)
	}
	if len(t.Phases) == 0 {
		return warnings
	}

	var sumMin, sumMax int
	for _, p := range t.Phases {
		if p.DurationDaysMin > p.DurationDaysMax {
			warn("phase %q: duration_days_min %d exceeds duration_days_max %d", p.Name, p.DurationDaysMin, p.DurationDaysMax)
		}
		sumMin += p.DurationDaysMin
		sumMax += p.DurationDaysMax
	}
	tol := n.opts.TotalToleranceDays
	if abs(sumMin-t.TotalDurationDaysMin) > tol {
		warn("phase minimums sum to %d days but total_duration_days_min is %d", sumMin, t.TotalDurationDaysMin)
	}
	if abs(sumMax-t.TotalDurationDaysMax) > tol {
		warn("phase maximums sum to %d days but total_duration_days_max is %d", sumMax, t.TotalDurationDaysMax)
	}
	return warnings
}

func kindName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
