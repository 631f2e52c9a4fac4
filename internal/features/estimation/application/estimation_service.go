package application

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"timeline-ai/backend/internal/features/estimation/domain"
	rulesapp "timeline-ai/backend/internal/features/rules/application"
	rulesdomain "timeline-ai/backend/internal/features/rules/domain"
)

// EstimationService defines the interface for the estimation pipeline.
type EstimationService interface {
	// Estimate runs rules resolution, prompt compilation, the backend call and
	// normalization in order, returning the first failure.
	Estimate(ctx context.Context, req domain.AnalyseRequest) (*domain.Estimate, error)
	// CheckBackend reports BackendUnavailable when the backend is not configured.
	CheckBackend() error
}

// estimationService is the implementation of EstimationService.
type estimationService struct {
	profiles   rulesapp.ProfileStore
	compiler   *PromptCompiler
	invoker    *Invoker
	normalizer *Normalizer
}

// NewEstimationService creates a new instance of estimationService.
func NewEstimationService(profiles rulesapp.ProfileStore, compiler *PromptCompiler, invoker *Invoker, normalizer *Normalizer) EstimationService {
	return &estimationService{
		profiles:   profiles,
		compiler:   compiler,
		invoker:    invoker,
		normalizer: normalizer,
	}
}

func (s *estimationService) CheckBackend() error {
	return s.invoker.Available()
}

func (s *estimationService) Estimate(ctx context.Context, req domain.AnalyseRequest) (*domain.Estimate, error) {
	if err := s.invoker.Available(); err != nil {
		log.Error().Err(err).Str("stage", string(domain.StageInvoke)).Msg("Estimation backend is not configured")
		return nil, err
	}

	fileURL := strings.TrimSpace(req.FileURL)
	if fileURL == "" {
		return nil, domain.NewError(domain.KindMissingInput, domain.StageRequest, "File URL is required", nil)
	}

	rules, source, err := s.selectRules(req)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("rules", source).Str("template", s.compiler.Name()).Msg("Selected business rules")

	prompt, err := s.compiler.Compile(rules)
	if err != nil {
		log.Error().Err(err).Str("stage", string(domain.StageCompile)).Msg("Failed to compile prompt")
		return nil, err
	}

	raw, err := s.invoker.Invoke(ctx, prompt, fileURL)
	if err != nil {
		log.Error().Err(err).Str("stage", string(domain.StageInvoke)).Str("kind", string(domain.KindOf(err))).Msg("Backend invocation failed")
		return nil, err
	}

	estimate, err := s.normalizer.Normalize(raw)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("rules", source).
		Int("phases", len(estimate.Timeline.Phases)).
		Int("total_min", estimate.Timeline.TotalDurationDaysMin).
		Int("total_max", estimate.Timeline.TotalDurationDaysMax).
		Int("warnings", len(estimate.Warnings)).
		Msg("Estimation completed")
	return estimate, nil
}

// selectRules applies the precedence override > profile id > default profile.
// Unknown profile ids fall back to the default rather than failing.
func (s *estimationService) selectRules(req domain.AnalyseRequest) (rulesdomain.BusinessRulesConfig, string, error) {
	if req.BusinessRules != nil {
		if err := req.BusinessRules.Validate(); err != nil {
			return rulesdomain.BusinessRulesConfig{}, "", domain.NewError(domain.KindInvalidBusinessRules, domain.StageRules,
				"Invalid business rules: "+err.Error(), err)
		}
		return req.BusinessRules.Clone(), "override", nil
	}

	id := req.ProfileID
	if id != "" {
		if _, ok := s.profiles.Get(id); !ok {
			log.Warn().Str("profile", id).Str("fallback", s.profiles.DefaultID()).Msg("Unknown rule profile, using default")
			id = s.profiles.DefaultID()
		}
	} else {
		id = s.profiles.DefaultID()
	}
	return s.profiles.Resolve(id), "profile:" + id, nil
}
