package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"timeline-ai/backend/internal/config"
	"timeline-ai/backend/internal/features/estimation/application"
	"timeline-ai/backend/internal/features/estimation/infrastructure"
	estimation_http "timeline-ai/backend/internal/features/estimation/presentation/http"
	jobsapp "timeline-ai/backend/internal/features/jobs/application"
	jobsdomain "timeline-ai/backend/internal/features/jobs/domain"
	jobsinfra "timeline-ai/backend/internal/features/jobs/infrastructure"
	jobs_http "timeline-ai/backend/internal/features/jobs/presentation/http"
	rulesapp "timeline-ai/backend/internal/features/rules/application"
	rulesinfra "timeline-ai/backend/internal/features/rules/infrastructure"
	rules_http "timeline-ai/backend/internal/features/rules/presentation/http"
	"timeline-ai/backend/internal/logging"
)

// App holds the wired services.
type App struct {
	Config     *config.AppConfig
	Profiles   rulesapp.ProfileStore
	Estimation application.EstimationService
	Jobs       jobsapp.JobService

	jobRepo jobsdomain.JobRepository
}

// New builds every service from cfg. client may be nil, in which case the
// backend named by cfg.Backend is constructed.
func New(ctx context.Context, cfg *config.AppConfig, client infrastructure.VisionClient) (*App, error) {
	profiles, err := NewProfileStore(cfg)
	if err != nil {
		return nil, err
	}

	compiler, err := application.NewNamedPromptCompiler(cfg.Estimation.PromptTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt compiler: %w", err)
	}

	if client == nil {
		client, err = infrastructure.NewVisionClient(ctx, cfg.Backend.AIConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to create vision client: %w", err)
		}
	}
	invoker := application.NewInvoker(client, cfg.Backend.ModelParams())
	normalizer := application.NewNormalizer(cfg.Estimation.NormalizerOptions())

	var repo jobsdomain.JobRepository
	if cfg.Database.URL != "" {
		repo, err = jobsinfra.NewPostgresStore(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
	} else {
		repo = jobsinfra.NewMemoryStore()
	}

	return &App{
		Config:     cfg,
		Profiles:   profiles,
		Estimation: application.NewEstimationService(profiles, compiler, invoker, normalizer),
		Jobs:       jobsapp.NewJobService(repo),
		jobRepo:    repo,
	}, nil
}

// NewProfileStore registers the built-in profiles plus any in cfg.Rules.ProfilesDir.
func NewProfileStore(cfg *config.AppConfig) (rulesapp.ProfileStore, error) {
	profiles := rulesinfra.BuiltinProfiles()
	if cfg.Rules.ProfilesDir != "" {
		extra, err := rulesinfra.LoadProfilesDir(cfg.Rules.ProfilesDir)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, extra...)
	}
	defaultID := cfg.Estimation.DefaultProfile
	if defaultID == "" {
		defaultID = rulesinfra.DefaultProfileID
	}
	store, err := rulesapp.NewProfileStore(defaultID, profiles...)
	if err != nil {
		return nil, fmt.Errorf("failed to register rule profiles: %w", err)
	}
	return store, nil
}

// Router returns the HTTP routes.
func (a *App) Router() *gin.Engine {
	r := gin.New()
	r.Use(logging.GinLogger(), gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// /analyse and /api/analyse share one limiter.
	limit := estimation_http.RateLimit(a.Config.Server.AnalyseRatePerMinute)
	handler := estimation_http.NewEstimationHandler(a.Estimation)
	r.POST("/analyse", limit, handler.AnalyseHandler)

	api := r.Group("/api")
	api.POST("/analyse", limit, handler.AnalyseHandler)
	rules_http.NewProfileHandler(a.Profiles).Register(api.Group("/profiles"))
	jobs_http.NewJobHandler(a.Jobs).Register(api.Group("/jobs"))

	return r
}

// WarnIfBackendUnavailable logs a missing credential at startup. The server
// keeps running so requests get a clear configuration error.
func (a *App) WarnIfBackendUnavailable() {
	if err := a.Estimation.CheckBackend(); err != nil {
		log.Warn().Err(err).Msg("Estimation backend is not configured; /api/analyse will fail until it is")
	}
}

// Close releases the job store.
func (a *App) Close() error {
	return a.jobRepo.Close()
}
