package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"timeline-ai/backend/internal/features/estimation/application"
	"timeline-ai/backend/internal/features/estimation/domain"
)

// EstimationHandler holds the estimation service.
type EstimationHandler struct {
	estimationService application.EstimationService
}

// NewEstimationHandler creates a new EstimationHandler.
func NewEstimationHandler(estimationService application.EstimationService) *EstimationHandler {
	return &EstimationHandler{estimationService: estimationService}
}

// AnalyseHandler turns an uploaded drawing URL into a project timeline.
func (h *EstimationHandler) AnalyseHandler(c *gin.Context) {
	// A missing credential is reported before the body is even read.
	if err := h.estimationService.CheckBackend(); err != nil {
		status, message := StatusFor(err)
		log.Error().Err(err).Msg("Estimation backend is not configured")
		c.JSON(status, gin.H{"error": message})
		return
	}

	var req domain.AnalyseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	// The backend call is bound to the request, so an abandoned request
	// cancels it.
	estimate, err := h.estimationService.Estimate(c.Request.Context(), req)
	if err != nil {
		status, message := StatusFor(err)
		log.Error().Err(err).Int("status", status).Str("kind", string(domain.KindOf(err))).Msg("Error in analyse API")
		c.JSON(status, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, domain.AnalyseResponse{
		Timeline: estimate.Timeline,
		Warnings: estimate.WarningMessages(),
	})
}

// StatusFor maps a pipeline error to an HTTP status and a caller-facing message.
func StatusFor(err error) (int, string) {
	var ee *domain.EstimationError
	if !errors.As(err, &ee) {
		return http.StatusInternalServerError, "An error occurred during analysis"
	}
	if domain.IsCallerError(ee) {
		return http.StatusBadRequest, ee.Message
	}
	return http.StatusInternalServerError, ee.Message
}
