package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"timeline-ai/backend/internal/features/jobs/application"
	"timeline-ai/backend/internal/features/jobs/domain"
)

// JobHandler holds the job service.
type JobHandler struct {
	jobService application.JobService
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService application.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// SaveJobHandler stores a timeline for a file.
func (h *JobHandler) SaveJobHandler(c *gin.Context) {
	var req domain.SaveJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job, err := h.jobService.SaveJob(c.Request.Context(), req.FileURL, req.TimelineJSON)
	if err != nil {
		if errors.Is(err, application.ErrFileURLRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File URL is required"})
			return
		}
		log.Error().Err(err).Msg("Failed to save job")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save job: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"job": job})
}

// GetJobHandler returns a stored job.
func (h *JobHandler) GetJobHandler(c *gin.Context) {
	job, err := h.jobService.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
			return
		}
		log.Error().Err(err).Msg("Failed to load job")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load job: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

// Register mounts the job routes on rg.
func (h *JobHandler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.SaveJobHandler)
	rg.GET("/:id", h.GetJobHandler)
}
