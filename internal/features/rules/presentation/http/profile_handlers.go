package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timeline-ai/backend/internal/features/rules/application"
)

// ProfileHandler exposes the registered rule profiles.
type ProfileHandler struct {
	profiles application.ProfileStore
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles application.ProfileStore) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// ListProfilesHandler returns the id and display name of every profile.
func (h *ProfileHandler) ListProfilesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"default_profile": h.profiles.DefaultID(),
		"profiles":        h.profiles.List(),
	})
}

// GetProfileHandler returns one profile including its rules.
func (h *ProfileHandler) GetProfileHandler(c *gin.Context) {
	id := c.Param("id")
	profile, ok := h.profiles.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rule profile " + id + " not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Register mounts the profile routes on rg.
func (h *ProfileHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.ListProfilesHandler)
	rg.GET("/:id", h.GetProfileHandler)
}
