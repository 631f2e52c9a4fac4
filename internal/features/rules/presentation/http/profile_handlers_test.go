package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeline-ai/backend/internal/features/rules/application"
	"timeline-ai/backend/internal/features/rules/domain"
	"timeline-ai/backend/internal/features/rules/infrastructure"
)

func newProfileRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store, err := application.NewProfileStore(infrastructure.DefaultProfileID, infrastructure.BuiltinProfiles()...)
	require.NoError(t, err)

	r := gin.New()
	NewProfileHandler(store).Register(r.Group("/api/profiles"))
	return r
}

func TestListProfiles(t *testing.T) {
	r := newProfileRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profiles", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"default_profile": "default",
		"profiles": [
			{"id": "default", "display_name": "Default UK Standards"},
			{"id": "silverfern", "display_name": "Silverfern Construction"}
		]
	}`, w.Body.String())
}

func TestGetProfile(t *testing.T) {
	r := newProfileRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profiles/default", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var profile domain.RuleProfile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, infrastructure.DefaultRules, profile.Config)
}

func TestGetUnknownProfile(t *testing.T) {
	r := newProfileRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profiles/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Rule profile nope not found"}`, w.Body.String())
}
