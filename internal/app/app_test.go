package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeline-ai/backend/internal/config"
	"timeline-ai/backend/internal/features/estimation/infrastructure"
	"timeline-ai/backend/internal/features/estimation/infrastructure/infrastructuretest"
)

const analyseResponse = `{"project_summary":"Bathroom refit.","phases":[{"name":"Second Fix","description":"Fit sanitaryware","duration_days_min":2,"duration_days_max":3}],"total_duration_days_min":2,"total_duration_days_max":3,"assumptions":[],"risk_factors":[]}`

func newTestApp(t *testing.T, client infrastructure.VisionClient) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg, err := config.LoadAppConfig("")
	require.NoError(t, err)
	cfg.Database.URL = ""

	a, err := New(context.Background(), cfg, client)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestRouter(t *testing.T) {
	client := &infrastructuretest.StubVisionClient{Response: analyseResponse}
	r := newTestApp(t, client).Router()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/profiles", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "silverfern")

	for _, path := range []string{"/analyse", "/api/analyse"} {
		w = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(`{"fileUrl":"https://example.com/plan.png"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.JSONEq(t, `{"timeline":`+analyseResponse+`}`, w.Body.String(), path)
	}
	assert.Len(t, client.Calls(), 2)
}

func TestNewProfileStoreLoadsDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "acme.yaml"), []byte(`
display_name: Acme Builders
config:
  phase_defaults:
    demolition: [1, 2]
`), 0o644))

	cfg, err := config.LoadAppConfig("")
	require.NoError(t, err)
	cfg.Rules.ProfilesDir = dir
	cfg.Estimation.DefaultProfile = "acme"

	store, err := NewProfileStore(cfg)
	require.NoError(t, err)
	assert.Equal(t, "acme", store.DefaultID())
	assert.Len(t, store.List(), 3)
}

func TestNewRejectsUnknownDefaultProfile(t *testing.T) {
	cfg, err := config.LoadAppConfig("")
	require.NoError(t, err)
	cfg.Estimation.DefaultProfile = "nope"

	_, err = New(context.Background(), cfg, &infrastructuretest.StubVisionClient{})
	assert.Error(t, err)
}
