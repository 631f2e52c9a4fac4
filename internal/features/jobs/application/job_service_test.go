package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	estimationdomain "timeline-ai/backend/internal/features/estimation/domain"
	"timeline-ai/backend/internal/features/jobs/domain"
	"timeline-ai/backend/internal/features/jobs/infrastructure"
)

func TestSaveAndGetJob(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 9, 30, 0, 0, time.FixedZone("BST", 3600))
	svc := &jobService{repo: infrastructure.NewMemoryStore(), now: func() time.Time { return fixed }}
	timeline := &estimationdomain.ProjectTimeline{ProjectSummary: "Loft conversion", TotalDurationDaysMin: 10, TotalDurationDaysMax: 14}

	saved, err := svc.SaveJob(context.Background(), "https://example.com/plan.png", timeline)
	require.NoError(t, err)
	_, err = uuid.Parse(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, fixed.UTC(), saved.CreatedAt)

	got, err := svc.GetJob(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestSaveJobRequiresFileURL(t *testing.T) {
	svc := NewJobService(infrastructure.NewMemoryStore())

	_, err := svc.SaveJob(context.Background(), "  ", nil)
	assert.ErrorIs(t, err, ErrFileURLRequired)
}

func TestGetJobNotFound(t *testing.T) {
	svc := NewJobService(infrastructure.NewMemoryStore())

	_, err := svc.GetJob(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrJobNotFound)

	_, err = svc.GetJob(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}
