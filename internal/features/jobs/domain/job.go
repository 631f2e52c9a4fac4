package domain

import (
	"context"
	"errors"
	"time"

	estimationdomain "timeline-ai/backend/internal/features/estimation/domain"
)

// ErrJobNotFound is returned when no job has the requested id.
var ErrJobNotFound = errors.New("job not found")

// Job is a stored estimation result.
type Job struct {
	ID           string                            `json:"id"`
	FileURL      string                            `json:"file_url"`
	TimelineJSON *estimationdomain.ProjectTimeline `json:"timeline_json"`
	CreatedAt    time.Time                         `json:"created_at"`
}

// SaveJobRequest is the body of POST /api/jobs.
type SaveJobRequest struct {
	FileURL      string                            `json:"file_url"`
	TimelineJSON *estimationdomain.ProjectTimeline `json:"timeline_json"`
}

// JobRepository persists jobs.
type JobRepository interface {
	Insert(ctx context.Context, job *Job) error
	FindByID(ctx context.Context, id string) (*Job, error)
	Close() error
}
