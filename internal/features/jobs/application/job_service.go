package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	estimationdomain "timeline-ai/backend/internal/features/estimation/domain"
	"timeline-ai/backend/internal/features/jobs/domain"
)

// ErrFileURLRequired is returned when a job is saved without a file URL.
var ErrFileURLRequired = errors.New("file_url is required")

// JobService defines the interface for storing estimation results.
type JobService interface {
	SaveJob(ctx context.Context, fileURL string, timeline *estimationdomain.ProjectTimeline) (*domain.Job, error)
	GetJob(ctx context.Context, id string) (*domain.Job, error)
}

// jobService is the implementation of JobService.
type jobService struct {
	repo domain.JobRepository
	now  func() time.Time
}

// NewJobService creates a new instance of jobService.
func NewJobService(repo domain.JobRepository) JobService {
	return &jobService{repo: repo, now: time.Now}
}

// SaveJob stores a timeline under a fresh random id.
func (s *jobService) SaveJob(ctx context.Context, fileURL string, timeline *estimationdomain.ProjectTimeline) (*domain.Job, error) {
	if strings.TrimSpace(fileURL) == "" {
		return nil, ErrFileURLRequired
	}
	job := &domain.Job{
		ID:           uuid.NewString(),
		FileURL:      fileURL,
		TimelineJSON: timeline,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to save job: %w", err)
	}
	return job, nil
}

// GetJob returns domain.ErrJobNotFound for unknown or malformed ids.
func (s *jobService) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrJobNotFound
	}
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load job %s: %w", id, err)
	}
	return job, nil
}
