package infrastructure

import (
	"context"
	"sync"

	"timeline-ai/backend/internal/features/jobs/domain"
)

// memoryStore keeps jobs in process memory. Contents are lost on restart.
type memoryStore struct {
	mu   sync.RWMutex
	jobs map[string]domain.Job
}

// NewMemoryStore creates an empty in-memory JobRepository.
func NewMemoryStore() domain.JobRepository {
	return &memoryStore{jobs: make(map[string]domain.Job)}
}

func (s *memoryStore) Insert(_ context.Context, job *domain.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = *job
	return nil
}

func (s *memoryStore) FindByID(_ context.Context, id string) (*domain.Job, error) {
	s.mu.RLock()
	job, ok := s.jobs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return &job, nil
}

func (s *memoryStore) Close() error {
	return nil
}
