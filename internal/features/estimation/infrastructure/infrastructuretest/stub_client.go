// Package infrastructuretest provides fakes for the estimation backend.
package infrastructuretest

import (
	"context"
	"sync"

	"timeline-ai/backend/internal/features/estimation/infrastructure"
)

// StubVisionClient is an in-memory VisionClient for tests. It records every
// request it receives.
type StubVisionClient struct {
	Response       string
	Err            error
	AvailableError error

	mu    sync.Mutex
	calls []infrastructure.VisionRequest
}

func (s *StubVisionClient) Available() error {
	return s.AvailableError
}

func (s *StubVisionClient) Complete(_ context.Context, req infrastructure.VisionRequest) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	return s.Response, nil
}

// Calls returns the requests received so far.
func (s *StubVisionClient) Calls() []infrastructure.VisionRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]infrastructure.VisionRequest(nil), s.calls...)
}

var _ infrastructure.VisionClient = (*StubVisionClient)(nil)
