package application

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"timeline-ai/backend/internal/features/estimation/domain"
	"timeline-ai/backend/internal/features/estimation/infrastructure"
)

// ModelParams are the backend-specific call settings owned by the invoker.
type ModelParams struct {
	Model       string
	Temperature float32
	MaxTokens   int
	ImageDetail string
}

// DefaultModelParams favour reproducible numbers over creative variation.
func DefaultModelParams() ModelParams {
	return ModelParams{
		Model:       "gpt-4o",
		Temperature: 0.5,
		MaxTokens:   3000,
		ImageDetail: "auto",
	}
}

// Invoker makes exactly one backend call per Invoke. It never retries.
type Invoker struct {
	client infrastructure.VisionClient
	params ModelParams
}

// NewInvoker creates an Invoker around client.
func NewInvoker(client infrastructure.VisionClient, params ModelParams) *Invoker {
	return &Invoker{client: client, params: params}
}

// Available reports BackendUnavailable without touching the network.
func (i *Invoker) Available() error {
	if err := i.client.Available(); err != nil {
		return domain.NewError(domain.KindBackendUnavailable, domain.StageInvoke, err.Error(), err)
	}
	return nil
}

// Invoke sends prompt and imageURL to the backend and returns its raw text.
func (i *Invoker) Invoke(ctx context.Context, prompt domain.CompiledPrompt, imageURL string) (string, error) {
	if err := i.Available(); err != nil {
		return "", err
	}

	start := time.Now()
	text, err := i.client.Complete(ctx, infrastructure.VisionRequest{
		Prompt:      string(prompt),
		ImageURL:    imageURL,
		Model:       i.params.Model,
		Temperature: i.params.Temperature,
		MaxTokens:   i.params.MaxTokens,
		ImageDetail: i.params.ImageDetail,
	})
	if err != nil {
		return "", domain.NewError(domain.KindBackendCallFailed, domain.StageInvoke, err.Error(), err)
	}
	log.Debug().
		Str("model", i.params.Model).
		Dur("elapsed", time.Since(start)).
		Int("response_bytes", len(text)).
		Msg("Backend call finished")

	if strings.TrimSpace(text) == "" {
		return "", domain.NewError(domain.KindEmptyBackendResponse, domain.StageInvoke, "No response from estimation backend", nil)
	}
	return text, nil
}
