package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotConfigured is returned by Available when no usable credential is set.
var ErrNotConfigured = errors.New("OpenAI API key is not configured. Please set OPENAI_API_KEY environment variable.")

// placeholderAPIKey is the value build pipelines inject when no real key exists.
const placeholderAPIKey = "placeholder-key-for-build"

// VisionRequest is one prompt plus one image reference.
type VisionRequest struct {
	Prompt      string
	ImageURL    string
	Model       string
	Temperature float32
	MaxTokens   int
	ImageDetail string
}

// VisionClient sends a single vision completion to a backend.
type VisionClient interface {
	// Available returns ErrNotConfigured (possibly wrapped) when the client
	// has no usable credentials. It never touches the network.
	Available() error

	// Complete issues exactly one backend call and returns its text content.
	Complete(ctx context.Context, req VisionRequest) (string, error)
}

// AIConfig holds configuration for AI clients.
type AIConfig struct {
	Provider string // "openai" or "langchain"
	LLM      string // langchain backend: "openai", "googleai", "anthropic"
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

// IsPlaceholderKey reports whether key is empty or an obvious stand-in.
func IsPlaceholderKey(key string) bool {
	key = strings.TrimSpace(key)
	return key == "" || key == placeholderAPIKey || strings.HasPrefix(strings.ToLower(key), "your-")
}

// NewVisionClient creates the client named by cfg.Provider. An unconfigured
// credential is not an error here; the client reports it through Available.
func NewVisionClient(ctx context.Context, cfg AIConfig) (VisionClient, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "openai":
		return NewOpenAIClient(cfg), nil
	case "langchain":
		return NewLangchainClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported backend provider: %s", cfg.Provider)
	}
}
