package infrastructure

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// langchainClient is the VisionClient backed by a langchaingo model. Whether a
// remote image URL is accepted depends on the underlying provider.
type langchainClient struct {
	llm     llms.Model
	llmName string
}

// NewLangchainClient creates a langchaingo model for cfg.LLM. With a
// placeholder key no model is built and Available reports ErrNotConfigured.
func NewLangchainClient(ctx context.Context, cfg AIConfig) (VisionClient, error) {
	name := strings.ToLower(cfg.LLM)
	if name == "" {
		name = "openai"
	}
	c := &langchainClient{llmName: name}
	if IsPlaceholderKey(cfg.APIKey) {
		return c, nil
	}

	var err error
	switch name {
	case "openai":
		opts := []openai.Option{openai.WithToken(cfg.APIKey)}
		if cfg.Model != "" {
			opts = append(opts, openai.WithModel(cfg.Model))
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		c.llm, err = openai.New(opts...)
	case "googleai":
		opts := []googleai.Option{googleai.WithAPIKey(cfg.APIKey)}
		if cfg.Model != "" {
			opts = append(opts, googleai.WithDefaultModel(cfg.Model))
		}
		c.llm, err = googleai.New(ctx, opts...)
	case "anthropic":
		opts := []anthropic.Option{anthropic.WithToken(cfg.APIKey)}
		if cfg.Model != "" {
			opts = append(opts, anthropic.WithModel(cfg.Model))
		}
		c.llm, err = anthropic.New(opts...)
	default:
		return nil, fmt.Errorf("unsupported langchain llm: %s", cfg.LLM)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s model: %w", name, err)
	}
	return c, nil
}

func (c *langchainClient) Available() error {
	if c.llm == nil {
		return fmt.Errorf("%s backend: %w", c.llmName, ErrNotConfigured)
	}
	return nil
}

func (c *langchainClient) Complete(ctx context.Context, req VisionRequest) (string, error) {
	messages := []llms.MessageContent{
		{
			Role: schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextContent{Text: req.Prompt},
				llms.ImageURLContent{URL: req.ImageURL},
			},
		},
	}

	opts := []llms.CallOption{
		llms.WithTemperature(float64(req.Temperature)),
		llms.WithMaxTokens(req.MaxTokens),
	}
	if req.Model != "" {
		opts = append(opts, llms.WithModel(req.Model))
	}

	resp, err := c.llm.GenerateContent(ctx, messages, opts...)
	if err != nil {
		log.Error().Err(err).Str("llm", c.llmName).Msg("langchain generate content failed")
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Content, nil
}
