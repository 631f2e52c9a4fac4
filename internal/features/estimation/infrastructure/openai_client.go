package infrastructure

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

// openAIClient is the VisionClient backed by the OpenAI chat completions API.
type openAIClient struct {
	client *openai.Client
	apiKey string
}

// NewOpenAIClient creates a chat-completions client from cfg.
func NewOpenAIClient(cfg AIConfig) VisionClient {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &openAIClient{
		client: openai.NewClientWithConfig(clientConfig),
		apiKey: cfg.APIKey,
	}
}

func (c *openAIClient) Available() error {
	if IsPlaceholderKey(c.apiKey) {
		return ErrNotConfigured
	}
	return nil
}

// Complete sends the prompt as text and the image as an image_url part in a
// single user message.
func (c *openAIClient) Complete(ctx context.Context, req VisionRequest) (string, error) {
	detail := openai.ImageURLDetail(req.ImageDetail)
	if detail == "" {
		detail = openai.ImageURLDetailAuto
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: req.Prompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: req.ImageURL, Detail: detail},
					},
				},
			},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		log.Error().Err(err).Str("model", req.Model).Msg("OpenAI chat completion failed")
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}

	log.Debug().
		Str("model", resp.Model).
		Int("prompt_tokens", resp.Usage.PromptTokens).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Msg("OpenAI chat completion finished")

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
