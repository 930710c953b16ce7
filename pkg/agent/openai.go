package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/dtnitsch/web-content-extractor/models"
	"github.com/sashabaranov/go-openai"
)

const systemPrompt = `You are a web content extraction agent. Read the user's request and reply with a single JSON object and nothing else:
{
  "status": "success",
  "result": {
    "urls_processed": ["<url>"],
    "extracted_data": [
      {"url": "<url>", "title": "<page title>", "extracted_fields": {"<parameter>": "<extracted text>"}}
    ],
    "structured_table": [{"<column>": "<value>"}],
    "summary": "<short summary>"
  }
}
Use one extracted_fields key per requested parameter, in the order requested. All field and table values are strings.
Omit structured_table when the content is not tabular. If the page cannot be processed reply {"status": "error", "result": {}, "message": "<reason>"}.`

// OpenAITransport uses an OpenAI-compatible chat model as the agent.
type OpenAITransport struct {
	client *openai.Client
	model  string
}

func NewOpenAITransport(cfg models.OpenAIConfig) (*OpenAITransport, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("openai api key is not configured")
	}
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	return &OpenAITransport{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
	}, nil
}

func (t *OpenAITransport) Send(ctx context.Context, req Request) ([]byte, error) {
	resp, err := t.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: t.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.Message},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}
	return []byte(resp.Choices[0].Message.Content), nil
}
