package classify

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Grok exposes an OpenAI-compatible chat completions API, so the
// client is the openai SDK pointed at the xAI endpoint.
const grokBaseURL = "https://api.x.ai/v1"

type GrokClient struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
}

func NewGrokClient(apiKey string) *GrokClient {
	client := openai.NewClient(option.WithAPIKey(apiKey), option.WithBaseURL(grokBaseURL))
	return &GrokClient{
		client:    &client,
		model:     openai.ChatModel("grok-4-1-fast-non-reasoning"),
		modelName: "grok-4-1-fast-non-reasoning",
	}
}

func (c *GrokClient) Name() string {
	return c.modelName
}

func (c *GrokClient) Complete(system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(context.Background(), openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature:         openai.Float(0.3),
		MaxCompletionTokens: openai.Int(2000),
	})

	if err != nil {
		return "", fmt.Errorf("grok API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from grok")
	}

	return resp.Choices[0].Message.Content, nil
}
