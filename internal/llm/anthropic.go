package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type AnthropicGenerator struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
	client      *http.Client
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Messages    []anthropicMessage `json:"messages"`
	System      string             `json:"system,omitempty"`
	Temperature float64            `json:"temperature"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
}

func NewAnthropic(opts Options) (*AnthropicGenerator, error) {
	apiKey, err := opts.apiKey()
	if err != nil {
		return nil, err
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("anthropic provider requires a model name")
	}
	return &AnthropicGenerator{
		apiKey:      apiKey,
		model:       opts.Model,
		baseURL:     opts.baseURL("https://api.anthropic.com"),
		temperature: opts.Temperature,
		maxTokens:   opts.maxTokens(),
		client:      &http.Client{Timeout: opts.timeout()},
	}, nil
}

func (g *AnthropicGenerator) Chat(ctx context.Context, system string, history []Message) (string, error) {
	messages := make([]anthropicMessage, 0, len(history))
	for _, m := range history {
		role := "user"
		if m.Role == RoleModel {
			role = "assistant"
		}
		messages = append(messages, anthropicMessage{Role: role, Content: m.Text})
	}

	req := anthropicRequest{
		Model:       g.model,
		MaxTokens:   g.maxTokens,
		Messages:    messages,
		System:      system,
		Temperature: g.temperature,
	}
	headers := map[string]string{
		"x-api-key":         g.apiKey,
		"anthropic-version": "2023-06-01",
	}

	var resp anthropicResponse
	if err := postJSON(ctx, g.client, g.baseURL+"/v1/messages", headers, req, &resp); err != nil {
		return "", fmt.Errorf("anthropic: %w", err)
	}

	var sb strings.Builder
	for _, c := range resp.Content {
		if c.Type == "text" {
			sb.WriteString(c.Text)
		}
	}
	return sb.String(), nil
}

func (g *AnthropicGenerator) Model() string {
	return g.model
}

var _ Generator = (*AnthropicGenerator)(nil)
